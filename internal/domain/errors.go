package domain

import "errors"

var (
	ErrMalformedTime      = errors.New("malformed time of day")
	ErrMalformedDate      = errors.New("malformed calendar date")
	ErrActionItemNotFound = errors.New("action item not found")
	ErrInvalidActionItem  = errors.New("invalid action item")
	ErrInvalidLectureSlot = errors.New("invalid lecture slot")
)
