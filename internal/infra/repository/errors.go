package repository

import "errors"

var (
	ErrInvalidBaselineData = errors.New("invalid baseline data")
)
