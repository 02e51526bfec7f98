package domain

import (
	"time"
)

// ActionItem is a single task. Date and Time are stored as plain local
// strings ("" when unset); a Time without a Date is invalid.
type ActionItem struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Date        string     `json:"date,omitempty"` // YYYY-MM-DD
	Time        string     `json:"time,omitempty"` // HH:MM, 24-hour
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (a *ActionItem) Completed() bool {
	return a.CompletedAt != nil
}

// Validate rejects items that would later fail decoding or derivation.
func (a *ActionItem) Validate() error {
	if a.Text == "" {
		return ErrInvalidActionItem
	}
	if a.Time != "" && a.Date == "" {
		return ErrInvalidActionItem
	}
	if a.Date != "" {
		if _, err := ParseCalendarDate(a.Date); err != nil {
			return err
		}
	}
	if a.Time != "" {
		if _, err := TimeToMinutes(a.Time); err != nil {
			return err
		}
	}
	return nil
}
