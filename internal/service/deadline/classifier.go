package deadline

import (
	"github.com/campusdesk/campusdesk/internal/domain"
)

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify derives the deadline class from the stored date/time fields.
// A time without a date never reaches this point (stores reject it), but
// such an item still classifies as date-less rather than guessing.
func (c *Classifier) Classify(item domain.ActionItem) domain.DeadlineClass {
	if item.Date == "" {
		return domain.DeadlineNone
	}
	if item.Time == "" {
		return domain.DeadlineDateOnly
	}
	return domain.DeadlineTimeCritical
}
