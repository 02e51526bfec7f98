package domain

// DeadlineClass represents how precisely an action item's deadline is known.
// It is derived from the stored date/time fields, never persisted.
type DeadlineClass string

const (
	DeadlineNone         DeadlineClass = "none"
	DeadlineDateOnly     DeadlineClass = "date-only"
	DeadlineTimeCritical DeadlineClass = "time-critical"
)

func (d DeadlineClass) String() string {
	return string(d)
}

func (d DeadlineClass) IsNone() bool {
	return d == DeadlineNone
}

func (d DeadlineClass) IsDateOnly() bool {
	return d == DeadlineDateOnly
}

func (d DeadlineClass) IsTimeCritical() bool {
	return d == DeadlineTimeCritical
}
