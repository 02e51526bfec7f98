package domain

import (
	"time"
)

// TimetableEntityKey identifies the singleton persistent timetable status
// notification.
const TimetableEntityKey = "timetable:current-next"

// ActionEntityKey returns the stable notification identity for a task.
func ActionEntityKey(actionID string) string {
	return "action:" + actionID
}

// NotificationIntent is one notification that should exist right now.
// Intents are derived fresh each reconciliation pass and never persisted.
type NotificationIntent struct {
	EntityKey   string
	Fingerprint string
	// TriggerAt is the absolute delivery instant; nil means present
	// immediately (the persistent timetable status).
	TriggerAt *time.Time
	Title     string
	Body      string
	Silent    bool
	Sticky    bool
	// RefreshAt holds the future lecture boundary instants at which the
	// timetable status must be re-presented. Empty for task intents.
	RefreshAt []time.Time
}

// Immediate reports whether the intent has no future trigger.
func (i *NotificationIntent) Immediate() bool {
	return i.TriggerAt == nil
}

// NotificationRecord is the persisted trace of an issued intent. ExtraIDs
// hold the handles of the refresh triggers scheduled alongside the primary
// notification so that a reschedule or orphan sweep cancels them too.
type NotificationRecord struct {
	EntityKey      string   `json:"entity_key"`
	NotificationID string   `json:"notification_id"`
	ExtraIDs       []string `json:"extra_ids,omitempty"`
	Fingerprint    string   `json:"fingerprint"`
}

// AllIDs returns every notification-store handle owned by the record.
func (r *NotificationRecord) AllIDs() []string {
	ids := make([]string, 0, 1+len(r.ExtraIDs))
	ids = append(ids, r.NotificationID)
	ids = append(ids, r.ExtraIDs...)
	return ids
}

// Baseline maps entity keys to the records issued by the previous
// reconciliation pass. It is owned and mutated only by the engine.
type Baseline map[string]NotificationRecord
