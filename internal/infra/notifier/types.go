package notifier

import "time"

// Notification is the payload handed to the notification store.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	// TriggerAt is the absolute delivery instant; omitted = deliver now.
	TriggerAt *time.Time `json:"trigger_at,omitempty"`
	Silent    bool       `json:"silent,omitempty"`
	Sticky    bool       `json:"sticky,omitempty"`
}

type scheduleResponse struct {
	ID string `json:"id"`
}

type scheduledEntry struct {
	ID string `json:"id"`
}

type listResponse struct {
	Notifications []scheduledEntry `json:"notifications"`
}

type channelRequest struct {
	Name       string `json:"name"`
	Importance string `json:"importance"`
}
