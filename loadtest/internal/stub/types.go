package stub

import "time"

type ChannelRequest struct {
	Name       string `json:"name"`
	Importance string `json:"importance"`
}

type NotificationRequest struct {
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	TriggerAt *time.Time `json:"trigger_at,omitempty"`
	Silent    bool       `json:"silent,omitempty"`
	Sticky    bool       `json:"sticky,omitempty"`
}

type NotificationEntry struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	TriggerAt *time.Time `json:"trigger_at,omitempty"`
	Silent    bool       `json:"silent,omitempty"`
	Sticky    bool       `json:"sticky,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type ListResponse struct {
	Notifications []NotificationEntry `json:"notifications"`
	Count         int                 `json:"count"`
}
