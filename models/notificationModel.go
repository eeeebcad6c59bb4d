package models

import "time"

// NotificationAction is the optional navigation affordance attached to a notification.
type NotificationAction struct {
	Label    string `json:"label"`
	Href     string `json:"href"`
	OnInvoke func() `json:"-"`
}

// Notification is a fire-and-forget message for the user.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Action      *NotificationAction `json:"action,omitempty"`
	DurationMs  int                 `json:"durationMs,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}
