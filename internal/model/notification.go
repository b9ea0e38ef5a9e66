package model

import "time"

// NotificationLevel controls how a notification is styled.
type NotificationLevel string

// Notification levels.
const (
	LevelWarning NotificationLevel = "warning"
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
)

// Notification is a short-lived message shown to the user.
type Notification struct {
	Level       NotificationLevel
	Title       string
	Description string
	Duration    time.Duration
}

// IsZero reports whether the notification carries nothing to show.
func (n Notification) IsZero() bool {
	return n.Title == "" && n.Description == ""
}
