package models

import "time"

type NotificationType string

const (
	NotificationAssignment NotificationType = "ASSIGNMENT"
	NotificationReminder   NotificationType = "REMINDER"
	NotificationChange     NotificationType = "CHANGE"
	NotificationPayment    NotificationType = "PAYMENT"
	NotificationSystem     NotificationType = "SYSTEM"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationAssignment, NotificationReminder, NotificationChange,
		NotificationPayment, NotificationSystem:
		return true
	}
	return false
}

// Notification is an append-only per-user message, optionally referencing a
// game. Only the read flag is ever mutated.
type Notification struct {
	ID        int              `json:"id"`
	UserID    int              `json:"userId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	GameID    *int             `json:"gameId,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
