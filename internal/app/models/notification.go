package models

import "time"

// NotificationType categorizes a notification
type NotificationType string

const (
	NotificationEvent   NotificationType = "EVENT"
	NotificationGeneral NotificationType = "GENERAL"
	NotificationAlert   NotificationType = "ALERT"
)

// Notification defines the notification model based on the 'notifications'
// table. Content is never edited after creation; only the read flag flips,
// and only by the recipient.
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	RecipientID int64            `json:"recipientId" db:"recipient_id"`
	Message     string           `json:"message" db:"message"`
	Type        NotificationType `json:"type" db:"type"`
	IsRead      bool             `json:"isRead" db:"is_read"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}
