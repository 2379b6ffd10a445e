package dto

import "time"

// SendNotificationRequest is the admin payload for sending a notification
type SendNotificationRequest struct {
	RecipientID int64  `json:"recipientId" binding:"required" example:"2"`
	Message     string `json:"message" binding:"required" example:"New event near you"`
	Type        string `json:"type" binding:"required,oneof=EVENT GENERAL ALERT" example:"GENERAL"`
}

// NotificationResponse is the public representation of a notification
type NotificationResponse struct {
	ID          int64     `json:"id" example:"10"`
	RecipientID int64     `json:"recipientId" example:"2"`
	Message     string    `json:"message" example:"New event near you"`
	Type        string    `json:"type" example:"GENERAL" enums:"EVENT,GENERAL,ALERT"`
	IsRead      bool      `json:"isRead" example:"false"`
	CreatedAt   time.Time `json:"createdAt"`
}
