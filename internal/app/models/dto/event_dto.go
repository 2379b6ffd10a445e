package dto

import "time"

// CreateEventRequest is the payload for creating an event
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required" example:"Beach Cleanup"`
	Description string    `json:"description" binding:"required"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required" example:"2025-06-01T09:00:00Z"`
	Location    string    `json:"location" binding:"required" example:"North Pier"`
}

// UpdateEventRequest is the patch payload for editing an event.
// Nil fields are left unchanged.
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty" binding:"omitempty,min=1"`
	Description *string    `json:"description,omitempty"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	Location    *string    `json:"location,omitempty"`
}

// EventResponse is the public representation of an event
type EventResponse struct {
	ID               int64              `json:"id" example:"1"`
	Title            string             `json:"title" example:"Beach Cleanup"`
	Description      string             `json:"description"`
	ScheduledAt      time.Time          `json:"scheduledAt"`
	Location         string             `json:"location" example:"North Pier"`
	CreatedBy        int64              `json:"createdBy" example:"1"`
	Creator          *UserBasicResponse `json:"creator,omitempty"`
	ParticipantCount int                `json:"participantCount" example:"12"`
	AttendedCount    int                `json:"attendedCount" example:"8"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// EventListResponse is a paginated list of events
type EventListResponse struct {
	Events         []EventResponse `json:"events"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}

// EventCountsResponse carries the participation counters for one event
type EventCountsResponse struct {
	EventID          int64 `json:"eventId" example:"1"`
	ParticipantCount int   `json:"participantCount" example:"12"`
	AttendedCount    int   `json:"attendedCount" example:"8"`
}
