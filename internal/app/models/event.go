package models

import "time"

// Event defines the event model based on the 'events' table
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ScheduledAt time.Time `json:"scheduledAt" db:"scheduled_at"`
	Location    string    `json:"location" db:"location"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Creator *User `json:"creator,omitempty"` // Relation, no db tag
}
