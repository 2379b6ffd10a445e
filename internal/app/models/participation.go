package models

import "time"

// ParticipationStatus defines the lifecycle state of a participation
type ParticipationStatus string

const (
	ParticipationJoined    ParticipationStatus = "JOINED"
	ParticipationAttended  ParticipationStatus = "ATTENDED"
	ParticipationCancelled ParticipationStatus = "CANCELLED"
)

// Participation represents a volunteer's relationship to one event, based on
// the 'participations' table. (event_id, volunteer_id) is unique together:
// a volunteer holds at most one participation record per event.
type Participation struct {
	ID          int64               `json:"id" db:"id"`
	EventID     int64               `json:"eventId" db:"event_id"`
	VolunteerID int64               `json:"volunteerId" db:"volunteer_id"`
	Status      ParticipationStatus `json:"status" db:"status"`
	Hours       int                 `json:"hours" db:"hours"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time           `json:"updatedAt" db:"updated_at"`

	// Related entities
	Event     *Event `json:"event,omitempty"`     // Relation, no db tag
	Volunteer *User  `json:"volunteer,omitempty"` // Relation, no db tag
}

// Counted reports whether the participation contributes to participant counts.
// Cancelled rows are excluded everywhere they are counted.
func (p *Participation) Counted() bool {
	return p.Status != ParticipationCancelled
}
