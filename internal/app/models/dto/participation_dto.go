package dto

import "time"

// RecordAttendanceRequest is the admin payload for marking a volunteer attended.
// Hours must be non-negative; hours=0 records attendance without logged time.
type RecordAttendanceRequest struct {
	Hours int `json:"hours" example:"4"`
}

// ParticipationResponse is the public representation of a participation record
type ParticipationResponse struct {
	ID          int64              `json:"id" example:"1"`
	EventID     int64              `json:"eventId" example:"1"`
	VolunteerID int64              `json:"volunteerId" example:"2"`
	Status      string             `json:"status" example:"JOINED" enums:"JOINED,ATTENDED,CANCELLED"`
	Hours       int                `json:"hours" example:"0"`
	Volunteer   *UserBasicResponse `json:"volunteer,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
