package dto

import "time"

// EventReportRow is one event's rollup in the event report
type EventReportRow struct {
	EventID          int64     `json:"eventId" example:"1"`
	Title            string    `json:"title" example:"Beach Cleanup"`
	ScheduledAt      time.Time `json:"scheduledAt"`
	Location         string    `json:"location" example:"North Pier"`
	ParticipantCount int       `json:"participantCount" example:"12"`
	AttendedCount    int       `json:"attendedCount" example:"8"`
	AttendanceRate   float64   `json:"attendanceRate" example:"0.67"`
}

// VolunteerReportRow is one volunteer's rollup in the volunteer report.
// LastParticipation is nil when the volunteer never joined anything.
type VolunteerReportRow struct {
	VolunteerID       int64      `json:"volunteerId" example:"2"`
	Name              string     `json:"name" example:"Jane Miller"`
	Email             string     `json:"email" example:"jane@volunteerhub.org"`
	TotalEvents       int        `json:"totalEvents" example:"3"`
	TotalHours        int        `json:"totalHours" example:"11"`
	LastParticipation *time.Time `json:"lastParticipation,omitempty"`
}

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	TotalVolunteers     int `json:"totalVolunteers" example:"25"`
	TotalEvents         int `json:"totalEvents" example:"8"`
	TotalParticipations int `json:"totalParticipations" example:"61"`
	ActiveVolunteers    int `json:"activeVolunteers" example:"14"`
}
