package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derin/volunteerhub/internal/app/models"
)

func TestBuildEventReport_AttendanceRates(t *testing.T) {
	now := time.Now()
	events := []*models.Event{
		{ID: 1, Title: "Beach Cleanup", ScheduledAt: now, Location: "North Pier"},
		{ID: 2, Title: "Food Bank Sorting", ScheduledAt: now, Location: "Central Food Bank"},
	}
	participations := []*models.Participation{
		{ID: 1, EventID: 1, VolunteerID: 10, Status: models.ParticipationJoined},
		{ID: 2, EventID: 1, VolunteerID: 11, Status: models.ParticipationAttended, Hours: 4},
		{ID: 3, EventID: 1, VolunteerID: 12, Status: models.ParticipationAttended, Hours: 2},
		{ID: 4, EventID: 1, VolunteerID: 13, Status: models.ParticipationAttended, Hours: 3},
	}

	rows := BuildEventReport(events, participations)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0].EventID)
	assert.Equal(t, 4, rows[0].ParticipantCount)
	assert.Equal(t, 3, rows[0].AttendedCount)
	assert.InDelta(t, 0.75, rows[0].AttendanceRate, 1e-9)

	// Nobody joined event 2; rate must be zero, not NaN
	assert.Equal(t, 0, rows[1].ParticipantCount)
	assert.Equal(t, 0.0, rows[1].AttendanceRate)
}

func TestBuildEventReport_CancelledExcluded(t *testing.T) {
	events := []*models.Event{{ID: 1, Title: "Tree Planting"}}
	participations := []*models.Participation{
		{ID: 1, EventID: 1, VolunteerID: 10, Status: models.ParticipationCancelled},
		{ID: 2, EventID: 1, VolunteerID: 11, Status: models.ParticipationAttended, Hours: 2},
	}

	rows := BuildEventReport(events, participations)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].ParticipantCount)
	assert.Equal(t, 1, rows[0].AttendedCount)
	assert.InDelta(t, 1.0, rows[0].AttendanceRate, 1e-9)
}

func TestBuildVolunteerReport_TotalsAndLastParticipation(t *testing.T) {
	older := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 7, 20, 10, 0, 0, 0, time.UTC)

	volunteers := []*models.User{
		{ID: 10, FirstName: "Jane", LastName: "Miller", Email: "jane@volunteerhub.org"},
		{ID: 11, FirstName: "Omar", LastName: "Haddad", Email: "omar@volunteerhub.org"},
	}
	participations := []*models.Participation{
		{ID: 1, EventID: 1, VolunteerID: 10, Status: models.ParticipationAttended, Hours: 4, CreatedAt: older},
		{ID: 2, EventID: 2, VolunteerID: 10, Status: models.ParticipationJoined, CreatedAt: newer},
		{ID: 3, EventID: 3, VolunteerID: 10, Status: models.ParticipationCancelled, Hours: 9, CreatedAt: newer},
	}

	rows := BuildVolunteerReport(volunteers, participations)
	require.Len(t, rows, 2)

	jane := rows[0]
	assert.Equal(t, "Jane Miller", jane.Name)
	assert.Equal(t, 2, jane.TotalEvents)
	// Hours accrue only from attended participations
	assert.Equal(t, 4, jane.TotalHours)
	require.NotNil(t, jane.LastParticipation)
	assert.True(t, jane.LastParticipation.Equal(newer))

	// A volunteer with no history still gets a row
	omar := rows[1]
	assert.Equal(t, 0, omar.TotalEvents)
	assert.Equal(t, 0, omar.TotalHours)
	assert.Nil(t, omar.LastParticipation)
}

func TestBuildDashboardStats_ActiveWindow(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -10)
	stale := now.AddDate(0, 0, -45)

	participations := []*models.Participation{
		{ID: 1, EventID: 1, VolunteerID: 10, Status: models.ParticipationJoined, CreatedAt: recent},
		{ID: 2, EventID: 2, VolunteerID: 10, Status: models.ParticipationAttended, CreatedAt: recent},
		{ID: 3, EventID: 1, VolunteerID: 11, Status: models.ParticipationJoined, CreatedAt: stale},
		{ID: 4, EventID: 1, VolunteerID: 12, Status: models.ParticipationCancelled, CreatedAt: recent},
	}

	stats := BuildDashboardStats(3, 2, participations, now)

	assert.Equal(t, 3, stats.TotalVolunteers)
	assert.Equal(t, 2, stats.TotalEvents)
	// Cancelled rows count nowhere
	assert.Equal(t, 3, stats.TotalParticipations)
	// Volunteer 10 is active (deduplicated), 11 is stale, 12 only cancelled
	assert.Equal(t, 1, stats.ActiveVolunteers)
}

func TestBuildDashboardStats_Empty(t *testing.T) {
	stats := BuildDashboardStats(0, 0, nil, time.Now())

	assert.Equal(t, 0, stats.TotalParticipations)
	assert.Equal(t, 0, stats.ActiveVolunteers)
}
