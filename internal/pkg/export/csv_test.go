package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derin/volunteerhub/internal/app/models/dto"
)

func TestEventReportCSV_Format(t *testing.T) {
	rows := []dto.EventReportRow{
		{
			EventID:          1,
			Title:            "Beach Cleanup",
			ScheduledAt:      time.Date(2026, 9, 5, 14, 30, 0, 0, time.UTC),
			Location:         "North Pier",
			ParticipantCount: 4,
			AttendedCount:    3,
			AttendanceRate:   0.75,
		},
	}

	out := EventReportCSV(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, `"eventId","title","date","location","participantCount","attendedCount","attendanceRate"`, lines[0])
	// Date keeps only the day; rate carries two decimals
	assert.Equal(t, `1,"Beach Cleanup","2026-09-05","North Pier",4,3,0.75`, lines[1])
}

func TestEventReportCSV_EscapesQuotes(t *testing.T) {
	rows := []dto.EventReportRow{
		{EventID: 2, Title: `The "Big" Sort`, ScheduledAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
	}

	out := EventReportCSV(rows)
	assert.Contains(t, out, `"The ""Big"" Sort"`)
}

func TestVolunteerReportCSV_Format(t *testing.T) {
	last := time.Date(2026, 7, 20, 9, 0, 0, 0, time.UTC)
	rows := []dto.VolunteerReportRow{
		{
			VolunteerID:       10,
			Name:              "Jane Miller",
			Email:             "jane@volunteerhub.org",
			TotalEvents:       2,
			TotalHours:        4,
			LastParticipation: &last,
		},
		{
			VolunteerID: 11,
			Name:        "Omar Haddad",
			Email:       "omar@volunteerhub.org",
		},
	}

	out := VolunteerReportCSV(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, `"volunteerId","name","email","totalEvents","totalHours","lastParticipation"`, lines[0])
	assert.Equal(t, `10,"Jane Miller","jane@volunteerhub.org",2,4,"2026-07-20"`, lines[1])
	// No history reads "never", not an empty field
	assert.Equal(t, `11,"Omar Haddad","omar@volunteerhub.org",0,0,"never"`, lines[2])
}

func TestEventReportCSV_HeaderOnlyWhenEmpty(t *testing.T) {
	out := EventReportCSV(nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 1)
}
