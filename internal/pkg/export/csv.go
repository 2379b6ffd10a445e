// Package export renders report payloads as CSV. The format is fixed:
// header row in field order, string fields always quoted, dates as
// YYYY-MM-DD, rates with two decimals. encoding/csv quotes only when a
// field requires it, so rows are assembled by hand to keep the output
// byte-stable.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/derin/volunteerhub/internal/app/models/dto"
)

const dateLayout = "2006-01-02"

// quote wraps a string field in double quotes, escaping embedded quotes
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeRow(b *strings.Builder, fields ...string) {
	b.WriteString(strings.Join(fields, ","))
	b.WriteString("\n")
}

// EventReportCSV renders an event report as CSV
func EventReportCSV(rows []dto.EventReportRow) string {
	var b strings.Builder
	writeRow(&b, quote("eventId"), quote("title"), quote("date"), quote("location"),
		quote("participantCount"), quote("attendedCount"), quote("attendanceRate"))

	for _, row := range rows {
		writeRow(&b,
			strconv.FormatInt(row.EventID, 10),
			quote(row.Title),
			quote(row.ScheduledAt.Format(dateLayout)),
			quote(row.Location),
			strconv.Itoa(row.ParticipantCount),
			strconv.Itoa(row.AttendedCount),
			fmt.Sprintf("%.2f", row.AttendanceRate),
		)
	}

	return b.String()
}

// VolunteerReportCSV renders a volunteer report as CSV. A volunteer with no
// participation history reads "never" in the lastParticipation field.
func VolunteerReportCSV(rows []dto.VolunteerReportRow) string {
	var b strings.Builder
	writeRow(&b, quote("volunteerId"), quote("name"), quote("email"),
		quote("totalEvents"), quote("totalHours"), quote("lastParticipation"))

	for _, row := range rows {
		writeRow(&b,
			strconv.FormatInt(row.VolunteerID, 10),
			quote(row.Name),
			quote(row.Email),
			strconv.Itoa(row.TotalEvents),
			strconv.Itoa(row.TotalHours),
			quote(formatOptionalDate(row.LastParticipation)),
		)
	}

	return b.String()
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Format(dateLayout)
}
