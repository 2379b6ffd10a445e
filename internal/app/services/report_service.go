package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/models/dto"
)

// activeWindow is how far back a participation still marks a volunteer active
const activeWindow = 30 * 24 * time.Hour

// reportEventStore feeds the reporting engine full event rows
type reportEventStore interface {
	GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Event, int64, error)
	Count(ctx context.Context) (int, error)
}

// reportParticipationStore feeds the reporting engine full participation rows
type reportParticipationStore interface {
	GetAll(ctx context.Context) ([]*models.Participation, error)
}

// reportUserStore feeds the reporting engine the volunteer roster
type reportUserStore interface {
	GetAllByRole(ctx context.Context, role models.RoleType) ([]*models.User, error)
	CountByRole(ctx context.Context, role models.RoleType) (int, error)
}

// ReportService defines the interface for the reporting engine
type ReportService interface {
	EventReport(ctx context.Context) ([]dto.EventReportRow, error)
	VolunteerReport(ctx context.Context) ([]dto.VolunteerReportRow, error)
	DashboardStats(ctx context.Context) (*dto.DashboardStats, error)
}

// reportServiceImpl implements ReportService. Aggregation happens in memory
// over fully fetched rows; the repositories only supply raw data.
type reportServiceImpl struct {
	eventRepo         reportEventStore
	participationRepo reportParticipationStore
	userRepo          reportUserStore
	logger            zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	eventRepo reportEventStore,
	participationRepo reportParticipationStore,
	userRepo reportUserStore,
	logger zerolog.Logger,
) ReportService {
	return &reportServiceImpl{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		userRepo:          userRepo,
		logger:            logger,
	}
}

// EventReport builds the per-event rollup over all events
func (s *reportServiceImpl) EventReport(ctx context.Context) ([]dto.EventReportRow, error) {
	total, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	events, _, err := s.eventRepo.GetAll(ctx, 0, maxInt(total, 1))
	if err != nil {
		return nil, err
	}

	participations, err := s.participationRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return BuildEventReport(events, participations), nil
}

// VolunteerReport builds the per-volunteer rollup over all volunteers
func (s *reportServiceImpl) VolunteerReport(ctx context.Context) ([]dto.VolunteerReportRow, error) {
	volunteers, err := s.userRepo.GetAllByRole(ctx, models.RoleVolunteer)
	if err != nil {
		return nil, err
	}

	participations, err := s.participationRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return BuildVolunteerReport(volunteers, participations), nil
}

// DashboardStats builds the admin summary counters
func (s *reportServiceImpl) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	volunteerCount, err := s.userRepo.CountByRole(ctx, models.RoleVolunteer)
	if err != nil {
		return nil, err
	}

	eventCount, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	participations, err := s.participationRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := BuildDashboardStats(volunteerCount, eventCount, participations, time.Now())
	return &stats, nil
}

// BuildEventReport computes one rollup row per event. Cancelled
// participations are not participants; the attendance rate is
// attended/participants and zero for events nobody joined.
func BuildEventReport(events []*models.Event, participations []*models.Participation) []dto.EventReportRow {
	type counts struct {
		participants int
		attended     int
	}
	perEvent := make(map[int64]*counts)
	for _, p := range participations {
		if !p.Counted() {
			continue
		}
		c := perEvent[p.EventID]
		if c == nil {
			c = &counts{}
			perEvent[p.EventID] = c
		}
		c.participants++
		if p.Status == models.ParticipationAttended {
			c.attended++
		}
	}

	rows := make([]dto.EventReportRow, 0, len(events))
	for _, event := range events {
		row := dto.EventReportRow{
			EventID:     event.ID,
			Title:       event.Title,
			ScheduledAt: event.ScheduledAt,
			Location:    event.Location,
		}
		if c, ok := perEvent[event.ID]; ok {
			row.ParticipantCount = c.participants
			row.AttendedCount = c.attended
			if c.participants > 0 {
				row.AttendanceRate = float64(c.attended) / float64(c.participants)
			}
		}
		rows = append(rows, row)
	}

	return rows
}

// BuildVolunteerReport computes one rollup row per volunteer. Volunteers who
// never joined anything still get a row, with zero totals and no last
// participation date.
func BuildVolunteerReport(volunteers []*models.User, participations []*models.Participation) []dto.VolunteerReportRow {
	type totals struct {
		events int
		hours  int
		last   time.Time
	}
	perVolunteer := make(map[int64]*totals)
	for _, p := range participations {
		if !p.Counted() {
			continue
		}
		t := perVolunteer[p.VolunteerID]
		if t == nil {
			t = &totals{}
			perVolunteer[p.VolunteerID] = t
		}
		t.events++
		if p.Status == models.ParticipationAttended {
			t.hours += p.Hours
		}
		if p.CreatedAt.After(t.last) {
			t.last = p.CreatedAt
		}
	}

	rows := make([]dto.VolunteerReportRow, 0, len(volunteers))
	for _, volunteer := range volunteers {
		row := dto.VolunteerReportRow{
			VolunteerID: volunteer.ID,
			Name:        volunteer.FullName(),
			Email:       volunteer.Email,
		}
		if t, ok := perVolunteer[volunteer.ID]; ok {
			row.TotalEvents = t.events
			row.TotalHours = t.hours
			last := t.last
			row.LastParticipation = &last
		}
		rows = append(rows, row)
	}

	return rows
}

// BuildDashboardStats computes the admin summary. A volunteer is active when
// they have a counted participation within the last 30 days of now.
func BuildDashboardStats(volunteerCount, eventCount int, participations []*models.Participation, now time.Time) dto.DashboardStats {
	cutoff := now.Add(-activeWindow)

	totalParticipations := 0
	active := make(map[int64]bool)
	for _, p := range participations {
		if !p.Counted() {
			continue
		}
		totalParticipations++
		if !p.CreatedAt.Before(cutoff) {
			active[p.VolunteerID] = true
		}
	}

	return dto.DashboardStats{
		TotalVolunteers:     volunteerCount,
		TotalEvents:         eventCount,
		TotalParticipations: totalParticipations,
		ActiveVolunteers:    len(active),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
