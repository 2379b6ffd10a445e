// Package seed provides the idempotent store bootstrap behind /init:
// it applies pending migrations and loads a small demo data set on the
// first run. Re-running against an initialized store changes nothing.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/derin/volunteerhub/internal/app/migrations"
	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/repositories"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
	"github.com/derin/volunteerhub/internal/pkg/auth"
)

const adminEmail = "admin@volunteerhub.org"

// Seeder runs migrations and demo seeding
type Seeder struct {
	db            *pgxpool.Pool
	migrationsDir string
	logger        zerolog.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(db *pgxpool.Pool, migrationsDir string, logger zerolog.Logger) *Seeder {
	return &Seeder{
		db:            db,
		migrationsDir: migrationsDir,
		logger:        logger,
	}
}

// Bootstrap applies pending migrations and, when the store is empty, loads
// the demo data set. The admin account doubles as the sentinel: its
// presence means seeding already happened.
func (s *Seeder) Bootstrap(ctx context.Context) error {
	migrator := migrations.NewMigrator(s.db)
	if err := migrator.MigrateFromDirectory(ctx, s.migrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	repos := repositories.NewRepositories(s.db)

	exists, err := repos.UserRepository.EmailExists(ctx, adminEmail)
	if err != nil {
		return fmt.Errorf("failed to check for existing seed data: %w", err)
	}
	if exists {
		s.logger.Debug().Msg("Store already seeded, skipping")
		return nil
	}

	s.logger.Info().Msg("Seeding demo data...")
	return s.seedDemoData(ctx, repos)
}

func (s *Seeder) seedDemoData(ctx context.Context, repos *repositories.Repositories) error {
	adminID, err := s.createUser(ctx, repos, adminEmail, "Admin123!", "Ada", "Yilmaz", models.RoleAdmin)
	if err != nil {
		return err
	}

	type volunteer struct {
		email, password, first, last string
	}
	volunteers := []volunteer{
		{"jane@volunteerhub.org", "Volunteer1!", "Jane", "Miller"},
		{"omar@volunteerhub.org", "Volunteer1!", "Omar", "Haddad"},
		{"lena@volunteerhub.org", "Volunteer1!", "Lena", "Fischer"},
	}

	volunteerIDs := make([]int64, 0, len(volunteers))
	for _, v := range volunteers {
		id, err := s.createUser(ctx, repos, v.email, v.password, v.first, v.last, models.RoleVolunteer)
		if err != nil {
			return err
		}
		volunteerIDs = append(volunteerIDs, id)
	}

	now := time.Now()
	events := []*models.Event{
		{
			Title:       "Beach Cleanup",
			Description: "Monthly shoreline cleanup, gloves and bags provided.",
			ScheduledAt: now.AddDate(0, 0, 7),
			Location:    "North Pier",
			CreatedBy:   adminID,
		},
		{
			Title:       "Food Bank Sorting",
			Description: "Sorting and packing donations at the central food bank.",
			ScheduledAt: now.AddDate(0, 0, 14),
			Location:    "Central Food Bank",
			CreatedBy:   adminID,
		},
		{
			Title:       "Park Tree Planting",
			Description: "Planting native saplings along the east trail.",
			ScheduledAt: now.AddDate(0, 0, -10),
			Location:    "Riverside Park",
			CreatedBy:   adminID,
		},
	}

	eventIDs := make([]int64, 0, len(events))
	for _, event := range events {
		id, err := repos.EventRepository.Create(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to seed event %q: %w", event.Title, err)
		}
		eventIDs = append(eventIDs, id)
	}

	// Everyone joins the first event; the first two volunteers attended the
	// past tree planting with logged hours
	for _, volunteerID := range volunteerIDs {
		if _, err := repos.ParticipationRepository.Insert(ctx, eventIDs[0], volunteerID); err != nil &&
			!errors.Is(err, apperrors.ErrAlreadyJoined) {
			return fmt.Errorf("failed to seed participation: %w", err)
		}
	}
	for i, volunteerID := range volunteerIDs[:2] {
		if _, err := repos.ParticipationRepository.Insert(ctx, eventIDs[2], volunteerID); err != nil &&
			!errors.Is(err, apperrors.ErrAlreadyJoined) {
			return fmt.Errorf("failed to seed participation: %w", err)
		}
		if err := repos.ParticipationRepository.RecordAttendance(ctx, eventIDs[2], volunteerID, 3+i); err != nil {
			return fmt.Errorf("failed to seed attendance: %w", err)
		}
	}

	for _, volunteerID := range volunteerIDs {
		if _, err := repos.NotificationRepository.Insert(ctx, &models.Notification{
			RecipientID: volunteerID,
			Message:     "Welcome to VolunteerHub! Browse upcoming events to get started.",
			Type:        models.NotificationGeneral,
		}); err != nil {
			return fmt.Errorf("failed to seed notification: %w", err)
		}
	}

	s.logger.Info().
		Int("volunteers", len(volunteerIDs)).
		Int("events", len(eventIDs)).
		Msg("Demo data seeded")

	return nil
}

func (s *Seeder) createUser(ctx context.Context, repos *repositories.Repositories, email, password, firstName, lastName string, role models.RoleType) (int64, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash seed password: %w", err)
	}

	id, err := repos.UserRepository.Create(ctx, &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: firstName,
		LastName:  lastName,
		RoleType:  role,
		IsActive:  true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed user %s: %w", email, err)
	}

	return id, nil
}
