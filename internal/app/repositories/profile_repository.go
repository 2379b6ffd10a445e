package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/volunteerhub/internal/app/models"
)

// ProfileRepository handles database operations for volunteer profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUserID retrieves the profile for a user, returning nil when none exists.
// A missing profile is a valid state, not an error.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.VolunteerProfile, error) {
	query := squirrel.Select(
		"id", "user_id", "phone", "location", "skills", "bio", "created_at", "updated_at",
	).
		From("volunteer_profiles").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var profile models.VolunteerProfile
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Phone,
		&profile.Location,
		&profile.Skills,
		&profile.Bio,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &profile, nil
}

// Upsert creates the profile row on first save and updates it afterwards.
// The unique index on user_id makes this a single atomic statement.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.VolunteerProfile) (int64, error) {
	query := squirrel.Insert("volunteer_profiles").
		Columns("user_id", "phone", "location", "skills", "bio").
		Values(profile.UserID, profile.Phone, profile.Location, profile.Skills, profile.Bio).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			phone = EXCLUDED.phone,
			location = EXCLUDED.location,
			skills = EXCLUDED.skills,
			bio = EXCLUDED.bio,
			updated_at = NOW()
		RETURNING id`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}
