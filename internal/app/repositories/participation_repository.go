package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
	"github.com/derin/volunteerhub/internal/pkg/dberrors"
)

// ParticipationRepository handles database operations for participations
type ParticipationRepository struct {
	db *pgxpool.Pool
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(db *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

var participationColumns = []string{
	"id", "event_id", "volunteer_id", "status", "hours", "created_at", "updated_at",
}

func scanParticipation(row pgx.Row) (*models.Participation, error) {
	var p models.Participation
	err := row.Scan(
		&p.ID,
		&p.EventID,
		&p.VolunteerID,
		&p.Status,
		&p.Hours,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert creates a joined participation row. The uq_participations_event_volunteer
// unique index is the arbiter for concurrent joins: of two simultaneous inserts
// for the same pair exactly one survives, the other surfaces here as
// ErrAlreadyJoined. No application-level locking is involved.
func (r *ParticipationRepository) Insert(ctx context.Context, eventID, volunteerID int64) (int64, error) {
	query := squirrel.Insert("participations").
		Columns("event_id", "volunteer_id", "status", "hours").
		Values(eventID, volunteerID, models.ParticipationJoined, 0).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_participations_event_volunteer") {
			return 0, apperrors.ErrAlreadyJoined
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByEventAndVolunteer retrieves the participation for a pair, returning nil when absent
func (r *ParticipationRepository) GetByEventAndVolunteer(ctx context.Context, eventID, volunteerID int64) (*models.Participation, error) {
	query := squirrel.Select(participationColumns...).
		From("participations").
		Where("event_id = ? AND volunteer_id = ?", eventID, volunteerID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	p, err := scanParticipation(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return p, nil
}

// Delete removes the participation row for a pair (the "leave" path is a hard delete)
func (r *ParticipationRepository) Delete(ctx context.Context, eventID, volunteerID int64) error {
	query := squirrel.Delete("participations").
		Where("event_id = ? AND volunteer_id = ?", eventID, volunteerID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrParticipationNotFound
	}

	return nil
}

// RecordAttendance transitions a joined participation to attended and sets hours.
// Returns ErrParticipationNotFound when no joined row exists for the pair.
func (r *ParticipationRepository) RecordAttendance(ctx context.Context, eventID, volunteerID int64, hours int) error {
	query := squirrel.Update("participations").
		Set("status", models.ParticipationAttended).
		Set("hours", hours).
		Set("updated_at", time.Now()).
		Where("event_id = ? AND volunteer_id = ?", eventID, volunteerID).
		Where(squirrel.Eq{"status": []models.ParticipationStatus{
			models.ParticipationJoined, models.ParticipationAttended,
		}}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrParticipationNotFound
	}

	return nil
}

// CountsForEvent returns (participant_count, attended_count) for one event.
// Cancelled rows do not count as participants.
func (r *ParticipationRepository) CountsForEvent(ctx context.Context, eventID int64) (participantCount, attendedCount int, err error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status <> 'CANCELLED'),
			COUNT(*) FILTER (WHERE status = 'ATTENDED')
		FROM participations
		WHERE event_id = $1`

	err = r.db.QueryRow(ctx, query, eventID).Scan(&participantCount, &attendedCount)
	if err != nil {
		return 0, 0, fmt.Errorf("error executing query: %w", err)
	}

	return participantCount, attendedCount, nil
}

// CountsForEvents returns per-event (participant, attended) counts for multiple events
func (r *ParticipationRepository) CountsForEvents(ctx context.Context, eventIDs []int64) (map[int64][2]int, error) {
	counts := make(map[int64][2]int)
	if len(eventIDs) == 0 {
		return counts, nil
	}

	query := squirrel.Select(
		"event_id",
		"COUNT(*) FILTER (WHERE status <> 'CANCELLED')",
		"COUNT(*) FILTER (WHERE status = 'ATTENDED')",
	).
		From("participations").
		Where(squirrel.Eq{"event_id": eventIDs}).
		GroupBy("event_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int64
		var participants, attended int
		if err := rows.Scan(&eventID, &participants, &attended); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[eventID] = [2]int{participants, attended}
	}

	return counts, nil
}

// GetByEventID retrieves all participations for an event, newest first
func (r *ParticipationRepository) GetByEventID(ctx context.Context, eventID int64) ([]*models.Participation, error) {
	query := squirrel.Select(participationColumns...).
		From("participations").
		Where("event_id = ?", eventID).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var participations []*models.Participation
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		participations = append(participations, p)
	}

	return participations, nil
}

// GetAll retrieves every participation row; the reporting engine aggregates
// over the full fetched set rather than pushing rollups into SQL.
func (r *ParticipationRepository) GetAll(ctx context.Context) ([]*models.Participation, error) {
	query := squirrel.Select(participationColumns...).
		From("participations").
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var participations []*models.Participation
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		participations = append(participations, p)
	}

	return participations, nil
}

// Count counts all participation rows
func (r *ParticipationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM participations").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}
