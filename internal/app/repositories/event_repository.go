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
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

var eventColumns = []string{
	"id", "title", "description", "scheduled_at", "location",
	"created_by", "created_at", "updated_at",
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.ScheduledAt,
		&event.Location,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts a new event and returns its ID
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query := squirrel.Insert("events").
		Columns("title", "description", "scheduled_at", "location", "created_by").
		Values(event.Title, event.Description, event.ScheduledAt, event.Location, event.CreatedBy).
		Suffix("RETURNING id").
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

// GetByID retrieves an event by ID, returning nil when absent
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return event, nil
}

// Update applies non-nil patch fields to an event
func (r *EventRepository) Update(ctx context.Context, id int64, title, description, location *string, scheduledAt *time.Time) error {
	query := squirrel.Update("events").
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	if title != nil {
		query = query.Set("title", *title)
	}
	if description != nil {
		query = query.Set("description", *description)
	}
	if location != nil {
		query = query.Set("location", *location)
	}
	if scheduledAt != nil {
		query = query.Set("scheduled_at", *scheduledAt)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// Delete removes an event. Participations referencing it are removed by the
// ON DELETE CASCADE on participations.event_id.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("events").
		Where("id = ?", id).
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
		return apperrors.ErrEventNotFound
	}

	return nil
}

// GetAll retrieves all events, newest schedule first, with total count for pagination
func (r *EventRepository) GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Event, int64, error) {
	countQuery := squirrel.Select("COUNT(*)").From("events")
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}

	query := squirrel.Select(eventColumns...).
		From("events").
		OrderBy("scheduled_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, event)
	}

	return events, total, nil
}

// GetUpcoming retrieves events scheduled at or after now, ascending by schedule
func (r *EventRepository) GetUpcoming(ctx context.Context, now time.Time) ([]*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where("scheduled_at >= ?", now).
		OrderBy("scheduled_at ASC").
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

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

// GetJoinedBy retrieves the events a volunteer is joined to or attended,
// ascending by schedule. Cancelled participations are excluded.
func (r *EventRepository) GetJoinedBy(ctx context.Context, volunteerID int64) ([]*models.Event, error) {
	query := squirrel.Select(
		"e.id", "e.title", "e.description", "e.scheduled_at", "e.location",
		"e.created_by", "e.created_at", "e.updated_at",
	).
		From("events e").
		Join("participations p ON p.event_id = e.id").
		Where("p.volunteer_id = ?", volunteerID).
		Where(squirrel.Eq{"p.status": []models.ParticipationStatus{
			models.ParticipationJoined, models.ParticipationAttended,
		}}).
		OrderBy("e.scheduled_at ASC").
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

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

// Count counts all events
func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM events").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}
