package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

var notificationColumns = []string{
	"id", "recipient_id", "message", "type", "is_read", "created_at",
}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(
		&n.ID,
		&n.RecipientID,
		&n.Message,
		&n.Type,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Insert creates a notification and returns the stored row (the committed
// record is what gets pushed to live subscribers)
func (r *NotificationRepository) Insert(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	query := squirrel.Insert("notifications").
		Columns("recipient_id", "message", "type").
		Values(n.RecipientID, n.Message, n.Type).
		Suffix("RETURNING " + "id, recipient_id, message, type, is_read, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	stored, err := scanNotification(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return stored, nil
}

// GetByID retrieves a notification by ID, returning nil when absent
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	query := squirrel.Select(notificationColumns...).
		From("notifications").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	n, err := scanNotification(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return n, nil
}

// ListForRecipient retrieves a recipient's notifications, newest first
func (r *NotificationRepository) ListForRecipient(ctx context.Context, recipientID int64, limit int) ([]*models.Notification, error) {
	query := squirrel.Select(notificationColumns...).
		From("notifications").
		Where("recipient_id = ?", recipientID).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
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

	var notifications []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// MarkRead flips the read flag on a notification. Idempotent: marking an
// already-read notification affects the row but changes nothing.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	query := squirrel.Update("notifications").
		Set("is_read", true).
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
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead flips the read flag on all of a recipient's unread notifications
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	query := squirrel.Update("notifications").
		Set("is_read", true).
		Where("recipient_id = ? AND is_read = FALSE", recipientID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// CountUnread counts a recipient's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID int64) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("notifications").
		Where("recipient_id = ? AND is_read = FALSE", recipientID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}
