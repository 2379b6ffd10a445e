package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
	"github.com/derin/volunteerhub/internal/pkg/websocket"
)

// notificationStore is the notification persistence surface the service depends on
type notificationStore interface {
	Insert(ctx context.Context, n *models.Notification) (*models.Notification, error)
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	ListForRecipient(ctx context.Context, recipientID int64, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
	CountUnread(ctx context.Context, recipientID int64) (int, error)
}

// recipientResolver checks that a notification recipient exists
type recipientResolver interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// pusher is the live push fanout the service hands committed notifications to
type pusher interface {
	Publish(message *websocket.Message)
}

// NotificationService defines the interface for the notification channel
type NotificationService interface {
	Send(ctx context.Context, recipientID int64, message string, notificationType models.NotificationType) (*dto.NotificationResponse, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	ListFor(ctx context.Context, userID int64, limit int) ([]dto.NotificationResponse, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo notificationStore
	userRepo         recipientResolver
	hub              pusher
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo notificationStore,
	userRepo recipientResolver,
	hub pusher,
	logger zerolog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		hub:              hub,
		logger:           logger,
	}
}

// Send persists a notification and pushes it to the recipient's live
// listeners. The stored row is the source of truth; the push carries the
// committed record and is best-effort with no replay for late subscribers.
func (s *notificationServiceImpl) Send(ctx context.Context, recipientID int64, message string, notificationType models.NotificationType) (*dto.NotificationResponse, error) {
	if message == "" {
		return nil, apperrors.NewValidationError("notification message must not be empty")
	}

	recipient, err := s.userRepo.FindByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, apperrors.ErrUserNotFound
	}

	stored, err := s.notificationRepo.Insert(ctx, &models.Notification{
		RecipientID: recipientID,
		Message:     message,
		Type:        notificationType,
	})
	if err != nil {
		s.logger.Error().Err(err).
			Int64("recipientID", recipientID).
			Msg("Failed to store notification")
		return nil, err
	}

	s.hub.Publish(&websocket.Message{
		ID:          stored.ID,
		RecipientID: stored.RecipientID,
		Message:     stored.Message,
		Type:        string(stored.Type),
		Timestamp:   stored.CreatedAt,
	})

	s.logger.Info().
		Int64("notificationID", stored.ID).
		Int64("recipientID", recipientID).
		Str("type", string(notificationType)).
		Msg("Notification sent")

	return mapNotificationToResponse(stored), nil
}

// MarkRead flips the read flag. Only the recipient may mark their own
// notification; anyone else gets a permission error even when the row exists.
func (s *notificationServiceImpl) MarkRead(ctx context.Context, notificationID, userID int64) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return apperrors.ErrNotificationNotFound
	}

	if notification.RecipientID != userID {
		return apperrors.NewForbiddenError("notification belongs to another recipient")
	}

	return s.notificationRepo.MarkRead(ctx, notificationID)
}

// MarkAllRead flips the read flag on all of the user's unread notifications
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// ListFor returns the user's notifications, newest first
func (s *notificationServiceImpl) ListFor(ctx context.Context, userID int64, limit int) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListForRecipient(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, *mapNotificationToResponse(n))
	}

	return responses, nil
}

// CountUnread returns the user's unread notification count
func (s *notificationServiceImpl) CountUnread(ctx context.Context, userID int64) (int, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

func mapNotificationToResponse(n *models.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Message:     n.Message,
		Type:        string(n.Type),
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}
