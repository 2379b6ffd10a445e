package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
	"github.com/derin/volunteerhub/internal/pkg/websocket"
)

type fakeNotificationStore struct {
	insertErr   error
	stored      []*models.Notification
	byID        *models.Notification
	markedRead  []int64
	markAllFor  []int64
	listed      []*models.Notification
	unreadCount int
}

func (f *fakeNotificationStore) Insert(_ context.Context, n *models.Notification) (*models.Notification, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	stored := &models.Notification{
		ID:          int64(len(f.stored) + 1),
		RecipientID: n.RecipientID,
		Message:     n.Message,
		Type:        n.Type,
		CreatedAt:   time.Now(),
	}
	f.stored = append(f.stored, stored)
	return stored, nil
}

func (f *fakeNotificationStore) GetByID(_ context.Context, _ int64) (*models.Notification, error) {
	return f.byID, nil
}

func (f *fakeNotificationStore) ListForRecipient(_ context.Context, _ int64, _ int) ([]*models.Notification, error) {
	return f.listed, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id int64) error {
	f.markedRead = append(f.markedRead, id)
	return nil
}

func (f *fakeNotificationStore) MarkAllRead(_ context.Context, recipientID int64) error {
	f.markAllFor = append(f.markAllFor, recipientID)
	return nil
}

func (f *fakeNotificationStore) CountUnread(_ context.Context, _ int64) (int, error) {
	return f.unreadCount, nil
}

type fakePusher struct {
	published []*websocket.Message
}

func (f *fakePusher) Publish(m *websocket.Message) {
	f.published = append(f.published, m)
}

func TestSend_StoresThenPushes(t *testing.T) {
	store := &fakeNotificationStore{}
	hub := &fakePusher{}
	svc := NewNotificationService(store, &fakeUserResolver{user: &models.User{ID: 42}}, hub, zerolog.Nop())

	resp, err := svc.Send(context.Background(), 42, "Welcome aboard", models.NotificationGeneral)
	require.NoError(t, err)
	require.NotNil(t, resp)

	require.Len(t, store.stored, 1)
	assert.Equal(t, int64(42), store.stored[0].RecipientID)

	// The push carries the committed row, not the request
	require.Len(t, hub.published, 1)
	assert.Equal(t, store.stored[0].ID, hub.published[0].ID)
	assert.Equal(t, "Welcome aboard", hub.published[0].Message)
}

func TestSend_EmptyMessage(t *testing.T) {
	hub := &fakePusher{}
	svc := NewNotificationService(&fakeNotificationStore{}, &fakeUserResolver{user: &models.User{ID: 42}}, hub, zerolog.Nop())

	_, err := svc.Send(context.Background(), 42, "", models.NotificationGeneral)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, hub.published)
}

func TestSend_UnknownRecipient(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, &fakeUserResolver{user: nil}, &fakePusher{}, zerolog.Nop())

	_, err := svc.Send(context.Background(), 42, "hello", models.NotificationGeneral)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Empty(t, store.stored)
}

func TestMarkRead_OwnNotification(t *testing.T) {
	store := &fakeNotificationStore{
		byID: &models.Notification{ID: 7, RecipientID: 42},
	}
	svc := NewNotificationService(store, &fakeUserResolver{}, &fakePusher{}, zerolog.Nop())

	err := svc.MarkRead(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, store.markedRead)
}

func TestMarkRead_OtherRecipient(t *testing.T) {
	store := &fakeNotificationStore{
		byID: &models.Notification{ID: 7, RecipientID: 42},
	}
	svc := NewNotificationService(store, &fakeUserResolver{}, &fakePusher{}, zerolog.Nop())

	err := svc.MarkRead(context.Background(), 7, 99)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, store.markedRead)
}

func TestMarkRead_NotFound(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationStore{byID: nil}, &fakeUserResolver{}, &fakePusher{}, zerolog.Nop())

	err := svc.MarkRead(context.Background(), 7, 42)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}

func TestMarkAllRead_TargetsCaller(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, &fakeUserResolver{}, &fakePusher{}, zerolog.Nop())

	err := svc.MarkAllRead(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, store.markAllFor)
}
