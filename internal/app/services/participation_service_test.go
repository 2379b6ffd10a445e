package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
)

type fakeParticipationStore struct {
	insertErr     error
	inserted      []struct{ eventID, volunteerID int64 }
	byPair        *models.Participation
	deleted       []struct{ eventID, volunteerID int64 }
	deleteErr     error
	attendanceErr error
	recordedHours int
	participants  int
	attended      int
	byEvent       []*models.Participation
}

func (f *fakeParticipationStore) Insert(_ context.Context, eventID, volunteerID int64) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, struct{ eventID, volunteerID int64 }{eventID, volunteerID})
	return 1, nil
}

func (f *fakeParticipationStore) GetByEventAndVolunteer(_ context.Context, _, _ int64) (*models.Participation, error) {
	return f.byPair, nil
}

func (f *fakeParticipationStore) Delete(_ context.Context, eventID, volunteerID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, struct{ eventID, volunteerID int64 }{eventID, volunteerID})
	return nil
}

func (f *fakeParticipationStore) RecordAttendance(_ context.Context, _, _ int64, hours int) error {
	if f.attendanceErr != nil {
		return f.attendanceErr
	}
	f.recordedHours = hours
	return nil
}

func (f *fakeParticipationStore) CountsForEvent(_ context.Context, _ int64) (int, int, error) {
	return f.participants, f.attended, nil
}

func (f *fakeParticipationStore) GetByEventID(_ context.Context, _ int64) ([]*models.Participation, error) {
	return f.byEvent, nil
}

type fakeEventResolver struct {
	event *models.Event
	err   error
}

func (f *fakeEventResolver) GetByID(_ context.Context, _ int64) (*models.Event, error) {
	return f.event, f.err
}

type fakeUserResolver struct {
	user *models.User
	err  error
}

func (f *fakeUserResolver) FindByID(_ context.Context, _ int64) (*models.User, error) {
	return f.user, f.err
}

type fakeJoinNotifier struct {
	sent    []string
	sentTo  []int64
	sendErr error
}

func (f *fakeJoinNotifier) Send(_ context.Context, recipientID int64, message string, _ models.NotificationType) (*dto.NotificationResponse, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, message)
	f.sentTo = append(f.sentTo, recipientID)
	return &dto.NotificationResponse{ID: 1, RecipientID: recipientID, Message: message}, nil
}

func TestJoin_NotifiesCreator(t *testing.T) {
	store := &fakeParticipationStore{
		byPair: &models.Participation{
			ID: 1, EventID: 5, VolunteerID: 10,
			Status: models.ParticipationJoined, CreatedAt: time.Now(),
		},
	}
	events := &fakeEventResolver{event: &models.Event{ID: 5, Title: "Beach Cleanup", CreatedBy: 99}}
	users := &fakeUserResolver{user: &models.User{ID: 10, FirstName: "Jane", LastName: "Miller"}}
	notifier := &fakeJoinNotifier{}

	svc := NewParticipationService(store, events, users, notifier, zerolog.Nop())

	resp, err := svc.Join(context.Background(), 5, 10)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(5), resp.EventID)
	assert.Equal(t, string(models.ParticipationJoined), resp.Status)
	require.Len(t, store.inserted, 1)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(99), notifier.sentTo[0])
	assert.Contains(t, notifier.sent[0], "Jane Miller")
	assert.Contains(t, notifier.sent[0], "Beach Cleanup")
}

func TestJoin_EventNotFound(t *testing.T) {
	svc := NewParticipationService(
		&fakeParticipationStore{},
		&fakeEventResolver{event: nil},
		&fakeUserResolver{},
		&fakeJoinNotifier{},
		zerolog.Nop(),
	)

	_, err := svc.Join(context.Background(), 5, 10)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestJoin_AlreadyJoined(t *testing.T) {
	notifier := &fakeJoinNotifier{}
	svc := NewParticipationService(
		&fakeParticipationStore{insertErr: apperrors.ErrAlreadyJoined},
		&fakeEventResolver{event: &models.Event{ID: 5, Title: "Beach Cleanup", CreatedBy: 99}},
		&fakeUserResolver{user: &models.User{ID: 10}},
		notifier,
		zerolog.Nop(),
	)

	_, err := svc.Join(context.Background(), 5, 10)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyJoined)
	assert.Empty(t, notifier.sent)
}

func TestJoin_NotificationFailureDoesNotFailJoin(t *testing.T) {
	store := &fakeParticipationStore{
		byPair: &models.Participation{ID: 1, EventID: 5, VolunteerID: 10, Status: models.ParticipationJoined},
	}
	svc := NewParticipationService(
		store,
		&fakeEventResolver{event: &models.Event{ID: 5, Title: "Beach Cleanup", CreatedBy: 99}},
		&fakeUserResolver{user: &models.User{ID: 10, FirstName: "Jane", LastName: "Miller"}},
		&fakeJoinNotifier{sendErr: errors.New("hub unavailable")},
		zerolog.Nop(),
	)

	resp, err := svc.Join(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestLeave_DeletesRecord(t *testing.T) {
	store := &fakeParticipationStore{}
	svc := NewParticipationService(store, &fakeEventResolver{}, &fakeUserResolver{}, &fakeJoinNotifier{}, zerolog.Nop())

	err := svc.Leave(context.Background(), 5, 10)
	require.NoError(t, err)
	require.Len(t, store.deleted, 1)
	assert.Equal(t, int64(5), store.deleted[0].eventID)
	assert.Equal(t, int64(10), store.deleted[0].volunteerID)
}

func TestLeave_NotJoined(t *testing.T) {
	store := &fakeParticipationStore{deleteErr: apperrors.ErrParticipationNotFound}
	svc := NewParticipationService(store, &fakeEventResolver{}, &fakeUserResolver{}, &fakeJoinNotifier{}, zerolog.Nop())

	err := svc.Leave(context.Background(), 5, 10)
	assert.ErrorIs(t, err, apperrors.ErrParticipationNotFound)
}

func TestRecordAttendance_RequiresAdmin(t *testing.T) {
	svc := NewParticipationService(
		&fakeParticipationStore{},
		&fakeEventResolver{event: &models.Event{ID: 5}},
		&fakeUserResolver{},
		&fakeJoinNotifier{},
		zerolog.Nop(),
	)

	_, err := svc.RecordAttendance(context.Background(), 5, 10, models.RoleVolunteer, 4)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestRecordAttendance_RejectsNegativeHours(t *testing.T) {
	store := &fakeParticipationStore{}
	svc := NewParticipationService(
		store,
		&fakeEventResolver{event: &models.Event{ID: 5}},
		&fakeUserResolver{},
		&fakeJoinNotifier{},
		zerolog.Nop(),
	)

	_, err := svc.RecordAttendance(context.Background(), 5, 10, models.RoleAdmin, -1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Zero(t, store.recordedHours)
}

func TestRecordAttendance_Success(t *testing.T) {
	store := &fakeParticipationStore{
		byPair: &models.Participation{
			ID: 1, EventID: 5, VolunteerID: 10,
			Status: models.ParticipationAttended, Hours: 4,
		},
	}
	svc := NewParticipationService(
		store,
		&fakeEventResolver{event: &models.Event{ID: 5}},
		&fakeUserResolver{},
		&fakeJoinNotifier{},
		zerolog.Nop(),
	)

	resp, err := svc.RecordAttendance(context.Background(), 5, 10, models.RoleAdmin, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, store.recordedHours)
	assert.Equal(t, string(models.ParticipationAttended), resp.Status)
	assert.Equal(t, 4, resp.Hours)
}

func TestCountFor_ReturnsCounters(t *testing.T) {
	store := &fakeParticipationStore{participants: 7, attended: 3}
	svc := NewParticipationService(
		store,
		&fakeEventResolver{event: &models.Event{ID: 5}},
		&fakeUserResolver{},
		&fakeJoinNotifier{},
		zerolog.Nop(),
	)

	counts, err := svc.CountFor(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 7, counts.ParticipantCount)
	assert.Equal(t, 3, counts.AttendedCount)
}
