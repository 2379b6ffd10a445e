package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
)

type fakeEventStore struct {
	createErr error
	created   []*models.Event
	byID      *models.Event
	updated   bool
	deletedID int64
	all       []*models.Event
	total     int64
	upcoming  []*models.Event
	joined    []*models.Event
}

func (f *fakeEventStore) Create(_ context.Context, event *models.Event) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	event.ID = int64(len(f.created) + 1)
	f.created = append(f.created, event)
	f.byID = event
	return event.ID, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, _ int64) (*models.Event, error) {
	return f.byID, nil
}

func (f *fakeEventStore) Update(_ context.Context, _ int64, title, description, location *string, scheduledAt *time.Time) error {
	f.updated = true
	if title != nil {
		f.byID.Title = *title
	}
	if description != nil {
		f.byID.Description = *description
	}
	if location != nil {
		f.byID.Location = *location
	}
	if scheduledAt != nil {
		f.byID.ScheduledAt = *scheduledAt
	}
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return nil
}

func (f *fakeEventStore) GetAll(_ context.Context, _ uint64, _ int) ([]*models.Event, int64, error) {
	return f.all, f.total, nil
}

func (f *fakeEventStore) GetUpcoming(_ context.Context, _ time.Time) ([]*models.Event, error) {
	return f.upcoming, nil
}

func (f *fakeEventStore) GetJoinedBy(_ context.Context, _ int64) ([]*models.Event, error) {
	return f.joined, nil
}

type fakeCountStore struct {
	participants int
	attended     int
	byEvent      map[int64][2]int
}

func (f *fakeCountStore) CountsForEvent(_ context.Context, _ int64) (int, int, error) {
	return f.participants, f.attended, nil
}

func (f *fakeCountStore) CountsForEvents(_ context.Context, _ []int64) (map[int64][2]int, error) {
	return f.byEvent, nil
}

func TestCreateEvent_AdminOnly(t *testing.T) {
	store := &fakeEventStore{}
	svc := NewEventService(store, &fakeCountStore{}, &fakeUserResolver{}, zerolog.Nop())

	_, err := svc.CreateEvent(context.Background(), 10, models.RoleVolunteer, &dto.CreateEventRequest{
		Title: "Beach Cleanup", ScheduledAt: time.Now(),
	})

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, store.created)
}

func TestCreateEvent_SetsCreator(t *testing.T) {
	store := &fakeEventStore{}
	users := &fakeUserResolver{user: &models.User{ID: 1, FirstName: "Ada", LastName: "Yilmaz"}}
	svc := NewEventService(store, &fakeCountStore{}, users, zerolog.Nop())

	resp, err := svc.CreateEvent(context.Background(), 1, models.RoleAdmin, &dto.CreateEventRequest{
		Title:       "Beach Cleanup",
		Location:    "North Pier",
		ScheduledAt: time.Now().AddDate(0, 0, 7),
	})

	require.NoError(t, err)
	require.Len(t, store.created, 1)
	assert.Equal(t, int64(1), store.created[0].CreatedBy)
	assert.Equal(t, "Beach Cleanup", resp.Title)
	require.NotNil(t, resp.Creator)
	assert.Equal(t, "Ada", resp.Creator.FirstName)
}

func TestUpdateEvent_CreatorAllowed(t *testing.T) {
	store := &fakeEventStore{byID: &models.Event{ID: 5, Title: "Old Title", CreatedBy: 10}}
	svc := NewEventService(store, &fakeCountStore{}, &fakeUserResolver{user: &models.User{ID: 10}}, zerolog.Nop())

	title := "New Title"
	resp, err := svc.UpdateEvent(context.Background(), 5, 10, models.RoleVolunteer, &dto.UpdateEventRequest{Title: &title})

	require.NoError(t, err)
	assert.True(t, store.updated)
	assert.Equal(t, "New Title", resp.Title)
}

func TestUpdateEvent_StrangerForbidden(t *testing.T) {
	store := &fakeEventStore{byID: &models.Event{ID: 5, CreatedBy: 10}}
	svc := NewEventService(store, &fakeCountStore{}, &fakeUserResolver{}, zerolog.Nop())

	title := "New Title"
	_, err := svc.UpdateEvent(context.Background(), 5, 77, models.RoleVolunteer, &dto.UpdateEventRequest{Title: &title})

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.False(t, store.updated)
}

func TestUpdateEvent_AdminOverridesOwnership(t *testing.T) {
	store := &fakeEventStore{byID: &models.Event{ID: 5, CreatedBy: 10}}
	svc := NewEventService(store, &fakeCountStore{}, &fakeUserResolver{user: &models.User{ID: 10}}, zerolog.Nop())

	title := "Rescheduled"
	_, err := svc.UpdateEvent(context.Background(), 5, 77, models.RoleAdmin, &dto.UpdateEventRequest{Title: &title})

	require.NoError(t, err)
	assert.True(t, store.updated)
}

func TestDeleteEvent_NotFound(t *testing.T) {
	svc := NewEventService(&fakeEventStore{byID: nil}, &fakeCountStore{}, &fakeUserResolver{}, zerolog.Nop())

	err := svc.DeleteEvent(context.Background(), 5, 10, models.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestDeleteEvent_CreatorAllowed(t *testing.T) {
	store := &fakeEventStore{byID: &models.Event{ID: 5, CreatedBy: 10}}
	svc := NewEventService(store, &fakeCountStore{}, &fakeUserResolver{}, zerolog.Nop())

	err := svc.DeleteEvent(context.Background(), 5, 10, models.RoleVolunteer)
	require.NoError(t, err)
	assert.Equal(t, int64(5), store.deletedID)
}

func TestGetEvent_AttachesCounts(t *testing.T) {
	store := &fakeEventStore{byID: &models.Event{ID: 5, Title: "Beach Cleanup", CreatedBy: 1}}
	counts := &fakeCountStore{participants: 12, attended: 8}
	svc := NewEventService(store, counts, &fakeUserResolver{user: &models.User{ID: 1}}, zerolog.Nop())

	resp, err := svc.GetEvent(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.ParticipantCount)
	assert.Equal(t, 8, resp.AttendedCount)
}

func TestListEvents_Paginates(t *testing.T) {
	store := &fakeEventStore{
		all: []*models.Event{
			{ID: 1, Title: "Beach Cleanup"},
			{ID: 2, Title: "Food Bank Sorting"},
		},
		total: 7,
	}
	counts := &fakeCountStore{byEvent: map[int64][2]int{1: {3, 1}}}
	svc := NewEventService(store, counts, &fakeUserResolver{}, zerolog.Nop())

	resp, err := svc.ListEvents(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, 3, resp.Events[0].ParticipantCount)
	assert.Equal(t, 0, resp.Events[1].ParticipantCount)
	assert.Equal(t, int64(7), resp.PaginationInfo.TotalItems)
}
