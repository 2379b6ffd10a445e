package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
	"github.com/derin/volunteerhub/internal/pkg/helpers"
)

// eventStore is the event persistence surface the event service depends on
type eventStore interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Update(ctx context.Context, id int64, title, description, location *string, scheduledAt *time.Time) error
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Event, int64, error)
	GetUpcoming(ctx context.Context, now time.Time) ([]*models.Event, error)
	GetJoinedBy(ctx context.Context, volunteerID int64) ([]*models.Event, error)
}

// eventCountStore provides the participation counters events are decorated with
type eventCountStore interface {
	CountsForEvent(ctx context.Context, eventID int64) (participantCount, attendedCount int, err error)
	CountsForEvents(ctx context.Context, eventIDs []int64) (map[int64][2]int, error)
}

// creatorStore resolves event creators for embedding in responses
type creatorStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// EventService defines the interface for event catalog operations
type EventService interface {
	CreateEvent(ctx context.Context, creatorID int64, role models.RoleType, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, eventID, userID int64, role models.RoleType, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, eventID, userID int64, role models.RoleType) error
	GetEvent(ctx context.Context, eventID int64) (*dto.EventResponse, error)
	ListEvents(ctx context.Context, page, pageSize int) (*dto.EventListResponse, error)
	ListUpcoming(ctx context.Context) ([]dto.EventResponse, error)
	ListJoinedBy(ctx context.Context, volunteerID int64) ([]dto.EventResponse, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo         eventStore
	participationRepo eventCountStore
	userRepo          creatorStore
	logger            zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo eventStore,
	participationRepo eventCountStore,
	userRepo creatorStore,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		userRepo:          userRepo,
		logger:            logger,
	}
}

// CreateEvent creates an event. Only admins may create events.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, creatorID int64, role models.RoleType, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("only admins can create events")
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
		CreatedBy:   creatorID,
	}

	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		s.logger.Error().Err(err).Int64("creatorID", creatorID).Msg("Failed to create event")
		return nil, err
	}

	s.logger.Info().Int64("eventID", id).Int64("creatorID", creatorID).Msg("Event created")

	return s.GetEvent(ctx, id)
}

// UpdateEvent applies a patch to an event. Allowed for the creator and admins.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, eventID, userID int64, role models.RoleType, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	if event.CreatedBy != userID && role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("only the event creator or an admin can update this event")
	}

	if err := s.eventRepo.Update(ctx, eventID, req.Title, req.Description, req.Location, req.ScheduledAt); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", eventID).Int64("userID", userID).Msg("Event updated")

	return s.GetEvent(ctx, eventID)
}

// DeleteEvent removes an event and, through the cascade, its participations.
// Allowed for the creator and admins.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, eventID, userID int64, role models.RoleType) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return apperrors.ErrEventNotFound
	}

	if event.CreatedBy != userID && role != models.RoleAdmin {
		return apperrors.NewForbiddenError("only the event creator or an admin can delete this event")
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return err
	}

	s.logger.Info().Int64("eventID", eventID).Int64("userID", userID).Msg("Event deleted")

	return nil
}

// GetEvent retrieves one event with its participation counters and creator
func (s *eventServiceImpl) GetEvent(ctx context.Context, eventID int64) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	participants, attended, err := s.participationRepo.CountsForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := mapEventToResponse(event)
	resp.ParticipantCount = participants
	resp.AttendedCount = attended

	creator, err := s.userRepo.FindByID(ctx, event.CreatedBy)
	if err != nil {
		return nil, err
	}
	if creator != nil {
		resp.Creator = &dto.UserBasicResponse{
			ID:        creator.ID,
			FirstName: creator.FirstName,
			LastName:  creator.LastName,
			Email:     creator.Email,
		}
	}

	return resp, nil
}

// ListEvents retrieves a page of events with counters
func (s *eventServiceImpl) ListEvents(ctx context.Context, page, pageSize int) (*dto.EventListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	events, total, err := s.eventRepo.GetAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	responses, err := s.decorateWithCounts(ctx, events)
	if err != nil {
		return nil, err
	}

	return &dto.EventListResponse{
		Events:         responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// ListUpcoming retrieves events scheduled from now on, soonest first
func (s *eventServiceImpl) ListUpcoming(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.eventRepo.GetUpcoming(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	return s.decorateWithCounts(ctx, events)
}

// ListJoinedBy retrieves the events a volunteer joined or attended
func (s *eventServiceImpl) ListJoinedBy(ctx context.Context, volunteerID int64) ([]dto.EventResponse, error) {
	events, err := s.eventRepo.GetJoinedBy(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	return s.decorateWithCounts(ctx, events)
}

// decorateWithCounts attaches participation counters to a batch of events
// with a single grouped query.
func (s *eventServiceImpl) decorateWithCounts(ctx context.Context, events []*models.Event) ([]dto.EventResponse, error) {
	ids := make([]int64, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.ID)
	}

	counts, err := s.participationRepo.CountsForEvents(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		resp := mapEventToResponse(event)
		if c, ok := counts[event.ID]; ok {
			resp.ParticipantCount = c[0]
			resp.AttendedCount = c[1]
		}
		responses = append(responses, *resp)
	}

	return responses, nil
}

func mapEventToResponse(event *models.Event) *dto.EventResponse {
	return &dto.EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		ScheduledAt: event.ScheduledAt,
		Location:    event.Location,
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}
