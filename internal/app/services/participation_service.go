package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
)

// participationStore is the ledger persistence surface the participation service depends on
type participationStore interface {
	Insert(ctx context.Context, eventID, volunteerID int64) (int64, error)
	GetByEventAndVolunteer(ctx context.Context, eventID, volunteerID int64) (*models.Participation, error)
	Delete(ctx context.Context, eventID, volunteerID int64) error
	RecordAttendance(ctx context.Context, eventID, volunteerID int64, hours int) error
	CountsForEvent(ctx context.Context, eventID int64) (participantCount, attendedCount int, err error)
	GetByEventID(ctx context.Context, eventID int64) ([]*models.Participation, error)
}

// participantResolver resolves volunteer accounts for embedding in responses
type participantResolver interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// eventResolver resolves events for existence and creator checks
type eventResolver interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

// joinNotifier sends the creator's join notification
type joinNotifier interface {
	Send(ctx context.Context, recipientID int64, message string, notificationType models.NotificationType) (*dto.NotificationResponse, error)
}

// ParticipationService defines the interface for the participation ledger
type ParticipationService interface {
	Join(ctx context.Context, eventID, volunteerID int64) (*dto.ParticipationResponse, error)
	Leave(ctx context.Context, eventID, volunteerID int64) error
	RecordAttendance(ctx context.Context, eventID, volunteerID int64, role models.RoleType, hours int) (*dto.ParticipationResponse, error)
	CountFor(ctx context.Context, eventID int64) (*dto.EventCountsResponse, error)
	ListForEvent(ctx context.Context, eventID int64) ([]dto.ParticipationResponse, error)
}

// participationServiceImpl implements ParticipationService
type participationServiceImpl struct {
	participationRepo   participationStore
	eventRepo           eventResolver
	userRepo            participantResolver
	notificationService joinNotifier
	logger              zerolog.Logger
}

// NewParticipationService creates a new ParticipationService
func NewParticipationService(
	participationRepo participationStore,
	eventRepo eventResolver,
	userRepo participantResolver,
	notificationService joinNotifier,
	logger zerolog.Logger,
) ParticipationService {
	return &participationServiceImpl{
		participationRepo:   participationRepo,
		eventRepo:           eventRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// Join registers a volunteer for an event. Concurrent joins for the same
// pair are resolved by the unique index underneath; the loser gets
// ErrAlreadyJoined. On success the event creator is notified best-effort:
// a failed notification is logged, never surfaced to the joiner.
func (s *participationServiceImpl) Join(ctx context.Context, eventID, volunteerID int64) (*dto.ParticipationResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	if _, err := s.participationRepo.Insert(ctx, eventID, volunteerID); err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyJoined) {
			return nil, apperrors.ErrAlreadyJoined
		}
		s.logger.Error().Err(err).
			Int64("eventID", eventID).
			Int64("volunteerID", volunteerID).
			Msg("Failed to insert participation")
		return nil, err
	}

	s.logger.Info().
		Int64("eventID", eventID).
		Int64("volunteerID", volunteerID).
		Msg("Volunteer joined event")

	s.notifyCreator(ctx, event, volunteerID)

	participation, err := s.participationRepo.GetByEventAndVolunteer(ctx, eventID, volunteerID)
	if err != nil {
		return nil, err
	}
	if participation == nil {
		return nil, apperrors.ErrParticipationNotFound
	}

	return mapParticipationToResponse(participation), nil
}

// notifyCreator tells the event creator about a new join. Best-effort only.
func (s *participationServiceImpl) notifyCreator(ctx context.Context, event *models.Event, volunteerID int64) {
	volunteer, err := s.userRepo.FindByID(ctx, volunteerID)
	if err != nil || volunteer == nil {
		s.logger.Warn().Err(err).
			Int64("volunteerID", volunteerID).
			Msg("Could not resolve volunteer for join notification")
		return
	}

	message := fmt.Sprintf("%s joined your event %q", volunteer.FullName(), event.Title)
	if _, err := s.notificationService.Send(ctx, event.CreatedBy, message, models.NotificationEvent); err != nil {
		s.logger.Warn().Err(err).
			Int64("eventID", event.ID).
			Int64("recipientID", event.CreatedBy).
			Msg("Failed to send join notification")
	}
}

// Leave removes the volunteer's participation record entirely. A later
// re-join starts a fresh record.
func (s *participationServiceImpl) Leave(ctx context.Context, eventID, volunteerID int64) error {
	if err := s.participationRepo.Delete(ctx, eventID, volunteerID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("eventID", eventID).
		Int64("volunteerID", volunteerID).
		Msg("Volunteer left event")

	return nil
}

// RecordAttendance marks a volunteer attended with the hours they served.
// Admin only; negative hours are rejected before touching the store.
func (s *participationServiceImpl) RecordAttendance(ctx context.Context, eventID, volunteerID int64, role models.RoleType, hours int) (*dto.ParticipationResponse, error) {
	if role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("only admins can record attendance")
	}
	if hours < 0 {
		return nil, apperrors.NewValidationError("hours must be non-negative")
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	if err := s.participationRepo.RecordAttendance(ctx, eventID, volunteerID, hours); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("eventID", eventID).
		Int64("volunteerID", volunteerID).
		Int("hours", hours).
		Msg("Attendance recorded")

	participation, err := s.participationRepo.GetByEventAndVolunteer(ctx, eventID, volunteerID)
	if err != nil {
		return nil, err
	}
	if participation == nil {
		return nil, apperrors.ErrParticipationNotFound
	}

	return mapParticipationToResponse(participation), nil
}

// CountFor returns the participation counters for an event
func (s *participationServiceImpl) CountFor(ctx context.Context, eventID int64) (*dto.EventCountsResponse, error) {
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

	return &dto.EventCountsResponse{
		EventID:          eventID,
		ParticipantCount: participants,
		AttendedCount:    attended,
	}, nil
}

// ListForEvent returns an event's participations with the volunteers resolved
func (s *participationServiceImpl) ListForEvent(ctx context.Context, eventID int64) ([]dto.ParticipationResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	participations, err := s.participationRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ParticipationResponse, 0, len(participations))
	for _, p := range participations {
		resp := mapParticipationToResponse(p)
		volunteer, err := s.userRepo.FindByID(ctx, p.VolunteerID)
		if err != nil {
			return nil, err
		}
		if volunteer != nil {
			resp.Volunteer = &dto.UserBasicResponse{
				ID:        volunteer.ID,
				FirstName: volunteer.FirstName,
				LastName:  volunteer.LastName,
				Email:     volunteer.Email,
			}
		}
		responses = append(responses, *resp)
	}

	return responses, nil
}

func mapParticipationToResponse(p *models.Participation) *dto.ParticipationResponse {
	return &dto.ParticipationResponse{
		ID:          p.ID,
		EventID:     p.EventID,
		VolunteerID: p.VolunteerID,
		Status:      string(p.Status),
		Hours:       p.Hours,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
