package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	ProfileRepository       *ProfileRepository
	EventRepository         *EventRepository
	ParticipationRepository *ParticipationRepository
	NotificationRepository  *NotificationRepository
	TokenRepository         *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		ProfileRepository:       NewProfileRepository(db),
		EventRepository:         NewEventRepository(db),
		ParticipationRepository: NewParticipationRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
		TokenRepository:         NewTokenRepository(db),
	}
}
