package repositories

import "dailydiet/internal/models"

// UserRepository defines the interface for user data access.
//
// Lookups that miss return (nil, nil): an absent user is an expected
// outcome for session resolution and scoped reads, not a store failure.
type UserRepository interface {
	Create(user *models.User) error
	GetBySession(sessionID string) (*models.User, error)
	GetBySessionAndID(sessionID, id string) (*models.User, error)
	ListBySession(sessionID string) ([]models.User, error)
	DeleteAll() error
}
