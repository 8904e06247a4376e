package services

import (
	"dailydiet/internal/models"
	"dailydiet/internal/repositories"
)

// UserService handles business logic for the user directory.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// ListUsers retrieves all users created under the given session token.
func (s *UserService) ListUsers(sessionID string) ([]models.User, error) {
	return s.repo.ListBySession(sessionID)
}

// GetUser retrieves a user scoped to the caller's session token. A miss is
// reported as (nil, nil), not an error.
func (s *UserService) GetUser(sessionID, id string) (*models.User, error) {
	return s.repo.GetBySessionAndID(sessionID, id)
}

// CreateUser registers a new user under the given session token.
func (s *UserService) CreateUser(user *models.User) error {
	return s.repo.Create(user)
}

// DeleteAllUsers removes every user row. Unscoped: this backs the
// administrative delete-all route.
func (s *UserService) DeleteAllUsers() error {
	return s.repo.DeleteAll()
}
