package repositories

import (
	"errors"
	"fmt"

	"dailydiet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user, generating an ID when none is set.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetBySession retrieves the user owning the given session token.
func (r *GORMUserRepository) GetBySession(sessionID string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by session: %w", err)
	}
	return &user, nil
}

// GetBySessionAndID retrieves a user scoped to both the session token and id.
func (r *GORMUserRepository) GetBySessionAndID(sessionID, id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "session_id = ? AND id = ?", sessionID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %s by session: %w", id, err)
	}
	return &user, nil
}

// ListBySession retrieves all users created under the given session token.
func (r *GORMUserRepository) ListBySession(sessionID string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users, "session_id = ?", sessionID).Error; err != nil {
		return nil, fmt.Errorf("failed to list users by session: %w", err)
	}
	return users, nil
}

// DeleteAll removes every user row.
func (r *GORMUserRepository) DeleteAll() error {
	if err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}
