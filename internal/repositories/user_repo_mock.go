package repositories

import (
	"sync"
	"time"

	"dailydiet/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository,
// useful for tests and local runs without a database.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = *user
	return nil
}

// GetBySession returns the first user owning the given session token.
func (r *MockUserRepository) GetBySession(sessionID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.SessionID == sessionID {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

// GetBySessionAndID returns the user matching both session token and id.
func (r *MockUserRepository) GetBySessionAndID(sessionID, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok || user.SessionID != sessionID {
		return nil, nil
	}
	return &user, nil
}

// ListBySession returns all users created under the given session token.
func (r *MockUserRepository) ListBySession(sessionID string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0)
	for _, user := range r.users {
		if user.SessionID == sessionID {
			users = append(users, user)
		}
	}
	return users, nil
}

// DeleteAll removes every user.
func (r *MockUserRepository) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]models.User)
	return nil
}
