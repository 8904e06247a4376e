package repositories

import "dailydiet/internal/models"

// DietCounts groups a user's meals by the in-diet flag.
type DietCounts struct {
	WithinDiet int64
	OutOfDiet  int64
}

// MealRepository defines the interface for meal data access.
//
// GetByUserAndID returns (nil, nil) when no meal matches; Delete succeeds
// whether or not a matching row exists.
type MealRepository interface {
	Create(meal *models.Meal) error
	GetByUserAndID(userID, id string) (*models.Meal, error)
	ListWithOwner(userID string) ([]models.MealWithOwner, error)
	Update(userID, id string, updates map[string]interface{}) error
	Delete(userID, id string) error
	SumCalories(userID string) (float64, error)
	CountByUser(userID string) (int64, error)
	CountByDiet(userID string) (DietCounts, error)
	ListDietFlags(userID string) ([]bool, error)
}
