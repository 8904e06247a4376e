package repositories

import (
	"errors"
	"fmt"

	"dailydiet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMealRepository is a GORM implementation of MealRepository.
type GORMMealRepository struct {
	db *gorm.DB
}

// NewGORMMealRepository creates a new instance of GORMMealRepository.
func NewGORMMealRepository(db *gorm.DB) *GORMMealRepository {
	return &GORMMealRepository{
		db: db,
	}
}

// Create inserts a new meal, generating an ID when none is set.
func (r *GORMMealRepository) Create(meal *models.Meal) error {
	if meal.ID == "" {
		meal.ID = uuid.New().String()
	}
	if err := r.db.Create(meal).Error; err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}
	return nil
}

// GetByUserAndID retrieves a meal scoped to its owning user.
func (r *GORMMealRepository) GetByUserAndID(userID, id string) (*models.Meal, error) {
	var meal models.Meal
	if err := r.db.First(&meal, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get meal %s: %w", id, err)
	}
	return &meal, nil
}

// ListWithOwner retrieves all of a user's meals joined with the owner's name.
func (r *GORMMealRepository) ListWithOwner(userID string) ([]models.MealWithOwner, error) {
	var meals []models.MealWithOwner
	err := r.db.Table("meals").
		Select("meals.*, users.name AS user_name").
		Joins("JOIN users ON users.id = meals.user_id").
		Where("meals.user_id = ?", userID).
		Scan(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

// Update applies a partial update to a meal owned by the given user.
func (r *GORMMealRepository) Update(userID, id string, updates map[string]interface{}) error {
	err := r.db.Model(&models.Meal{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update meal %s: %w", id, err)
	}
	return nil
}

// Delete removes a meal owned by the given user. Deleting a meal that does
// not exist is not an error.
func (r *GORMMealRepository) Delete(userID, id string) error {
	if err := r.db.Delete(&models.Meal{}, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return fmt.Errorf("failed to delete meal %s: %w", id, err)
	}
	return nil
}

// SumCalories totals the calories of a user's meals, zero when there are none.
func (r *GORMMealRepository) SumCalories(userID string) (float64, error) {
	var total float64
	err := r.db.Model(&models.Meal{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(calories), 0)").
		Row().Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum calories: %w", err)
	}
	return total, nil
}

// CountByUser counts a user's meals.
func (r *GORMMealRepository) CountByUser(userID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Meal{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count meals: %w", err)
	}
	return count, nil
}

// CountByDiet counts a user's meals grouped by the in-diet flag. Groups
// without rows stay at zero.
func (r *GORMMealRepository) CountByDiet(userID string) (DietCounts, error) {
	var rows []struct {
		IsInTheDiet bool
		Count       int64
	}
	err := r.db.Model(&models.Meal{}).
		Select("is_in_the_diet, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("is_in_the_diet").
		Scan(&rows).Error
	if err != nil {
		return DietCounts{}, fmt.Errorf("failed to count meals by diet: %w", err)
	}

	var counts DietCounts
	for _, row := range rows {
		if row.IsInTheDiet {
			counts.WithinDiet = row.Count
		} else {
			counts.OutOfDiet = row.Count
		}
	}
	return counts, nil
}

// ListDietFlags retrieves the in-diet flags of a user's meals ordered by
// creation time, the input for the best-sequence computation.
func (r *GORMMealRepository) ListDietFlags(userID string) ([]bool, error) {
	var flags []bool
	err := r.db.Model(&models.Meal{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("is_in_the_diet", &flags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list diet flags: %w", err)
	}
	return flags, nil
}
