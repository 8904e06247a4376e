package services

import (
	"errors"
	"log"

	"dailydiet/internal/models"
	"dailydiet/internal/repositories"
	"dailydiet/pkg/rabbitmq"
)

// ErrUnauthorized is returned when a session token does not resolve to a user.
var ErrUnauthorized = errors.New("user not authorized")

// ErrMealNotFound is returned when a meal does not exist for the caller.
var ErrMealNotFound = errors.New("meal not found")

// MealUpdates carries the optional fields of a partial meal update. Nil
// fields are left untouched.
type MealUpdates struct {
	Name        *string
	Desc        *string
	Calories    *int
	IsInTheDiet *bool
}

// DietSummary groups a user's meal counts by the in-diet flag.
type DietSummary struct {
	WithinDiet int64 `json:"withinDiet"`
	OutOfDiet  int64 `json:"outOfDiet"`
}

// MealService handles business logic for the meal ledger and its derived
// statistics.
type MealService struct {
	mealRepo repositories.MealRepository
	userRepo repositories.UserRepository
	mqClient *rabbitmq.Client
}

// NewMealService creates a new MealService. mqClient may be nil, in which
// case meal events are not published.
func NewMealService(mealRepo repositories.MealRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *MealService {
	return &MealService{
		mealRepo: mealRepo,
		userRepo: userRepo,
		mqClient: mqClient,
	}
}

// ListMeals retrieves a user's meals joined with the owner's name.
func (s *MealService) ListMeals(userID string) ([]models.MealWithOwner, error) {
	return s.mealRepo.ListWithOwner(userID)
}

// GetMeal retrieves a single meal scoped to its owner. A miss is reported
// as (nil, nil), not an error.
func (s *MealService) GetMeal(userID, id string) (*models.Meal, error) {
	return s.mealRepo.GetByUserAndID(userID, id)
}

// CreateMeal logs a new meal for the user owning the session token. The
// token is resolved here even though the route guard already did so; the
// insert must never run against a session whose user has disappeared since.
func (s *MealService) CreateMeal(sessionID string, meal *models.Meal) error {
	user, err := s.userRepo.GetBySession(sessionID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUnauthorized
	}

	meal.UserID = user.ID
	if err := s.mealRepo.Create(meal); err != nil {
		return err
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"mealID":      meal.ID,
			"userID":      meal.UserID,
			"name":        meal.Name,
			"calories":    meal.Calories,
			"isInTheDiet": meal.IsInTheDiet,
		}
		if err := s.mqClient.PublishMealLogged(event); err != nil {
			// Publishing is best-effort; the meal is already persisted.
			log.Printf("Warning: failed to publish meal logged event for meal %s: %v", meal.ID, err)
		}
	}

	return nil
}

// UpdateMeal applies a partial update to a meal owned by the user. Fields
// absent from the update keep their prior values.
func (s *MealService) UpdateMeal(userID, id string, updates MealUpdates) error {
	meal, err := s.mealRepo.GetByUserAndID(userID, id)
	if err != nil {
		return err
	}
	if meal == nil {
		return ErrMealNotFound
	}

	fields := make(map[string]interface{})
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Desc != nil {
		fields["desc"] = *updates.Desc
	}
	if updates.Calories != nil {
		fields["calories"] = float64(*updates.Calories)
	}
	if updates.IsInTheDiet != nil {
		fields["is_in_the_diet"] = *updates.IsInTheDiet
	}
	if len(fields) == 0 {
		return nil
	}

	return s.mealRepo.Update(userID, id, fields)
}

// DeleteMeal removes a meal owned by the user. Deleting an absent meal is a
// no-op, keeping the operation idempotent.
func (s *MealService) DeleteMeal(userID, id string) error {
	return s.mealRepo.Delete(userID, id)
}

// TotalCalories sums the calories of a user's meals, zero when there are none.
func (s *MealService) TotalCalories(userID string) (float64, error) {
	return s.mealRepo.SumCalories(userID)
}

// TotalMeals counts a user's meals.
func (s *MealService) TotalMeals(userID string) (int64, error) {
	return s.mealRepo.CountByUser(userID)
}

// GetDietSummary counts a user's meals grouped by the in-diet flag.
func (s *MealService) GetDietSummary(userID string) (DietSummary, error) {
	counts, err := s.mealRepo.CountByDiet(userID)
	if err != nil {
		return DietSummary{}, err
	}
	return DietSummary{
		WithinDiet: counts.WithinDiet,
		OutOfDiet:  counts.OutOfDiet,
	}, nil
}

// BestDietSequence computes the longest contiguous run of in-diet meals
// ordered by creation time. Any out-of-diet meal resets the run.
func (s *MealService) BestDietSequence(userID string) (int, error) {
	flags, err := s.mealRepo.ListDietFlags(userID)
	if err != nil {
		return 0, err
	}

	best := 0
	current := 0
	for _, inDiet := range flags {
		if inDiet {
			current++
			if current > best {
				best = current
			}
		} else {
			current = 0
		}
	}
	return best, nil
}
