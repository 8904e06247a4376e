package services_test

import (
	"fmt"
	"testing"

	"dailydiet/internal/models"
	"dailydiet/internal/repositories"
	"dailydiet/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMealRepository is a mock implementation of repositories.MealRepository
type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) Create(meal *models.Meal) error {
	args := m.Called(meal)
	return args.Error(0)
}

func (m *MockMealRepository) GetByUserAndID(userID, id string) (*models.Meal, error) {
	args := m.Called(userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealRepository) ListWithOwner(userID string) ([]models.MealWithOwner, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.MealWithOwner), args.Error(1)
}

func (m *MockMealRepository) Update(userID, id string, updates map[string]interface{}) error {
	args := m.Called(userID, id, updates)
	return args.Error(0)
}

func (m *MockMealRepository) Delete(userID, id string) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

func (m *MockMealRepository) SumCalories(userID string) (float64, error) {
	args := m.Called(userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockMealRepository) CountByUser(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMealRepository) CountByDiet(userID string) (repositories.DietCounts, error) {
	args := m.Called(userID)
	return args.Get(0).(repositories.DietCounts), args.Error(1)
}

func (m *MockMealRepository) ListDietFlags(userID string) ([]bool, error) {
	args := m.Called(userID)
	return args.Get(0).([]bool), args.Error(1)
}

func TestMealService_CreateMeal(t *testing.T) {
	mockMealRepo := new(MockMealRepository)
	mockUserRepo := new(MockUserRepository)
	service := services.NewMealService(mockMealRepo, mockUserRepo, nil)

	owner := &models.User{ID: "user-1", Name: "Alice", SessionID: "session-1"}
	meal := &models.Meal{Name: "Salad", Desc: "Greens", Calories: 250, IsInTheDiet: true}

	// The session token is re-resolved and the meal scoped to its owner
	mockUserRepo.On("GetBySession", "session-1").Return(owner, nil).Once()
	mockMealRepo.On("Create", mock.MatchedBy(func(m *models.Meal) bool {
		return m.UserID == "user-1" && m.Name == "Salad"
	})).Return(nil).Once()

	err := service.CreateMeal("session-1", meal)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", meal.UserID)
	mockMealRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestMealService_CreateMeal_Unauthorized(t *testing.T) {
	mockMealRepo := new(MockMealRepository)
	mockUserRepo := new(MockUserRepository)
	service := services.NewMealService(mockMealRepo, mockUserRepo, nil)

	// A session resolving to no user must never reach the insert
	mockUserRepo.On("GetBySession", "stale-session").Return(nil, nil).Once()

	err := service.CreateMeal("stale-session", &models.Meal{Name: "Salad"})
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	mockMealRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockUserRepo.AssertExpectations(t)
}

func TestMealService_UpdateMeal(t *testing.T) {
	mockMealRepo := new(MockMealRepository)
	service := services.NewMealService(mockMealRepo, new(MockUserRepository), nil)

	existing := &models.Meal{ID: "meal-1", UserID: "user-1", Name: "Salad", Calories: 250}

	// Only the provided fields reach the store
	calories := 300
	mockMealRepo.On("GetByUserAndID", "user-1", "meal-1").Return(existing, nil).Once()
	mockMealRepo.On("Update", "user-1", "meal-1", map[string]interface{}{
		"calories": float64(300),
	}).Return(nil).Once()

	err := service.UpdateMeal("user-1", "meal-1", services.MealUpdates{Calories: &calories})
	assert.NoError(t, err)
	mockMealRepo.AssertExpectations(t)
}

func TestMealService_UpdateMeal_NotFound(t *testing.T) {
	mockMealRepo := new(MockMealRepository)
	service := services.NewMealService(mockMealRepo, new(MockUserRepository), nil)

	mockMealRepo.On("GetByUserAndID", "user-1", "missing").Return(nil, nil).Once()

	name := "Soup"
	err := service.UpdateMeal("user-1", "missing", services.MealUpdates{Name: &name})
	assert.ErrorIs(t, err, services.ErrMealNotFound)
	mockMealRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	mockMealRepo.AssertExpectations(t)
}

func TestMealService_UpdateMeal_EmptyBody(t *testing.T) {
	mockMealRepo := new(MockMealRepository)
	service := services.NewMealService(mockMealRepo, new(MockUserRepository), nil)

	existing := &models.Meal{ID: "meal-1", UserID: "user-1", Name: "Salad"}
	mockMealRepo.On("GetByUserAndID", "user-1", "meal-1").Return(existing, nil).Once()

	// No fields provided: nothing is written
	err := service.UpdateMeal("user-1", "meal-1", services.MealUpdates{})
	assert.NoError(t, err)
	mockMealRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	mockMealRepo.AssertExpectations(t)
}

func TestMealService_DeleteMeal(t *testing.T) {
	mockMealRepo := new(MockMealRepository)
	service := services.NewMealService(mockMealRepo, new(MockUserRepository), nil)

	// Deleting an absent meal is not an error
	mockMealRepo.On("Delete", "user-1", "meal-1").Return(nil).Twice()

	assert.NoError(t, service.DeleteMeal("user-1", "meal-1"))
	assert.NoError(t, service.DeleteMeal("user-1", "meal-1"))
	mockMealRepo.AssertExpectations(t)
}

func TestMealService_TotalCalories(t *testing.T) {
	mockMealRepo := new(MockMealRepository)
	service := services.NewMealService(mockMealRepo, new(MockUserRepository), nil)

	mockMealRepo.On("SumCalories", "user-1").Return(1250.0, nil).Once()
	total, err := service.TotalCalories("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 1250.0, total)

	// No meals yields zero, not an error
	mockMealRepo.On("SumCalories", "user-2").Return(0.0, nil).Once()
	total, err = service.TotalCalories("user-2")
	assert.NoError(t, err)
	assert.Zero(t, total)
	mockMealRepo.AssertExpectations(t)
}

func TestMealService_GetDietSummary(t *testing.T) {
	mockMealRepo := new(MockMealRepository)
	service := services.NewMealService(mockMealRepo, new(MockUserRepository), nil)

	mockMealRepo.On("CountByDiet", "user-1").Return(repositories.DietCounts{WithinDiet: 5, OutOfDiet: 2}, nil).Once()

	summary, err := service.GetDietSummary("user-1")
	assert.NoError(t, err)
	assert.Equal(t, services.DietSummary{WithinDiet: 5, OutOfDiet: 2}, summary)
	mockMealRepo.AssertExpectations(t)
}

func TestMealService_GetDietSummary_StoreFailure(t *testing.T) {
	mockMealRepo := new(MockMealRepository)
	service := services.NewMealService(mockMealRepo, new(MockUserRepository), nil)

	mockMealRepo.On("CountByDiet", "user-1").Return(repositories.DietCounts{}, fmt.Errorf("database error")).Once()

	_, err := service.GetDietSummary("user-1")
	assert.Error(t, err)
	mockMealRepo.AssertExpectations(t)
}

func TestMealService_BestDietSequence(t *testing.T) {
	tests := []struct {
		name  string
		flags []bool
		want  int
	}{
		{"empty ledger", []bool{}, 0},
		{"single in-diet meal", []bool{true}, 1},
		{"all out of diet", []bool{false, false, false}, 0},
		{"all in diet", []bool{true, true, true, true}, 4},
		{"run in the middle", []bool{true, true, false, true, true, true, false}, 3},
		{"run at the end", []bool{false, true, true}, 2},
		{"alternating", []bool{true, false, true, false, true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMealRepo := new(MockMealRepository)
			service := services.NewMealService(mockMealRepo, new(MockUserRepository), nil)

			mockMealRepo.On("ListDietFlags", "user-1").Return(tt.flags, nil).Once()

			best, err := service.BestDietSequence("user-1")
			assert.NoError(t, err)
			assert.Equal(t, tt.want, best)
			mockMealRepo.AssertExpectations(t)
		})
	}
}
