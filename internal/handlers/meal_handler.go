package handlers

import (
	"errors"
	"fmt"
	"log"

	"dailydiet/internal/middleware"
	"dailydiet/internal/models"
	"dailydiet/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MealHandler handles HTTP requests for the meal ledger and its statistics.
type MealHandler struct {
	service  *services.MealService
	validate *validator.Validate
}

// NewMealHandler creates a new MealHandler.
func NewMealHandler(service *services.MealService) *MealHandler {
	return &MealHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the meal routes with the Fiber app. Every meal
// route resolves the caller to a user first, deletes included. The static
// statistics paths must register before the id parameter route.
func (h *MealHandler) RegisterRoutes(router fiber.Router, requireUser fiber.Handler) {
	mealRoutes := router.Group("/meals", requireUser)
	mealRoutes.Get("/", h.HandleListMeals)
	mealRoutes.Get("/calories", h.HandleTotalCalories)
	mealRoutes.Get("/diet-summary", h.HandleDietSummary)
	mealRoutes.Get("/total-meals", h.HandleTotalMeals)
	mealRoutes.Get("/best-diet-sequence", h.HandleBestDietSequence)
	mealRoutes.Get("/:id", h.HandleGetMeal)
	mealRoutes.Post("/", h.HandleCreateMeal)
	mealRoutes.Put("/:id", h.HandleUpdateMeal)
	mealRoutes.Delete("/:id", h.HandleDeleteMeal)
}

// HandleListMeals lists the caller's meals joined with the owner's name.
func (h *MealHandler) HandleListMeals(c *fiber.Ctx) error {
	meals, err := h.service.ListMeals(middleware.UserID(c))
	if err != nil {
		log.Printf("Error fetching meals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{
		"meals": meals,
	})
}

// HandleGetMeal retrieves a single meal owned by the caller. A miss yields
// a null meal, not an error.
func (h *MealHandler) HandleGetMeal(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid meal id, must be a UUID",
		})
	}

	meal, err := h.service.GetMeal(middleware.UserID(c), id)
	if err != nil {
		log.Printf("Error getting meal by ID %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{
		"meal": meal,
	})
}

// CreateMealRequest represents the request body for logging a meal.
// Calories and IsInTheDiet are pointers so zero and false count as present.
type CreateMealRequest struct {
	Name        string `json:"name" validate:"required"`
	Desc        string `json:"desc" validate:"required"`
	Calories    *int   `json:"calories" validate:"required"`
	IsInTheDiet *bool  `json:"isInTheDiet" validate:"required"`
}

// HandleCreateMeal logs a new meal for the caller.
func (h *MealHandler) HandleCreateMeal(c *fiber.Ctx) error {
	var req CreateMealRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create meal request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	meal := models.Meal{
		Name:        req.Name,
		Desc:        req.Desc,
		Calories:    float64(*req.Calories),
		IsInTheDiet: *req.IsInTheDiet,
	}

	sessionID := c.Cookies(middleware.SessionCookieName)
	if err := h.service.CreateMeal(sessionID, &meal); err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not authorized.",
			})
		}
		log.Printf("Error creating meal: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.SendStatus(fiber.StatusCreated)
}

// UpdateMealRequest represents the request body for a partial meal update.
// Every field is optional; absent fields keep their prior values.
type UpdateMealRequest struct {
	Name        *string `json:"name"`
	Desc        *string `json:"desc"`
	Calories    *int    `json:"calories"`
	IsInTheDiet *bool   `json:"isInTheDiet"`
}

// HandleUpdateMeal applies a partial update to a meal owned by the caller.
func (h *MealHandler) HandleUpdateMeal(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid meal id, must be a UUID",
		})
	}

	var req UpdateMealRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update meal request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	updates := services.MealUpdates{
		Name:        req.Name,
		Desc:        req.Desc,
		Calories:    req.Calories,
		IsInTheDiet: req.IsInTheDiet,
	}

	if err := h.service.UpdateMeal(middleware.UserID(c), id, updates); err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Meal not found",
			})
		}
		log.Printf("Error updating meal %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

// HandleDeleteMeal removes a meal owned by the caller. Repeated deletes of
// the same id keep returning 204.
func (h *MealHandler) HandleDeleteMeal(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.DeleteMeal(middleware.UserID(c), id); err != nil {
		log.Printf("Error deleting meal %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleTotalCalories sums the calories of the caller's meals.
func (h *MealHandler) HandleTotalCalories(c *fiber.Ctx) error {
	total, err := h.service.TotalCalories(middleware.UserID(c))
	if err != nil {
		log.Printf("Error summing calories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{
		"totalCalories": total,
	})
}

// HandleDietSummary counts the caller's meals grouped by the in-diet flag.
func (h *MealHandler) HandleDietSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetDietSummary(middleware.UserID(c))
	if err != nil {
		log.Printf("Error fetching diet summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.JSON(summary)
}

// HandleTotalMeals counts the caller's meals.
func (h *MealHandler) HandleTotalMeals(c *fiber.Ctx) error {
	total, err := h.service.TotalMeals(middleware.UserID(c))
	if err != nil {
		log.Printf("Error fetching total meals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{
		"totalMeals": total,
	})
}

// HandleBestDietSequence reports the longest in-diet streak of the caller's
// meals ordered by creation time.
func (h *MealHandler) HandleBestDietSequence(c *fiber.Ctx) error {
	best, err := h.service.BestDietSequence(middleware.UserID(c))
	if err != nil {
		log.Printf("Error fetching best diet sequence: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{
		"bestDietSequence": best,
	})
}
