package handlers

import (
	"fmt"
	"log"

	"dailydiet/internal/middleware"
	"dailydiet/internal/models"
	"dailydiet/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The guards
// differ per route, so they are passed in rather than applied group-wide.
func (h *UserHandler) RegisterRoutes(router fiber.Router, requireSession, ensureSession fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", requireSession, h.HandleListUsers)
	userRoutes.Get("/:id", requireSession, h.HandleGetUser)
	userRoutes.Post("/", ensureSession, h.HandleCreateUser)
	userRoutes.Delete("/", h.HandleDeleteAllUsers)
}

// HandleListUsers lists the users created under the caller's session token.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	sessionID := c.Cookies(middleware.SessionCookieName)

	users, err := h.service.ListUsers(sessionID)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

// HandleGetUser retrieves a single user scoped to the caller's session
// token. A miss yields a null user, not an error.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id, must be a UUID",
		})
	}

	sessionID := c.Cookies(middleware.SessionCookieName)

	user, err := h.service.GetUser(sessionID, id)
	if err != nil {
		log.Printf("Error getting user by ID %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}

// CreateUserRequest represents the request body for user creation.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleCreateUser registers a new user under the session token resolved or
// issued by the EnsureSession guard.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create user request body: %v", err)
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

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		SessionID: middleware.SessionID(c),
	}

	if err := h.service.CreateUser(&user); err != nil {
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.SendStatus(fiber.StatusCreated)
}

// HandleDeleteAllUsers unconditionally removes every user. Administrative
// and unguarded, matching the delete-all route contract.
func (h *UserHandler) HandleDeleteAllUsers(c *fiber.Ctx) error {
	if err := h.service.DeleteAllUsers(); err != nil {
		log.Printf("Error deleting users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
