package middleware

import (
	"log"
	"time"

	"dailydiet/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "sessionId"

// Locals keys set by the guards below.
const (
	sessionIDKey = "session_id"
	userIDKey    = "user_id"
)

// SessionID returns the session token placed in the request context by
// EnsureSession, or the empty string.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionIDKey).(string)
	return id
}

// UserID returns the user id placed in the request context by UserRequired,
// or the empty string.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

// SessionRequired is a Fiber middleware that rejects requests carrying no
// session cookie. The token is not validated against any stored user.
func SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Cookies(SessionCookieName) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized.",
			})
		}
		return c.Next()
	}
}

// UserRequired is a Fiber middleware that resolves the session cookie to a
// user and stores the user id in the request context for downstream
// handlers. Requests without a cookie are rejected with 401; tokens owning
// no user with 404.
func UserRequired(users repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(SessionCookieName)
		if sessionID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: No session ID",
			})
		}

		user, err := users.GetBySession(sessionID)
		if err != nil {
			log.Printf("Error resolving session to user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		}
		if user == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		c.Locals(sessionIDKey, sessionID)
		c.Locals(userIDKey, user.ID)
		return c.Next()
	}
}

// EnsureSession is a Fiber middleware that issues a fresh session token when
// the request carries none, setting it on the response cookie. The token,
// existing or freshly issued, is always placed in the request context.
func EnsureSession(maxAge time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(SessionCookieName)
		if sessionID == "" {
			sessionID = uuid.New().String()
			c.Cookie(&fiber.Cookie{
				Name:   SessionCookieName,
				Value:  sessionID,
				Path:   "/",
				MaxAge: int(maxAge.Seconds()),
			})
		}

		c.Locals(sessionIDKey, sessionID)
		return c.Next()
	}
}
