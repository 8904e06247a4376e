package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dailydiet/internal/middleware"
	"dailydiet/internal/models"
	"dailydiet/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setupGuardApp(t *testing.T) (*fiber.App, *repositories.MockUserRepository) {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()

	app := fiber.New()
	app.Get("/guarded", middleware.SessionRequired(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/me", middleware.UserRequired(userRepo), func(c *fiber.Ctx) error {
		return c.SendString(middleware.UserID(c))
	})
	app.Post("/session", middleware.EnsureSession(7*24*time.Hour), func(c *fiber.Ctx) error {
		return c.SendString(middleware.SessionID(c))
	})

	return app, userRepo
}

func TestSessionRequired(t *testing.T) {
	app, _ := setupGuardApp(t)

	// No cookie: rejected before the handler runs
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Any token passes; presence is all this guard checks
	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "anything"})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUserRequired(t *testing.T) {
	app, userRepo := setupGuardApp(t)

	err := userRepo.Create(&models.User{ID: "user-1", Name: "Alice", SessionID: "session-1"})
	assert.NoError(t, err)

	// Missing cookie
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Token owning no user
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "unknown-session"})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Resolved user id lands in the request context
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "session-1"})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", string(body))
}

func TestEnsureSession(t *testing.T) {
	app, _ := setupGuardApp(t)

	// No cookie: a token is issued on the response and visible downstream
	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	var issued string
	for _, cookie := range cookies {
		if cookie.Name == middleware.SessionCookieName {
			issued = cookie.Value
			assert.Equal(t, "/", cookie.Path)
			assert.Greater(t, cookie.MaxAge, 0)
		}
	}
	assert.NotEmpty(t, issued)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, issued, strings.TrimSpace(string(body)))

	// Existing cookie: reused, no new Set-Cookie
	req = httptest.NewRequest(http.MethodPost, "/session", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "existing-token"})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Empty(t, resp.Cookies())

	body, err = io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, "existing-token", strings.TrimSpace(string(body)))
}
