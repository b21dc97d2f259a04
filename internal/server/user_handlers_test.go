package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCurrentUser_Unauthenticated(t *testing.T) {
	_, app := newTestServer(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/user", "", nil)

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Authentication credentials were not provided.", body["message"])
}

func TestGetCurrentUser_InvalidToken(t *testing.T) {
	_, app := newTestServer(t)

	status, _ := doJSON(t, app, http.MethodGet, "/api/user", "not-a-real-token", nil)

	assert.Equal(t, http.StatusForbidden, status)
}

func TestGetCurrentUser_Success(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "selfuser", "self@example.com")

	status, body := doJSON(t, app, http.MethodGet, "/api/user", token, nil)

	require.Equal(t, http.StatusOK, status, "body: %v", body)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "self@example.com", user["email"])
}

func TestUpdateCurrentUser_ChangePassword(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "rotator", "rotate@example.com")

	status, body := doJSON(t, app, http.MethodPut, "/api/user", token, fiber.Map{
		"user": fiber.Map{"password": "newpassword456"},
	})
	require.Equal(t, http.StatusOK, status, "body: %v", body)

	// Old password no longer works, the new one does.
	status, _ = doJSON(t, app, http.MethodPost, "/api/users/login", "", fiber.Map{
		"user": fiber.Map{"email": "rotate@example.com", "password": "password123"},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/users/login", "", fiber.Map{
		"user": fiber.Map{"email": "rotate@example.com", "password": "newpassword456"},
	})
	assert.Equal(t, http.StatusOK, status)
}

func TestUpdateCurrentUser_NoFields(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "noop", "noop@example.com")

	status, _ := doJSON(t, app, http.MethodPut, "/api/user", token, fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, status)
}
