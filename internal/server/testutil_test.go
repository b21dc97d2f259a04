package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Article{},
		&models.Comment{},
		&models.Reaction{},
		&models.Rating{},
	), "migrate sqlite")

	return db
}

func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	cfg := &config.Config{
		Port:      "0",
		JWTSecret: "test-secret-test-secret-test-secret",
		Env:       "test",
	}
	s, err := NewServerWithDeps(cfg, setupHandlerTestDB(t), nil)
	require.NoError(t, err)
	return s, s.App()
}

// doJSON performs a request against the test app and decodes the JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "app.Test")
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "decode body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// registerAndLogin creates an account through the API and returns its token.
func registerAndLogin(t *testing.T, app *fiber.App, username, email string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/users", "", fiber.Map{
		"user": fiber.Map{
			"username": username,
			"email":    email,
			"password": "password123",
		},
	})
	require.Equal(t, http.StatusCreated, status, "register: %v", body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
