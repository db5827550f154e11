package app_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staffsync/internal/app"
	"staffsync/internal/config"
	"staffsync/internal/database"
	"staffsync/internal/mailer"
	"staffsync/internal/verification"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.Open(config.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared", logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		JWTSecret:           "test_jwt_secret",
		AccessTokenTTL:      time.Hour,
		RefreshTokenTTL:     24 * time.Hour,
		VerificationCodeTTL: 10 * time.Minute,
		CORSAllowOrigins:    "http://localhost:5173",
	}
	return app.New(app.Dependencies{
		Config: cfg,
		DB:     db,
		Store:  verification.NewMemoryStore(),
		Sender: mailer.NewConsoleMailer(logger),
		Logger: logger,
	})
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestCORSPreflight(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := a.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestRouteProtection(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/api/products", http.StatusUnauthorized},
		{http.MethodGet, "/api/products/dashboard", http.StatusUnauthorized},
		{http.MethodGet, "/api/employees", http.StatusUnauthorized},
		{http.MethodGet, "/api/members/code-time?email=user@example.com", http.StatusOK},
		{http.MethodPost, "/api/members/send-code?email=user@example.com", http.StatusOK},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			resp, err := a.Test(httptest.NewRequest(tt.method, tt.target, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		})
	}
}
