package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/sustainchain-backend/internal/config"
	"github.com/javajoker/sustainchain-backend/internal/database"
	"github.com/javajoker/sustainchain-backend/internal/router"
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "sustainctl.db"))
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "sustainctl-test-secret", AccessTokenTTL: 1},
		AWS:         config.AWSConfig{UploadDir: t.TempDir(), PublicBaseURL: "http://localhost:8080"},
		RateLimit:   config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000, AuthPerMinute: 1000},
		Seed:        config.SeedConfig{EndpointsEnabled: true},
		I18n:        config.I18nConfig{DefaultLocale: "en"},
	}
	r, err := router.Initialize(db, cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		database.Close(db)
	})
	return srv
}

func TestValidateSeededPlatform(t *testing.T) {
	srv := newTestAPI(t)

	var out bytes.Buffer
	v := newPlatformValidator(srv.URL, &out)
	err := v.Run(context.Background(), "admin", "password123", true)

	require.NoError(t, err, out.String())
	assert.Zero(t, v.failed)
	assert.Zero(t, v.skipped)
	assert.Greater(t, v.passed, 10)
	assert.Contains(t, out.String(), "database seeded (3 organizations, 4 users, 5 suppliers)")
}

func TestValidateWrongPassword(t *testing.T) {
	srv := newTestAPI(t)

	var out bytes.Buffer
	v := newPlatformValidator(srv.URL, &out)
	err := v.Run(context.Background(), "admin", "wrong", true)

	require.Error(t, err)
	assert.Equal(t, 1, v.failed)
	assert.Equal(t, 1, v.skipped)
	assert.Contains(t, out.String(), "FAIL  sign in as admin")
}

func TestValidateEmptyDatabase(t *testing.T) {
	srv := newTestAPI(t)

	var out bytes.Buffer
	v := newPlatformValidator(srv.URL, &out)
	err := v.Run(context.Background(), "admin", "password123", false)

	// Without seeding there is no admin to sign in as.
	require.Error(t, err)
	assert.Contains(t, out.String(), "404")
}

func TestValidateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	err := newPlatformValidator(url, &out).Run(context.Background(), "admin", "password123", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
}

func TestResetRequiresForce(t *testing.T) {
	force = false
	err := resetCmd.RunE(resetCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}
