package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRY", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "fleet_console", cfg.MongoDB)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_BASE_URL", "http://backend:8000")
	t.Setenv("DASHBOARD_DATA_SOURCE", "firebase")
	t.Setenv("JWT_EXPIRY", "2h")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://backend:8000", cfg.APIBaseURL)
	assert.Equal(t, "firebase", cfg.DataSource)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
}

func TestExpiry_Invalid(t *testing.T) {
	assert.Equal(t, 24*time.Hour, expiry("soon"))
	assert.Equal(t, 24*time.Hour, expiry("-1h"))
	assert.Equal(t, 30*time.Minute, expiry("30m"))
}
