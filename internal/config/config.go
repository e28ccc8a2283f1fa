// Package config reads the console configuration from the environment,
// with a .env file loaded first when present.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config is the full console configuration. Every field has a usable
// zero-config default except the backend and document store, which are
// optional integrations.
type Config struct {
	Port string

	// Fleet backend REST API. Empty disables the backend; the console then
	// runs on seed data and the local admin account.
	APIBaseURL string

	// Document store. Empty disables it.
	MongoURI string
	MongoDB  string

	// Dashboard sourcing mode: local, api, firebase or auto.
	DataSource string

	// Lifecycle event broker. Empty disables events.
	MQTTBrokerURL   string
	MQTTTopicPrefix string

	JWTSecret string
	JWTExpiry time.Duration

	// Local fallback admin, used only when APIBaseURL is empty.
	AdminEmail        string
	AdminPasswordHash string
}

// Load reads the configuration. A missing .env file is not an error.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}

	return Config{
		Port:              envOr("PORT", "8080"),
		APIBaseURL:        os.Getenv("API_BASE_URL"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDB:           envOr("MONGO_DB", "fleet_console"),
		DataSource:        os.Getenv("DASHBOARD_DATA_SOURCE"),
		MQTTBrokerURL:     os.Getenv("MQTT_BROKER_URL"),
		MQTTTopicPrefix:   os.Getenv("MQTT_TOPIC_PREFIX"),
		JWTSecret:         envOr("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiry:         expiry(os.Getenv("JWT_EXPIRY")),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// expiry parses JWT_EXPIRY as a Go duration, falling back to 24h.
func expiry(raw string) time.Duration {
	if raw == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.WithField("JWT_EXPIRY", raw).Warn("invalid JWT_EXPIRY, using 24h")
		return 24 * time.Hour
	}
	return d
}
