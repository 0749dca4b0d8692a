package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"apitest"}, cfg.Auth.APIKeys)
	assert.Equal(t, "data/menu.json", cfg.Catalog.Path)
	assert.Equal(t, int64(500), cfg.Events.PerGuestSurcharge)
	assert.Equal(t, 30, cfg.Booking.AdvanceDays)
	assert.Equal(t, 10*time.Minute, cfg.Dedupe.Window)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_KEYS", "one, two")
	t.Setenv("CATALOG_PATH", "https://cdn.example.com/menu.json.gz")
	t.Setenv("EMAILJS_SERVICE_ID", "service_abc")
	t.Setenv("DEDUPE_WINDOW", "5m")
	t.Setenv("EVENT_PER_GUEST_SURCHARGE", "750")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"one", "two"}, cfg.Auth.APIKeys)
	assert.Equal(t, "https://cdn.example.com/menu.json.gz", cfg.Catalog.Path)
	assert.Equal(t, "service_abc", cfg.Email.ServiceID)
	assert.Equal(t, 5*time.Minute, cfg.Dedupe.Window)
	assert.Equal(t, int64(750), cfg.Events.PerGuestSurcharge)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: \"7000\"\nrestaurant:\n  phone: \"+91 98765 43210\"\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "+91 98765 43210", cfg.Restaurant.Phone)
	assert.Equal(t, "warn", cfg.LogLevel, "environment should override the file")
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidSurcharge(t *testing.T) {
	for _, value := range []string{"0", "-500"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("EVENT_PER_GUEST_SURCHARGE", value)
			_, err := Load("")
			assert.ErrorContains(t, err, "EVENT_PER_GUEST_SURCHARGE")
		})
	}
}
