package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values come from environment variables, optionally layered over a config file.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Email      EmailConfig      `mapstructure:"email"`
	Events     EventsConfig     `mapstructure:"events"`
	Booking    BookingConfig    `mapstructure:"booking"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Dedupe     DedupeConfig     `mapstructure:"dedupe"`
	Restaurant RestaurantConfig `mapstructure:"restaurant"`
	LogLevel   string           `mapstructure:"log_level"`
	LogFormat  string           `mapstructure:"log_format"`
}

type ServerConfig struct {
	Port            string   `mapstructure:"port"`
	Host            string   `mapstructure:"host"`
	ReadTimeout     int      `mapstructure:"read_timeout"`
	WriteTimeout    int      `mapstructure:"write_timeout"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

type AuthConfig struct {
	APIKeys []string `mapstructure:"api_keys"` // keys accepted by the operator endpoints
}

type CatalogConfig struct {
	Path        string        `mapstructure:"path"` // local file or http(s) URL
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
}

type EmailConfig struct {
	Endpoint   string        `mapstructure:"endpoint"`
	ServiceID  string        `mapstructure:"service_id"`
	TemplateID string        `mapstructure:"template_id"`
	PublicKey  string        `mapstructure:"public_key"`
	PrivateKey string        `mapstructure:"private_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type EventsConfig struct {
	PerGuestSurcharge int64 `mapstructure:"per_guest_surcharge"`
	MinGuests         int   `mapstructure:"min_guests"`
	MaxGuests         int   `mapstructure:"max_guests"`
}

type BookingConfig struct {
	AdvanceDays int `mapstructure:"advance_days"`
	MaxGuests   int `mapstructure:"max_guests"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

type DedupeConfig struct {
	Window   time.Duration `mapstructure:"window"`
	Capacity uint          `mapstructure:"capacity"`
}

type RestaurantConfig struct {
	Phone string `mapstructure:"phone"` // shown to visitors when a form cannot be delivered
}

// envBindings maps config keys to the environment variables that set them
var envBindings = map[string]string{
	"server.port":                   "PORT",
	"server.host":                   "HOST",
	"server.read_timeout":           "READ_TIMEOUT",
	"server.write_timeout":          "WRITE_TIMEOUT",
	"server.shutdown_timeout":       "SHUTDOWN_TIMEOUT",
	"server.allowed_origins":        "ALLOWED_ORIGINS",
	"auth.api_keys":                 "API_KEYS",
	"catalog.path":                  "CATALOG_PATH",
	"catalog.load_timeout":          "CATALOG_LOAD_TIMEOUT",
	"email.endpoint":                "EMAILJS_ENDPOINT",
	"email.service_id":              "EMAILJS_SERVICE_ID",
	"email.template_id":             "EMAILJS_TEMPLATE_ID",
	"email.public_key":              "EMAILJS_PUBLIC_KEY",
	"email.private_key":             "EMAILJS_PRIVATE_KEY",
	"email.timeout":                 "EMAILJS_TIMEOUT",
	"events.per_guest_surcharge":    "EVENT_PER_GUEST_SURCHARGE",
	"events.min_guests":             "EVENT_MIN_GUESTS",
	"events.max_guests":             "EVENT_MAX_GUESTS",
	"booking.advance_days":          "BOOKING_ADVANCE_DAYS",
	"booking.max_guests":            "BOOKING_MAX_GUESTS",
	"ratelimit.requests_per_minute": "RATE_LIMIT_PER_MINUTE",
	"ratelimit.burst":               "RATE_LIMIT_BURST",
	"dedupe.window":                 "DEDUPE_WINDOW",
	"dedupe.capacity":               "DEDUPE_CAPACITY",
	"restaurant.phone":              "RESTAURANT_PHONE",
	"log_level":                     "LOG_LEVEL",
	"log_format":                    "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.shutdown_timeout", 30)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("auth.api_keys", []string{"apitest"})
	v.SetDefault("catalog.path", "data/menu.json")
	v.SetDefault("catalog.load_timeout", 30*time.Second)
	v.SetDefault("email.timeout", 10*time.Second)
	v.SetDefault("events.per_guest_surcharge", 500)
	v.SetDefault("events.min_guests", 10)
	v.SetDefault("events.max_guests", 200)
	v.SetDefault("booking.advance_days", 30)
	v.SetDefault("booking.max_guests", 10)
	v.SetDefault("ratelimit.requests_per_minute", 10)
	v.SetDefault("ratelimit.burst", 5)
	v.SetDefault("dedupe.window", 10*time.Minute)
	v.SetDefault("dedupe.capacity", 10000)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Load reads configuration from environment variables and, when configFile is
// not empty, from that file. Environment variables win over the file.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Auth.APIKeys = splitList(cfg.Auth.APIKeys)
	cfg.Server.AllowedOrigins = splitList(cfg.Server.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return errors.New("at least one API key must be configured")
	}

	if c.Catalog.Path == "" {
		return errors.New("CATALOG_PATH is required")
	}

	if c.Booking.AdvanceDays < 0 || c.Booking.MaxGuests < 1 {
		return fmt.Errorf("invalid booking limits: advance_days=%d max_guests=%d", c.Booking.AdvanceDays, c.Booking.MaxGuests)
	}

	if c.Events.PerGuestSurcharge <= 0 {
		return fmt.Errorf("EVENT_PER_GUEST_SURCHARGE must be positive, got %d", c.Events.PerGuestSurcharge)
	}

	if c.Events.MinGuests < 1 || c.Events.MaxGuests < c.Events.MinGuests {
		return fmt.Errorf("invalid event guest range: %d-%d", c.Events.MinGuests, c.Events.MaxGuests)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// splitList accepts both list values and a single comma separated env value
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
