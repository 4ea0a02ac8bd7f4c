package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Session store backends.
const (
	StoreMemory    = "memory"
	StoreRedis     = "redis"
	StoreFirestore = "firestore"
)

// Config holds all configuration for the application.
type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	// BackendURL is the base URL of the Workoo REST API.
	BackendURL        string        `mapstructure:"BACKEND_URL"`
	HTTPClientTimeout time.Duration `mapstructure:"HTTP_CLIENT_TIMEOUT"`
	ClientURL         string        `mapstructure:"CLIENT_URL"`

	GoogleClientID string `mapstructure:"GOOGLE_CLIENT_ID"`
	OpenCageKey    string `mapstructure:"OPENCAGE_KEY"`

	SessionStore string        `mapstructure:"SESSION_STORE"`
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`
	CookieSecure bool          `mapstructure:"COOKIE_SECURE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`

	AMQPURL            string `mapstructure:"AMQP_URL"`
	SessionEventsQueue string `mapstructure:"SESSION_EVENTS_QUEUE"`

	ProfileCacheSize int           `mapstructure:"PROFILE_CACHE_SIZE"`
	ProfileCacheTTL  time.Duration `mapstructure:"PROFILE_CACHE_TTL"`
}

// Names used by the browser build of the app; accepted as fallbacks.
var aliases = map[string]string{
	"BACKEND_URL":      "NEXT_PUBLIC_BE_URL",
	"GOOGLE_CLIENT_ID": "NEXT_PUBLIC_GOOGLE_CLIENT_ID",
	"OPENCAGE_KEY":     "NEXT_PUBLIC_OPENCAGE_KEY",
}

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "3000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", "15s")
	v.SetDefault("SESSION_STORE", StoreMemory)
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_EVENTS_QUEUE", "workoo.session-events")
	v.SetDefault("PROFILE_CACHE_SIZE", 1024)
	v.SetDefault("PROFILE_CACHE_TTL", "5m")

	keys := []string{
		"PORT", "GIN_MODE", "BACKEND_URL", "HTTP_CLIENT_TIMEOUT", "CLIENT_URL",
		"GOOGLE_CLIENT_ID", "OPENCAGE_KEY", "SESSION_STORE", "SESSION_TTL", "COOKIE_SECURE",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"FIREBASE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS", "FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
		"AMQP_URL", "SESSION_EVENTS_QUEUE", "PROFILE_CACHE_SIZE", "PROFILE_CACHE_TTL",
	}
	for _, key := range keys {
		if alias, ok := aliases[key]; ok {
			_ = v.BindEnv(key, key, alias)
			continue
		}
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and cross-field constraints.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return errors.New("BACKEND_URL (or NEXT_PUBLIC_BE_URL) is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_URL %q is not an absolute URL", c.BackendURL)
	}
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")

	switch c.SessionStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when SESSION_STORE=redis")
		}
	case StoreFirestore:
		if c.FirebaseProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required when SESSION_STORE=firestore")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}

	if c.HTTPClientTimeout <= 0 {
		return errors.New("HTTP_CLIENT_TIMEOUT must be positive")
	}
	if c.ProfileCacheSize <= 0 {
		return errors.New("PROFILE_CACHE_SIZE must be positive")
	}
	return nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return strings.EqualFold(c.GinMode, "release")
}
