package app

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
	"github.com/aussiebroadwan/amxprobe/pkg/httpx"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	ClientID     string   `validate:"required"`            // Required: OAuth client id registered with the provider
	ClientSecret string   ``                               // Optional: sent in the token request body
	RedirectURI  string   `validate:"omitempty,url"`       // Optional: derived from the request origin when empty
	AuthURL      string   `validate:"required,url"`        // Authorize endpoint (default: production identity server)
	TokenURL     string   `validate:"required,url"`        // Token endpoint (default: production identity server)
	APIBaseURL   string   `validate:"required,url"`        // REST API base (default: production public API)
	Scopes       []string `validate:"min=1,dive,required"` // Requested scopes (default: read, write, offline_access)

	TrustForwardedHeaders bool // Honour X-Forwarded-Proto/Host when deriving the redirect URI (default: false)
	AutoRefresh           bool // Refresh expired access tokens before API calls (default: true)
	StrictState           bool // Reject callbacks whose state differs from the issued one (default: false)
	CallbackSmokeTest     bool // Call /companies right after a successful exchange (default: true)

	HTTPTimeout        time.Duration `validate:"gt=0"`        // Per outbound call (default: 20s)
	ProbeConcurrency   int           `validate:"min=1,max=5"` // Simultaneous probe calls (default: 1, sequential)
	ProbeRatePerSecond float64       `validate:"gte=0"`       // Outbound probe pacing, 0 disables (default: 0)

	DatabaseFile         string        `validate:"required"` // Activity journal SQLite file (default: ./probe.db)
	JournalRetention     time.Duration `validate:"gt=0"`     // Journal entries older than this are pruned (default: 7 days)
	HousekeepingInterval time.Duration `validate:"gt=0"`     // Journal pruning interval (default: 1h)

	Env                 string        `validate:"oneof=dev test staging prod"`         // Environment (default: dev)
	LogLevel            string        `validate:"oneof=debug info warn warning error"` // Log level (default: info)
	LogFormat           string        `validate:"oneof=json text"`                     // Log format (default: json)
	Port                int           `validate:"min=1,max=65535"`                     // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration `validate:"gt=0"`                                // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the environment once. Call Validate before use.
func LoadConfig() Config {
	return Config{
		ClientID:     os.Getenv("APPROVALMAX_CLIENT_ID"),
		ClientSecret: os.Getenv("APPROVALMAX_CLIENT_SECRET"),
		RedirectURI:  os.Getenv("APPROVALMAX_REDIRECT_URI"),
		AuthURL:      getEnvOrDefault("APPROVALMAX_AUTH_URL", approvalsdk.DefaultAuthURL),
		TokenURL:     getEnvOrDefault("APPROVALMAX_TOKEN_URL", approvalsdk.DefaultTokenURL),
		APIBaseURL:   getEnvOrDefault("APPROVALMAX_API_BASE_URL", approvalsdk.DefaultAPIBaseURL),
		Scopes:       getEnvFieldsOrDefault("APPROVALMAX_SCOPES", approvalsdk.DefaultScopes),

		TrustForwardedHeaders: getEnvBoolOrDefault("TRUST_FORWARDED_HEADERS", false),
		AutoRefresh:           getEnvBoolOrDefault("AUTO_REFRESH", true),
		StrictState:           getEnvBoolOrDefault("STRICT_STATE", false),
		CallbackSmokeTest:     getEnvBoolOrDefault("CALLBACK_SMOKE_TEST", true),

		HTTPTimeout:        getEnvDurationOrDefault("HTTP_TIMEOUT", approvalsdk.DefaultTimeout),
		ProbeConcurrency:   getEnvIntOrDefault("PROBE_CONCURRENCY", 1),
		ProbeRatePerSecond: getEnvFloatOrDefault("PROBE_RATE_PER_SECOND", 0),

		DatabaseFile:         getEnvOrDefault("JOURNAL_DATABASE_FILE", "probe.db"),
		JournalRetention:     getEnvDurationOrDefault("JOURNAL_RETENTION", 7*24*time.Hour),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate checks the configuration and names the first offending field.
func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SDKConfig maps the configuration onto the provider client.
func (c Config) SDKConfig() approvalsdk.Config {
	return approvalsdk.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURI:  c.RedirectURI,
		AuthURL:      c.AuthURL,
		TokenURL:     c.TokenURL,
		APIBaseURL:   c.APIBaseURL,
		Scopes:       c.Scopes,
		HTTPClient:   &http.Client{Timeout: c.HTTPTimeout},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func getEnvFieldsOrDefault(key string, defaultValue []string) []string {
	fields := httpx.ParseSpaceDelimitedFields(os.Getenv(key))
	if len(fields) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return fields
}
