package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
// Provider credentials are optional: link generation works without them in
// test mode, while webhook verification fails closed until they are set.
// Credential values are never logged or echoed back by any handler.
type Config struct {
	AppEnv             string
	Port               string
	CORSAllowedOrigins []string

	// Default environment for checkout requests that omit one.
	DefaultEnvironment string

	PaymeMerchantID  string
	PaymeMerchantKey string
	PaymeTestKey     string

	ClickServiceID      string
	ClickMerchantID     string
	ClickMerchantUserID string
	ClickSecretKey      string

	OctoAPIKey      string
	OctoSecretKey   string
	OctoCurrency    string
	OctoAutoCapture bool
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		DefaultEnvironment: valueOrDefault(k.String("PAYMENT_DEFAULT_ENVIRONMENT"), "test"),

		PaymeMerchantID:  strings.TrimSpace(k.String("PAYME_MERCHANT_ID")),
		PaymeMerchantKey: strings.TrimSpace(k.String("PAYME_MERCHANT_KEY")),
		PaymeTestKey:     strings.TrimSpace(k.String("PAYME_TEST_KEY")),

		ClickServiceID:      strings.TrimSpace(k.String("CLICK_SERVICE_ID")),
		ClickMerchantID:     strings.TrimSpace(k.String("CLICK_MERCHANT_ID")),
		ClickMerchantUserID: strings.TrimSpace(k.String("CLICK_MERCHANT_USER_ID")),
		ClickSecretKey:      strings.TrimSpace(k.String("CLICK_SECRET_KEY")),

		OctoAPIKey:      strings.TrimSpace(k.String("OCTO_API_KEY")),
		OctoSecretKey:   strings.TrimSpace(k.String("OCTO_SECRET_KEY")),
		OctoCurrency:    valueOrDefault(k.String("OCTO_CURRENCY"), "UZS"),
		OctoAutoCapture: parseBool(valueOrDefault(k.String("OCTO_AUTO_CAPTURE"), "true")),
	}

	switch cfg.DefaultEnvironment {
	case "test", "production":
	default:
		return nil, fmt.Errorf("PAYMENT_DEFAULT_ENVIRONMENT must be test or production, got %q", cfg.DefaultEnvironment)
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
