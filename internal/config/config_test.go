package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getspace/payment-uz/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"APP_ENV":                     "",
		"PORT":                        "",
		"PAYMENT_DEFAULT_ENVIRONMENT": "",
		"OCTO_CURRENCY":               "",
		"OCTO_AUTO_CAPTURE":           "",
	})
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "test", cfg.DefaultEnvironment)
	require.Equal(t, "UZS", cfg.OctoCurrency)
	require.True(t, cfg.OctoAutoCapture)
}

func TestLoadCredentials(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"PAYME_MERCHANT_ID":  "merchant_123",
		"PAYME_MERCHANT_KEY": " secret_key_456 ",
		"CLICK_SERVICE_ID":   "67890",
		"CLICK_SECRET_KEY":   "click_secret",
		"OCTO_API_KEY":       "octo_api",
		"OCTO_SECRET_KEY":    "octo_secret",
		"OCTO_AUTO_CAPTURE":  "false",
	})
	require.NoError(t, err)
	require.Equal(t, "merchant_123", cfg.PaymeMerchantID)
	require.Equal(t, "secret_key_456", cfg.PaymeMerchantKey)
	require.Equal(t, "67890", cfg.ClickServiceID)
	require.Equal(t, "click_secret", cfg.ClickSecretKey)
	require.Equal(t, "octo_api", cfg.OctoAPIKey)
	require.False(t, cfg.OctoAutoCapture)
}

func TestLoadRejectsUnknownDefaultEnvironment(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"PAYMENT_DEFAULT_ENVIRONMENT": "staging",
	})
	require.Error(t, err)
}
