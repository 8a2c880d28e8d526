package gateway_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/getspace/payment-uz/internal/config"
	"github.com/getspace/payment-uz/internal/gateway"
)

func testConfig() *config.Config {
	return &config.Config{
		DefaultEnvironment: "test",

		PaymeMerchantID:  "merchant_123",
		PaymeMerchantKey: "secret_key_456",

		ClickServiceID:      "67890",
		ClickMerchantID:     "11111",
		ClickMerchantUserID: "22222",
		ClickSecretKey:      "test_secret_key",

		OctoAPIKey:      "octo_api_key",
		OctoSecretKey:   "octo_secret",
		OctoCurrency:    "UZS",
		OctoAutoCapture: true,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	svc, err := gateway.NewService(cfg, zerolog.Nop())
	require.NoError(t, err)
	h := gateway.NewHandler(svc)
	r := chi.NewRouter()
	r.Route("/api/v1", h.Routes)
	return r
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestCheckoutPayme(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	rr := doJSON(t, router, http.MethodPost, "/api/v1/checkout", map[string]any{
		"provider":  "payme",
		"orderId":   "order_42",
		"amount":    50000,
		"returnUrl": "https://shop.example/return",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	require.Equal(t, "payme", body["provider"])
	require.Equal(t, "test", body["environment"])
	require.Equal(t,
		"https://checkout.test.paycom.uz/bT1tZXJjaGFudF8xMjM7YWMub3JkZXJfaWQ9b3JkZXJfNDI7YT01MDAwMDAwO2M9aHR0cHM6Ly9zaG9wLmV4YW1wbGUvcmV0dXJu",
		body["paymentUrl"])
	require.EqualValues(t, 5_000_000, body["amountTiyin"])
}

func TestCheckoutClickKeepsDocumentedParamOrder(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	rr := doJSON(t, router, http.MethodPost, "/api/v1/checkout", map[string]any{
		"provider": "click",
		"orderId":  "order_777",
		"amount":   "50000",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	require.Equal(t,
		"https://my.click.uz/services/pay?service_id=67890&merchant_id=11111&amount=50000&transaction_param=order_777&merchant_user_id=22222",
		body["paymentUrl"])
}

func TestCheckoutOctoReturnsSignedPayload(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	rr := doJSON(t, router, http.MethodPost, "/api/v1/checkout", map[string]any{
		"provider": "octo",
		"orderId":  "order_55",
		"amount":   "200000",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	require.Equal(t, "https://api.test.octo.uz/v1/payment/init", body["paymentUrl"])
	require.NotEmpty(t, body["paymentUuid"])

	payload, ok := body["payload"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "octo_api_key", payload["api_key"])
	require.Equal(t, "order_55", payload["transaction_id"])
	require.Equal(t,
		"51ef0c426db203330788f5f65e98c2fe5e1f61aa0621d3cf73a7109a84b7fa1b",
		payload["signature"])
}

func TestCheckoutRejectsInvalidAmount(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	for _, amount := range []any{"0", "-5", "10.123"} {
		rr := doJSON(t, router, http.MethodPost, "/api/v1/checkout", map[string]any{
			"provider": "payme",
			"orderId":  "order_1",
			"amount":   amount,
		})
		require.Equal(t, http.StatusBadRequest, rr.Code, "amount %v", amount)
		body := decodeBody(t, rr)
		errObj, ok := body["error"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "INVALID_AMOUNT", errObj["code"])
	}

	// A non-numeric amount fails JSON decoding before amount validation runs.
	rr := doJSON(t, router, http.MethodPost, "/api/v1/checkout", map[string]any{
		"provider": "payme",
		"orderId":  "order_1",
		"amount":   "not-a-number",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	errObj := decodeBody(t, rr)["error"].(map[string]any)
	require.Equal(t, "BAD_REQUEST", errObj["code"])
}

func TestCheckoutRejectsMissingFields(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	rr := doJSON(t, router, http.MethodPost, "/api/v1/checkout", map[string]any{
		"provider": "payme",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	errObj := body["error"].(map[string]any)
	require.Equal(t, "BAD_REQUEST", errObj["code"])
}

func TestCheckoutUnknownProvider(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	rr := doJSON(t, router, http.MethodPost, "/api/v1/checkout", map[string]any{
		"provider": "stripe",
		"orderId":  "order_1",
		"amount":   "100",
	})
	require.Equal(t, http.StatusNotFound, rr.Code)
	body := decodeBody(t, rr)
	errObj := body["error"].(map[string]any)
	require.Equal(t, "PROVIDER_NOT_SUPPORTED", errObj["code"])
}

func TestCheckoutMissingProductionCredentials(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.PaymeMerchantID = ""
	router := newTestRouter(t, cfg)
	rr := doJSON(t, router, http.MethodPost, "/api/v1/checkout", map[string]any{
		"provider":    "payme",
		"orderId":     "order_1",
		"amount":      "100",
		"environment": "production",
	})
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeBody(t, rr)
	errObj := body["error"].(map[string]any)
	require.Equal(t, "MISSING_CREDENTIALS", errObj["code"])
}

func TestVerifyPaymeWebhook(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())

	rr := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/payme/verify", map[string]any{
		"authorizationHeader": "Basic bWVyY2hhbnRfMTIzOnNlY3JldF9rZXlfNDU2",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	require.Equal(t, true, body["valid"])

	rr = doJSON(t, router, http.MethodPost, "/api/v1/webhooks/payme/verify", map[string]any{
		"authorizationHeader": "Basic bWVyY2hhbnRfMTIzOndyb25n",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	body = decodeBody(t, rr)
	require.Equal(t, false, body["valid"])
	require.Equal(t, "invalid authorization", body["reason"])
}

func TestVerifyClickWebhookPreservesWireNumbers(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	rr := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/click/verify", map[string]any{
		"clickTransId":    12345,
		"serviceId":       67890,
		"merchantTransId": "order_777",
		"amount":          50000,
		"action":          1,
		"signTime":        "2025-10-11 10:30:00",
		"sign":            "3f7addb7b23979a43f590fbb08b48c12",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	require.Equal(t, true, body["valid"])
}

func TestVerifyOctoWebhook(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	rr := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/octo/verify", map[string]any{
		"paymentUuid": "octo-uuid-123",
		"status":      "succeeded",
		"sign":        "cc6430cb8abe0b7280620cb05783dc9e1f661993fbe1b52aacee1c290b3a76ab",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	require.Equal(t, true, body["valid"])
}

func TestVerifyWebhookUnknownProvider(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	rr := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/stripe/verify", map[string]any{})
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVerifyWebhookFailsClosedWithoutCredentials(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.ClickSecretKey = ""
	router := newTestRouter(t, cfg)
	rr := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/click/verify", map[string]any{
		"clickTransId":    12345,
		"serviceId":       67890,
		"merchantTransId": "order_777",
		"amount":          50000,
		"action":          1,
		"signTime":        "2025-10-11 10:30:00",
		"sign":            "3f7addb7b23979a43f590fbb08b48c12",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	require.Equal(t, false, body["valid"])
	require.Equal(t, "verification credentials not configured", body["reason"])
}

func TestCompareProviders(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	rr := doJSON(t, router, http.MethodGet, "/api/v1/providers/compare", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)

	providers, ok := body["providers"].([]any)
	require.True(t, ok)
	require.Len(t, providers, 3)
	first := providers[0].(map[string]any)
	require.Equal(t, "payme", first["provider"])
	require.Contains(t, body, "recommendations")
	require.Contains(t, body, "integrationPriority")
}

func TestIntegrationGuide(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	for _, name := range []string{"payme", "click", "octo"} {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/providers/"+name+"/guide", nil)
		require.Equal(t, http.StatusOK, rr.Code, name)
	}

	rr := doJSON(t, router, http.MethodGet, "/api/v1/providers/stripe/guide", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSecurityBestPractices(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	rr := doJSON(t, router, http.MethodGet, "/api/v1/security/best-practices", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	require.Contains(t, body, "webhookSecurity")
}

func TestProviderStatus(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig())
	rr := doJSON(t, router, http.MethodGet, "/api/v1/providers/status", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	providers, ok := body["providers"].([]any)
	require.True(t, ok)
	require.Len(t, providers, 3)
}

func TestProviderReadinessPosture(t *testing.T) {
	t.Parallel()

	svc, err := gateway.NewService(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	posture := svc.ProviderReadiness()
	require.Equal(t, "configured", posture["payme"])
	require.Equal(t, "configured", posture["click"])
	require.Equal(t, "configured", posture["octo"])

	cfg := testConfig()
	cfg.PaymeMerchantKey = ""
	cfg.PaymeTestKey = "test_key"
	cfg.OctoSecretKey = ""
	svc, err = gateway.NewService(cfg, zerolog.Nop())
	require.NoError(t, err)
	posture = svc.ProviderReadiness()
	require.Equal(t, "test credentials only", posture["payme"])
	require.Equal(t, "not configured", posture["octo"])
}
