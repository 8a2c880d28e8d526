package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/getspace/payment-uz/internal/config"
	"github.com/getspace/payment-uz/internal/obs"
	"github.com/getspace/payment-uz/internal/provider"
)

// Service owns the adapter registry and coordinates checkout generation and
// webhook verification across providers. Credentials live inside the adapters,
// wired once at startup from configuration; request payloads can never
// override them.
type Service struct {
	adapters   map[provider.ID]provider.Adapter
	defaultEnv provider.Environment
	log        zerolog.Logger
}

// NewService builds the provider registry from configuration.
func NewService(cfg *config.Config, log zerolog.Logger) (*Service, error) {
	defaultEnv, err := provider.ParseEnvironment(cfg.DefaultEnvironment)
	if err != nil {
		return nil, fmt.Errorf("default environment: %w", err)
	}
	adapters := map[provider.ID]provider.Adapter{
		provider.Payme: provider.PaymeAdapter{
			MerchantID:  cfg.PaymeMerchantID,
			MerchantKey: cfg.PaymeMerchantKey,
			TestKey:     cfg.PaymeTestKey,
		},
		provider.Click: provider.ClickAdapter{
			ServiceID:      cfg.ClickServiceID,
			MerchantID:     cfg.ClickMerchantID,
			MerchantUserID: cfg.ClickMerchantUserID,
			SecretKey:      cfg.ClickSecretKey,
		},
		provider.Octo: provider.OctoAdapter{
			APIKey:      cfg.OctoAPIKey,
			SecretKey:   cfg.OctoSecretKey,
			Currency:    cfg.OctoCurrency,
			AutoCapture: cfg.OctoAutoCapture,
		},
	}
	return &Service{adapters: adapters, defaultEnv: defaultEnv, log: log}, nil
}

// DefaultEnvironment returns the environment used when a request omits one.
func (s *Service) DefaultEnvironment() provider.Environment {
	return s.defaultEnv
}

// Adapter resolves a provider adapter by id.
func (s *Service) Adapter(id provider.ID) (provider.Adapter, bool) {
	a, ok := s.adapters[id]
	return a, ok
}

// GenerateCheckout produces a checkout link or payload for the given provider.
func (s *Service) GenerateCheckout(ctx context.Context, id provider.ID, req provider.CheckoutRequest) (provider.CheckoutResult, error) {
	ctx, span := otel.Tracer("gateway.Service").Start(ctx, "GatewayService.GenerateCheckout")
	defer span.End()

	if req.Environment == "" {
		req.Environment = s.defaultEnv
	}

	start := time.Now()
	result := "error"
	defer func() {
		span.SetAttributes(
			attribute.String("payment.provider", string(id)),
			attribute.String("payment.environment", string(req.Environment)),
			attribute.String("checkout.result", result),
			attribute.Float64("checkout.duration_ms", obs.DurationMillis(time.Since(start))),
		)
		if obs.CheckoutLinksTotal != nil {
			obs.CheckoutLinksTotal.WithLabelValues(string(id), string(req.Environment), result).Inc()
		}
	}()

	adapter, ok := s.adapters[id]
	if !ok {
		return provider.CheckoutResult{}, fmt.Errorf("%w: %q", provider.ErrProviderNotSupported, id)
	}
	out, err := adapter.CreateCheckout(ctx, req)
	if err != nil {
		span.RecordError(err)
		s.log.Warn().
			Str("provider", string(id)).
			Str("environment", string(req.Environment)).
			Err(err).
			Msg("checkout generation failed")
		return provider.CheckoutResult{}, err
	}
	result = "success"
	s.log.Info().
		Str("provider", string(id)).
		Str("environment", string(req.Environment)).
		Str("order_id", out.OrderID).
		Int64("amount_tiyin", out.AmountTiyin).
		Msg("checkout generated")
	return out, nil
}

// VerifyWebhook checks the authenticity proof of an inbound provider webhook.
// Verification never errors: any failure is a terminal invalid result. The log
// line carries the outcome but never the proof itself.
func (s *Service) VerifyWebhook(id provider.ID, req provider.WebhookRequest) (provider.VerificationResult, error) {
	adapter, ok := s.adapters[id]
	if !ok {
		return provider.VerificationResult{}, fmt.Errorf("%w: %q", provider.ErrProviderNotSupported, id)
	}

	res := adapter.VerifyWebhook(req)

	result := "invalid"
	if res.Valid {
		result = "valid"
	}
	if obs.WebhookVerificationsTotal != nil {
		obs.WebhookVerificationsTotal.WithLabelValues(string(id), result).Inc()
	}
	s.log.Info().
		Str("provider", string(id)).
		Bool("valid", res.Valid).
		Msg("webhook verification")
	return res, nil
}

// ProviderReadiness reports the credential posture per provider for the
// readiness endpoint. It never exposes credential values, only whether they
// are present.
func (s *Service) ProviderReadiness() map[string]string {
	posture := make(map[string]string, len(s.adapters))
	for id, a := range s.adapters {
		posture[string(id)] = credentialPosture(a)
	}
	return posture
}

func credentialPosture(a provider.Adapter) string {
	switch adapter := a.(type) {
	case provider.PaymeAdapter:
		switch {
		case adapter.MerchantID != "" && adapter.MerchantKey != "":
			return "configured"
		case adapter.MerchantID != "" && adapter.TestKey != "":
			return "test credentials only"
		default:
			return "not configured"
		}
	case provider.ClickAdapter:
		if adapter.ServiceID != "" && adapter.MerchantID != "" && adapter.SecretKey != "" {
			return "configured"
		}
		return "not configured"
	case provider.OctoAdapter:
		if adapter.APIKey != "" && adapter.SecretKey != "" {
			return "configured"
		}
		return "not configured"
	default:
		return "unknown"
	}
}
