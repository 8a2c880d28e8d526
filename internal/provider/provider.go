package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ID identifies one of the supported Uzbek payment providers. The set is
// closed: adding a provider means adding a new Adapter implementation and a
// new constant here.
type ID string

const (
	Payme ID = "payme"
	Click ID = "click"
	Octo  ID = "octo"
)

// All returns the supported providers in their canonical order.
func All() []ID {
	return []ID{Payme, Click, Octo}
}

// ParseID normalises and validates a provider identifier.
func ParseID(raw string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(raw)))
	switch id {
	case Payme, Click, Octo:
		return id, nil
	}
	return "", fmt.Errorf("%w: %q", ErrProviderNotSupported, raw)
}

// Environment selects the provider endpoint family. Test and production hosts
// never mix inside a single checkout result.
type Environment string

const (
	EnvTest       Environment = "test"
	EnvProduction Environment = "production"
)

// ParseEnvironment validates an environment name, defaulting to test.
func ParseEnvironment(raw string) (Environment, error) {
	switch Environment(strings.ToLower(strings.TrimSpace(raw))) {
	case EnvTest, "":
		return EnvTest, nil
	case EnvProduction:
		return EnvProduction, nil
	}
	return "", fmt.Errorf("%w: unknown environment %q", ErrEncoding, raw)
}

var (
	// ErrProviderNotSupported is returned for identifiers outside the closed provider set.
	ErrProviderNotSupported = errors.New("provider not supported")
	// ErrEncoding marks a checkout request whose fields cannot be encoded for the provider.
	ErrEncoding = errors.New("encoding error")
	// ErrMissingCredentials marks an operation that requires credentials which were never configured.
	ErrMissingCredentials = errors.New("missing credentials")
)

// CheckoutRequest is the normalised input for link/payload generation. It is
// built once per call and never mutated.
type CheckoutRequest struct {
	OrderID     string
	Amount      decimal.Decimal
	ReturnURL   string
	Environment Environment
}

// CheckoutResult is the provider-specific checkout produced from a request.
// PaymentURL is a redirect link for Payme and Click; for Octo it is the
// payment-initiation endpoint and Payload carries the signed request body.
type CheckoutResult struct {
	Provider     ID              `json:"provider"`
	Environment  Environment     `json:"environment"`
	OrderID      string          `json:"orderId"`
	AmountUZS    decimal.Decimal `json:"amountUzs"`
	AmountTiyin  int64           `json:"amountTiyin"`
	PaymentURL   string          `json:"paymentUrl"`
	PaymentUUID  string          `json:"paymentUuid,omitempty"`
	Payload      map[string]any  `json:"payload,omitempty"`
	Instructions string          `json:"instructions,omitempty"`
}

// WebhookRequest carries the authenticity proof of an inbound provider
// webhook. Each adapter reads only its own fields; numeric fields are kept in
// the exact string form they arrived in, since signature bases are computed
// over wire text, not parsed values.
type WebhookRequest struct {
	// Payme: the raw Authorization header value.
	AuthorizationHeader string

	// Click signature fields, in wire form.
	ClickTransID    string
	ServiceID       string
	MerchantTransID string
	Amount          string
	Action          string
	SignTime        string

	// Octo webhook fields.
	PaymentUUID string
	Status      string

	// ReceivedProof is the signature delivered by the provider (unused for
	// Payme, which proves authenticity via the Authorization header).
	ReceivedProof string
}

// VerificationResult is the terminal outcome of webhook verification. It is
// always a value, never an error: malformed input and wrong signatures both
// fail closed. Reasons stay generic so the response cannot be used as a
// comparison oracle.
type VerificationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Verification failure reasons. One reason per failure class; verifiers never
// reveal which part of a proof mismatched.
const (
	ReasonInvalidAuthorization = "invalid authorization"
	ReasonSignatureMismatch    = "signature mismatch"
	ReasonMissingCredentials   = "verification credentials not configured"
)

func invalid(reason string) VerificationResult {
	return VerificationResult{Valid: false, Reason: reason}
}

func valid() VerificationResult {
	return VerificationResult{Valid: true}
}

// Adapter pairs the checkout codec and webhook verifier of one provider.
// Implementations are pure: no network, no shared mutable state, safe for
// arbitrary concurrent use.
type Adapter interface {
	ID() ID
	CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutResult, error)
	VerifyWebhook(req WebhookRequest) VerificationResult
}
