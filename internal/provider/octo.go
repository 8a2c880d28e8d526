package provider

import (
	"context"
	"crypto/hmac"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/getspace/payment-uz/internal/common"
	"github.com/getspace/payment-uz/internal/money"
)

const (
	octoInitEndpoint     = "https://api.octo.uz/v1/payment/init"
	octoInitTestEndpoint = "https://api.test.octo.uz/v1/payment/init"

	octoDefaultCurrency = "UZS"
)

// OctoAdapter implements the Octo payment-initiation codec and SHA-256
// webhook verifier. Octo is REST-based: checkout produces a signed request
// body for the init endpoint rather than a redirect link, and since live
// submission is out of scope the result carries a synthetic payment UUID.
type OctoAdapter struct {
	APIKey      string
	SecretKey   string
	Currency    string
	AutoCapture bool

	// NewPaymentUUID overrides synthetic id generation, used by tests.
	NewPaymentUUID func() string
}

func (o OctoAdapter) ID() ID { return Octo }

// CreateCheckout constructs the payment-initiation payload. The request
// signature is SHA256(transaction_id + amount + currency + secret_key) per
// Octo's documentation; it is left empty when no secret is configured so the
// payload stays usable as documentation output.
func (o OctoAdapter) CreateCheckout(_ context.Context, req CheckoutRequest) (CheckoutResult, error) {
	tiyin, err := money.ToTiyin(req.Amount)
	if err != nil {
		return CheckoutResult{}, err
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return CheckoutResult{}, fmt.Errorf("%w: order id is empty", ErrEncoding)
	}
	currency := strings.TrimSpace(o.Currency)
	if currency == "" {
		currency = octoDefaultCurrency
	}
	secret := strings.TrimSpace(o.SecretKey)
	if req.Environment == EnvProduction && secret == "" {
		return CheckoutResult{}, fmt.Errorf("%w: octo secret key", ErrMissingCredentials)
	}

	amount := req.Amount.String()
	signature := ""
	if secret != "" {
		signature = common.Sha256Hex(req.OrderID + amount + currency + secret)
	}

	endpoint := octoInitTestEndpoint
	if req.Environment == EnvProduction {
		endpoint = octoInitEndpoint
	}
	newUUID := o.NewPaymentUUID
	if newUUID == nil {
		newUUID = uuid.NewString
	}

	payload := map[string]any{
		"api_key":        strings.TrimSpace(o.APIKey),
		"amount":         amount,
		"currency":       currency,
		"transaction_id": req.OrderID,
		"return_url":     req.ReturnURL,
		"auto_capture":   o.AutoCapture,
		"signature":      signature,
	}

	return CheckoutResult{
		Provider:    Octo,
		Environment: req.Environment,
		OrderID:     req.OrderID,
		AmountUZS:   req.Amount,
		AmountTiyin: tiyin,
		PaymentURL:  endpoint,
		// Synthetic: a live init call would return the real octo_payment_UUID.
		PaymentUUID:  newUUID(),
		Payload:      payload,
		Instructions: "POST payload to paymentUrl to initialise the payment; Octo responds with pay_url.",
	}, nil
}

// VerifyWebhook recomputes Octo's webhook signature,
// SHA256(octo_payment_UUID + status + secret_key), and compares it in
// constant time against the received proof.
func (o OctoAdapter) VerifyWebhook(req WebhookRequest) VerificationResult {
	secret := strings.TrimSpace(o.SecretKey)
	if secret == "" {
		return invalid(ReasonMissingCredentials)
	}
	received := strings.TrimSpace(req.ReceivedProof)
	if received == "" {
		return invalid(ReasonSignatureMismatch)
	}

	expected := common.Sha256Hex(req.PaymentUUID + req.Status + secret)
	if !hmac.Equal([]byte(expected), []byte(received)) {
		return invalid(ReasonSignatureMismatch)
	}
	return valid()
}
