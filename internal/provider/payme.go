package provider

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/getspace/payment-uz/internal/money"
)

const (
	paymeCheckoutHost     = "https://checkout.paycom.uz"
	paymeCheckoutTestHost = "https://checkout.test.paycom.uz"

	// Sandbox merchant published in Payme's own documentation; used so link
	// generation keeps working in test mode before credentials are configured.
	paymeSandboxMerchantID = "68944508cab302211ad21b06"

	paymeFieldSep    = ";"
	paymeAuthScheme  = "Basic "
	paymeAccountName = "order_id"
)

// PaymeAdapter implements the Payme checkout codec and Basic-auth webhook
// verifier. Payme receives parameters as a base64-encoded blob whose field
// order is part of the contract: the decoder on Payme's side expects
// m, ac.<account>, a, then the optional c.
type PaymeAdapter struct {
	MerchantID  string
	MerchantKey string
	TestKey     string
}

func (p PaymeAdapter) ID() ID { return Payme }

// CreateCheckout builds the environment-selected checkout URL.
func (p PaymeAdapter) CreateCheckout(_ context.Context, req CheckoutRequest) (CheckoutResult, error) {
	tiyin, err := money.ToTiyin(req.Amount)
	if err != nil {
		return CheckoutResult{}, err
	}
	merchantID, err := p.merchantIDFor(req.Environment)
	if err != nil {
		return CheckoutResult{}, err
	}
	for _, field := range []struct{ name, value string }{
		{"merchant id", merchantID},
		{"order id", req.OrderID},
	} {
		name, value := field.name, field.value
		if strings.TrimSpace(value) == "" {
			return CheckoutResult{}, fmt.Errorf("%w: %s is empty", ErrEncoding, name)
		}
		if strings.Contains(value, paymeFieldSep) {
			return CheckoutResult{}, fmt.Errorf("%w: %s contains reserved separator %q", ErrEncoding, name, paymeFieldSep)
		}
	}
	if strings.Contains(req.ReturnURL, paymeFieldSep) {
		return CheckoutResult{}, fmt.Errorf("%w: return url contains reserved separator %q", ErrEncoding, paymeFieldSep)
	}

	params := fmt.Sprintf("m=%s;ac.%s=%s;a=%d", merchantID, paymeAccountName, req.OrderID, tiyin)
	if req.ReturnURL != "" {
		params += ";c=" + req.ReturnURL
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(params))

	host := paymeCheckoutTestHost
	if req.Environment == EnvProduction {
		host = paymeCheckoutHost
	}
	return CheckoutResult{
		Provider:     Payme,
		Environment:  req.Environment,
		OrderID:      req.OrderID,
		AmountUZS:    req.Amount,
		AmountTiyin:  tiyin,
		PaymentURL:   host + "/" + encoded,
		Instructions: "Redirect the customer to paymentUrl to complete the Payme payment.",
	}, nil
}

func (p PaymeAdapter) merchantIDFor(env Environment) (string, error) {
	if id := strings.TrimSpace(p.MerchantID); id != "" {
		return id, nil
	}
	if env == EnvProduction {
		return "", fmt.Errorf("%w: payme merchant id", ErrMissingCredentials)
	}
	return paymeSandboxMerchantID, nil
}

// VerifyWebhook checks the Basic Authorization header Payme sends with every
// merchant-API callback. Both halves of the credential pair are compared in
// constant time and the result never reveals which half failed.
func (p PaymeAdapter) VerifyWebhook(req WebhookRequest) VerificationResult {
	keys := make([]string, 0, 2)
	for _, k := range []string{p.MerchantKey, p.TestKey} {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	if len(keys) == 0 || strings.TrimSpace(p.MerchantID) == "" {
		return invalid(ReasonMissingCredentials)
	}

	header := strings.TrimSpace(req.AuthorizationHeader)
	token, ok := strings.CutPrefix(header, paymeAuthScheme)
	if !ok {
		return invalid(ReasonInvalidAuthorization)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return invalid(ReasonInvalidAuthorization)
	}
	login, secret, found := strings.Cut(string(decoded), ":")
	if !found {
		return invalid(ReasonInvalidAuthorization)
	}

	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(p.MerchantID))
	secretOK := 0
	for _, k := range keys {
		secretOK |= subtle.ConstantTimeCompare([]byte(secret), []byte(k))
	}
	if loginOK&secretOK != 1 {
		return invalid(ReasonInvalidAuthorization)
	}
	return valid()
}
