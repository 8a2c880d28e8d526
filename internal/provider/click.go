package provider

import (
	"context"
	"crypto/hmac"
	"fmt"
	"net/url"
	"strings"

	"github.com/getspace/payment-uz/internal/common"
	"github.com/getspace/payment-uz/internal/money"
)

// Click serves one invoice host for both environments.
const clickInvoiceHost = "https://my.click.uz/services/pay"

// ClickAdapter implements the Click invoice-URL codec and MD5 webhook
// verifier. Click is redirect-based: the invoice link carries plain query
// parameters and the amount stays in major units, unlike Payme.
type ClickAdapter struct {
	ServiceID      string
	MerchantID     string
	MerchantUserID string
	SecretKey      string
}

func (c ClickAdapter) ID() ID { return Click }

// CreateCheckout builds the phase-1 invoice link. Phase 2 (the prepare and
// complete callbacks) is a webhook concern handled by VerifyWebhook callers.
func (c ClickAdapter) CreateCheckout(_ context.Context, req CheckoutRequest) (CheckoutResult, error) {
	tiyin, err := money.ToTiyin(req.Amount)
	if err != nil {
		return CheckoutResult{}, err
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return CheckoutResult{}, fmt.Errorf("%w: order id is empty", ErrEncoding)
	}
	serviceID := strings.TrimSpace(c.ServiceID)
	merchantID := strings.TrimSpace(c.MerchantID)
	if req.Environment == EnvProduction && (serviceID == "" || merchantID == "") {
		return CheckoutResult{}, fmt.Errorf("%w: click service/merchant id", ErrMissingCredentials)
	}

	// Parameters are emitted in Click's documented order. url.Values.Encode
	// would sort them alphabetically, which changes the link byte layout.
	pairs := []struct{ key, value string }{
		{"service_id", serviceID},
		{"merchant_id", merchantID},
		{"amount", req.Amount.String()},
		{"transaction_param", req.OrderID},
		{"return_url", req.ReturnURL},
		{"merchant_user_id", strings.TrimSpace(c.MerchantUserID)},
	}
	var query strings.Builder
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		if query.Len() > 0 {
			query.WriteByte('&')
		}
		query.WriteString(p.key)
		query.WriteByte('=')
		query.WriteString(url.QueryEscape(p.value))
	}

	return CheckoutResult{
		Provider:     Click,
		Environment:  req.Environment,
		OrderID:      req.OrderID,
		AmountUZS:    req.Amount,
		AmountTiyin:  tiyin,
		PaymentURL:   clickInvoiceHost + "?" + query.String(),
		Instructions: "Redirect the customer to paymentUrl to complete the Click payment.",
	}, nil
}

// VerifyWebhook recomputes Click's MD5 signature. The concatenation order is
// Click's documented contract; changing it produces a wrong digest with no
// error, which is why the order is pinned by a test vector. Fields enter the
// digest exactly as they arrived on the wire.
func (c ClickAdapter) VerifyWebhook(req WebhookRequest) VerificationResult {
	secret := strings.TrimSpace(c.SecretKey)
	if secret == "" {
		return invalid(ReasonMissingCredentials)
	}
	received := strings.TrimSpace(req.ReceivedProof)
	if received == "" {
		return invalid(ReasonSignatureMismatch)
	}

	base := req.ClickTransID + req.ServiceID + secret + req.MerchantTransID + req.Amount + req.Action + req.SignTime
	expected := common.Md5Hex(base)

	if !hmac.Equal([]byte(expected), []byte(received)) {
		return invalid(ReasonSignatureMismatch)
	}
	return valid()
}
