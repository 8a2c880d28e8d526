package advisor

import "github.com/getspace/payment-uz/internal/provider"

// Guide is the static integration documentation for one provider.
type Guide struct {
	Provider          provider.ID       `json:"provider"`
	Overview          string            `json:"overview"`
	DocsURL           string            `json:"docsUrl"`
	ProductionURL     string            `json:"productionUrl"`
	TestURL           string            `json:"testUrl,omitempty"`
	PaymentFlow       []string          `json:"paymentFlow"`
	WebhookAuth       string            `json:"webhookAuth"`
	SignatureFormat   string            `json:"signatureFormat,omitempty"`
	ErrorCodes        map[string]string `json:"errorCodes,omitempty"`
	TransactionStates map[string]string `json:"transactionStates,omitempty"`
	BestPractices     []string          `json:"bestPractices"`
}

var guides = map[provider.ID]Guide{
	provider.Payme: {
		Provider:      provider.Payme,
		Overview:      "Payme uses the JSON-RPC 2.0 protocol for its merchant API; checkout links carry base64-encoded parameters.",
		DocsURL:       "https://developer.help.paycom.uz/",
		ProductionURL: "https://checkout.paycom.uz/api",
		TestURL:       "https://checkout.test.paycom.uz/api",
		PaymentFlow: []string{
			"generate the checkout URL and redirect the customer",
			"Payme calls CheckPerformTransaction to validate the order",
			"Payme calls CreateTransaction, then PerformTransaction on success",
			"CancelTransaction / CheckTransaction / GetStatement cover the remaining lifecycle",
		},
		WebhookAuth: "Basic base64(merchant_id:merchant_key) on every merchant-API call",
		ErrorCodes: map[string]string{
			"-31001":            "invalid amount",
			"-31008":            "cannot perform operation (duplicate transaction)",
			"-31050 to -31099":  "account/order not found or invalid",
			"-32504":            "invalid authorization",
		},
		TransactionStates: map[string]string{
			"1":  "pending (created, awaiting perform)",
			"2":  "paid (successfully completed)",
			"-1": "cancelled before payment",
			"-2": "cancelled after payment (refunded)",
		},
		BestPractices: []string{
			"store transaction IDs as strings, they can be very large numbers",
			"implement idempotency for CreateTransaction",
			"always return HTTP 200 for webhook responses",
			"validate amounts in tiyin (1 UZS = 100 tiyin)",
		},
	},
	provider.Click: {
		Provider:      provider.Click,
		Overview:      "Click uses two-phase payments: a prepare webhook (action=0) followed by a complete webhook (action=1).",
		DocsURL:       "https://docs.click.uz/",
		ProductionURL: "https://my.click.uz/services/pay",
		PaymentFlow: []string{
			"generate the invoice URL and redirect the customer",
			"customer completes payment on the Click page",
			"Click sends the prepare webhook (action=0); validate and respond",
			"Click sends the complete webhook (action=1); finalise the transaction",
		},
		WebhookAuth:     "none; each webhook carries an MD5 sign_string",
		SignatureFormat: "MD5(click_trans_id + service_id + secret_key + merchant_trans_id + amount + action + sign_time)",
		ErrorCodes: map[string]string{
			"0":  "success",
			"-1": "sign check failed",
			"-2": "invalid amount",
			"-3": "action not found",
			"-4": "already paid",
			"-5": "user not found",
			"-6": "transaction not found",
			"-9": "transaction cancelled",
		},
		BestPractices: []string{
			"always verify webhook signatures",
			"implement idempotency for both prepare and complete",
			"store Click transaction IDs for reconciliation",
			"return proper error codes for validation failures",
		},
	},
	provider.Octo: {
		Provider:      provider.Octo,
		Overview:      "Octo is a modern REST gateway: initialise a payment, redirect to pay_url, then verify the single webhook notification.",
		DocsURL:       "https://docs.octo.uz/",
		ProductionURL: "https://api.octo.uz",
		TestURL:       "https://api.test.octo.uz",
		PaymentFlow: []string{
			"POST /v1/payment/init with the signed payload",
			"redirect the customer to the returned pay_url",
			"Octo sends one webhook notification after payment",
			"verify the webhook signature and update the transaction",
		},
		WebhookAuth:     "none; each webhook carries a SHA-256 signature",
		SignatureFormat: "init: SHA256(transaction_id + amount + currency + secret_key); webhook: SHA256(octo_payment_UUID + status + secret_key)",
		TransactionStates: map[string]string{
			"created":    "payment created, awaiting user action",
			"processing": "payment is being processed",
			"succeeded":  "payment completed successfully",
			"cancelled":  "payment cancelled by user or timeout",
			"failed":     "payment failed",
		},
		BestPractices: []string{
			"store octo_payment_UUID for reconciliation",
			"verify webhook signatures to prevent fraud",
			"use idempotent transaction IDs",
			"handle all payment statuses",
		},
	},
}

// IntegrationGuide returns the static guide for a provider.
func IntegrationGuide(id provider.ID) (Guide, bool) {
	guide, ok := guides[id]
	return guide, ok
}

// SecurityGuidance groups payment-security recommendations by concern.
type SecurityGuidance struct {
	WebhookSecurity     []string `json:"webhookSecurity"`
	DataProtection      []string `json:"dataProtection"`
	TransactionSecurity []string `json:"transactionSecurity"`
	ErrorHandling       []string `json:"errorHandling"`
	FraudPrevention     []string `json:"fraudPrevention"`
}

// SecurityBestPractices returns provider-agnostic security guidance.
func SecurityBestPractices() SecurityGuidance {
	return SecurityGuidance{
		WebhookSecurity: []string{
			"never trust webhooks without signature verification",
			"never accept webhooks over plain HTTP",
			"whitelist provider IP ranges where possible",
			"keep an audit trail of all payment webhooks",
			"rate limit webhook endpoints",
		},
		DataProtection: []string{
			"never store card numbers, use tokenization",
			"encrypt transaction details at rest",
			"follow PCI DSS when handling card data",
			"collect only the data you need",
		},
		TransactionSecurity: []string{
			"prevent duplicate payments with idempotency keys",
			"use atomic database transactions",
			"set payment timeouts",
			"enforce strict state transitions",
			"reconcile with providers regularly",
		},
		ErrorHandling: []string{
			"show generic error messages to users",
			"log detailed errors server-side",
			"degrade gracefully during provider outages",
			"retry with exponential backoff",
		},
		FraudPrevention: []string{
			"verify payment amounts match orders",
			"ensure the user owns the transaction",
			"detect duplicate transactions",
			"monitor unusual payment velocity",
		},
	}
}
