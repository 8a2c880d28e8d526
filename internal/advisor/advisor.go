// Package advisor answers "which provider should I integrate" questions from
// static tables. It performs no I/O and has no failure modes: the data is
// compiled in and ordered by market relevance (Payme, Click, Octo).
package advisor

import "github.com/getspace/payment-uz/internal/provider"

// Comparison describes one provider's integration profile.
type Comparison struct {
	Provider          provider.ID `json:"provider"`
	Protocol          string      `json:"protocol"`
	Complexity        string      `json:"complexity"`
	TransactionFlow   string      `json:"transactionFlow"`
	WebhookAuth       string      `json:"webhookAuth"`
	Signature         string      `json:"signature"`
	MarketShare       string      `json:"marketShare"`
	IntegrationEffort string      `json:"integrationEffort"`
	RecommendedFor    string      `json:"recommendedFor"`
	Features          []string    `json:"features"`
	Pros              []string    `json:"pros"`
	Cons              []string    `json:"cons"`
}

var comparisons = []Comparison{
	{
		Provider:          provider.Payme,
		Protocol:          "JSON-RPC 2.0",
		Complexity:        "medium",
		TransactionFlow:   "multi-method merchant API (6 required methods)",
		WebhookAuth:       "Basic auth with merchant key",
		Signature:         "none (Basic auth carries the proof)",
		MarketShare:       "high - most trusted in Uzbekistan",
		IntegrationEffort: "3-5 days",
		RecommendedFor:    "large enterprises and official/government payments",
		Features:          []string{"Payme wallet", "card payments", "statement reports"},
		Pros: []string{
			"most widely used",
			"high trust among users",
			"comprehensive documentation",
			"good sandbox environment",
		},
		Cons: []string{
			"complex JSON-RPC implementation",
			"requires implementing 6 merchant methods",
			"strict state machine requirements",
		},
	},
	{
		Provider:          provider.Click,
		Protocol:          "REST with two-phase commits",
		Complexity:        "low-medium",
		TransactionFlow:   "two webhooks (prepare + complete)",
		WebhookAuth:       "none (signature verification)",
		Signature:         "MD5 over a fixed field concatenation",
		MarketShare:       "high - very popular",
		IntegrationEffort: "1-3 days",
		RecommendedFor:    "e-commerce, booking platforms, small and medium business",
		Features:          []string{"invoice API", "merchant API", "payment links"},
		Pros: []string{
			"simple two-phase implementation",
			"easy invoice generation",
			"fast integration",
		},
		Cons: []string{
			"less comprehensive than Payme",
			"MD5 signature scheme",
			"limited advanced features",
		},
	},
	{
		Provider:          provider.Octo,
		Protocol:          "modern REST API",
		Complexity:        "low",
		TransactionFlow:   "single webhook notification",
		WebhookAuth:       "none (signature verification)",
		Signature:         "SHA-256 over uuid + status + secret",
		MarketShare:       "growing - newest player",
		IntegrationEffort: "1-2 days",
		RecommendedFor:    "modern apps, SaaS, recurring payments",
		Features:          []string{"card tokenization", "recurring payments", "auto-capture", "3D Secure", "refunds API"},
		Pros: []string{
			"easiest to integrate",
			"modern REST API",
			"advanced features",
			"strong signature scheme (SHA-256)",
		},
		Cons: []string{
			"newer, less market penetration",
			"fewer users than Payme/Click",
		},
	},
}

// CompareProviders returns the comparison table in canonical order.
func CompareProviders() []Comparison {
	out := make([]Comparison, len(comparisons))
	copy(out, comparisons)
	return out
}

// Recommendations maps common integration scenarios to provider advice.
func Recommendations() map[string]string {
	return map[string]string{
		"maximum_coverage":    "implement Payme + Click (covers ~95% of the market)",
		"fastest_integration": "start with Octo or Click",
		"enterprise":          "Payme is essential",
		"modern_features":     "Octo offers the best developer experience",
		"small_business":      "Click or Octo",
	}
}

// IntegrationPriority returns providers in the order a new merchant should
// integrate them.
func IntegrationPriority() []provider.ID {
	return []provider.ID{provider.Payme, provider.Click, provider.Octo}
}

// StatusEntry is a static directory entry for a provider's endpoints. The
// gateway never probes providers, so no live status is reported.
type StatusEntry struct {
	Provider      provider.ID `json:"provider"`
	ProductionURL string      `json:"productionUrl"`
	TestURL       string      `json:"testUrl,omitempty"`
	Notes         string      `json:"notes,omitempty"`
}

// ProviderStatus lists the known endpoint families per provider.
func ProviderStatus() []StatusEntry {
	return []StatusEntry{
		{Provider: provider.Payme, ProductionURL: "https://checkout.paycom.uz", TestURL: "https://checkout.test.paycom.uz"},
		{Provider: provider.Click, ProductionURL: "https://my.click.uz", Notes: "invoice host is shared between environments"},
		{Provider: provider.Octo, ProductionURL: "https://api.octo.uz", TestURL: "https://api.test.octo.uz"},
	}
}
