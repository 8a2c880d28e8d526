package advisor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getspace/payment-uz/internal/advisor"
	"github.com/getspace/payment-uz/internal/provider"
)

func TestCompareProvidersOrderAndCoverage(t *testing.T) {
	t.Parallel()

	table := advisor.CompareProviders()
	require.Len(t, table, 3)
	require.Equal(t, provider.Payme, table[0].Provider)
	require.Equal(t, provider.Click, table[1].Provider)
	require.Equal(t, provider.Octo, table[2].Provider)

	for _, entry := range table {
		require.NotEmpty(t, entry.Protocol, "%s protocol", entry.Provider)
		require.NotEmpty(t, entry.MarketShare, "%s market share", entry.Provider)
		require.NotEmpty(t, entry.IntegrationEffort, "%s effort", entry.Provider)
		require.NotEmpty(t, entry.RecommendedFor, "%s recommendation", entry.Provider)
	}
}

func TestCompareProvidersReturnsCopy(t *testing.T) {
	t.Parallel()

	first := advisor.CompareProviders()
	first[0].Protocol = "mutated"
	second := advisor.CompareProviders()
	require.Equal(t, "JSON-RPC 2.0", second[0].Protocol)
}

func TestIntegrationGuide(t *testing.T) {
	t.Parallel()

	for _, id := range provider.All() {
		guide, ok := advisor.IntegrationGuide(id)
		require.True(t, ok, "guide for %s", id)
		require.Equal(t, id, guide.Provider)
		require.NotEmpty(t, guide.Overview)
		require.NotEmpty(t, guide.PaymentFlow)
		require.NotEmpty(t, guide.BestPractices)
	}

	_, ok := advisor.IntegrationGuide(provider.ID("stripe"))
	require.False(t, ok)
}

func TestProviderStatusCoversAllProviders(t *testing.T) {
	t.Parallel()

	entries := advisor.ProviderStatus()
	require.Len(t, entries, len(provider.All()))
	for i, id := range provider.All() {
		require.Equal(t, id, entries[i].Provider)
		require.NotEmpty(t, entries[i].ProductionURL)
	}
}
