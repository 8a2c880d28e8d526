package provider_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getspace/payment-uz/internal/provider"
)

func TestParseID(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]provider.ID{
		"payme": provider.Payme,
		"CLICK": provider.Click,
		" octo": provider.Octo,
	} {
		id, err := provider.ParseID(raw)
		require.NoError(t, err)
		require.Equal(t, want, id)
	}

	_, err := provider.ParseID("stripe")
	require.ErrorIs(t, err, provider.ErrProviderNotSupported)
}

func TestParseEnvironment(t *testing.T) {
	t.Parallel()

	env, err := provider.ParseEnvironment("")
	require.NoError(t, err)
	require.Equal(t, provider.EnvTest, env)

	env, err = provider.ParseEnvironment("Production")
	require.NoError(t, err)
	require.Equal(t, provider.EnvProduction, env)

	_, err = provider.ParseEnvironment("staging")
	require.Error(t, err)
}
