package calculation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aminedz/microimport/internal/domain/models"
)

func TestConvertToLocalPassthrough(t *testing.T) {
	rates := models.DefaultRates()

	for _, amount := range []float64{1, 42.5, 1_800_000} {
		got, fallback := ConvertToLocal(amount, LocalCurrency, rates)
		require.Equal(t, amount, got)
		require.False(t, fallback)
	}

	// An empty code behaves like the local currency.
	got, fallback := ConvertToLocal(250, "", rates)
	require.Equal(t, 250.0, got)
	require.False(t, fallback)
}

func TestConvertToLocalKnownRates(t *testing.T) {
	rates := models.RateTable{EUR: 165, USD: 150, TRY: 4.5, AED: 41, CNY: 21}

	cases := []struct {
		currency string
		amount   float64
		want     float64
	}{
		{"EUR", 100, 16500},
		{"USD", 10, 1500},
		{"TRY", 1000, 4500},
		{"AED", 2, 82},
		{"CNY", 3, 63},
	}
	for _, tc := range cases {
		got, fallback := ConvertToLocal(tc.amount, tc.currency, rates)
		require.Equal(t, tc.want, got, tc.currency)
		require.False(t, fallback, tc.currency)
	}
}

func TestConvertToLocalFallback(t *testing.T) {
	// Unknown code against an empty table: best-effort fallback, no error.
	got, fallback := ConvertToLocal(100, "XYZ", models.RateTable{})
	require.Equal(t, 15000.0, got)
	require.True(t, fallback)

	// A configured-but-zero rate also triggers the fallback.
	got, fallback = ConvertToLocal(10, "EUR", models.RateTable{EUR: 0})
	require.Equal(t, 1500.0, got)
	require.True(t, fallback)
}

func TestConvertToLocalNonPositiveAmount(t *testing.T) {
	rates := models.DefaultRates()

	got, fallback := ConvertToLocal(0, "EUR", rates)
	require.Zero(t, got)
	require.False(t, fallback)

	got, fallback = ConvertToLocal(-50, "USD", rates)
	require.Zero(t, got)
	require.False(t, fallback)
}
