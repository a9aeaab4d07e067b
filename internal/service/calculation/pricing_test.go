package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aminedz/microimport/internal/domain/models"
)

func TestSuggestPricesMarginTiers(t *testing.T) {
	svc := NewService(nil)
	rates := models.RateTable{EUR: 165}
	margins := models.MarginTargets{Min: 25, Recommended: 40, Optimal: 60}

	got := svc.SuggestPrices(100, "EUR", 1, models.FixedCosts{}, rates, margins)

	// Unit cost: 16500 + 825 + 495 + 247.5 = 18067.5 DA.
	require.Equal(t, 18068.0, got.UnitTotalCost)
	require.Equal(t, 22585.0, got.Min)   // ceil(18067.5 x 1.25)
	require.Equal(t, 25295.0, got.Recommended)
	require.Equal(t, 28908.0, got.Optimal) // 18067.5 x 1.6 == 28908 exactly in doubles
}

func TestSuggestPricesZeroPurchasePrice(t *testing.T) {
	svc := NewService(nil)

	for _, price := range []float64{0, -10} {
		got := svc.SuggestPrices(price, "EUR", 5, models.FixedCosts{}, models.DefaultRates(), models.DefaultMargins())
		require.Zero(t, got.Min)
		require.Zero(t, got.Recommended)
		require.Zero(t, got.Optimal)
		require.Zero(t, got.UnitTotalCost)
	}
}

// Suggested prices are whole dinars and never below the raw margin-loaded
// unit cost.
func TestSuggestPricesRoundsUp(t *testing.T) {
	svc := NewService(nil)
	rates := models.DefaultRates()
	margins := models.MarginTargets{Min: 17, Recommended: 33.5, Optimal: 61.2}

	for _, price := range []float64{0.07, 1, 9.99, 123.456, 4000} {
		got := svc.SuggestPrices(price, "USD", 1, models.FixedCosts{}, rates, margins)

		unitCost := price * 150 * (1 + BaseLevyRate + SolidarityRate + IncidentalFeeRate)
		for tier, suggested := range map[string]struct {
			value  float64
			margin float64
		}{
			"min":         {got.Min, margins.Min},
			"recommended": {got.Recommended, margins.Recommended},
			"optimal":     {got.Optimal, margins.Optimal},
		} {
			require.Equal(t, math.Trunc(suggested.value), suggested.value, tier)
			require.GreaterOrEqual(t, suggested.value, unitCost*(1+suggested.margin/100)-1e-6, tier)
		}
	}
}

// Quantity and fixed costs are accepted but do not amortize into the unit
// suggestion; the formula is strictly per-unit. Known limitation carried over
// from the original pricing behavior.
func TestSuggestPricesIgnoresQuantityAndFixedCosts(t *testing.T) {
	svc := NewService(nil)
	rates := models.DefaultRates()
	margins := models.DefaultMargins()

	base := svc.SuggestPrices(80, "EUR", 1, models.FixedCosts{}, rates, margins)
	loaded := svc.SuggestPrices(80, "EUR", 500, models.FixedCosts{Lodging: 90000, Visa: 20000}, rates, margins)

	require.Equal(t, base, loaded)
}
