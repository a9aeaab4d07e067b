package calculation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aminedz/microimport/internal/domain/models"
)

func TestCalculateVoyageEmptyLines(t *testing.T) {
	svc := NewService(nil)

	calc := svc.CalculateVoyage(nil, "EUR", models.FixedCosts{Visa: 12000}, 500, models.DefaultRates())

	require.Zero(t, calc.TotalPurchaseCost)
	require.Zero(t, calc.CustomsValue)
	require.Zero(t, calc.BaseLevy)
	require.Zero(t, calc.SolidarityContribution)
	require.Zero(t, calc.IncidentalFee)
	require.Zero(t, calc.CustomsFeesTotal)
	require.Zero(t, calc.FixedCostsTotal)
	require.Zero(t, calc.SupplementaryFees)
	require.Zero(t, calc.TotalCost)
	require.Zero(t, calc.TotalRevenue)
	require.Zero(t, calc.NetProfit)
	require.Zero(t, calc.MarginPercent)
	require.Zero(t, calc.ROIPercent)
	require.Empty(t, calc.Details)
}

// One batch of ten units bought at 100 EUR, sold at 2000 DA each, rate 165.
// The voyage is deliberately loss-making; negative profit is valid output.
func TestCalculateVoyageSingleLine(t *testing.T) {
	svc := NewService(nil)
	lines := []models.Merchandise{{
		ID:                1,
		Name:              "phone cases",
		Quantity:          10,
		UnitPurchasePrice: 100,
		UnitSalePrice:     2000,
	}}

	calc := svc.CalculateVoyage(lines, "EUR", models.FixedCosts{}, 0, models.RateTable{EUR: 165})

	require.Equal(t, 165000.0, calc.TotalPurchaseCost)
	require.Equal(t, 165000.0, calc.CustomsValue)
	require.Equal(t, 8250.0, calc.BaseLevy)
	require.Equal(t, 4950.0, calc.SolidarityContribution)
	require.Equal(t, 2475.0, calc.IncidentalFee)
	require.Equal(t, 15675.0, calc.CustomsFeesTotal)
	require.Equal(t, 180675.0, calc.TotalCost)
	require.Equal(t, 20000.0, calc.TotalRevenue)
	require.Equal(t, -160675.0, calc.NetProfit)
	require.Equal(t, calc.NetProfit, calc.GrossMargin)

	require.Len(t, calc.Details, 1)
	detail := calc.Details[0]
	require.Equal(t, "phone cases", detail.Name)
	require.Equal(t, 165000.0, detail.CustomsValue)
	require.Equal(t, 180675.0, detail.TotalCost)
	require.Equal(t, 20000.0, detail.SaleRevenue)
}

func TestCalculateVoyageTotalCostInvariant(t *testing.T) {
	svc := NewService(nil)
	lines := []models.Merchandise{
		{ID: 1, Name: "fabric", Quantity: 40, UnitPurchasePrice: 12.5, UnitSalePrice: 3500},
		{ID: 2, Name: "chargers", Quantity: 25, UnitPurchasePrice: 8, UnitSalePrice: 1900},
	}
	fixed := models.FixedCosts{OutboundTransport: 45000, ReturnTransport: 45000, Lodging: 30000, Meals: 9000}

	calc := svc.CalculateVoyage(lines, "USD", fixed, 7500, models.DefaultRates())

	require.InDelta(t, calc.TotalPurchaseCost+calc.CustomsFeesTotal+calc.FixedCostsTotal+calc.SupplementaryFees, calc.TotalCost, 1e-9)
	require.InDelta(t, calc.TotalRevenue-calc.TotalCost, calc.NetProfit, 1e-9)
	require.InDelta(t, calc.BaseLevy+calc.SolidarityContribution+calc.IncidentalFee, calc.CustomsFeesTotal, 1e-9)
	require.Equal(t, fixed.Total(), calc.FixedCostsTotal)
	require.Len(t, calc.Details, 2)
	// Details preserve insertion order.
	require.Equal(t, "fabric", calc.Details[0].Name)
	require.Equal(t, "chargers", calc.Details[1].Name)
}

// The calculator is additive over merchandise lines: computing two disjoint
// halves separately sums to the whole.
func TestCalculateVoyageAdditivity(t *testing.T) {
	svc := NewService(nil)
	l1 := []models.Merchandise{
		{ID: 1, Name: "a", Quantity: 3, UnitPurchasePrice: 120, UnitSalePrice: 25000},
		{ID: 2, Name: "b", Quantity: 7, UnitPurchasePrice: 55.25, UnitSalePrice: 11000},
	}
	l2 := []models.Merchandise{
		{ID: 3, Name: "c", Quantity: 11, UnitPurchasePrice: 9.99, UnitSalePrice: 2100},
	}
	rates := models.DefaultRates()

	whole := svc.CalculateVoyage(append(append([]models.Merchandise{}, l1...), l2...), "EUR", models.FixedCosts{}, 0, rates)
	first := svc.CalculateVoyage(l1, "EUR", models.FixedCosts{}, 0, rates)
	second := svc.CalculateVoyage(l2, "EUR", models.FixedCosts{}, 0, rates)

	require.InDelta(t, first.TotalPurchaseCost+second.TotalPurchaseCost, whole.TotalPurchaseCost, 1e-9)
	require.InDelta(t, first.TotalRevenue+second.TotalRevenue, whole.TotalRevenue, 1e-9)
	require.InDelta(t, first.CustomsFeesTotal+second.CustomsFeesTotal, whole.CustomsFeesTotal, 1e-9)
	require.Equal(t, len(first.Details)+len(second.Details), len(whole.Details))
}

func TestCalculateVoyageSkipsIncompleteLines(t *testing.T) {
	svc := NewService(nil)
	lines := []models.Merchandise{
		{ID: 1, Name: "no purchase price", Quantity: 5, UnitSalePrice: 900},
		{ID: 2, Name: "no quantity", UnitPurchasePrice: 30, UnitSalePrice: 900},
		{ID: 3, Name: "no sale price", Quantity: 5, UnitPurchasePrice: 30},
		{ID: 4, Name: "complete", Quantity: 2, UnitPurchasePrice: 10, UnitSalePrice: 2000},
	}

	calc := svc.CalculateVoyage(lines, "USD", models.FixedCosts{}, 0, models.DefaultRates())

	require.Len(t, calc.Details, 1)
	require.Equal(t, "complete", calc.Details[0].Name)
	require.Equal(t, 3000.0, calc.TotalPurchaseCost) // 2 x 10 USD x 150
	require.Equal(t, 4000.0, calc.TotalRevenue)
}

// Skipped lines leave fixed and supplementary costs in the totals; only the
// literal empty input short-circuits to all zeros.
func TestCalculateVoyageAllLinesInvalid(t *testing.T) {
	svc := NewService(nil)
	lines := []models.Merchandise{
		{ID: 1, Name: "draft", Quantity: 0, UnitPurchasePrice: 10, UnitSalePrice: 100},
	}
	fixed := models.FixedCosts{Visa: 15000}

	calc := svc.CalculateVoyage(lines, "EUR", fixed, 2000, models.DefaultRates())

	require.Empty(t, calc.Details)
	require.Zero(t, calc.TotalRevenue)
	require.Equal(t, 15000.0, calc.FixedCostsTotal)
	require.Equal(t, 17000.0, calc.TotalCost)
	require.Equal(t, -17000.0, calc.NetProfit)
	// Revenue is zero, so the margin guard returns 0 instead of dividing.
	require.Zero(t, calc.MarginPercent)
	require.InDelta(t, -100.0, calc.ROIPercent, 1e-9)
}

func TestFixedCostsTotal(t *testing.T) {
	fixed := models.FixedCosts{
		OutboundTransport: 1, ReturnTransport: 2, Lodging: 3, Meals: 4,
		Visa: 5, Insurance: 6, LocalTransport: 7, Other: 8,
	}
	require.Equal(t, 36.0, fixed.Total())
	require.Zero(t, models.FixedCosts{}.Total())
}

func TestExceedsLegalCeiling(t *testing.T) {
	require.False(t, ExceedsLegalCeiling(models.VoyageCalculation{CustomsValue: LegalCeilingPerVoyage}))
	require.True(t, ExceedsLegalCeiling(models.VoyageCalculation{CustomsValue: LegalCeilingPerVoyage + 1}))
}
