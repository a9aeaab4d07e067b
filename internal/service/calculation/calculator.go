package calculation

import (
	"go.uber.org/zap"

	"github.com/aminedz/microimport/internal/domain/models"
)

// Service runs the voyage cost/profit computations. It holds no state beyond
// a logger; every method is a pure function of its inputs.
type Service struct {
	logger *zap.Logger
}

// NewService wires a calculation service instance.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// convert wraps ConvertToLocal and surfaces fallback usage as a warning, so a
// broken rate configuration shows up in the logs instead of silently skewing
// every total.
func (s *Service) convert(amount float64, currency string, rates models.RateTable) float64 {
	value, usedFallback := ConvertToLocal(amount, currency, rates)
	if usedFallback {
		s.logger.Warn("no usable exchange rate, applying fallback",
			zap.String("currency", currency),
			zap.Float64("fallback_rate", FallbackRate))
	}
	return value
}

// CalculateVoyage decomposes every merchandise line into its customs value
// and fee components and folds them into the voyage-level totals.
//
// Lines with a zero purchase price, quantity or sale price are treated as
// incomplete data entry: they are logged and excluded, never fatal. An empty
// line list yields an all-zero result.
func (s *Service) CalculateVoyage(lines []models.Merchandise, currency string, fixedCosts models.FixedCosts, supplementaryFees float64, rates models.RateTable) models.VoyageCalculation {
	if len(lines) == 0 {
		return models.VoyageCalculation{Details: []models.LineDetail{}}
	}

	var (
		totalPurchase  float64
		totalRevenue   float64
		customsValue   float64
		baseLevy       float64
		solidarity     float64
		incidentalFees float64
	)
	details := make([]models.LineDetail, 0, len(lines))

	for _, line := range lines {
		if line.UnitPurchasePrice == 0 || line.Quantity == 0 || line.UnitSalePrice == 0 {
			s.logger.Warn("skipping incomplete merchandise line", zap.String("name", line.Name))
			continue
		}

		purchaseCost := line.UnitPurchasePrice * float64(line.Quantity)
		purchaseCostLocal := s.convert(purchaseCost, currency, rates)
		saleRevenue := line.UnitSalePrice * float64(line.Quantity)

		// The customs base is the purchase cost alone; transport and fixed
		// costs are kept out of it.
		lineCustomsValue := purchaseCostLocal
		lineBaseLevy := lineCustomsValue * BaseLevyRate
		lineSolidarity := lineCustomsValue * SolidarityRate
		lineIncidental := lineCustomsValue * IncidentalFeeRate
		lineTotalCost := lineCustomsValue + lineBaseLevy + lineSolidarity + lineIncidental

		totalPurchase += purchaseCostLocal
		customsValue += lineCustomsValue
		baseLevy += lineBaseLevy
		solidarity += lineSolidarity
		incidentalFees += lineIncidental
		totalRevenue += saleRevenue

		details = append(details, models.LineDetail{
			Name:                   line.Name,
			Quantity:               line.Quantity,
			PurchaseCost:           purchaseCostLocal,
			CustomsValue:           lineCustomsValue,
			BaseLevy:               lineBaseLevy,
			SolidarityContribution: lineSolidarity,
			IncidentalFee:          lineIncidental,
			TotalCost:              lineTotalCost,
			SaleRevenue:            saleRevenue,
		})
	}

	customsFeesTotal := baseLevy + solidarity + incidentalFees
	fixedCostsTotal := fixedCosts.Total()
	totalCost := totalPurchase + customsFeesTotal + fixedCostsTotal + supplementaryFees
	netProfit := totalRevenue - totalCost

	var marginPercent, roiPercent float64
	if totalRevenue > 0 {
		marginPercent = netProfit / totalRevenue * 100
	}
	if totalCost > 0 {
		roiPercent = netProfit / totalCost * 100
	}

	return models.VoyageCalculation{
		TotalPurchaseCost:      totalPurchase,
		CustomsValue:           customsValue,
		BaseLevy:               baseLevy,
		SolidarityContribution: solidarity,
		IncidentalFee:          incidentalFees,
		CustomsFeesTotal:       customsFeesTotal,
		FixedCostsTotal:        fixedCostsTotal,
		SupplementaryFees:      supplementaryFees,
		TotalCost:              totalCost,
		TotalRevenue:           totalRevenue,
		NetProfit:              netProfit,
		GrossMargin:            netProfit,
		MarginPercent:          marginPercent,
		ROIPercent:             roiPercent,
		Details:                details,
	}
}

// ExceedsLegalCeiling reports whether a calculation's aggregate customs value
// is above the per-voyage legal ceiling. Enforcement stays with the caller.
func ExceedsLegalCeiling(calc models.VoyageCalculation) bool {
	return calc.CustomsValue > LegalCeilingPerVoyage
}
