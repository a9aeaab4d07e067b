package calculation

import (
	"math"

	"github.com/aminedz/microimport/internal/domain/models"
)

// SuggestPrices derives three unit sale price tiers from a candidate unit
// purchase price by loading it with the customs fee decomposition and the
// configured margins. Prices round up: a suggestion is never below the
// computed threshold.
//
// quantity and fixedCosts are accepted for interface parity with the voyage
// calculation but do not enter the formula; the suggestion is strictly
// per-unit and does not amortize fixed costs.
func (s *Service) SuggestPrices(unitPurchasePrice float64, currency string, quantity int, fixedCosts models.FixedCosts, rates models.RateTable, margins models.MarginTargets) models.PriceSuggestion {
	_ = quantity
	_ = fixedCosts

	if unitPurchasePrice <= 0 {
		return models.PriceSuggestion{}
	}

	purchaseLocal := s.convert(unitPurchasePrice, currency, rates)

	customsValue := purchaseLocal
	baseLevy := customsValue * BaseLevyRate
	solidarity := customsValue * SolidarityRate
	incidental := customsValue * IncidentalFeeRate
	unitTotalCost := customsValue + baseLevy + solidarity + incidental

	return models.PriceSuggestion{
		Min:           math.Ceil(unitTotalCost * (1 + margins.Min/100)),
		Recommended:   math.Ceil(unitTotalCost * (1 + margins.Recommended/100)),
		Optimal:       math.Ceil(unitTotalCost * (1 + margins.Optimal/100)),
		UnitTotalCost: math.Ceil(unitTotalCost),
	}
}
