package calculation

import (
	"github.com/aminedz/microimport/internal/domain/models"
)

// ConvertToLocal converts an amount in the given currency to dinars using the
// supplied rate table. The second return value reports whether the hard-coded
// fallback rate was used because the currency was unknown or its rate was not
// a positive number.
//
// Non-positive amounts convert to 0, an empty code or the local-currency
// sentinel passes the amount through unchanged. The conversion is best-effort
// and never fails.
func ConvertToLocal(amount float64, currency string, rates models.RateTable) (float64, bool) {
	if amount <= 0 {
		return 0, false
	}
	if currency == "" || currency == LocalCurrency {
		return amount, false
	}

	rate, ok := rates.Rate(currency)
	if !ok || rate <= 0 {
		return amount * FallbackRate, true
	}
	return amount * rate, false
}
