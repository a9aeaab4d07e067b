package calculation

// Rates of the simplified Algerian import fiscal regime (2025). Each is
// applied to the customs value of a merchandise line.
const (
	BaseLevyRate      = 0.05  // flat duties-and-taxes levy
	SolidarityRate    = 0.03  // solidarity contribution
	IncidentalFeeRate = 0.015 // banking/administrative fees
)

// LocalCurrency is the sentinel code that bypasses conversion entirely.
const LocalCurrency = "DA"

// FallbackRate is applied when a currency has no usable configured rate. The
// conversion never fails; callers are told when this kicked in.
const FallbackRate = 150

// Compliance thresholds. The engine computes, callers enforce.
const (
	LegalCeilingPerVoyage = 1_800_000 // dinars of customs value per voyage
	MaxVoyagesPerMonth    = 2
)
