package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoyageStatus tracks where a voyage sits in its lifecycle.
type VoyageStatus string

const (
	StatusPlanned    VoyageStatus = "planned"
	StatusInProgress VoyageStatus = "in_progress"
	StatusCompleted  VoyageStatus = "completed"
	StatusCancelled  VoyageStatus = "cancelled"
)

// Merchandise represents one product batch bought during a voyage. Purchase
// prices are denominated in the voyage currency, sale prices in dinars.
type Merchandise struct {
	ID                int     `bson:"id" json:"id"`
	Name              string  `bson:"name" json:"name" binding:"required"`
	Quantity          int     `bson:"quantity" json:"quantity"`
	UnitPurchasePrice float64 `bson:"unit_purchase_price" json:"unitPurchasePrice"`
	UnitSalePrice     float64 `bson:"unit_sale_price" json:"unitSalePrice"`
	Weight            float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Volume            float64 `bson:"volume,omitempty" json:"volume,omitempty"`
}

// FixedCosts breaks the per-voyage overhead into named buckets. Absent
// buckets are zero.
type FixedCosts struct {
	OutboundTransport float64 `bson:"outbound_transport" json:"outboundTransport"`
	ReturnTransport   float64 `bson:"return_transport" json:"returnTransport"`
	Lodging           float64 `bson:"lodging" json:"lodging"`
	Meals             float64 `bson:"meals" json:"meals"`
	Visa              float64 `bson:"visa" json:"visa"`
	Insurance         float64 `bson:"insurance" json:"insurance"`
	LocalTransport    float64 `bson:"local_transport" json:"localTransport"`
	Other             float64 `bson:"other" json:"other"`
}

// Total sums every bucket.
func (f FixedCosts) Total() float64 {
	return f.OutboundTransport + f.ReturnTransport + f.Lodging + f.Meals +
		f.Visa + f.Insurance + f.LocalTransport + f.Other
}

// RateTable maps the supported foreign currencies to dinars per unit. The key
// set is closed, so named fields beat a generic map here.
type RateTable struct {
	EUR float64 `bson:"eur" json:"EUR"`
	USD float64 `bson:"usd" json:"USD"`
	TRY float64 `bson:"try" json:"TRY"`
	AED float64 `bson:"aed" json:"AED"`
	CNY float64 `bson:"cny" json:"CNY"`
}

// Rate returns the configured rate for a currency code and whether the code
// is one of the supported currencies.
func (t RateTable) Rate(code string) (float64, bool) {
	switch code {
	case "EUR":
		return t.EUR, true
	case "USD":
		return t.USD, true
	case "TRY":
		return t.TRY, true
	case "AED":
		return t.AED, true
	case "CNY":
		return t.CNY, true
	default:
		return 0, false
	}
}

// DefaultRates returns the built-in exchange rates used until the trader
// configures their own.
func DefaultRates() RateTable {
	return RateTable{EUR: 165, USD: 150, TRY: 4.5, AED: 41, CNY: 21}
}

// MarginTargets holds the three margin percentages driving price suggestions.
type MarginTargets struct {
	Min         float64 `bson:"min" json:"min"`
	Recommended float64 `bson:"recommended" json:"recommended"`
	Optimal     float64 `bson:"optimal" json:"optimal"`
}

// DefaultMargins returns the built-in margin targets.
func DefaultMargins() MarginTargets {
	return MarginTargets{Min: 25, Recommended: 40, Optimal: 60}
}

// LineDetail mirrors the cost decomposition of a single merchandise line, in
// dinars, at batch scale.
type LineDetail struct {
	Name                   string  `bson:"name" json:"name"`
	Quantity               int     `bson:"quantity" json:"quantity"`
	PurchaseCost           float64 `bson:"purchase_cost" json:"purchaseCost"`
	CustomsValue           float64 `bson:"customs_value" json:"customsValue"`
	BaseLevy               float64 `bson:"base_levy" json:"baseLevy"`
	SolidarityContribution float64 `bson:"solidarity_contribution" json:"solidarityContribution"`
	IncidentalFee          float64 `bson:"incidental_fee" json:"incidentalFee"`
	TotalCost              float64 `bson:"total_cost" json:"totalCost"`
	SaleRevenue            float64 `bson:"sale_revenue" json:"saleRevenue"`
}

// VoyageCalculation is the durable cost/profit breakdown persisted with each
// voyage. All amounts are dinars; percentages are plain values (12.5 means
// 12.5%). It is recomputed from the inputs on every change, never patched.
type VoyageCalculation struct {
	TotalPurchaseCost      float64      `bson:"total_purchase_cost" json:"totalPurchaseCost"`
	CustomsValue           float64      `bson:"customs_value" json:"customsValue"`
	BaseLevy               float64      `bson:"base_levy" json:"baseLevy"`
	SolidarityContribution float64      `bson:"solidarity_contribution" json:"solidarityContribution"`
	IncidentalFee          float64      `bson:"incidental_fee" json:"incidentalFee"`
	CustomsFeesTotal       float64      `bson:"customs_fees_total" json:"customsFeesTotal"`
	FixedCostsTotal        float64      `bson:"fixed_costs_total" json:"fixedCostsTotal"`
	SupplementaryFees      float64      `bson:"supplementary_fees" json:"supplementaryFees"`
	TotalCost              float64      `bson:"total_cost" json:"totalCost"`
	TotalRevenue           float64      `bson:"total_revenue" json:"totalRevenue"`
	NetProfit              float64      `bson:"net_profit" json:"netProfit"`
	GrossMargin            float64      `bson:"gross_margin" json:"grossMargin"`
	MarginPercent          float64      `bson:"margin_percent" json:"marginPercent"`
	ROIPercent             float64      `bson:"roi_percent" json:"roiPercent"`
	Details                []LineDetail `bson:"details" json:"details"`
}

// PriceSuggestion carries the three suggested unit sale prices for a
// candidate purchase price. Never persisted.
type PriceSuggestion struct {
	Min           float64 `json:"min"`
	Recommended   float64 `json:"recommended"`
	Optimal       float64 `json:"optimal"`
	UnitTotalCost float64 `json:"unitTotalCost"`
}

// Voyage is one import journey with its merchandise and the calculation
// snapshot produced when it was last saved.
type Voyage struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"user_id" json:"userId"`
	Destination       string             `bson:"destination" json:"destination"`
	Date              time.Time          `bson:"date" json:"date"`
	Currency          string             `bson:"currency" json:"currency"`
	Status            VoyageStatus       `bson:"status" json:"status"`
	Merchandise       []Merchandise      `bson:"merchandise" json:"merchandise"`
	FixedCosts        FixedCosts         `bson:"fixed_costs" json:"fixedCosts"`
	SupplementaryFees float64            `bson:"supplementary_fees" json:"supplementaryFees"`
	RateSnapshot      RateTable          `bson:"rate_snapshot" json:"rateSnapshot"`
	Calculation       VoyageCalculation  `bson:"calculation" json:"calculation"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Statistics aggregates saved voyages for the dashboard.
type Statistics struct {
	TotalVoyages      int            `json:"totalVoyages"`
	TotalRevenue      float64        `json:"totalRevenue"`
	TotalProfit       float64        `json:"totalProfit"`
	TotalCost         float64        `json:"totalCost"`
	AverageMargin     float64        `json:"averageMargin"`
	AverageROI        float64        `json:"averageROI"`
	VoyagesThisMonth  int            `json:"voyagesThisMonth"`
	StatusCounts      map[string]int `json:"statusCounts"`
	DestinationCounts map[string]int `json:"destinationCounts"`
}
