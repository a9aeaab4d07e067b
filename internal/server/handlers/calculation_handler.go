package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aminedz/microimport/internal/domain/models"
	"github.com/aminedz/microimport/internal/server/middleware"
	"github.com/aminedz/microimport/internal/service/calculation"
	"github.com/aminedz/microimport/internal/service/configuration"
	voyagesvc "github.com/aminedz/microimport/internal/service/voyage"
)

// CalculationHandler exposes the stateless engine endpoints: the live voyage
// preview and the sale price suggestion.
type CalculationHandler struct {
	voyages *voyagesvc.Service
	configs *configuration.Service
	calc    *calculation.Service
	logger  *zap.Logger
}

// NewCalculationHandler constructs the HTTP handler adapter.
func NewCalculationHandler(voyages *voyagesvc.Service, configs *configuration.Service, calc *calculation.Service, logger *zap.Logger) *CalculationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculationHandler{voyages: voyages, configs: configs, calc: calc, logger: logger}
}

type previewRequest struct {
	Merchandise       []models.Merchandise `json:"merchandise"`
	Currency          string               `json:"currency" binding:"required"`
	FixedCosts        models.FixedCosts    `json:"fixedCosts"`
	SupplementaryFees float64              `json:"supplementaryFees" binding:"gte=0"`
	Rates             *models.RateTable    `json:"rates"`
}

// Preview runs the cost calculation over a candidate voyage without storing
// anything.
func (h *CalculationHandler) Preview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}

	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	calc, exceeded, err := h.voyages.Preview(c.Request.Context(), user.ID, voyagesvc.Input{
		Currency:          req.Currency,
		Merchandise:       req.Merchandise,
		FixedCosts:        req.FixedCosts,
		SupplementaryFees: req.SupplementaryFees,
		Rates:             req.Rates,
	})
	if err != nil {
		h.logger.Error("calculation preview failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"calculation":     calc,
		"ceilingExceeded": exceeded,
	})
}

type suggestPriceRequest struct {
	UnitPurchasePrice float64               `json:"unitPurchasePrice" binding:"required"`
	Currency          string                `json:"currency" binding:"required"`
	Quantity          int                   `json:"quantity"`
	FixedCosts        models.FixedCosts     `json:"fixedCosts"`
	Rates             *models.RateTable     `json:"rates"`
	Margins           *models.MarginTargets `json:"margins"`
}

// SuggestPrice derives the three sale price tiers for a candidate unit
// purchase price. Rates and margins default to the user's configured values
// when not supplied.
func (h *CalculationHandler) SuggestPrice(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}

	var req suggestPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	rates := models.RateTable{}
	if req.Rates != nil {
		rates = *req.Rates
	} else {
		resolved, err := h.configs.RatesFor(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "internal error")
			return
		}
		rates = resolved
	}

	margins := models.MarginTargets{}
	if req.Margins != nil {
		margins = *req.Margins
	} else {
		resolved, err := h.configs.MarginsFor(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "internal error")
			return
		}
		margins = resolved
	}

	suggestion := h.calc.SuggestPrices(req.UnitPurchasePrice, req.Currency, req.Quantity, req.FixedCosts, rates, margins)
	respondData(c, http.StatusOK, gin.H{"suggestion": suggestion})
}
