package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aminedz/microimport/internal/domain/models"
	"github.com/aminedz/microimport/internal/server/middleware"
	"github.com/aminedz/microimport/internal/service/export"
	service "github.com/aminedz/microimport/internal/service/voyage"
)

// VoyageHandler exposes the voyage CRUD, statistics and export endpoints.
type VoyageHandler struct {
	svc     *service.Service
	exports *export.Service
	logger  *zap.Logger
}

// NewVoyageHandler constructs the HTTP handler adapter.
func NewVoyageHandler(svc *service.Service, exports *export.Service, logger *zap.Logger) *VoyageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VoyageHandler{svc: svc, exports: exports, logger: logger}
}

type voyageRequest struct {
	Destination       string               `json:"destination" binding:"required"`
	Date              string               `json:"date" binding:"required"`
	Currency          string               `json:"currency" binding:"required"`
	Status            models.VoyageStatus  `json:"status" binding:"omitempty,oneof=planned in_progress completed cancelled"`
	Merchandise       []models.Merchandise `json:"merchandise"`
	FixedCosts        models.FixedCosts    `json:"fixedCosts"`
	SupplementaryFees float64              `json:"supplementaryFees" binding:"gte=0"`
	Rates             *models.RateTable    `json:"rates"`
}

func (r voyageRequest) toInput() (service.Input, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return service.Input{}, err
	}

	return service.Input{
		Destination:       r.Destination,
		Date:              date,
		Currency:          r.Currency,
		Status:            r.Status,
		Merchandise:       r.Merchandise,
		FixedCosts:        r.FixedCosts,
		SupplementaryFees: r.SupplementaryFees,
		Rates:             r.Rates,
	}, nil
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// List returns the user's voyages, most recent first.
func (h *VoyageHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}

	voyages, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"voyages": voyages})
}

// Get returns one voyage.
func (h *VoyageHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	voyage, err := h.svc.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"voyage": voyage})
}

// Create computes and stores a new voyage.
func (h *VoyageHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}

	var req voyageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), user.ID, in)
	if err != nil {
		h.logger.Error("voyage create failed", zap.Error(err))
		respondStorageError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"voyage":          result.Voyage,
		"ceilingExceeded": result.CeilingExceeded,
	})
}

// Update recomputes and replaces a voyage.
func (h *VoyageHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req voyageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), user.ID, id, in)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"voyage":          result.Voyage,
		"ceilingExceeded": result.CeilingExceeded,
	})
}

// Delete removes a voyage.
func (h *VoyageHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondStorageError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "voyage deleted")
}

// Statistics aggregates the user's voyages for the dashboard.
func (h *VoyageHandler) Statistics(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}

	stats, err := h.svc.Statistics(c.Request.Context(), user.ID)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"statistics": stats})
}

// Report streams the voyage cost report as a PDF document.
func (h *VoyageHandler) Report(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	voyage, err := h.svc.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	doc, filename, err := h.exports.VoyagePDF(voyage, user)
	if err != nil {
		h.logger.Error("voyage report failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "unable to render report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// Export appends a one-row summary of the voyage to the configured
// spreadsheet.
func (h *VoyageHandler) Export(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	voyage, err := h.svc.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	if err := h.exports.AppendToSheet(c.Request.Context(), voyage); err != nil {
		if errors.Is(err, export.ErrSheetsDisabled) {
			respondError(c, http.StatusServiceUnavailable, "sheets export is not configured")
			return
		}
		h.logger.Error("voyage export failed", zap.Error(err))
		respondError(c, http.StatusBadGateway, "unable to export voyage")
		return
	}

	respondMessage(c, http.StatusOK, "voyage exported")
}
