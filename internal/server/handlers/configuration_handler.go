package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aminedz/microimport/internal/domain/models"
	"github.com/aminedz/microimport/internal/server/middleware"
	service "github.com/aminedz/microimport/internal/service/configuration"
)

// ConfigurationHandler exposes the user settings endpoints: exchange rates,
// margin targets and recurring fixed costs.
type ConfigurationHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewConfigurationHandler constructs the HTTP handler adapter.
func NewConfigurationHandler(svc *service.Service, logger *zap.Logger) *ConfigurationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigurationHandler{svc: svc, logger: logger}
}

// List returns the user's settings, optionally filtered with ?type=.
func (h *ConfigurationHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}

	cfgType := models.ConfigurationType(c.Query("type"))
	switch cfgType {
	case "", models.ConfigExchangeRate, models.ConfigMargin, models.ConfigFixedCost:
	default:
		respondError(c, http.StatusBadRequest, "unknown configuration type")
		return
	}

	configs, err := h.svc.List(c.Request.Context(), user.ID, cfgType)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"configurations": configs})
}

type configurationRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Value       float64                  `json:"value" binding:"required"`
	Type        models.ConfigurationType `json:"type" binding:"required,oneof=exchange_rate margin fixed_cost"`
	Description string                   `json:"description"`
}

// Save stores a setting, replacing the value when the (type, name) pair
// already exists.
func (h *ConfigurationHandler) Save(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}

	var req configurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := h.svc.Upsert(c.Request.Context(), models.Configuration{
		UserID:      user.ID,
		Name:        req.Name,
		Value:       req.Value,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error("configuration save failed", zap.Error(err))
		respondStorageError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"configuration": stored})
}

type configurationUpdateRequest struct {
	Name        *string                   `json:"name"`
	Value       *float64                  `json:"value"`
	Type        *models.ConfigurationType `json:"type" binding:"omitempty,oneof=exchange_rate margin fixed_cost"`
	Description *string                   `json:"description"`
}

// Update applies a partial edit to one setting.
func (h *ConfigurationHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req configurationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), user.ID, id, service.UpdateInput{
		Name:        req.Name,
		Value:       req.Value,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"configuration": updated})
}

// Delete removes one setting.
func (h *ConfigurationHandler) Delete(c *gin.Context) {
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

	respondMessage(c, http.StatusOK, "configuration deleted")
}
