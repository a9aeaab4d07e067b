package configuration

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/aminedz/microimport/internal/domain/models"
	"github.com/aminedz/microimport/internal/repository/mongodb"
)

// SystemUserID scopes configuration entries that act as organization-wide
// defaults (e.g. rates refreshed by the scheduled sync). Per-user entries
// override them.
var SystemUserID = primitive.NilObjectID

// Service manages the user-editable settings and projects them into the
// typed tables the calculation engine consumes.
type Service struct {
	repo   *mongodb.ConfigurationRepository
	logger *zap.Logger
}

// NewService wires a configuration service instance.
func NewService(repo *mongodb.ConfigurationRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Upsert stores a named setting, replacing the value when the (type, name)
// pair already exists for the user.
func (s *Service) Upsert(ctx context.Context, cfg models.Configuration) (*models.Configuration, error) {
	stored, err := s.repo.Upsert(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("configuration stored",
		zap.String("type", string(stored.Type)),
		zap.String("name", stored.Name),
		zap.Float64("value", stored.Value))
	return stored, nil
}

// List returns the user's settings, optionally filtered by type.
func (s *Service) List(ctx context.Context, userID primitive.ObjectID, cfgType models.ConfigurationType) ([]models.Configuration, error) {
	return s.repo.ListByUser(ctx, userID, cfgType)
}

// UpdateInput carries a partial configuration edit; nil fields keep their
// stored value.
type UpdateInput struct {
	Name        *string
	Value       *float64
	Type        *models.ConfigurationType
	Description *string
}

// Update applies a partial edit to one setting.
func (s *Service) Update(ctx context.Context, userID, id primitive.ObjectID, in UpdateInput) (*models.Configuration, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		existing.Name = *in.Name
	}
	if in.Value != nil {
		existing.Value = *in.Value
	}
	if in.Type != nil {
		existing.Type = *in.Type
	}
	if in.Description != nil {
		existing.Description = *in.Description
	}

	if err := s.repo.Update(ctx, userID, id, *existing); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID, id)
}

// Delete removes one setting.
func (s *Service) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, userID, id)
}

// RatesFor resolves the effective exchange-rate table for a user: built-in
// defaults, overlaid with system-wide entries, overlaid with the user's own.
func (s *Service) RatesFor(ctx context.Context, userID primitive.ObjectID) (models.RateTable, error) {
	rates := models.DefaultRates()

	for _, scope := range []primitive.ObjectID{SystemUserID, userID} {
		if scope == SystemUserID && userID == SystemUserID {
			continue
		}
		entries, err := s.repo.ListByUser(ctx, scope, models.ConfigExchangeRate)
		if err != nil {
			return rates, fmt.Errorf("load exchange rates: %w", err)
		}
		applyRates(&rates, entries)
	}

	return rates, nil
}

// MarginsFor resolves the effective margin targets for a user.
func (s *Service) MarginsFor(ctx context.Context, userID primitive.ObjectID) (models.MarginTargets, error) {
	margins := models.DefaultMargins()

	entries, err := s.repo.ListByUser(ctx, userID, models.ConfigMargin)
	if err != nil {
		return margins, fmt.Errorf("load margins: %w", err)
	}
	for _, e := range entries {
		switch e.Name {
		case "min":
			margins.Min = e.Value
		case "recommended":
			margins.Recommended = e.Value
		case "optimal":
			margins.Optimal = e.Value
		}
	}

	return margins, nil
}

// SyncSystemRates upserts the organization-wide default rates, typically from
// the scheduled official-rate fetch.
func (s *Service) SyncSystemRates(ctx context.Context, rates models.RateTable) error {
	entries := map[string]float64{
		"EUR": rates.EUR,
		"USD": rates.USD,
		"TRY": rates.TRY,
		"AED": rates.AED,
		"CNY": rates.CNY,
	}

	for name, value := range entries {
		if value <= 0 {
			continue
		}
		_, err := s.repo.Upsert(ctx, models.Configuration{
			UserID:      SystemUserID,
			Name:        name,
			Value:       value,
			Type:        models.ConfigExchangeRate,
			Description: "synced official rate",
		})
		if err != nil {
			return fmt.Errorf("sync rate %s: %w", name, err)
		}
	}
	return nil
}

func applyRates(rates *models.RateTable, entries []models.Configuration) {
	for _, e := range entries {
		if e.Value <= 0 {
			continue
		}
		switch e.Name {
		case "EUR":
			rates.EUR = e.Value
		case "USD":
			rates.USD = e.Value
		case "TRY":
			rates.TRY = e.Value
		case "AED":
			rates.AED = e.Value
		case "CNY":
			rates.CNY = e.Value
		}
	}
}
