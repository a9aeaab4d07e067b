package voyage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/aminedz/microimport/internal/domain/models"
	"github.com/aminedz/microimport/internal/repository/mongodb"
	"github.com/aminedz/microimport/internal/service/calculation"
	"github.com/aminedz/microimport/internal/service/configuration"
)

// Service orchestrates voyage CRUD around the calculation engine. The stored
// calculation is always produced here from the submitted inputs; a
// client-side copy is never trusted.
type Service struct {
	repo    *mongodb.VoyageRepository
	configs *configuration.Service
	calc    *calculation.Service
	logger  *zap.Logger
}

// NewService wires a voyage service instance.
func NewService(repo *mongodb.VoyageRepository, configs *configuration.Service, calc *calculation.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, configs: configs, calc: calc, logger: logger}
}

// Input is a voyage as submitted by the client. Rates, when present, become
// the snapshot used for this calculation; otherwise the user's configured
// table is used.
type Input struct {
	Destination       string
	Date              time.Time
	Currency          string
	Status            models.VoyageStatus
	Merchandise       []models.Merchandise
	FixedCosts        models.FixedCosts
	SupplementaryFees float64
	Rates             *models.RateTable
}

// Result pairs a stored voyage with the caller-facing compliance flag. The
// engine itself never blocks a voyage over the ceiling; surfacing the breach
// is this layer's job.
type Result struct {
	Voyage          *models.Voyage
	CeilingExceeded bool
}

// Create computes the calculation for the submitted voyage and persists it.
func (s *Service) Create(ctx context.Context, userID primitive.ObjectID, in Input) (*Result, error) {
	voyage, err := s.build(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Create(ctx, voyage); err != nil {
		return nil, err
	}

	return s.result(voyage), nil
}

// Update recomputes the calculation from the new inputs and persists the
// replacement.
func (s *Service) Update(ctx context.Context, userID, id primitive.ObjectID, in Input) (*Result, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	voyage, err := s.build(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	voyage.ID = existing.ID
	voyage.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, userID, id, voyage); err != nil {
		return nil, err
	}

	stored, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.result(stored), nil
}

// Get fetches one voyage owned by the user.
func (s *Service) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Voyage, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List returns the user's voyages, most recent first.
func (s *Service) List(ctx context.Context, userID primitive.ObjectID) ([]models.Voyage, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes a voyage owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, userID, id)
}

// Statistics aggregates the user's saved voyages for the dashboard.
func (s *Service) Statistics(ctx context.Context, userID primitive.ObjectID) (models.Statistics, error) {
	voyages, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return models.Statistics{}, err
	}
	return s.calc.AggregateStatistics(voyages), nil
}

// Preview runs the engine over a candidate voyage without persisting
// anything. Used while the trader is still editing.
func (s *Service) Preview(ctx context.Context, userID primitive.ObjectID, in Input) (models.VoyageCalculation, bool, error) {
	rates, err := s.resolveRates(ctx, userID, in.Rates)
	if err != nil {
		return models.VoyageCalculation{}, false, err
	}

	calc := s.calc.CalculateVoyage(in.Merchandise, in.Currency, in.FixedCosts, in.SupplementaryFees, rates)
	return calc, calculation.ExceedsLegalCeiling(calc), nil
}

func (s *Service) build(ctx context.Context, userID primitive.ObjectID, in Input) (*models.Voyage, error) {
	rates, err := s.resolveRates(ctx, userID, in.Rates)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.StatusPlanned
	}

	calc := s.calc.CalculateVoyage(in.Merchandise, in.Currency, in.FixedCosts, in.SupplementaryFees, rates)

	return &models.Voyage{
		UserID:            userID,
		Destination:       in.Destination,
		Date:              in.Date,
		Currency:          in.Currency,
		Status:            status,
		Merchandise:       in.Merchandise,
		FixedCosts:        in.FixedCosts,
		SupplementaryFees: in.SupplementaryFees,
		RateSnapshot:      rates,
		Calculation:       calc,
	}, nil
}

func (s *Service) resolveRates(ctx context.Context, userID primitive.ObjectID, override *models.RateTable) (models.RateTable, error) {
	if override != nil {
		return *override, nil
	}
	return s.configs.RatesFor(ctx, userID)
}

func (s *Service) result(voyage *models.Voyage) *Result {
	exceeded := calculation.ExceedsLegalCeiling(voyage.Calculation)
	if exceeded {
		s.logger.Warn("voyage customs value exceeds legal ceiling",
			zap.String("voyage_id", voyage.ID.Hex()),
			zap.Float64("customs_value", voyage.Calculation.CustomsValue))
	}
	return &Result{Voyage: voyage, CeilingExceeded: exceeded}
}
