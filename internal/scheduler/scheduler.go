package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/aminedz/microimport/internal/config"
	"github.com/aminedz/microimport/internal/repository/mongodb"
	"github.com/aminedz/microimport/internal/service/calculation"
	"github.com/aminedz/microimport/internal/service/configuration"
	"github.com/aminedz/microimport/pkg/clients/fxrates"
)

// Scheduler manages the recurring background jobs: the compliance sweep and
// the optional official-rate sync.
type Scheduler struct {
	cron    *cron.Cron
	voyages *mongodb.VoyageRepository
	configs *configuration.Service
	fx      *fxrates.Client // nil when rate sync is disabled
	cfg     config.Config
	logger  *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, voyages *mongodb.VoyageRepository, configs *configuration.Service, fx *fxrates.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:    cron.New(),
		voyages: voyages,
		configs: configs,
		fx:      fx,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start registers the enabled jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if s.cfg.Compliance.Enabled {
		if _, err := s.cron.AddFunc(s.cfg.Compliance.CronSchedule, s.runComplianceSweep); err != nil {
			s.logger.Error("failed to schedule compliance sweep", zap.Error(err))
		}
	}

	if s.fx != nil {
		if _, err := s.cron.AddFunc(s.cfg.RateSync.CronSchedule, s.runRateSync); err != nil {
			s.logger.Error("failed to schedule rate sync", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// runComplianceSweep flags the current month's voyages that breach the legal
// customs-value ceiling and the traders over the monthly voyage cap. The
// calculator itself stays policy-free; diagnostics live here.
func (s *Scheduler) runComplianceSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	voyages, err := s.voyages.ListByDateRange(ctx, monthStart, monthEnd)
	if err != nil {
		s.logger.Error("compliance sweep failed to load voyages", zap.Error(err))
		return
	}

	perUser := map[primitive.ObjectID]int{}
	for _, v := range voyages {
		perUser[v.UserID]++

		if calculation.ExceedsLegalCeiling(v.Calculation) {
			s.logger.Warn("voyage exceeds legal customs-value ceiling",
				zap.String("voyage_id", v.ID.Hex()),
				zap.String("user_id", v.UserID.Hex()),
				zap.Float64("customs_value", v.Calculation.CustomsValue),
				zap.Float64("ceiling", calculation.LegalCeilingPerVoyage))
		}
	}

	for userID, count := range perUser {
		if count > calculation.MaxVoyagesPerMonth {
			s.logger.Warn("user over monthly voyage cap",
				zap.String("user_id", userID.Hex()),
				zap.Int("voyages_this_month", count),
				zap.Int("cap", calculation.MaxVoyagesPerMonth))
		}
	}

	s.logger.Info("compliance sweep completed", zap.Int("voyages_checked", len(voyages)))
}

// runRateSync refreshes the organization-wide default exchange rates from
// the configured endpoint.
func (s *Scheduler) runRateSync() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rates, err := s.fx.FetchRates(ctx)
	if err != nil {
		s.logger.Error("rate sync fetch failed", zap.Error(err))
		return
	}

	if err := s.configs.SyncSystemRates(ctx, rates); err != nil {
		s.logger.Error("rate sync store failed", zap.Error(err))
		return
	}

	s.logger.Info("exchange rate defaults refreshed",
		zap.Float64("eur", rates.EUR),
		zap.Float64("usd", rates.USD))
}
