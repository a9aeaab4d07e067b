package export

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aminedz/microimport/internal/domain/models"
	"github.com/aminedz/microimport/internal/repository/sheets"
)

// ErrSheetsDisabled is returned when no spreadsheet integration is
// configured.
var ErrSheetsDisabled = errors.New("sheets export is not configured")

const voyageSheetRange = "Voyages!A:J"

const dateLayout = "2006-01-02"

// Service renders voyage reports (PDF) and appends voyage summaries to a
// Google Sheet when the integration is configured.
type Service struct {
	sheets sheets.Repository // nil when the integration is disabled
	logger *zap.Logger
}

// NewService wires an export service instance. sheetRepo may be nil.
func NewService(sheetRepo sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sheets: sheetRepo, logger: logger}
}

// AppendToSheet writes a one-row summary of the voyage to the configured
// spreadsheet.
func (s *Service) AppendToSheet(ctx context.Context, voyage *models.Voyage) error {
	if s.sheets == nil {
		return ErrSheetsDisabled
	}

	calc := voyage.Calculation
	row := []interface{}{
		voyage.Date.Format(dateLayout),
		voyage.Destination,
		voyage.Currency,
		string(voyage.Status),
		len(voyage.Merchandise),
		calc.CustomsValue,
		calc.CustomsFeesTotal,
		calc.TotalCost,
		calc.TotalRevenue,
		calc.NetProfit,
	}

	if err := s.sheets.AppendRow(ctx, voyageSheetRange, row); err != nil {
		return fmt.Errorf("export voyage %s: %w", voyage.ID.Hex(), err)
	}

	s.logger.Info("voyage exported to sheet", zap.String("voyage_id", voyage.ID.Hex()))
	return nil
}
