package calculation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aminedz/microimport/internal/domain/models"
)

func voyageWith(destination string, status models.VoyageStatus, date time.Time, revenue, cost float64) models.Voyage {
	return models.Voyage{
		Destination: destination,
		Status:      status,
		Date:        date,
		Calculation: models.VoyageCalculation{
			TotalRevenue: revenue,
			TotalCost:    cost,
			NetProfit:    revenue - cost,
		},
	}
}

func TestAggregateStatistics(t *testing.T) {
	svc := NewService(nil)
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.Local)

	voyages := []models.Voyage{
		voyageWith("Istanbul", models.StatusCompleted, time.Date(2025, time.March, 2, 0, 0, 0, 0, time.Local), 500000, 400000),
		voyageWith("Istanbul", models.StatusCompleted, time.Date(2025, time.February, 20, 0, 0, 0, 0, time.Local), 300000, 350000),
		voyageWith("Dubai", models.StatusPlanned, time.Date(2025, time.March, 28, 0, 0, 0, 0, time.Local), 0, 0),
	}

	stats := svc.aggregateAt(voyages, now)

	require.Equal(t, 3, stats.TotalVoyages)
	require.Equal(t, 800000.0, stats.TotalRevenue)
	require.Equal(t, 750000.0, stats.TotalCost)
	require.Equal(t, 50000.0, stats.TotalProfit)
	require.InDelta(t, 6.25, stats.AverageMargin, 1e-9)    // 50000/800000
	require.InDelta(t, 6.666666, stats.AverageROI, 1e-4)   // 50000/750000
	require.Equal(t, 2, stats.VoyagesThisMonth)
	require.Equal(t, map[string]int{"completed": 2, "planned": 1}, stats.StatusCounts)
	require.Equal(t, map[string]int{"Istanbul": 2, "Dubai": 1}, stats.DestinationCounts)
}

func TestAggregateStatisticsEmpty(t *testing.T) {
	svc := NewService(nil)

	stats := svc.AggregateStatistics(nil)

	require.Zero(t, stats.TotalVoyages)
	require.Zero(t, stats.AverageMargin)
	require.Zero(t, stats.AverageROI)
	require.Zero(t, stats.VoyagesThisMonth)
}

func TestSameMonth(t *testing.T) {
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)

	require.True(t, SameMonth(march, march.AddDate(0, 0, 30)))
	require.False(t, SameMonth(march, march.AddDate(0, 1, 0)))
	// Same month of a different year does not count.
	require.False(t, SameMonth(march, march.AddDate(1, 0, 0)))
}
