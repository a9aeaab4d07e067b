package calculation

import (
	"time"

	"github.com/aminedz/microimport/internal/domain/models"
)

// AggregateStatistics folds a list of saved voyages into dashboard totals.
// "This month" means the same calendar month and year as the wall clock, in
// local time, matching how the trips are dated on entry.
func (s *Service) AggregateStatistics(voyages []models.Voyage) models.Statistics {
	return s.aggregateAt(voyages, time.Now())
}

func (s *Service) aggregateAt(voyages []models.Voyage, now time.Time) models.Statistics {
	stats := models.Statistics{
		TotalVoyages:      len(voyages),
		StatusCounts:      map[string]int{},
		DestinationCounts: map[string]int{},
	}

	for _, v := range voyages {
		stats.TotalProfit += v.Calculation.NetProfit
		stats.TotalRevenue += v.Calculation.TotalRevenue
		stats.TotalCost += v.Calculation.TotalCost
		stats.StatusCounts[string(v.Status)]++
		stats.DestinationCounts[v.Destination]++

		if SameMonth(v.Date, now) {
			stats.VoyagesThisMonth++
		}
	}

	if stats.TotalRevenue > 0 {
		stats.AverageMargin = stats.TotalProfit / stats.TotalRevenue * 100
	}
	if stats.TotalCost > 0 {
		stats.AverageROI = stats.TotalProfit / stats.TotalCost * 100
	}

	return stats
}

// SameMonth reports whether both instants fall in the same calendar month and
// year, compared in their own locations.
func SameMonth(a, b time.Time) bool {
	return a.Month() == b.Month() && a.Year() == b.Year()
}
