package analysis

import "github.com/seenimoa/econmood/pkg/models"

// Trend direction cutoffs: an endpoint delta of more than ±2 polarity points
// over the window counts as movement, anything inside the band is stable.
const trendBand = 2.0

// AnalyzeTrend reduces a history of snapshots, ascending by timestamp and
// already restricted to the caller's lookback window, to a direction and
// magnitude. Fewer than two points cannot establish a trend and report
// stable with zero change.
//
// Change is the endpoint delta (last minus first), not a regression slope;
// downstream narrative text depends on that exact semantic.
func AnalyzeTrend(history []models.TrendPoint) models.TrendResult {
	if len(history) < 2 {
		return models.TrendResult{
			Trend:      models.TrendStable,
			DataPoints: len(history),
		}
	}

	first := history[0].Score
	last := history[len(history)-1].Score
	change := last - first

	trend := models.TrendStable
	switch {
	case change > trendBand:
		trend = models.TrendRising
	case change < -trendBand:
		trend = models.TrendFalling
	}

	return models.TrendResult{
		Change:     round1(change),
		Trend:      trend,
		FirstScore: first,
		LastScore:  last,
		DataPoints: len(history),
	}
}
