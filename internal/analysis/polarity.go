// Package analysis implements the pure sentiment computations: polarity
// aggregation, trend analysis, keyword extraction, and insight generation.
// Every function here is a total function of its inputs — no I/O, no shared
// state — and is safe to call concurrently across regions.
package analysis

import (
	"math"

	"github.com/seenimoa/econmood/pkg/models"
)

// Thresholds are the symmetric per-headline bucketing cutoffs. A score above
// Bull counts as a bull headline, below Bear as a bear headline, anything in
// between as neutral. Tune per classifier: ±0.2 suits the lexicon scorer,
// ±0.1 a higher-confidence model.
type Thresholds struct {
	Bull float64
	Bear float64
}

// DefaultThresholds returns the reference ±0.2 bucketing thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Bull: 0.2, Bear: -0.2}
}

// PolarityScore converts bull/bear counts into the 0–100 polarity metric,
// rounded to one decimal. With no directional signal (bull+bear == 0) the
// score defaults to the neutral midpoint 50.0 — neutral headlines never
// enter the denominator.
func PolarityScore(bull, bear int) float64 {
	total := bull + bear
	if total == 0 {
		return 50.0
	}
	return round1(float64(bull) / float64(total) * 100)
}

// LabelForPolarity maps a 0–100 polarity score to an overall label. The
// 45–55 band is sticky-neutral so a single-headline swing cannot flap the
// label around the midpoint.
func LabelForPolarity(score float64) models.Label {
	switch {
	case score > 55:
		return models.LabelPositive
	case score < 45:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}

// Normalize maps a 0–100 polarity score onto [-1, 1] for cross-scale
// consumers.
func Normalize(score float64) float64 {
	return (score - 50) / 50
}

// Aggregate buckets a batch of per-headline scores and reduces them to a
// normalized score, an overall label, and the polarity counts. An empty
// batch yields (0, neutral, zero counts) rather than an error.
func Aggregate(scores []float64, th Thresholds) (float64, models.Label, models.PolarityCounts) {
	var counts models.PolarityCounts
	if len(scores) == 0 {
		return 0, models.LabelNeutral, counts
	}

	for _, score := range scores {
		switch {
		case score > th.Bull:
			counts.Bull++
		case score < th.Bear:
			counts.Bear++
		default:
			counts.Neutral++
		}
	}

	polarity := PolarityScore(counts.Bull, counts.Bear)
	return Normalize(polarity), LabelForPolarity(polarity), counts
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
