package analysis

import (
	"testing"

	"github.com/seenimoa/econmood/pkg/models"
)

func TestAggregateEmpty(t *testing.T) {
	normalized, label, counts := Aggregate(nil, DefaultThresholds())
	if normalized != 0 {
		t.Errorf("expected 0 normalized score, got %.4f", normalized)
	}
	if label != models.LabelNeutral {
		t.Errorf("expected neutral label, got %s", label)
	}
	if counts != (models.PolarityCounts{}) {
		t.Errorf("expected zero counts, got %+v", counts)
	}
}

func TestAggregateCountsSumToInput(t *testing.T) {
	batches := [][]float64{
		{0.5, -0.5, 0.0},
		{0.21, 0.2, -0.2, -0.21, 0.0, 1.0, -1.0},
		{0.0, 0.0, 0.0},
		{1.0},
	}
	for _, scores := range batches {
		_, _, counts := Aggregate(scores, DefaultThresholds())
		if counts.Total() != len(scores) {
			t.Errorf("counts %+v do not sum to %d inputs", counts, len(scores))
		}
	}
}

func TestAggregateBucketBoundaries(t *testing.T) {
	// Scores exactly at a threshold are neutral; only strict crossings bucket.
	th := DefaultThresholds()
	_, _, counts := Aggregate([]float64{0.2, -0.2, 0.200001, -0.200001}, th)
	if counts.Bull != 1 || counts.Bear != 1 || counts.Neutral != 2 {
		t.Errorf("unexpected counts at boundaries: %+v", counts)
	}
}

func TestAggregateAllNeutralDefaultsToMidpoint(t *testing.T) {
	// Many neutral headlines still mean no directional signal: polarity 50,
	// normalized 0, neutral label.
	normalized, label, counts := Aggregate([]float64{0.1, -0.1, 0.0, 0.05}, DefaultThresholds())
	if normalized != 0 {
		t.Errorf("expected normalized 0 with no bull/bear signal, got %.4f", normalized)
	}
	if label != models.LabelNeutral {
		t.Errorf("expected neutral label, got %s", label)
	}
	if counts.Bull != 0 || counts.Bear != 0 {
		t.Errorf("expected no directional counts, got %+v", counts)
	}
}

func TestAggregateScenario(t *testing.T) {
	// 6 bull, 3 bear, 1 neutral at ±0.2 → polarity 6/9*100 = 66.7, positive.
	scores := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, -0.5, -0.5, -0.5, 0.0}
	normalized, label, counts := Aggregate(scores, DefaultThresholds())

	if counts.Bull != 6 || counts.Bear != 3 || counts.Neutral != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	polarity := PolarityScore(counts.Bull, counts.Bear)
	if polarity != 66.7 {
		t.Errorf("expected polarity 66.7, got %.1f", polarity)
	}
	if label != models.LabelPositive {
		t.Errorf("expected positive label, got %s", label)
	}
	if want := Normalize(66.7); normalized != want {
		t.Errorf("expected normalized %.4f, got %.4f", want, normalized)
	}
}

func TestPolarityScoreNoSignal(t *testing.T) {
	if got := PolarityScore(0, 0); got != 50.0 {
		t.Errorf("expected 50.0 with no signal, got %.1f", got)
	}
}

func TestPolarityScoreMonotonicAndBounded(t *testing.T) {
	prev := PolarityScore(0, 5)
	for bull := 1; bull <= 20; bull++ {
		cur := PolarityScore(bull, 5)
		if cur < prev {
			t.Errorf("polarity not increasing in bull at bull=%d: %.1f < %.1f", bull, cur, prev)
		}
		prev = cur
	}

	prev = PolarityScore(5, 0)
	for bear := 1; bear <= 20; bear++ {
		cur := PolarityScore(5, bear)
		if cur > prev {
			t.Errorf("polarity not decreasing in bear at bear=%d: %.1f > %.1f", bear, cur, prev)
		}
		prev = cur
	}

	for bull := 0; bull <= 10; bull++ {
		for bear := 0; bear <= 10; bear++ {
			score := PolarityScore(bull, bear)
			if score < 0 || score > 100 {
				t.Errorf("polarity out of range for (%d,%d): %.1f", bull, bear, score)
			}
		}
	}
}

func TestLabelForPolarityStickyBand(t *testing.T) {
	cases := []struct {
		score float64
		want  models.Label
	}{
		{55.1, models.LabelPositive},
		{55.0, models.LabelNeutral},
		{50.0, models.LabelNeutral},
		{45.0, models.LabelNeutral},
		{44.9, models.LabelNegative},
		{100.0, models.LabelPositive},
		{0.0, models.LabelNegative},
	}
	for _, tc := range cases {
		if got := LabelForPolarity(tc.score); got != tc.want {
			t.Errorf("LabelForPolarity(%.1f) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, -1},
		{50, 0},
		{100, 1},
		{75, 0.5},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%.1f) = %.4f, want %.4f", tc.in, got, tc.want)
		}
	}
}
