package sentiment

import (
	"strings"

	"github.com/seenimoa/econmood/pkg/models"
)

// ------------------------------------------------------------------
// Keyword-based sentiment classifier (offline, no model download).
// When a model-backed classifier is configured the collector uses it
// instead; this implementation is the deterministic default.
// ------------------------------------------------------------------

// optimistic / pessimistic keyword dictionaries (lowercase).
var optimisticWords = map[string]float64{
	"rally": 0.6, "surge": 0.7, "upbeat": 0.5, "boom": 0.6,
	"positive": 0.4, "growth": 0.4, "upgrade": 0.6, "recovery": 0.5,
	"strong": 0.4, "record high": 0.7, "beat": 0.5, "exceeds": 0.5,
	"expansion": 0.4, "profit": 0.3, "invest": 0.4, "investment": 0.4,
	"gains": 0.5, "rebound": 0.5, "optimism": 0.5, "stable": 0.3,
	"strengthens": 0.5, "improves": 0.4, "agreement": 0.3,
}

var pessimisticWords = map[string]float64{
	"crash": 0.8, "plunge": 0.7, "slump": 0.6, "recession": 0.7,
	"negative": 0.4, "downgrade": 0.6, "weak": 0.4, "decline": 0.5,
	"loss": 0.4, "selloff": 0.7, "fall": 0.4, "correction": 0.5,
	"default": 0.7, "crisis": 0.7, "inflation fears": 0.6, "layoffs": 0.6,
	"cut": 0.3, "miss": 0.5, "warning": 0.5, "concern": 0.3,
	"deficit": 0.4, "unrest": 0.6, "sanctions": 0.5, "shortage": 0.5,
}

// Lexicon is a keyword-weighted classifier over economic news headlines.
// The zero value is not usable; construct with NewLexicon.
type Lexicon struct {
	optimistic  map[string]float64
	pessimistic map[string]float64
}

// NewLexicon creates a classifier backed by the built-in dictionaries.
func NewLexicon() *Lexicon {
	return &Lexicon{
		optimistic:  optimisticWords,
		pessimistic: pessimisticWords,
	}
}

// Name returns the classifier name.
func (l *Lexicon) Name() string { return "lexicon" }

// Classify scores a headline in [-1, 1]. The score is the net keyword
// weight normalized by total matched weight; no matches score 0 / neutral.
func (l *Lexicon) Classify(text string) (float64, models.Label, error) {
	lower := strings.ToLower(text)

	posWeight := 0.0
	negWeight := 0.0

	for word, weight := range l.optimistic {
		if strings.Contains(lower, word) {
			posWeight += weight
		}
	}
	for word, weight := range l.pessimistic {
		if strings.Contains(lower, word) {
			negWeight += weight
		}
	}

	total := posWeight + negWeight
	if total == 0 {
		return 0, models.LabelNeutral, nil
	}

	score := (posWeight - negWeight) / total

	label := models.LabelNeutral
	switch {
	case score > 0:
		label = models.LabelPositive
	case score < 0:
		label = models.LabelNegative
	}

	return score, label, nil
}
