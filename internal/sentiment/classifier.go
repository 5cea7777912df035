// Package sentiment provides headline sentiment classification and the
// pre-scoring noise filter.
//
// Classification is a capability injected into the collection pipeline, not
// a process-global: callers pick an implementation at startup and pass it
// down explicitly so tests can substitute doubles.
package sentiment

import (
	"errors"

	"github.com/seenimoa/econmood/pkg/models"
)

// ErrUnavailable is returned when a classifier backend cannot score input.
var ErrUnavailable = errors.New("sentiment classifier unavailable")

// Classifier maps a piece of text to a continuous sentiment score in
// [-1, 1] and a discrete label. Implementations must be safe for concurrent
// use across regions.
type Classifier interface {
	// Name returns the human-readable name of this classifier.
	Name() string

	// Classify scores a single headline. Empty input scores 0 / neutral.
	Classify(text string) (float64, models.Label, error)
}
