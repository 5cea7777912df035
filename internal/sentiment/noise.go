package sentiment

import (
	"regexp"
	"strings"
)

// noiseMarkers lists whole-word markers of low-value content: opinion and
// lifestyle pieces that say nothing about economic mood. Matching is
// case-insensitive.
var noiseMarkers = []string{
	"opinion", "podcast", "guide", "how to", "explained", "personal finance",
	"tips", "editorial", "review", "newsletter", "subscribe", "watch live",
	"live updates", "commentary", "column", "q&a", "interview",
}

var noisePattern = regexp.MustCompile(
	`(?i)\b(` + strings.Join(quoteAll(noiseMarkers), "|") + `)\b`,
)

func quoteAll(words []string) []string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return quoted
}

// IsNoise reports whether a headline should be excluded before scoring.
// Empty or whitespace-only text is noise. Filtered headlines count toward
// FilteredCount only; they never enter a polarity bucket.
func IsNoise(text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	return noisePattern.MatchString(text)
}
