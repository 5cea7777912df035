package analysis

import (
	"sort"
	"strings"

	"github.com/seenimoa/econmood/pkg/models"
)

// minKeywordLen is the minimum token length retained by the extractor.
// Dropping tokens of four characters or fewer filters most English
// stopwords without carrying a stopword list.
const minKeywordLen = 5

// TopKeywords frequency-ranks significant words across a window of
// headlines, bucketed by each headline's sentiment label. Titles are
// lowercased and split on whitespace; ranking is descending by count with
// ties broken by first-encountered order. At most limit entries are
// returned.
func TopKeywords(headlines []models.LabeledHeadline, limit int) []models.KeywordStat {
	stats := make(map[string]*models.KeywordStat)
	var order []string

	for _, h := range headlines {
		for _, word := range strings.Fields(strings.ToLower(h.Title)) {
			if len(word) < minKeywordLen {
				continue
			}
			stat, ok := stats[word]
			if !ok {
				stat = &models.KeywordStat{Word: word}
				stats[word] = stat
				order = append(order, word)
			}
			stat.Count++
			switch h.Label {
			case models.LabelPositive:
				stat.Positive++
			case models.LabelNegative:
				stat.Negative++
			default:
				stat.Neutral++
			}
		}
	}

	ranked := make([]models.KeywordStat, 0, len(order))
	for _, word := range order {
		ranked = append(ranked, *stats[word])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
