package models

import "time"

// Label is the discrete sentiment classification of a headline or region.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// RawHeadline is a headline as delivered by a source, before classification.
type RawHeadline struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Headline is a classified news headline. Immutable once classified.
type Headline struct {
	Title          string     `json:"title"`
	Source         string     `json:"source"`
	URL            string     `json:"url"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	SentimentScore float64    `json:"sentiment_score"` // -1 to 1
	SentimentLabel Label      `json:"sentiment_label"`
}

// PolarityCounts holds the bull/bear/neutral bucket counts for a batch of
// classified headlines. Bull+Bear+Neutral equals the number of classified
// (non-filtered) headlines.
type PolarityCounts struct {
	Bull    int `json:"bull_count"`
	Bear    int `json:"bear_count"`
	Neutral int `json:"neutral_count"`
}

// Total returns the number of classified headlines behind the counts.
func (c PolarityCounts) Total() int {
	return c.Bull + c.Bear + c.Neutral
}

// RegionAggregate is the per-region sentiment picture produced by one
// collection cycle. A new cycle supersedes the previous aggregate; aggregates
// are never mutated in place.
type RegionAggregate struct {
	RegionID      Region     `json:"region_id"`
	RegionName    string     `json:"region_name"`
	PolarityScore float64    `json:"sentiment_score"` // 0 to 100 (bull/bear ratio)
	OverallLabel  Label      `json:"sentiment_label"`
	HeadlineCount int        `json:"headline_count"`
	BullCount     int        `json:"bull_count"`
	BearCount     int        `json:"bear_count"`
	NeutralCount  int        `json:"neutral_count"`
	FilteredCount int        `json:"filtered_count"`
	TopHeadlines  []Headline `json:"top_headlines"`
	LastUpdated   time.Time  `json:"last_updated"`
}

// Snapshot is the persisted form of a RegionAggregate, minus headlines.
// One row per (region, recorded_at) pair.
type Snapshot struct {
	RegionID      Region    `json:"region_id"`
	Score         float64   `json:"score"` // polarity score, 0 to 100
	Label         Label     `json:"label"`
	HeadlineCount int       `json:"headline_count"`
	BullCount     int       `json:"bull_count"`
	BearCount     int       `json:"bear_count"`
	NeutralCount  int       `json:"neutral_count"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// TrendPoint is one historical observation used for trend analysis.
type TrendPoint struct {
	Score         float64   `json:"score"`
	Label         Label     `json:"label"`
	HeadlineCount int       `json:"headline_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// TrendDirection describes how the polarity score moved over a window.
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
	TrendStable  TrendDirection = "stable"
)

// TrendResult is the derived sentiment movement over a lookback window.
// Never persisted.
type TrendResult struct {
	Change     float64        `json:"change"`
	Trend      TrendDirection `json:"trend"`
	FirstScore float64        `json:"first_score"`
	LastScore  float64        `json:"last_score"`
	DataPoints int            `json:"data_points"`
}

// LabeledHeadline is the minimal (title, label) pair consumed by the
// keyword extractor.
type LabeledHeadline struct {
	Title string `json:"title"`
	Label Label  `json:"label"`
}

// KeywordStat is a frequency-ranked keyword with per-sentiment counts.
// Positive+Negative+Neutral equals Count.
type KeywordStat struct {
	Word     string `json:"word"`
	Count    int    `json:"count"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}

// InsightCard is one short narrative insight rendered by the frontend.
// Color and Icon are presentation tags, not free text.
type InsightCard struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}
