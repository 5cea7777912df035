// Package monitor is the service layer behind the API: it resolves region
// aggregates through the cache, derives trends and insights from history,
// and triggers collection refreshes.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/seenimoa/econmood/internal/analysis"
	"github.com/seenimoa/econmood/internal/collector"
	"github.com/seenimoa/econmood/internal/regioncache"
	"github.com/seenimoa/econmood/internal/store"
	"github.com/seenimoa/econmood/pkg/models"
)

// ErrInvalidRegion reports a region identifier outside the tracked set.
var ErrInvalidRegion = errors.New("invalid region")

// topKeywordLimit caps the keyword list served per region.
const topKeywordLimit = 5

// Monitor coordinates the store, the region cache, and the collector. All
// methods are safe for concurrent use.
type Monitor struct {
	store     *store.Store
	cache     *regioncache.Cache
	collector *collector.Collector
	lookback  time.Duration
	top       int

	// onUpdate, when set, is invoked with each fresh aggregate produced by a
	// refresh. Used to push updates to websocket subscribers.
	onUpdate func(*models.RegionAggregate)
}

// New creates a monitor over the given collaborators. lookback is the window
// for trend and keyword queries; top caps headlines on a served aggregate.
func New(st *store.Store, cache *regioncache.Cache, col *collector.Collector, lookback time.Duration, top int) *Monitor {
	if lookback <= 0 {
		lookback = 24 * time.Hour
	}
	if top <= 0 {
		top = 10
	}
	return &Monitor{
		store:     st,
		cache:     cache,
		collector: col,
		lookback:  lookback,
		top:       top,
	}
}

// OnUpdate registers a callback for fresh aggregates. Must be called before
// the monitor starts serving.
func (m *Monitor) OnUpdate(fn func(*models.RegionAggregate)) {
	m.onUpdate = fn
}

// RegionAggregate returns the current sentiment picture for a region,
// serving from cache when fresh and falling back to the latest persisted
// snapshot. A region with no history yet yields a neutral default rather
// than an error.
func (m *Monitor) RegionAggregate(id string) (*models.RegionAggregate, error) {
	if !models.ValidRegion(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRegion, id)
	}
	region := models.Region(id)

	if agg, ok := m.cache.Get(region); ok {
		return &agg, nil
	}

	snap, err := m.store.Latest(region)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return neutralDefault(region), nil
	}

	headlines, err := m.store.TopHeadlines(region, m.top)
	if err != nil {
		return nil, err
	}

	agg := models.RegionAggregate{
		RegionID:      region,
		RegionName:    region.Name(),
		PolarityScore: snap.Score,
		OverallLabel:  snap.Label,
		HeadlineCount: snap.HeadlineCount,
		BullCount:     snap.BullCount,
		BearCount:     snap.BearCount,
		NeutralCount:  snap.NeutralCount,
		TopHeadlines:  headlines,
		LastUpdated:   snap.RecordedAt,
	}
	m.cache.Put(region, agg)
	return &agg, nil
}

// AllRegions returns aggregates for every tracked region in stable order.
// A region that fails to resolve is logged and skipped; one bad region never
// takes down the overview.
func (m *Monitor) AllRegions() []models.RegionAggregate {
	out := make([]models.RegionAggregate, 0, len(models.Regions()))
	for _, region := range models.Regions() {
		agg, err := m.RegionAggregate(string(region))
		if err != nil {
			log.Printf("skipping %s in overview: %v", region, err)
			continue
		}
		out = append(out, *agg)
	}
	return out
}

// Trend returns the sentiment movement for a region over the past hours.
// Hours outside [1, 168] fall back to the configured lookback.
func (m *Monitor) Trend(id string, hours int) (*models.TrendResult, error) {
	if !models.ValidRegion(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRegion, id)
	}
	region := models.Region(id)

	window := time.Duration(hours) * time.Hour
	if hours < 1 || hours > 168 {
		window = m.lookback
	}

	history, err := m.store.History(region, time.Now().UTC().Add(-window))
	if err != nil {
		return nil, err
	}
	trend := analysis.AnalyzeTrend(history)
	return &trend, nil
}

// Keywords returns the top keywords for a region over the lookback window.
func (m *Monitor) Keywords(id string) ([]models.KeywordStat, error) {
	if !models.ValidRegion(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRegion, id)
	}
	region := models.Region(id)

	headlines, err := m.store.RecentHeadlines(region, time.Now().UTC().Add(-m.lookback))
	if err != nil {
		return nil, err
	}
	return analysis.TopKeywords(headlines, topKeywordLimit), nil
}

// Insights returns the ordered insight cards for a region, derived from its
// current aggregate, 24h trend, and keyword stats.
func (m *Monitor) Insights(id string) ([]models.InsightCard, error) {
	agg, err := m.RegionAggregate(id)
	if err != nil {
		return nil, err
	}
	region := models.Region(id)

	history, err := m.store.History(region, time.Now().UTC().Add(-m.lookback))
	if err != nil {
		return nil, err
	}
	trend := analysis.AnalyzeTrend(history)

	keywords, err := m.Keywords(id)
	if err != nil {
		return nil, err
	}

	return analysis.GenerateInsights(region, agg.PolarityScore, agg.HeadlineCount, trend, keywords), nil
}

// Refresh runs a collection cycle for one region, invalidates its cache
// entry, and returns the fresh aggregate.
func (m *Monitor) Refresh(ctx context.Context, id string) (*models.RegionAggregate, error) {
	if !models.ValidRegion(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRegion, id)
	}
	region := models.Region(id)

	agg, err := m.collector.CollectRegion(ctx, region)
	if err != nil {
		return nil, err
	}

	m.cache.Put(region, *agg)
	if m.onUpdate != nil {
		m.onUpdate(agg)
	}
	return agg, nil
}

// RefreshAll runs a collection cycle for every region and repopulates the
// cache with whatever succeeded. Returns the fresh aggregates in stable
// region order plus the number of failed regions.
func (m *Monitor) RefreshAll(ctx context.Context) ([]models.RegionAggregate, int) {
	results := m.collector.CollectAll(ctx)

	m.cache.InvalidateAll()

	var (
		out    []models.RegionAggregate
		failed int
	)
	for _, region := range models.Regions() {
		res := results[region]
		if res.Err != nil || res.Aggregate == nil {
			failed++
			continue
		}
		m.cache.Put(region, *res.Aggregate)
		if m.onUpdate != nil {
			m.onUpdate(res.Aggregate)
		}
		out = append(out, *res.Aggregate)
	}
	return out, failed
}

// neutralDefault is the aggregate served for a region with no history.
func neutralDefault(region models.Region) *models.RegionAggregate {
	return &models.RegionAggregate{
		RegionID:      region,
		RegionName:    region.Name(),
		PolarityScore: 50.0,
		OverallLabel:  models.LabelNeutral,
		TopHeadlines:  []models.Headline{},
	}
}
