// Package collector runs the per-region collection cycle: fetch headlines,
// drop noise, classify, aggregate, and persist. Each cycle is independent
// per region and safe to run in parallel; only the store serializes writes
// per region.
package collector

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/econmood/internal/analysis"
	"github.com/seenimoa/econmood/internal/dedupe"
	"github.com/seenimoa/econmood/internal/sentiment"
	"github.com/seenimoa/econmood/internal/source"
	"github.com/seenimoa/econmood/internal/store"
	"github.com/seenimoa/econmood/pkg/models"
)

// Collector wires the headline source, classifier, and store into the
// collection pipeline. Construct with New; the zero value is not usable.
type Collector struct {
	source       source.Source
	classifier   sentiment.Classifier
	store        *store.Store
	deduper      dedupe.Deduper // optional
	thresholds   analysis.Thresholds
	concurrency  int
	topHeadlines int
	now          func() time.Time
}

// Options configures a Collector beyond its required collaborators.
type Options struct {
	// Deduper suppresses headlines seen in recent cycles. Nil disables
	// dedupe.
	Deduper dedupe.Deduper

	// Thresholds are the polarity bucketing cutoffs. Zero value means
	// analysis.DefaultThresholds.
	Thresholds analysis.Thresholds

	// Concurrency bounds parallel region collections in CollectAll.
	// Values below 1 mean no bound.
	Concurrency int

	// TopHeadlines caps the headlines kept on an aggregate. Zero means 10.
	TopHeadlines int
}

// New creates a collector over the given source, classifier, and store.
func New(src source.Source, clf sentiment.Classifier, st *store.Store, opts Options) *Collector {
	th := opts.Thresholds
	if th == (analysis.Thresholds{}) {
		th = analysis.DefaultThresholds()
	}
	top := opts.TopHeadlines
	if top <= 0 {
		top = 10
	}
	return &Collector{
		source:       src,
		classifier:   clf,
		store:        st,
		deduper:      opts.Deduper,
		thresholds:   th,
		concurrency:  opts.Concurrency,
		topHeadlines: top,
		now:          time.Now,
	}
}

// CollectRegion runs one collection cycle for a region and returns the
// resulting aggregate. Source and classifier failures propagate; the
// pipeline never fabricates sentiment to mask them.
func (c *Collector) CollectRegion(ctx context.Context, region models.Region) (*models.RegionAggregate, error) {
	raw, err := c.source.Fetch(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines for %s: %w", region, err)
	}

	raw = c.dropSeen(ctx, raw)

	var (
		headlines []models.Headline
		scores    []float64
		filtered  int
	)
	for _, r := range raw {
		if sentiment.IsNoise(r.Title) {
			filtered++
			continue
		}

		score, label, err := c.classifier.Classify(r.Title)
		if err != nil {
			return nil, fmt.Errorf("classify headline for %s: %w", region, err)
		}

		scores = append(scores, score)
		headlines = append(headlines, models.Headline{
			Title:          r.Title,
			Source:         r.Source,
			URL:            r.URL,
			PublishedAt:    r.PublishedAt,
			SentimentScore: round3(score),
			SentimentLabel: label,
		})
	}

	_, overallLabel, counts := analysis.Aggregate(scores, c.thresholds)
	polarity := analysis.PolarityScore(counts.Bull, counts.Bear)
	recordedAt := c.now().UTC().Truncate(time.Second)

	if err := c.store.SaveSnapshot(models.Snapshot{
		RegionID:      region,
		Score:         polarity,
		Label:         overallLabel,
		HeadlineCount: len(headlines),
		BullCount:     counts.Bull,
		BearCount:     counts.Bear,
		NeutralCount:  counts.Neutral,
		RecordedAt:    recordedAt,
	}); err != nil {
		return nil, err
	}
	if err := c.store.SaveHeadlines(region, headlines, recordedAt); err != nil {
		return nil, err
	}

	top := headlines
	if len(top) > c.topHeadlines {
		top = top[:c.topHeadlines]
	}

	agg := &models.RegionAggregate{
		RegionID:      region,
		RegionName:    region.Name(),
		PolarityScore: polarity,
		OverallLabel:  overallLabel,
		HeadlineCount: len(headlines),
		BullCount:     counts.Bull,
		BearCount:     counts.Bear,
		NeutralCount:  counts.Neutral,
		FilteredCount: filtered,
		TopHeadlines:  top,
		LastUpdated:   recordedAt,
	}

	log.Printf("collected %d headlines for %s (filtered %d): %.1f%% %s",
		len(headlines), region, filtered, polarity, overallLabel)
	return agg, nil
}

// Result is the outcome of one region's collection within a bulk run.
type Result struct {
	Aggregate *models.RegionAggregate
	Err       error
}

// CollectAll runs a collection cycle for every tracked region in parallel.
// One region's failure never aborts the rest; each region reports its own
// Result.
func (c *Collector) CollectAll(ctx context.Context) map[models.Region]Result {
	results := make(map[models.Region]Result, len(models.Regions()))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}

	for _, region := range models.Regions() {
		region := region
		g.Go(func() error {
			agg, err := c.CollectRegion(gctx, region)
			if err != nil {
				log.Printf("collection failed for %s: %v", region, err)
			}
			mu.Lock()
			results[region] = Result{Aggregate: agg, Err: err}
			mu.Unlock()
			// Errors are recorded per region, never returned: a failed
			// region must not cancel the group.
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	return results
}

// dropSeen filters out headlines whose URLs were ingested in recent cycles.
// Dedupe failures degrade to keeping the headline.
func (c *Collector) dropSeen(ctx context.Context, raw []models.RawHeadline) []models.RawHeadline {
	if c.deduper == nil {
		return raw
	}

	kept := raw[:0]
	for _, r := range raw {
		if r.URL == "" || r.URL == "#" {
			kept = append(kept, r)
			continue
		}
		seen, err := c.deduper.Seen(ctx, r.URL)
		if err != nil {
			log.Printf("dedupe check failed for %s: %v", r.URL, err)
			kept = append(kept, r)
			continue
		}
		if !seen {
			kept = append(kept, r)
		}
	}
	return kept
}

// round3 rounds a classifier score to three decimals for storage.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
