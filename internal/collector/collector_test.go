package collector

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/seenimoa/econmood/internal/sentiment"
	"github.com/seenimoa/econmood/internal/store"
	"github.com/seenimoa/econmood/pkg/models"
)

var testDBSeq int64

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	n := atomic.AddInt64(&testDBSeq, 1)
	s, err := store.Open(fmt.Sprintf("file:collectortest%d?mode=memory&cache=shared", n))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type stubSource struct {
	headlines map[models.Region][]models.RawHeadline
	err       error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(_ context.Context, region models.Region) ([]models.RawHeadline, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.headlines[region], nil
}

type stubClassifier struct {
	scores map[string]float64
}

func (s *stubClassifier) Name() string { return "stub" }

func (s *stubClassifier) Classify(text string) (float64, models.Label, error) {
	score := s.scores[text]
	switch {
	case score > 0:
		return score, models.LabelPositive, nil
	case score < 0:
		return score, models.LabelNegative, nil
	}
	return 0, models.LabelNeutral, nil
}

func TestCollectRegion(t *testing.T) {
	src := &stubSource{headlines: map[models.Region][]models.RawHeadline{
		models.RegionUS: {
			{Title: "Markets surge on strong earnings", URL: "https://example.com/1"},
			{Title: "Recession fears deepen", URL: "https://example.com/2"},
			{Title: "Fed holds rates steady", URL: "https://example.com/3"},
			{Title: "Opinion: why stocks are overrated", URL: "https://example.com/4"},
		},
	}}
	clf := &stubClassifier{scores: map[string]float64{
		"Markets surge on strong earnings": 0.6,
		"Recession fears deepen":           -0.5,
		"Fed holds rates steady":           0.0,
	}}
	c := New(src, clf, openTestStore(t), Options{})

	agg, err := c.CollectRegion(context.Background(), models.RegionUS)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if agg.HeadlineCount != 3 {
		t.Errorf("expected 3 classified headlines, got %d", agg.HeadlineCount)
	}
	if agg.FilteredCount != 1 {
		t.Errorf("expected 1 filtered headline, got %d", agg.FilteredCount)
	}
	if agg.BullCount != 1 || agg.BearCount != 1 || agg.NeutralCount != 1 {
		t.Errorf("unexpected counts: %d/%d/%d", agg.BullCount, agg.BearCount, agg.NeutralCount)
	}
	// One bull, one bear: 1/(1+1)*100.
	if agg.PolarityScore != 50.0 {
		t.Errorf("expected polarity 50.0, got %v", agg.PolarityScore)
	}
	if agg.OverallLabel != models.LabelNeutral {
		t.Errorf("expected neutral label, got %s", agg.OverallLabel)
	}
	if agg.RegionName != "United States" {
		t.Errorf("unexpected region name %q", agg.RegionName)
	}
}

func TestCollectRegionPersists(t *testing.T) {
	st := openTestStore(t)
	src := &stubSource{headlines: map[models.Region][]models.RawHeadline{
		models.RegionEgypt: {
			{Title: "New Suez Canal expansion boosts revenue", URL: "https://example.com/a"},
		},
	}}
	clf := &stubClassifier{scores: map[string]float64{
		"New Suez Canal expansion boosts revenue": 0.4,
	}}
	c := New(src, clf, st, Options{})

	if _, err := c.CollectRegion(context.Background(), models.RegionEgypt); err != nil {
		t.Fatalf("collect: %v", err)
	}

	snap, err := st.Latest(models.RegionEgypt)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected a persisted snapshot")
	}
	if snap.Score != 100.0 {
		t.Errorf("expected score 100.0 for all-bull batch, got %v", snap.Score)
	}

	headlines, err := st.TopHeadlines(models.RegionEgypt, 10)
	if err != nil {
		t.Fatalf("top headlines: %v", err)
	}
	if len(headlines) != 1 {
		t.Fatalf("expected 1 persisted headline, got %d", len(headlines))
	}
	if headlines[0].SentimentScore != 0.4 {
		t.Errorf("expected stored score 0.4, got %v", headlines[0].SentimentScore)
	}
}

func TestCollectRegionSourceError(t *testing.T) {
	src := &stubSource{err: errors.New("feed down")}
	c := New(src, sentiment.NewLexicon(), openTestStore(t), Options{})

	if _, err := c.CollectRegion(context.Background(), models.RegionGlobal); err == nil {
		t.Error("expected source error to propagate")
	}
}

func TestCollectRegionEmptyBatch(t *testing.T) {
	src := &stubSource{headlines: map[models.Region][]models.RawHeadline{}}
	c := New(src, sentiment.NewLexicon(), openTestStore(t), Options{})

	agg, err := c.CollectRegion(context.Background(), models.RegionEU)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if agg.PolarityScore != 50.0 {
		t.Errorf("expected no-signal polarity 50.0, got %v", agg.PolarityScore)
	}
	if agg.OverallLabel != models.LabelNeutral {
		t.Errorf("expected neutral label, got %s", agg.OverallLabel)
	}
	if agg.HeadlineCount != 0 {
		t.Errorf("expected 0 headlines, got %d", agg.HeadlineCount)
	}
}

func TestCollectRegionTopHeadlineCap(t *testing.T) {
	var raw []models.RawHeadline
	scores := make(map[string]float64)
	for i := 0; i < 15; i++ {
		title := fmt.Sprintf("Economy report number %d shows growth", i)
		raw = append(raw, models.RawHeadline{Title: title, URL: fmt.Sprintf("https://example.com/%d", i)})
		scores[title] = 0.3
	}
	src := &stubSource{headlines: map[models.Region][]models.RawHeadline{models.RegionSaudi: raw}}
	c := New(src, &stubClassifier{scores: scores}, openTestStore(t), Options{TopHeadlines: 10})

	agg, err := c.CollectRegion(context.Background(), models.RegionSaudi)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if agg.HeadlineCount != 15 {
		t.Errorf("expected count 15, got %d", agg.HeadlineCount)
	}
	if len(agg.TopHeadlines) != 10 {
		t.Errorf("expected 10 top headlines, got %d", len(agg.TopHeadlines))
	}
	// Cap keeps source order.
	if agg.TopHeadlines[0].Title != "Economy report number 0 shows growth" {
		t.Errorf("unexpected first headline %q", agg.TopHeadlines[0].Title)
	}
}

type fakeDeduper struct {
	seen map[string]bool
}

func (d *fakeDeduper) Seen(_ context.Context, key string) (bool, error) {
	if d.seen[key] {
		return true, nil
	}
	d.seen[key] = true
	return false, nil
}

func (d *fakeDeduper) Close() error { return nil }

func TestCollectRegionDedupe(t *testing.T) {
	src := &stubSource{headlines: map[models.Region][]models.RawHeadline{
		models.RegionGlobal: {
			{Title: "Global growth accelerates", URL: "https://example.com/g1"},
			{Title: "Trade deal signed", URL: "https://example.com/g2"},
		},
	}}
	clf := &stubClassifier{scores: map[string]float64{
		"Global growth accelerates": 0.5,
		"Trade deal signed":         0.5,
	}}
	d := &fakeDeduper{seen: map[string]bool{"https://example.com/g2": true}}
	c := New(src, clf, openTestStore(t), Options{Deduper: d})

	agg, err := c.CollectRegion(context.Background(), models.RegionGlobal)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if agg.HeadlineCount != 1 {
		t.Errorf("expected previously-seen headline dropped, got count %d", agg.HeadlineCount)
	}
	if agg.TopHeadlines[0].URL != "https://example.com/g1" {
		t.Errorf("wrong headline survived dedupe: %q", agg.TopHeadlines[0].URL)
	}
}

func TestCollectAllPartialFailure(t *testing.T) {
	src := &regionAwareSource{
		good: map[models.Region][]models.RawHeadline{
			models.RegionUS: {{Title: "Jobs data beats expectations", URL: "https://example.com/u"}},
		},
		fail: models.RegionEU,
	}
	clf := &stubClassifier{scores: map[string]float64{"Jobs data beats expectations": 0.4}}
	c := New(src, clf, openTestStore(t), Options{Concurrency: 2})

	results := c.CollectAll(context.Background())

	if len(results) != len(models.Regions()) {
		t.Fatalf("expected a result per region, got %d", len(results))
	}
	if results[models.RegionEU].Err == nil {
		t.Error("expected error result for failing region")
	}
	us := results[models.RegionUS]
	if us.Err != nil {
		t.Fatalf("unexpected error for healthy region: %v", us.Err)
	}
	if us.Aggregate == nil || us.Aggregate.HeadlineCount != 1 {
		t.Error("healthy region must still produce an aggregate")
	}
}

type regionAwareSource struct {
	good map[models.Region][]models.RawHeadline
	fail models.Region
}

func (s *regionAwareSource) Name() string { return "region-aware" }

func (s *regionAwareSource) Fetch(_ context.Context, region models.Region) ([]models.RawHeadline, error) {
	if region == s.fail {
		return nil, errors.New("region source offline")
	}
	return s.good[region], nil
}

func TestCollectRegionTimestampUTC(t *testing.T) {
	src := &stubSource{headlines: map[models.Region][]models.RawHeadline{}}
	c := New(src, sentiment.NewLexicon(), openTestStore(t), Options{})
	fixed := time.Date(2025, 3, 1, 10, 30, 45, 123456789, time.FixedZone("EET", 2*3600))
	c.now = func() time.Time { return fixed }

	agg, err := c.CollectRegion(context.Background(), models.RegionAfrica)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := time.Date(2025, 3, 1, 8, 30, 45, 0, time.UTC)
	if !agg.LastUpdated.Equal(want) {
		t.Errorf("expected UTC second-truncated timestamp %v, got %v", want, agg.LastUpdated)
	}
}
