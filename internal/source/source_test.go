package source

import (
	"context"
	"errors"
	"testing"

	"github.com/seenimoa/econmood/pkg/models"
)

// stubSource is a scripted Source for decorator tests.
type stubSource struct {
	headlines []models.RawHeadline
	err       error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(_ context.Context, _ models.Region) ([]models.RawHeadline, error) {
	return s.headlines, s.err
}

func TestSplitSourceSuffix(t *testing.T) {
	cases := []struct {
		in, title, source string
	}{
		{"Fed holds rates steady - Reuters", "Fed holds rates steady", "Reuters"},
		{"Inflation eases in June", "Inflation eases in June", "Google News"},
		{"Oil - prices - climb - Bloomberg", "Oil - prices - climb", "Bloomberg"},
		{
			// Long suffixes stay in the title.
			"Talks stall - negotiators remain far apart on the detailed framework of the proposed agreement",
			"Talks stall - negotiators remain far apart on the detailed framework of the proposed agreement",
			"Google News",
		},
	}
	for _, tc := range cases {
		title, src := splitSourceSuffix(tc.in)
		if title != tc.title || src != tc.source {
			t.Errorf("splitSourceSuffix(%q) = (%q, %q), want (%q, %q)", tc.in, title, src, tc.title, tc.source)
		}
	}
}

func TestWithFallbackPassesThrough(t *testing.T) {
	primary := &stubSource{headlines: []models.RawHeadline{
		{Title: "Markets climb", Source: "Reuters", URL: "https://example.com"},
	}}
	src := WithFallback(primary)

	headlines, err := src.Fetch(context.Background(), models.RegionUS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headlines) != 1 || headlines[0].Title != "Markets climb" {
		t.Errorf("expected primary headlines, got %+v", headlines)
	}
}

func TestWithFallbackOnError(t *testing.T) {
	primary := &stubSource{err: errors.New("feed down")}
	src := WithFallback(primary)

	headlines, err := src.Fetch(context.Background(), models.RegionEgypt)
	if err != nil {
		t.Fatalf("fallback must swallow primary errors, got: %v", err)
	}
	if len(headlines) == 0 {
		t.Fatal("expected canned headlines")
	}
	if headlines[0].Source != "Ahram Online" {
		t.Errorf("expected egypt fallback data, got source %q", headlines[0].Source)
	}
}

func TestWithFallbackOnEmpty(t *testing.T) {
	src := WithFallback(&stubSource{})

	headlines, err := src.Fetch(context.Background(), models.RegionSaudi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headlines) == 0 {
		t.Fatal("expected canned headlines for empty primary result")
	}
}

func TestWithFallbackUnknownRegionUsesGlobal(t *testing.T) {
	src := WithFallback(&stubSource{err: ErrUnavailable})

	headlines, err := src.Fetch(context.Background(), models.Region("atlantis"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headlines) == 0 || headlines[0].Source != "Reuters" {
		t.Errorf("expected global fallback set, got %+v", headlines)
	}
}

func TestSiteScraperUnknownRegion(t *testing.T) {
	_, err := NewSiteScraper().Fetch(context.Background(), models.RegionUS)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable for region without scrape targets, got %v", err)
	}
}

func TestGoogleNewsQueryCoverage(t *testing.T) {
	// Every tracked region must carry its own feed configuration; the
	// global query is a fallback, not a default.
	for _, region := range models.Regions() {
		if _, ok := regionQueries[region]; !ok {
			t.Errorf("missing google news query for region %s", region)
		}
	}
}
