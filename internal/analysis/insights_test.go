package analysis

import (
	"reflect"
	"strings"
	"testing"

	"github.com/seenimoa/econmood/pkg/models"
)

func TestGenerateInsightsOverviewBranches(t *testing.T) {
	cases := []struct {
		score float64
		title string
	}{
		{60.1, "POSITIVE MOMENTUM"},
		{60.0, "MARKET NEUTRALITY"}, // exactly 60 is neutral
		{40.0, "MARKET NEUTRALITY"}, // exactly 40 is neutral
		{39.9, "CAUTION ADVISED"},
	}
	for _, tc := range cases {
		cards := GenerateInsights(models.RegionUS, tc.score, 10, models.TrendResult{}, nil)
		if cards[0].Title != tc.title {
			t.Errorf("score %.1f: expected first card %q, got %q", tc.score, tc.title, cards[0].Title)
		}
	}
}

func TestGenerateInsightsTrendCardRequiresHistory(t *testing.T) {
	noHistory := GenerateInsights(models.RegionUS, 50, 10, models.TrendResult{DataPoints: 1}, nil)
	for _, c := range noHistory {
		if c.Title == "UPWARD TREND" || c.Title == "DOWNWARD PRESSURE" || c.Title == "STABLE OUTLOOK" {
			t.Errorf("unexpected trend card %q with a single data point", c.Title)
		}
	}

	rising := GenerateInsights(models.RegionUS, 50, 10,
		models.TrendResult{Change: 5.5, Trend: models.TrendRising, DataPoints: 4}, nil)
	if rising[1].Title != "UPWARD TREND" {
		t.Errorf("expected UPWARD TREND second, got %q", rising[1].Title)
	}
	if !strings.Contains(rising[1].Text, "5.5") {
		t.Errorf("expected change magnitude in text, got %q", rising[1].Text)
	}

	falling := GenerateInsights(models.RegionUS, 50, 10,
		models.TrendResult{Change: -3.2, Trend: models.TrendFalling, DataPoints: 4}, nil)
	if falling[1].Title != "DOWNWARD PRESSURE" {
		t.Errorf("expected DOWNWARD PRESSURE second, got %q", falling[1].Title)
	}
	if !strings.Contains(falling[1].Text, "3.2") {
		t.Errorf("expected absolute magnitude in text, got %q", falling[1].Text)
	}
}

func TestGenerateInsightsVolumeTiers(t *testing.T) {
	cases := []struct {
		count int
		title string
	}{
		{75, "HIGH NEWS VOLUME"},
		{51, "HIGH NEWS VOLUME"},
		{50, "ACTIVE NEWS CYCLE"},
		{21, "ACTIVE NEWS CYCLE"},
		{20, "LIGHT NEWS DAY"}, // boundary is exclusive at 20
		{0, "LIGHT NEWS DAY"},
	}
	for _, tc := range cases {
		cards := GenerateInsights(models.RegionEU, 50, tc.count, models.TrendResult{}, nil)
		found := false
		for _, c := range cards {
			if c.Title == tc.title {
				found = true
			}
		}
		if !found {
			t.Errorf("count %d: expected a %q card", tc.count, tc.title)
		}
	}
}

func TestGenerateInsightsKeywordTone(t *testing.T) {
	cases := []struct {
		stat models.KeywordStat
		tone string
	}{
		{models.KeywordStat{Word: "inflation", Count: 7, Positive: 5, Negative: 2}, "optimistic"},
		{models.KeywordStat{Word: "deficit", Count: 6, Positive: 1, Negative: 4, Neutral: 1}, "pessimistic"},
		{models.KeywordStat{Word: "trade", Count: 4, Positive: 2, Negative: 2}, "neutral"},
	}
	for _, tc := range cases {
		cards := GenerateInsights(models.RegionGlobal, 50, 10, models.TrendResult{}, []models.KeywordStat{tc.stat})
		var keyword *models.InsightCard
		for i := range cards {
			if cards[i].Title == "TOP TOPIC" {
				keyword = &cards[i]
			}
		}
		if keyword == nil {
			t.Fatalf("expected a TOP TOPIC card for %q", tc.stat.Word)
		}
		if !strings.Contains(keyword.Text, tc.tone) {
			t.Errorf("keyword %q: expected tone %q in %q", tc.stat.Word, tc.tone, keyword.Text)
		}
	}
}

func TestGenerateInsightsNoKeywordCardWhenEmpty(t *testing.T) {
	cards := GenerateInsights(models.RegionGlobal, 50, 10, models.TrendResult{}, nil)
	for _, c := range cards {
		if c.Title == "TOP TOPIC" {
			t.Error("unexpected keyword card with no keywords")
		}
	}
}

func TestGenerateInsightsRegionalContextAndFallback(t *testing.T) {
	cards := GenerateInsights(models.RegionSaudi, 50, 10, models.TrendResult{}, nil)
	last := cards[len(cards)-1]
	if last.Title != "REGIONAL CONTEXT" {
		t.Fatalf("expected REGIONAL CONTEXT last, got %q", last.Title)
	}
	if !strings.Contains(last.Text, "Vision 2030") {
		t.Errorf("unexpected saudi context: %q", last.Text)
	}

	unknown := GenerateInsights(models.Region("mars"), 50, 10, models.TrendResult{}, nil)
	last = unknown[len(unknown)-1]
	if !strings.Contains(last.Text, "Monitoring key economic indicators") {
		t.Errorf("expected generic fallback context, got %q", last.Text)
	}
}

func TestGenerateInsightsDeterministicAndCapped(t *testing.T) {
	trend := models.TrendResult{Change: 4.0, Trend: models.TrendRising, DataPoints: 5}
	keywords := []models.KeywordStat{{Word: "growth", Count: 9, Positive: 6, Negative: 1, Neutral: 2}}

	first := GenerateInsights(models.RegionEgypt, 62.5, 55, trend, keywords)
	second := GenerateInsights(models.RegionEgypt, 62.5, 55, trend, keywords)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical inputs to yield identical cards")
	}
	if len(first) > 5 {
		t.Errorf("expected at most 5 cards, got %d", len(first))
	}
	// All card slots filled: overview, trend, volume, keyword, context.
	if len(first) != 5 {
		t.Errorf("expected exactly 5 cards here, got %d", len(first))
	}
	wantOrder := []string{"POSITIVE MOMENTUM", "UPWARD TREND", "HIGH NEWS VOLUME", "TOP TOPIC", "REGIONAL CONTEXT"}
	for i, title := range wantOrder {
		if first[i].Title != title {
			t.Errorf("card %d: expected %q, got %q", i, title, first[i].Title)
		}
	}
}
