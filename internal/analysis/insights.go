package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/seenimoa/econmood/pkg/models"
)

// maxInsights caps the number of cards returned per region.
const maxInsights = 5

// regionalContext holds the static per-region narrative for the final card.
var regionalContext = map[models.Region]string{
	models.RegionGlobal:     "Global markets interconnected - watch for spillover effects from major economies.",
	models.RegionUS:         "Fed policy and employment data remain key drivers for American market sentiment.",
	models.RegionEU:         "ECB decisions and energy prices continue to shape European economic outlook.",
	models.RegionAfrica:     "Infrastructure investment and commodity prices driving African development narrative.",
	models.RegionEgypt:      "Currency stability and Suez Canal revenues crucial for Egyptian economic health.",
	models.RegionSaudi:      "Vision 2030 progress and oil diversification efforts shaping Saudi market narrative.",
	models.RegionMiddleEast: "Regional cooperation and energy transition policies impacting Gulf economies.",
}

// GenerateInsights produces the ordered insight cards for a region from the
// current polarity score, headline volume, trend, and keyword stats. Output
// is deterministic for identical inputs and never exceeds maxInsights cards.
// Card order is fixed: overview, trend, volume, keyword, regional context.
func GenerateInsights(region models.Region, score float64, headlineCount int, trend models.TrendResult, keywords []models.KeywordStat) []models.InsightCard {
	var cards []models.InsightCard

	// 1. Sentiment overview. Exactly 60 or 40 falls into the neutral branch.
	switch {
	case score > 60:
		cards = append(cards, models.InsightCard{
			Title: "POSITIVE MOMENTUM",
			Text:  fmt.Sprintf("Markets show strong optimism at %.1f%%. Positive sentiment is driving investor confidence across %s markets.", score, strings.ToUpper(string(region))),
			Color: "emerald",
			Icon:  "trending-up",
		})
	case score < 40:
		cards = append(cards, models.InsightCard{
			Title: "CAUTION ADVISED",
			Text:  fmt.Sprintf("Sentiment at %.1f%% suggests market concerns. Economic headwinds may be affecting investor confidence.", score),
			Color: "rose",
			Icon:  "trending-down",
		})
	default:
		cards = append(cards, models.InsightCard{
			Title: "MARKET NEUTRALITY",
			Text:  fmt.Sprintf("Markets show balanced sentiment at %.1f%%. Mixed signals from economic indicators are keeping sentiment stable.", score),
			Color: "amber",
			Icon:  "minus",
		})
	}

	// 2. Trend narrative, only when the window holds enough points.
	if trend.DataPoints > 1 {
		switch trend.Trend {
		case models.TrendRising:
			cards = append(cards, models.InsightCard{
				Title: "UPWARD TREND",
				Text:  fmt.Sprintf("Sentiment has improved by %.1f%% over the last 24 hours. Optimistic momentum is building.", math.Abs(trend.Change)),
				Color: "emerald",
				Icon:  "chevron-up",
			})
		case models.TrendFalling:
			cards = append(cards, models.InsightCard{
				Title: "DOWNWARD PRESSURE",
				Text:  fmt.Sprintf("Sentiment declined by %.1f%% in the past 24 hours. Watch for potential further corrections.", math.Abs(trend.Change)),
				Color: "rose",
				Icon:  "chevron-down",
			})
		default:
			cards = append(cards, models.InsightCard{
				Title: "STABLE OUTLOOK",
				Text:  fmt.Sprintf("Sentiment remains stable with minimal change (%+.1f%%). Markets consolidating around current levels.", trend.Change),
				Color: "blue",
				Icon:  "minus",
			})
		}
	}

	// 3. Volume classification. Boundary at 20 is exclusive: exactly 20
	// headlines is still a light news day.
	switch {
	case headlineCount > 50:
		cards = append(cards, models.InsightCard{
			Title: "HIGH NEWS VOLUME",
			Text:  fmt.Sprintf("Unusually high activity with %d headlines. Major economic events may be driving increased coverage.", headlineCount),
			Color: "purple",
			Icon:  "file-text",
		})
	case headlineCount > 20:
		cards = append(cards, models.InsightCard{
			Title: "ACTIVE NEWS CYCLE",
			Text:  fmt.Sprintf("%d headlines analyzed. Normal market activity with steady information flow.", headlineCount),
			Color: "blue",
			Icon:  "bar-chart",
		})
	default:
		cards = append(cards, models.InsightCard{
			Title: "LIGHT NEWS DAY",
			Text:  fmt.Sprintf("Only %d headlines found. Lower news volume may indicate quieter market conditions.", headlineCount),
			Color: "slate",
			Icon:  "clipboard",
		})
	}

	// 4. Top keyword, when the window produced any.
	if len(keywords) > 0 {
		top := keywords[0]
		tone := "neutral"
		if top.Positive > top.Negative {
			tone = "optimistic"
		} else if top.Negative > top.Positive {
			tone = "pessimistic"
		}
		cards = append(cards, models.InsightCard{
			Title: "TOP TOPIC",
			Text:  fmt.Sprintf("'%s' is the most discussed topic with %d mentions. Sentiment around this topic is %s.", titleCase(top.Word), top.Count, tone),
			Color: "cyan",
			Icon:  "search",
		})
	}

	// 5. Regional context.
	text, ok := regionalContext[region]
	if !ok {
		text = fmt.Sprintf("Monitoring key economic indicators for %s.", region.Name())
	}
	cards = append(cards, models.InsightCard{
		Title: "REGIONAL CONTEXT",
		Text:  text,
		Color: "indigo",
		Icon:  "globe",
	})

	if len(cards) > maxInsights {
		cards = cards[:maxInsights]
	}
	return cards
}

// titleCase uppercases the first letter of an ASCII keyword.
func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
