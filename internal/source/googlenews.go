package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/seenimoa/econmood/pkg/models"
)

// googleNewsBase is the Google News RSS search endpoint. Free, reliable,
// and requires no authentication.
const googleNewsBase = "https://news.google.com/rss/search"

// regionQuery holds the per-region Google News search configuration.
type regionQuery struct {
	Query string
	HL    string // host language
	GL    string // geographic location
	CEID  string // country:language edition
}

var regionQueries = map[models.Region]regionQuery{
	models.RegionGlobal: {
		Query: "(economy OR GDP OR inflation OR interest rates OR trade deficit OR central bank) AND (global OR world OR international) when:1d",
		HL:    "en-US", GL: "US", CEID: "US:en",
	},
	models.RegionUS: {
		Query: "(economy OR GDP OR inflation OR unemployment OR Federal Reserve OR Treasury OR stock market) AND (US OR America OR United States) when:1d",
		HL:    "en-US", GL: "US", CEID: "US:en",
	},
	models.RegionEU: {
		Query: "(economy OR GDP OR inflation OR ECB OR European Central Bank OR Eurozone) AND (Europe OR EU OR European Union) when:1d",
		HL:    "en-GB", GL: "GB", CEID: "GB:en",
	},
	models.RegionAfrica: {
		Query: "(economy OR GDP OR inflation OR trade OR investment OR central bank) AND (Africa OR African) when:1d",
		HL:    "en", GL: "ZA", CEID: "ZA:en",
	},
	models.RegionEgypt: {
		Query: "(economy OR GDP OR inflation OR Egyptian pound OR central bank OR investment) AND Egypt when:1d",
		HL:    "en", GL: "EG", CEID: "EG:en",
	},
	models.RegionSaudi: {
		Query: "(economy OR GDP OR oil OR Vision 2030 OR investment OR Aramco OR NEOM) AND (Saudi Arabia OR Saudi) when:1d",
		HL:    "en", GL: "SA", CEID: "SA:en",
	},
	models.RegionMiddleEast: {
		Query: "(economy OR GDP OR oil OR investment OR trade OR central bank) AND (Middle East OR Gulf OR GCC OR UAE OR Qatar OR Kuwait) when:1d",
		HL:    "en", GL: "AE", CEID: "AE:en",
	},
}

// GoogleNews fetches regional economic headlines from Google News RSS
// search feeds.
type GoogleNews struct {
	parser  *gofeed.Parser
	limiter *rateLimiter
	baseURL string
}

// NewGoogleNews creates the Google News RSS source.
func NewGoogleNews() *GoogleNews {
	return &GoogleNews{
		parser:  gofeed.NewParser(),
		limiter: newRateLimiter(2, time.Second),
		baseURL: googleNewsBase,
	}
}

// Name returns the source name.
func (g *GoogleNews) Name() string { return "google-news-rss" }

// Fetch returns all headlines in the region's feed. Unknown regions fall
// back to the global query.
func (g *GoogleNews) Fetch(ctx context.Context, region models.Region) ([]models.RawHeadline, error) {
	q, ok := regionQueries[region]
	if !ok {
		q = regionQueries[models.RegionGlobal]
	}

	if err := g.limiter.wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", q.Query)
	params.Set("hl", q.HL)
	params.Set("gl", q.GL)
	params.Set("ceid", q.CEID)
	feedURL := g.baseURL + "?" + params.Encode()

	feed, err := g.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("google news feed for %s: %w: %v", region, ErrUnavailable, err)
	}

	var headlines []models.RawHeadline
	for _, item := range feed.Items {
		if item.Title == "" {
			continue
		}
		title, itemSource := splitSourceSuffix(item.Title)
		link := item.Link
		if link == "" {
			link = "#"
		}
		headlines = append(headlines, models.RawHeadline{
			Title:       title,
			Source:      itemSource,
			URL:         link,
			PublishedAt: item.PublishedParsed,
		})
	}

	return headlines, nil
}

// splitSourceSuffix strips the " - Source" suffix Google News appends to
// item titles, returning the cleaned title and the extracted source name.
// Suspiciously long suffixes are assumed to be part of the title itself.
func splitSourceSuffix(title string) (string, string) {
	title = strings.TrimSpace(title)
	if idx := strings.LastIndex(title, " - "); idx > 0 {
		suffix := strings.TrimSpace(title[idx+3:])
		if suffix != "" && len(suffix) < 50 {
			return strings.TrimSpace(title[:idx]), suffix
		}
	}
	return title, "Google News"
}
