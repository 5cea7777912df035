package source

import (
	"context"
	"log"

	"github.com/seenimoa/econmood/pkg/models"
)

// fallbackHeadlines are the canned per-region headlines served when a
// primary source fails or comes back empty. They keep the pipeline and the
// frontend alive through upstream outages; their URLs are deliberately
// inert.
var fallbackHeadlines = map[models.Region][]models.RawHeadline{
	models.RegionGlobal: {
		{Title: "Global Markets Rally on Strong Economic Data", Source: "Reuters", URL: "#"},
		{Title: "World Trade Organization Reports Growth in International Commerce", Source: "Bloomberg", URL: "#"},
		{Title: "Central Banks Signal Cautious Approach to Interest Rates", Source: "Financial Times", URL: "#"},
	},
	models.RegionUS: {
		{Title: "US Jobs Report Exceeds Expectations, Unemployment Falls", Source: "CNBC", URL: "#"},
		{Title: "Federal Reserve Maintains Interest Rate Policy", Source: "Wall Street Journal", URL: "#"},
		{Title: "Tech Sector Leads Stock Market Gains", Source: "Fox Business", URL: "#"},
	},
	models.RegionEU: {
		{Title: "European Central Bank Holds Rates Steady", Source: "Financial Times", URL: "#"},
		{Title: "German Economy Shows Signs of Recovery", Source: "Deutsche Welle", URL: "#"},
		{Title: "EU Trade Deal Boosts Business Confidence", Source: "Euronews", URL: "#"},
	},
	models.RegionAfrica: {
		{Title: "African Development Bank Announces New Infrastructure Fund", Source: "AllAfrica", URL: "#"},
		{Title: "Nigeria's Economic Reforms Show Early Promise", Source: "Reuters", URL: "#"},
		{Title: "South African Rand Strengthens on Trade Data", Source: "Bloomberg", URL: "#"},
	},
	models.RegionEgypt: {
		{Title: "Egypt's Central Bank Maintains Stable Monetary Policy", Source: "Ahram Online", URL: "#"},
		{Title: "Suez Canal Revenue Reaches Record High", Source: "Egypt Today", URL: "#"},
		{Title: "Egyptian Pound Holds Steady Against Dollar", Source: "Reuters", URL: "#"},
	},
	models.RegionSaudi: {
		{Title: "Saudi Vision 2030 Projects Accelerate Economic Diversification", Source: "Arab News", URL: "#"},
		{Title: "NEOM Development Attracts Global Investment", Source: "Saudi Gazette", URL: "#"},
		{Title: "Saudi Aramco Reports Strong Quarterly Earnings", Source: "Bloomberg", URL: "#"},
	},
	models.RegionMiddleEast: {
		{Title: "Gulf Cooperation Council Economic Summit Concludes with New Agreements", Source: "Gulf News", URL: "#"},
		{Title: "UAE Diversification Strategy Pays Off with Tech Boom", Source: "Al Jazeera", URL: "#"},
		{Title: "Middle East Oil Producers Adjust Output Targets", Source: "Reuters", URL: "#"},
	},
}

// fallbackSource decorates a primary source with canned data. Fallback is a
// wrapper around any strategy, not a property of one.
type fallbackSource struct {
	primary Source
}

// WithFallback wraps a primary source so that fetch failures and empty
// results are replaced by the region's canned headlines.
func WithFallback(primary Source) Source {
	return &fallbackSource{primary: primary}
}

// Name returns the decorated source name.
func (f *fallbackSource) Name() string {
	return f.primary.Name() + "+fallback"
}

// Fetch delegates to the primary source and substitutes fallback data when
// it fails or returns nothing.
func (f *fallbackSource) Fetch(ctx context.Context, region models.Region) ([]models.RawHeadline, error) {
	headlines, err := f.primary.Fetch(ctx, region)
	if err == nil && len(headlines) > 0 {
		return headlines, nil
	}
	if err != nil {
		log.Printf("source %s failed for %s, using fallback data: %v", f.primary.Name(), region, err)
	} else {
		log.Printf("source %s returned no headlines for %s, using fallback data", f.primary.Name(), region)
	}

	canned, ok := fallbackHeadlines[region]
	if !ok {
		canned = fallbackHeadlines[models.RegionGlobal]
	}
	out := make([]models.RawHeadline, len(canned))
	copy(out, canned)
	return out, nil
}
