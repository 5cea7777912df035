package source

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/econmood/pkg/models"
)

// siteConfig describes one scraped news site: where to fetch and which
// selector yields headline links.
type siteConfig struct {
	Name          string
	URL           string
	TitleSelector string
	BaseURL       string
}

// maxPerSite caps how many headlines one site contributes per cycle.
const maxPerSite = 6

// regionSites lists the directly-scraped regional business sections. Only
// regions poorly covered by English-language RSS carry site configs; the
// remaining regions are served by the RSS strategy.
var regionSites = map[models.Region][]siteConfig{
	models.RegionEgypt: {
		{
			Name:          "Ahram Online",
			URL:           "https://english.ahram.org.eg/UI/Front/Business.aspx",
			TitleSelector: "a.NewsTitle",
			BaseURL:       "https://english.ahram.org.eg",
		},
		{
			Name:          "Egypt Today",
			URL:           "https://www.egypttoday.com/Section/1/Business",
			TitleSelector: "h2.title a, h3.title a",
			BaseURL:       "https://www.egypttoday.com",
		},
	},
	models.RegionSaudi: {
		{
			Name:          "Arab News",
			URL:           "https://www.arabnews.com/economy",
			TitleSelector: "h2.article-item-title a",
			BaseURL:       "https://www.arabnews.com",
		},
		{
			Name:          "Saudi Gazette",
			URL:           "https://saudigazette.com.sa/business",
			TitleSelector: "h3.post-title a",
			BaseURL:       "https://saudigazette.com.sa",
		},
	},
	models.RegionMiddleEast: {
		{
			Name:          "Gulf News",
			URL:           "https://gulfnews.com/business",
			TitleSelector: "a.card-title",
			BaseURL:       "https://gulfnews.com",
		},
	},
}

// SiteScraper fetches headlines by scraping regional business sections
// directly. It only serves the regions it has site configs for.
type SiteScraper struct {
	limiter *rateLimiter
}

// NewSiteScraper creates the direct site scraper source.
func NewSiteScraper() *SiteScraper {
	return &SiteScraper{
		limiter: newRateLimiter(1, time.Second),
	}
}

// Name returns the source name.
func (s *SiteScraper) Name() string { return "site-scraper" }

// Fetch scrapes the region's configured sites. Regions without site configs
// report ErrUnavailable so a wrapping strategy can take over; a site that
// fails mid-cycle is skipped, not fatal.
func (s *SiteScraper) Fetch(ctx context.Context, region models.Region) ([]models.RawHeadline, error) {
	sites, ok := regionSites[region]
	if !ok {
		return nil, fmt.Errorf("no scrape targets for region %s: %w", region, ErrUnavailable)
	}

	var headlines []models.RawHeadline
	for _, site := range sites {
		items, err := s.scrapeSite(ctx, site)
		if err != nil {
			log.Printf("scrape %s for %s failed: %v", site.Name, region, err)
			continue
		}
		headlines = append(headlines, items...)
	}

	return headlines, nil
}

// scrapeSite fetches one site and extracts its headline links.
func (s *SiteScraper) scrapeSite(ctx context.Context, site siteConfig) ([]models.RawHeadline, error) {
	if err := s.limiter.wait(ctx); err != nil {
		return nil, err
	}

	body, err := doGet(ctx, site.URL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", site.URL, err)
	}

	var headlines []models.RawHeadline
	doc.Find(site.TitleSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		if title == "" {
			return true
		}

		href, _ := sel.Attr("href")
		if href != "" && !strings.HasPrefix(href, "http") {
			href = site.BaseURL + href
		}
		if href == "" {
			href = "#"
		}

		headlines = append(headlines, models.RawHeadline{
			Title:  title,
			Source: site.Name,
			URL:    href,
		})
		return len(headlines) < maxPerSite
	})

	return headlines, nil
}
