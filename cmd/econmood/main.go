// Econ-Mood — Regional Economic Sentiment Monitor
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/econmood/api"
	"github.com/seenimoa/econmood/internal/analysis"
	"github.com/seenimoa/econmood/internal/collector"
	"github.com/seenimoa/econmood/internal/config"
	"github.com/seenimoa/econmood/internal/dedupe"
	"github.com/seenimoa/econmood/internal/monitor"
	"github.com/seenimoa/econmood/internal/regioncache"
	"github.com/seenimoa/econmood/internal/sentiment"
	"github.com/seenimoa/econmood/internal/source"
	"github.com/seenimoa/econmood/internal/store"
	"github.com/seenimoa/econmood/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "econmood",
	Short: "Econ-Mood — Regional Economic Sentiment Monitor",
	Long: `Econ-Mood tracks economic news sentiment across world regions.
It collects headlines per region, scores them with a lexicon classifier,
aggregates bull/bear polarity, and serves trends, keywords, and insight
cards over a REST API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Wiring ---

// buildMonitor assembles the full service stack from configuration.
// The returned cleanup func closes the store and dedupe backend.
func buildMonitor() (*monitor.Monitor, func(), error) {
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}

	var src source.Source
	switch cfg.Collector.Strategy {
	case "scrape":
		src = source.NewSiteScraper()
	default:
		src = source.NewGoogleNews()
	}
	if cfg.Collector.Fallback {
		src = source.WithFallback(src)
	}

	var deduper dedupe.Deduper
	if cfg.Dedupe.Enabled {
		ttl := time.Duration(cfg.Dedupe.TTLHours) * time.Hour
		if cfg.Dedupe.Backend == "redis" {
			deduper = dedupe.NewRedis(cfg.Dedupe.RedisAddr, ttl)
		} else {
			deduper = dedupe.NewMemory(ttl)
		}
	}

	col := collector.New(src, sentiment.NewLexicon(), st, collector.Options{
		Deduper: deduper,
		Thresholds: analysis.Thresholds{
			Bull: cfg.Sentiment.BullThreshold,
			Bear: cfg.Sentiment.BearThreshold,
		},
		Concurrency:  cfg.Collector.Concurrency,
		TopHeadlines: cfg.Collector.TopHeadlines,
	})

	cache := regioncache.New(
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		cfg.Cache.MaxEntries,
	)

	mon := monitor.New(st, cache, col,
		time.Duration(cfg.Collector.LookbackHours)*time.Hour,
		cfg.Collector.TopHeadlines,
	)

	cleanup := func() {
		if deduper != nil {
			deduper.Close() //nolint:errcheck
		}
		st.Close() //nolint:errcheck
	}
	return mon, cleanup, nil
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Econ-Mood %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		mon, cleanup, err := buildMonitor()
		if err != nil {
			return err
		}
		defer cleanup()

		srv := api.NewServer(cfg, mon)
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("🌐 Starting Econ-Mood API server on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Collect Command ---

var collectCmd = &cobra.Command{
	Use:   "collect [region]",
	Short: "Run a collection cycle for one region or all regions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mon, cleanup, err := buildMonitor()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := context.Background()

		if len(args) == 1 {
			agg, err := mon.Refresh(ctx, args[0])
			if err != nil {
				return err
			}
			printAggregate(agg)
			return nil
		}

		aggs, failed := mon.RefreshAll(ctx)
		for i := range aggs {
			printAggregate(&aggs[i])
		}
		if failed > 0 {
			fmt.Printf("\n⚠️  %d region(s) failed to collect\n", failed)
		}
		return nil
	},
}

func printAggregate(agg *models.RegionAggregate) {
	fmt.Printf("%-14s %6.1f%% %-8s  %3d headlines (%d bull / %d bear / %d neutral)\n",
		agg.RegionName, agg.PolarityScore, agg.OverallLabel,
		agg.HeadlineCount, agg.BullCount, agg.BearCount, agg.NeutralCount)
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  Econ-Mood — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:      %s (%s)\n", version, commit)
		fmt.Printf("  Regions:      %s\n", regionList())
		fmt.Println()

		// Config summary
		fmt.Println("  Configuration:")
		fmt.Printf("    API Server:   %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Printf("    Database:     %s\n", cfg.Database.Path)
		fmt.Printf("    Strategy:     %s (fallback: %v)\n", cfg.Collector.Strategy, cfg.Collector.Fallback)
		fmt.Printf("    Classifier:   %s (bull > %.2f, bear < %.2f)\n",
			cfg.Sentiment.Classifier, cfg.Sentiment.BullThreshold, cfg.Sentiment.BearThreshold)
		fmt.Printf("    Cache:        %ds TTL, %d entries max\n", cfg.Cache.TTLSeconds, cfg.Cache.MaxEntries)
		dedupeState := "disabled"
		if cfg.Dedupe.Enabled {
			dedupeState = cfg.Dedupe.Backend
		}
		fmt.Printf("    Dedupe:       %s\n", dedupeState)
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

func regionList() string {
	ids := make([]string, 0, len(models.Regions()))
	for _, r := range models.Regions() {
		ids = append(ids, string(r))
	}
	return strings.Join(ids, ", ")
}
