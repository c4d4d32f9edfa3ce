package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/divyansh1099/AI-jobs/internal/config"
	"github.com/divyansh1099/AI-jobs/internal/db"
	"github.com/divyansh1099/AI-jobs/internal/discovery"
	"github.com/divyansh1099/AI-jobs/internal/queue"
)

var (
	scrapeTerms     []string
	scrapeLocations []string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one discovery pass and persist the results",
	Long:  "Discover job postings for the given search terms and locations and store them as pending jobs. Requires DATABASE_URL; the running server picks them up on its next start.",
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().StringSliceVar(&scrapeTerms, "terms", nil, "Search terms (default: software engineer, data engineer)")
	scrapeCmd.Flags().StringSliceVar(&scrapeLocations, "locations", nil, "Locations (default: Remote, San Francisco)")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	q := queue.New(nil, logger)
	scraper := discovery.New(q, database, time.Now().UnixNano(), logger)

	jobs, err := scraper.Scrape(ctx, scrapeTerms, scrapeLocations)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	fmt.Printf("Added %d jobs\n", len(jobs))
	return nil
}
