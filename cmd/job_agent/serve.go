package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/divyansh1099/AI-jobs/internal/automation"
	"github.com/divyansh1099/AI-jobs/internal/browser"
	"github.com/divyansh1099/AI-jobs/internal/config"
	"github.com/divyansh1099/AI-jobs/internal/db"
	"github.com/divyansh1099/AI-jobs/internal/discovery"
	"github.com/divyansh1099/AI-jobs/internal/executor"
	"github.com/divyansh1099/AI-jobs/internal/generation"
	"github.com/divyansh1099/AI-jobs/internal/ingestion"
	"github.com/divyansh1099/AI-jobs/internal/llm"
	"github.com/divyansh1099/AI-jobs/internal/queue"
	"github.com/divyansh1099/AI-jobs/internal/server"
	"github.com/divyansh1099/AI-jobs/internal/types"
)

var serveAutoStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start the HTTP server exposing the job pipeline: queue management, discovery, and automation control.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveAutoStart, "auto-start", false, "Start the automation loop immediately")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Persistence is optional; without DATABASE_URL the pipeline runs
	// in-memory only.
	var database *db.DB
	if cfg.Database.URL != "" {
		database, err = db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	} else {
		logger.Warn("DATABASE_URL not set, running without persistence")
	}

	q := queue.New(nil, logger)
	if database != nil {
		pending, err := database.ListJobsByStatus(ctx, types.StatusPending)
		if err != nil {
			logger.Warn("loading pending jobs failed", "error", err)
		} else {
			q.Seed(pending)
		}
	}

	client := newLLMClient(ctx, cfg, logger)
	gen := generation.New(client, logger).
		WithTimeout(cfg.LLM.Timeout).
		WithOptions(llm.GenerateOptions{
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: float32(cfg.LLM.Temperature),
		})

	provider := newSessionProvider(ctx, cfg, logger)
	exec := executor.New(provider, cfg.Pipeline.MaxConcurrent, logger)

	closers := []io.Closer{provider}
	if client != nil {
		closers = append(closers, client)
	}
	if database != nil {
		closers = append(closers, closerFunc(func() error { database.Close(); return nil }))
	}

	var (
		managerStore automation.JobStore
		serverStore  server.JobStore
		scraperStore discovery.JobAdder
	)
	if database != nil {
		managerStore, serverStore, scraperStore = database, database, database
	}

	manager := automation.NewManager(q, managerStore, gen, exec, logger, closers...).
		WithIntervals(cfg.Pipeline.PollInterval, 0)
	defer manager.Cleanup()

	scraper := discovery.New(q, scraperStore, time.Now().UnixNano(), logger)

	if serveAutoStart {
		manager.Start(context.Background())
	}

	srv := server.New(server.Config{
		Addr:            cfg.HTTP.Addr(),
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, manager, scraper, q, serverStore, logger).
		WithIngestor(ingestion.Client{})

	return srv.Start(ctx)
}

// newLLMClient builds the generation backend; any failure degrades to
// template-only generation rather than aborting startup.
func newLLMClient(ctx context.Context, cfg config.Config, logger *slog.Logger) llm.Client {
	if cfg.LLM.Provider == "none" {
		logger.Info("generation backend disabled, using templates")
		return nil
	}

	client, err := llm.NewClient(ctx, &llm.Config{
		Provider: llm.Provider(cfg.LLM.Provider),
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.OllamaURL,
		APIKey:   cfg.LLM.GeminiAPIKey,
	})
	if err != nil {
		logger.Warn("generation backend unavailable, using templates", "error", err)
		return nil
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if !client.Healthy(healthCtx) {
		logger.Warn("generation backend unhealthy, templates will cover failures",
			"provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	}
	return client
}

// newSessionProvider prefers real Chrome sessions and falls back to the
// simulated provider when Chrome cannot be launched.
func newSessionProvider(ctx context.Context, cfg config.Config, logger *slog.Logger) browser.SessionProvider {
	if cfg.Browser.Simulate {
		logger.Info("using simulated browser sessions")
		return browser.NewSimulatedProvider(time.Now().UnixNano(), logger)
	}

	provider, err := browser.NewChromeProvider(ctx, cfg.Browser.Headless, logger)
	if err != nil {
		logger.Warn("browser init failed, using simulation", "error", err)
		return browser.NewSimulatedProvider(time.Now().UnixNano(), logger)
	}
	return provider
}

// closerFunc adapts a function to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }
