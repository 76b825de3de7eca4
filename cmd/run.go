package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"caseodds/chart"
	"caseodds/config"
	"caseodds/events"
	"caseodds/infrastructure"
	"caseodds/models"
	"caseodds/notify"
	"caseodds/repository"
	"caseodds/service"

	"github.com/sirupsen/logrus"
)

// Run loads the configuration, runs one simulation and prints its summary
func Run(ctx context.Context) error {
	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := configureLogging(cfg); err != nil {
		return err
	}

	log.Printf("Simulating %d openings of %q (%s) in %s mode...", cfg.CaseCount, cfg.CaseName, cfg.SectionName, cfg.Environment)

	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	return printSummary(os.Stdout, report)
}

// newPipeline wires the fetcher, cache, services and optional outputs
func newPipeline(cfg *config.Config) (service.CaseSimulationService, error) {
	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize storage
	fetcher := infrastructure.NewHTTPFetcher(cfg.HTTPTimeout, cfg.UserAgent)
	cache := repository.NewFileCache(cfg.DataDir, cfg.CacheTTL)
	results := repository.NewResultsRepository(cfg.DataDir, cfg.ResultsDir)

	// Optional outputs
	var renderer service.ChartRenderer
	if cfg.ChartEnabled {
		renderer = chart.NewDropChartRenderer()
	}

	if cfg.DiscordWebhookURL != "" {
		notifier, err := notify.NewDiscordNotifier(cfg.DiscordWebhookURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Discord notifier: %w", err)
		}
		eventBus.Subscribe(events.EventTypeSimulationCompleted, notifier.HandleSimulationCompleted)
		log.Println("Discord summary enabled")
	}

	// Initialize services
	return service.NewCaseSimulationService(
		cfg,
		service.NewCachedFetchService(fetcher, cache, eventBus),
		service.NewCatalogService(),
		service.NewOddsService(cfg.OddsBaseURL, eventBus),
		service.NewSimulationService(cfg.Seed),
		service.NewReportService(),
		results,
		renderer,
		eventBus,
	), nil
}

func configureLogging(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	logrus.SetLevel(level)

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}

func printSummary(w io.Writer, report *models.Report) error {
	for _, line := range notify.SummaryLines(report) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to print summary: %w", err)
		}
	}
	return nil
}
