package service

import (
	"context"
	"fmt"

	"caseodds/config"
	"caseodds/events"
	"caseodds/models"
	log "github.com/sirupsen/logrus"
)

type caseSimulationService struct {
	cfg       *config.Config
	fetch     CachedFetchService
	catalog   CatalogService
	odds      OddsService
	simulator SimulationService
	reporter  ReportService
	results   ResultStore
	chart     ChartRenderer // nil disables the chart
	publisher EventPublisher
}

// NewCaseSimulationService wires the pipeline stages together
func NewCaseSimulationService(
	cfg *config.Config,
	fetch CachedFetchService,
	catalog CatalogService,
	odds OddsService,
	simulator SimulationService,
	reporter ReportService,
	results ResultStore,
	chart ChartRenderer,
	publisher EventPublisher,
) CaseSimulationService {
	return &caseSimulationService{
		cfg:       cfg,
		fetch:     fetch,
		catalog:   catalog,
		odds:      odds,
		simulator: simulator,
		reporter:  reporter,
		results:   results,
		chart:     chart,
		publisher: publisher,
	}
}

func (s *caseSimulationService) Run(ctx context.Context) (*models.Report, error) {
	log.WithFields(log.Fields{
		"section": s.cfg.SectionName,
		"case":    s.cfg.CaseName,
		"trials":  s.cfg.CaseCount,
	}).Info("Starting case simulation")

	// Catalog
	catalogRaw, err := s.fetch.Fetch(ctx, s.cfg.SectionsURL, s.cfg.MainSectionsCacheName())
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	info, err := s.catalog.LookupCase(catalogRaw, s.cfg.SectionName, s.cfg.CaseName)
	if err != nil {
		return nil, fmt.Errorf("failed to find case: %w", err)
	}

	// Odds listing
	oddsURL, err := s.odds.OddsURL(info.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to build odds URL: %w", err)
	}
	oddsRaw, err := s.fetch.Fetch(ctx, oddsURL, s.cfg.OddsCacheName())
	if err != nil {
		return nil, fmt.Errorf("failed to load odds: %w", err)
	}
	entries, err := s.odds.ParseOdds(oddsRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse odds: %w", err)
	}
	table, err := s.odds.CleanOdds(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to clean odds: %w", err)
	}
	if _, err := s.results.SaveFilteredOdds(s.cfg.FilteredOddsName(), table); err != nil {
		return nil, fmt.Errorf("failed to save filtered odds: %w", err)
	}

	// Simulation and report
	sim, err := s.simulator.Simulate(table, info.PriceCents, s.cfg.CaseCount)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate: %w", err)
	}
	report := s.reporter.BuildReport(info, table, sim)

	resultsPath, err := s.results.SaveReport(s.cfg.ResultsName(), report)
	if err != nil {
		return nil, fmt.Errorf("failed to save results: %w", err)
	}

	chartPath := ""
	if s.chart != nil {
		path := s.cfg.ChartPath()
		if err := s.chart.Render(report, path); err != nil {
			log.WithError(err).Warn("Failed to render drop chart")
		} else {
			chartPath = path
		}
	}

	log.WithFields(log.Fields{
		"runID":      report.RunID,
		"results":    resultsPath,
		"chart":      chartPath,
		"netProfit":  report.Summary.NetProfit,
		"returnRate": report.Summary.ReturnRatioPercent,
	}).Info("Case simulation completed")

	s.publisher.Emit(ctx, events.SimulationCompletedEvent{
		Report:      report,
		ResultsPath: resultsPath,
		ChartPath:   chartPath,
	})

	return report, nil
}
