package service

import (
	"context"

	"caseodds/events"
	"caseodds/models"
)

// Fetcher downloads a JSON document
type Fetcher interface {
	// FetchJSON performs a GET and returns the body if it is valid JSON
	FetchJSON(ctx context.Context, url string) ([]byte, error)
}

// CacheStore persists upstream documents with a freshness window
type CacheStore interface {
	// Path returns the on-disk location of an entry
	Path(name string) string

	// IsFresh reports whether the entry exists and is within the TTL
	IsFresh(name string) (bool, error)

	// Load reads an entry
	Load(name string) ([]byte, error)

	// Store pretty-prints and atomically writes an entry
	Store(name string, raw []byte) error
}

// ResultStore persists per-run artifacts
type ResultStore interface {
	// SaveFilteredOdds writes the cleaned drop table and returns its path
	SaveFilteredOdds(name string, table *models.DropTable) (string, error)

	// SaveReport writes the simulation report and returns its path
	SaveReport(name string, report *models.Report) (string, error)
}

// ChartRenderer draws a report to an image file
type ChartRenderer interface {
	Render(report *models.Report, path string) error
}

// EventPublisher publishes pipeline events
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// CachedFetchService fetches upstream documents through the file cache
type CachedFetchService interface {
	// Fetch returns the cached document when fresh, otherwise downloads and caches it
	Fetch(ctx context.Context, url, cacheName string) ([]byte, error)
}

// CatalogService resolves cases in the catalog
type CatalogService interface {
	// LookupCase finds a case by section name and case title
	LookupCase(raw []byte, sectionName, caseName string) (*models.CaseInfo, error)
}

// OddsService turns a raw odds listing into a drop table
type OddsService interface {
	// OddsURL builds the odds-contents URL for a generation uid
	OddsURL(uid string) (string, error)

	// ParseOdds extracts the raw rows of an odds listing
	ParseOdds(raw []byte) ([]models.OddsEntry, error)

	// CleanOdds sanitizes names and converts the rows to an ordered drop table
	CleanOdds(ctx context.Context, entries []models.OddsEntry) (*models.DropTable, error)
}

// SimulationService runs weighted case openings
type SimulationService interface {
	// Simulate draws trials independent samples from the table
	Simulate(table *models.DropTable, casePriceCents int64, trials int) (*models.SimulationResult, error)
}

// ReportService derives profitability figures
type ReportService interface {
	// BuildReport computes the summary, drop rates and fit statistics of a run
	BuildReport(info *models.CaseInfo, table *models.DropTable, sim *models.SimulationResult) *models.Report
}

// CaseSimulationService runs the whole pipeline once
type CaseSimulationService interface {
	// Run fetches, cleans, simulates and reports, aborting on the first error
	Run(ctx context.Context) (*models.Report, error)
}
