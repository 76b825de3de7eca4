package repository

import (
	"path/filepath"

	"caseodds/models"
	log "github.com/sirupsen/logrus"
)

// ResultsRepository writes the per-run artifacts: the cleaned odds table and
// the simulation report.
type ResultsRepository struct {
	dataDir    string
	resultsDir string
}

// NewResultsRepository creates a results repository
func NewResultsRepository(dataDir, resultsDir string) *ResultsRepository {
	return &ResultsRepository{
		dataDir:    dataDir,
		resultsDir: resultsDir,
	}
}

// SaveFilteredOdds writes the cleaned drop table as an ordered JSON array and
// returns the written path
func (r *ResultsRepository) SaveFilteredOdds(name string, table *models.DropTable) (string, error) {
	path := filepath.Join(r.dataDir, name)
	if err := writeJSONFile(path, table.Records()); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"file":  path,
		"drops": len(table.Drops),
	}).Debug("Saved filtered odds")
	return path, nil
}

// SaveReport writes the simulation report and returns the written path
func (r *ResultsRepository) SaveReport(name string, report *models.Report) (string, error) {
	path := filepath.Join(r.resultsDir, name)
	if err := writeJSONFile(path, report); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"file":  path,
		"runID": report.RunID,
	}).Debug("Saved simulation report")
	return path, nil
}
