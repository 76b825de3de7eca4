package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"caseodds/models"
	"caseodds/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsRepository_SaveFilteredOdds(t *testing.T) {
	dir := t.TempDir()
	repo := NewResultsRepository(filepath.Join(dir, "data"), filepath.Join(dir, "results"))

	table := testutil.CreateTestDropTable(
		models.Drop{Name: "M9 Bayonet", OriginalName: "★ M9 Bayonet ★", PriceCents: 123456, Chance: 0.5},
		models.Drop{Name: "P250 | Sand Dune", PriceCents: 3, Chance: 99.5},
	)

	path, err := repo.SaveFilteredOdds("filtered_odds_c.json", table)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "filtered_odds_c.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []models.FilteredOddsRecord
	require.NoError(t, json.Unmarshal(raw, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "M9 Bayonet", records[0].Name)
	assert.Equal(t, "★ M9 Bayonet ★", records[0].OriginalName)
	assert.Equal(t, 1234.56, records[0].Price)
	assert.Equal(t, 0.03, records[1].Price)
}

func TestResultsRepository_SaveReportOverwrites(t *testing.T) {
	dir := t.TempDir()
	repo := NewResultsRepository(filepath.Join(dir, "data"), filepath.Join(dir, "results"))

	first := &models.Report{RunID: "first", GeneratedAt: time.Now(), Drops: []string{"A"}}
	second := &models.Report{RunID: "second", GeneratedAt: time.Now(), Drops: []string{"B", "A"}}

	_, err := repo.SaveReport("results_c.json", first)
	require.NoError(t, err)
	path, err := repo.SaveReport("results_c.json", second)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var saved models.Report
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, "second", saved.RunID)
	assert.Equal(t, []string{"B", "A"}, saved.Drops)
}
