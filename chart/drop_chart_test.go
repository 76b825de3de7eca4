package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"caseodds/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport(items int) *models.Report {
	report := &models.Report{
		Summary: models.Summary{CaseName: "C", CasesOpened: 100},
	}
	for i := 0; i < items; i++ {
		report.DropRates = append(report.DropRates, models.DropRate{
			Name:          fmt.Sprintf("Item %d", i),
			Price:         float64(items - i),
			ExpectedRate:  1 / float64(items),
			ObservedCount: 100 / items,
		})
	}
	return report
}

func TestDropChartRenderer_Render(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "drops_c.png")

	err := NewDropChartRenderer().Render(testReport(20), path)

	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	header := make([]byte, 8)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.Read(header)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), header)
}

func TestDropChartRenderer_Render_SVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drops.svg")

	require.NoError(t, NewDropChartRenderer().Render(testReport(3), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestDropChartRenderer_Render_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drops.png")

	err := NewDropChartRenderer().Render(testReport(0), path)

	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
