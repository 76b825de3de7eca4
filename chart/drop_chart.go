package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"caseodds/models"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Palette shared with the Discord summary embed
var (
	colorObserved = color.RGBA{R: 0x58, G: 0x65, B: 0xF2, A: 0xFF}
	colorExpected = color.RGBA{R: 0x57, G: 0xF2, B: 0x87, A: 0xFF}
)

const (
	// DefaultMaxItems is how many of the most valuable drops are charted
	DefaultMaxItems = 15
	maxLabelLength  = 24
)

// DropChartRenderer draws observed vs expected drop counts as a grouped bar chart
type DropChartRenderer struct {
	MaxItems int
	Width    vg.Length
	Height   vg.Length
}

// NewDropChartRenderer creates a renderer with the default size
func NewDropChartRenderer() *DropChartRenderer {
	return &DropChartRenderer{
		MaxItems: DefaultMaxItems,
		Width:    12 * vg.Inch,
		Height:   6 * vg.Inch,
	}
}

// Render writes the chart to path. The format follows the file extension.
func (r *DropChartRenderer) Render(report *models.Report, path string) error {
	rates := report.DropRates
	if r.MaxItems > 0 && len(rates) > r.MaxItems {
		rates = rates[:r.MaxItems]
	}
	if len(rates) == 0 {
		return fmt.Errorf("no drops to chart")
	}

	trials := float64(report.Summary.CasesOpened)
	observed := make(plotter.Values, len(rates))
	expected := make(plotter.Values, len(rates))
	labels := make([]string, len(rates))
	for i, rate := range rates {
		observed[i] = float64(rate.ObservedCount)
		expected[i] = rate.ExpectedRate * trials
		labels[i] = truncate(rate.Name, maxLabelLength)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %d openings", report.Summary.CaseName, report.Summary.CasesOpened)
	p.Y.Label.Text = "Drops"
	p.X.Tick.Label.Rotation = math.Pi / 6

	barWidth := vg.Points(10)

	observedBars, err := plotter.NewBarChart(observed, barWidth)
	if err != nil {
		return fmt.Errorf("failed to build observed bars: %w", err)
	}
	observedBars.LineStyle.Width = vg.Length(0)
	observedBars.Color = colorObserved
	observedBars.Offset = -barWidth / 2

	expectedBars, err := plotter.NewBarChart(expected, barWidth)
	if err != nil {
		return fmt.Errorf("failed to build expected bars: %w", err)
	}
	expectedBars.LineStyle.Width = vg.Length(0)
	expectedBars.Color = colorExpected
	expectedBars.Offset = barWidth / 2

	p.Add(observedBars, expectedBars)
	p.Legend.Add("observed", observedBars)
	p.Legend.Add("expected", expectedBars)
	p.Legend.Top = true
	p.NominalX(labels...)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"path":  path,
		"items": len(rates),
	}).Debug("Rendered drop chart")

	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
