package service

import (
	"testing"
	"time"

	"caseodds/models"
	"caseodds/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService(now time.Time) *reportService {
	return &reportService{
		now:   func() time.Time { return now },
		newID: func() string { return "run-1" },
	}
}

func twoItemTable() *models.DropTable {
	return testutil.CreateTestDropTable(
		models.Drop{Name: "A", PriceCents: 100, Chance: 90},
		models.Drop{Name: "B", PriceCents: 1000, Chance: 10},
	)
}

func TestExpectedReturn(t *testing.T) {
	er := ExpectedReturn(twoItemTable())

	assert.InDelta(t, 1.90, er, 1e-9)
	assert.InDelta(t, -0.10, er-2.00, 1e-9)
	assert.InDelta(t, 95.0, ReturnRatio(er, 2.00), 1e-9)
}

func TestExpectedReturn_NormalizesByTotalWeight(t *testing.T) {
	table := testutil.CreateTestDropTable(
		models.Drop{Name: "A", PriceCents: 100, Chance: 9},
		models.Drop{Name: "B", PriceCents: 1000, Chance: 1},
	)

	assert.InDelta(t, 1.90, ExpectedReturn(table), 1e-9)
}

func TestReturnRatio_FreeCase(t *testing.T) {
	assert.Equal(t, 0.0, ReturnRatio(1.90, 0))
}

func TestReportService_BuildReport(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	service := newTestReportService(now)
	info := &models.CaseInfo{UID: "U123", Title: "C", Section: "S", PriceCents: 200}
	sim := &models.SimulationResult{
		Trials:          4,
		Outcomes:        []int{0, 1, 0, 0},
		Counts:          []int{3, 1},
		EarnedCents:     1300,
		ProfitableDrops: 1,
	}

	report := service.BuildReport(info, twoItemTable(), sim)

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, now, report.GeneratedAt)

	s := report.Summary
	assert.Equal(t, 4, s.CasesOpened)
	assert.Equal(t, "C", s.CaseName)
	assert.Equal(t, "S", s.SectionName)
	assert.Equal(t, "U123", s.CaseUID)
	assert.Equal(t, 2.00, s.CasePrice)
	assert.Equal(t, 8.00, s.TotalSpent)
	assert.Equal(t, 13.00, s.TotalEarned)
	assert.Equal(t, 5.00, s.NetProfit)
	assert.InDelta(t, 1.90, s.ExpectedReturn, 1e-9)
	assert.InDelta(t, -0.10, s.ExpectedProfit, 1e-9)
	assert.InDelta(t, 95.00, s.ReturnRatioPercent, 1e-9)
	assert.Equal(t, 1, s.ProfitableDrops)

	assert.Equal(t, []string{"A", "B", "A", "A"}, report.Drops)
}

func TestReportService_BuildReport_RoundsMoneyToCents(t *testing.T) {
	service := newTestReportService(time.Now())
	info := &models.CaseInfo{UID: "U", Title: "C", Section: "S", PriceCents: 333}
	table := testutil.CreateTestDropTable(
		models.Drop{Name: "A", PriceCents: 100, Chance: 1},
		models.Drop{Name: "B", PriceCents: 200, Chance: 2},
	)
	sim := &models.SimulationResult{Trials: 3, Outcomes: []int{0, 1, 1}, Counts: []int{1, 2}, EarnedCents: 500}

	report := service.BuildReport(info, table, sim)

	assert.Equal(t, 9.99, report.Summary.TotalSpent)
	assert.Equal(t, 5.00, report.Summary.TotalEarned)
	assert.Equal(t, -4.99, report.Summary.NetProfit)
	assert.Equal(t, 1.67, report.Summary.ExpectedReturn)
}

func TestDropRates_SortedByPrice(t *testing.T) {
	table := testutil.CreateTestDropTable(
		models.Drop{Name: "mid", PriceCents: 500, Chance: 30},
		models.Drop{Name: "low", PriceCents: 100, Chance: 60},
		models.Drop{Name: "high", PriceCents: 9000, Chance: 10},
	)
	sim := &models.SimulationResult{Trials: 10, Counts: []int{3, 6, 1}}

	rates := DropRates(table, sim)

	require.Len(t, rates, 3)
	assert.Equal(t, "high", rates[0].Name)
	assert.Equal(t, "mid", rates[1].Name)
	assert.Equal(t, "low", rates[2].Name)
	assert.InDelta(t, 0.1, rates[0].ExpectedRate, 1e-9)
	assert.Equal(t, 1, rates[0].ObservedCount)
	assert.InDelta(t, 0.6, rates[2].ObservedRate, 1e-9)
	assert.Equal(t, 90.00, rates[0].Price)
}

func TestGoodnessOfFit(t *testing.T) {
	table := twoItemTable()

	t.Run("exact match", func(t *testing.T) {
		fit := GoodnessOfFit(table, &models.SimulationResult{Trials: 100, Counts: []int{90, 10}})
		assert.Equal(t, 1, fit.DegreesOfFreedom)
		assert.InDelta(t, 0, fit.ChiSquare, 1e-9)
		assert.InDelta(t, 1, fit.PValue, 1e-9)
	})

	t.Run("gross mismatch", func(t *testing.T) {
		fit := GoodnessOfFit(table, &models.SimulationResult{Trials: 100, Counts: []int{10, 90}})
		assert.Greater(t, fit.ChiSquare, 100.0)
		assert.Less(t, fit.PValue, 0.001)
	})

	t.Run("no trials", func(t *testing.T) {
		fit := GoodnessOfFit(table, &models.SimulationResult{Counts: []int{0, 0}})
		assert.Equal(t, models.FitStats{PValue: 1}, fit)
	})

	t.Run("single possible item", func(t *testing.T) {
		single := testutil.CreateTestDropTable(
			models.Drop{Name: "A", PriceCents: 1, Chance: 100},
			models.Drop{Name: "B", PriceCents: 1, Chance: 0},
		)
		fit := GoodnessOfFit(single, &models.SimulationResult{Trials: 5, Counts: []int{5, 0}})
		assert.Equal(t, models.FitStats{PValue: 1}, fit)
	})
}

func TestReportService_BuildReport_FreeCase(t *testing.T) {
	service := newTestReportService(time.Now())
	info := &models.CaseInfo{UID: "U", Title: "Free", Section: "S", PriceCents: 0}
	sim := &models.SimulationResult{Trials: 1, Outcomes: []int{1}, Counts: []int{0, 1}, EarnedCents: 1000, ProfitableDrops: 1}

	report := service.BuildReport(info, twoItemTable(), sim)

	assert.Equal(t, 0.0, report.Summary.ReturnRatioPercent)
	assert.Equal(t, 10.00, report.Summary.NetProfit)
}
