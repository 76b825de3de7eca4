package service

import (
	"sort"
	"time"

	"caseodds/models"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

type reportService struct {
	now   func() time.Time
	newID func() string
}

// NewReportService creates a report service
func NewReportService() ReportService {
	return &reportService{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *reportService) BuildReport(info *models.CaseInfo, table *models.DropTable, sim *models.SimulationResult) *models.Report {
	casePrice := info.Price()
	expectedReturn := ExpectedReturn(table)

	// Sums stay in integer cents; rounding happens once, here
	spentCents := info.PriceCents * int64(sim.Trials)

	report := &models.Report{
		RunID:       s.newID(),
		GeneratedAt: s.now().UTC(),
		Summary: models.Summary{
			CasesOpened:        sim.Trials,
			CaseName:           info.Title,
			SectionName:        info.Section,
			CaseUID:            info.UID,
			CasePrice:          models.Round2(casePrice),
			TotalSpent:         models.Round2(models.CentsToDollars(spentCents)),
			TotalEarned:        models.Round2(models.CentsToDollars(sim.EarnedCents)),
			NetProfit:          models.Round2(models.CentsToDollars(sim.EarnedCents - spentCents)),
			ExpectedReturn:     models.Round2(expectedReturn),
			ExpectedProfit:     models.Round2(expectedReturn - casePrice),
			ReturnRatioPercent: models.Round2(ReturnRatio(expectedReturn, casePrice)),
			ProfitableDrops:    sim.ProfitableDrops,
		},
		Fit:       GoodnessOfFit(table, sim),
		DropRates: DropRates(table, sim),
		Drops:     make([]string, len(sim.Outcomes)),
	}

	for i, idx := range sim.Outcomes {
		report.Drops[i] = table.Drops[idx].Name
	}

	return report
}

// ExpectedReturn is the probability-weighted average payout of one opening,
// with every chance normalized by the table's total weight.
func ExpectedReturn(table *models.DropTable) float64 {
	total := table.TotalWeight()
	if total <= 0 {
		return 0
	}

	var weighted float64
	for _, d := range table.Drops {
		weighted += d.Price() * d.Chance
	}
	return weighted / total
}

// ReturnRatio is the expected return as a percentage of the case price. A
// free case has no meaningful ratio and reports 0.
func ReturnRatio(expectedReturn, casePrice float64) float64 {
	if casePrice <= 0 {
		return 0
	}
	return expectedReturn / casePrice * 100
}

// DropRates lists listed vs observed rates for every drop, most valuable first
func DropRates(table *models.DropTable, sim *models.SimulationResult) []models.DropRate {
	total := table.TotalWeight()
	rates := make([]models.DropRate, len(table.Drops))

	for i, d := range table.Drops {
		rate := models.DropRate{
			Name:          d.Name,
			OriginalName:  d.OriginalName,
			Price:         models.Round2(d.Price()),
			ChancePercent: d.Chance,
		}
		if total > 0 {
			rate.ExpectedRate = d.Chance / total
		}
		if i < len(sim.Counts) {
			rate.ObservedCount = sim.Counts[i]
		}
		if sim.Trials > 0 {
			rate.ObservedRate = float64(rate.ObservedCount) / float64(sim.Trials)
		}
		rates[i] = rate
	}

	sort.SliceStable(rates, func(a, b int) bool {
		return rates[a].Price > rates[b].Price
	})
	return rates
}

// GoodnessOfFit runs a chi-square test of the observed counts against the
// listed chances. Zero-chance drops are left out since they cannot occur.
func GoodnessOfFit(table *models.DropTable, sim *models.SimulationResult) models.FitStats {
	total := table.TotalWeight()
	if sim.Trials == 0 || total <= 0 {
		return models.FitStats{PValue: 1}
	}

	var observed, expected []float64
	for i, d := range table.Drops {
		if d.Chance <= 0 {
			continue
		}
		count := 0
		if i < len(sim.Counts) {
			count = sim.Counts[i]
		}
		observed = append(observed, float64(count))
		expected = append(expected, float64(sim.Trials)*d.Chance/total)
	}

	dof := len(observed) - 1
	if dof < 1 {
		return models.FitStats{PValue: 1}
	}

	chi := stat.ChiSquare(observed, expected)
	return models.FitStats{
		ChiSquare:        chi,
		DegreesOfFreedom: dof,
		PValue:           distuv.ChiSquared{K: float64(dof)}.Survival(chi),
	}
}
