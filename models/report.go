package models

import "time"

// Summary is the headline profitability block of a report. Monetary values
// are rounded to two decimals.
type Summary struct {
	CasesOpened        int     `json:"cases_opened"`
	CaseName           string  `json:"case_name"`
	SectionName        string  `json:"section_name"`
	CaseUID            string  `json:"case_uid"`
	CasePrice          float64 `json:"case_price"`
	TotalSpent         float64 `json:"total_spent"`
	TotalEarned        float64 `json:"total_earned"`
	NetProfit          float64 `json:"net_profit"`
	ExpectedReturn     float64 `json:"expected_return"`
	ExpectedProfit     float64 `json:"expected_profit"`
	ReturnRatioPercent float64 `json:"return_ratio_percent"`
	ProfitableDrops    int     `json:"profitable_drops"`
}

// FitStats is a chi-square goodness-of-fit test of observed drops against the
// listed chances.
type FitStats struct {
	ChiSquare        float64 `json:"chi_square"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
	PValue           float64 `json:"p_value"`
}

// DropRate compares the listed and observed rate of one item
type DropRate struct {
	Name          string  `json:"name"`
	OriginalName  string  `json:"original_name"`
	Price         float64 `json:"price"`
	ChancePercent float64 `json:"chance_percent"`
	ExpectedRate  float64 `json:"expected_rate"`
	ObservedCount int     `json:"observed_count"`
	ObservedRate  float64 `json:"observed_rate"`
}

// Report is the full result of one pipeline run, written to the results file
type Report struct {
	RunID       string     `json:"run_id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Summary     Summary    `json:"summary"`
	Fit         FitStats   `json:"fit"`
	DropRates   []DropRate `json:"drop_rates"`
	Drops       []string   `json:"drops"`
}
