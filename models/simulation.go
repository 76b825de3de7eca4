package models

// SimulationResult holds the raw outcome of a simulation run
type SimulationResult struct {
	Trials          int
	Outcomes        []int // drop index per trial, in draw order
	Counts          []int // occurrences per drop index
	EarnedCents     int64
	ProfitableDrops int // drops priced above the case price
}
