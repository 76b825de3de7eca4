package service

import (
	"fmt"
	"math"
	"math/rand/v2"

	"caseodds/models"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"
)

type simulationService struct {
	src rand.Source
}

// NewSimulationService creates a simulator seeded with seed. A zero seed
// picks a random one, so runs are only reproducible with an explicit seed.
func NewSimulationService(seed uint64) SimulationService {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return NewSimulationServiceWithSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSimulationServiceWithSource creates a simulator drawing from src
func NewSimulationServiceWithSource(src rand.Source) SimulationService {
	return &simulationService{src: src}
}

// Simulate draws trials independent samples with replacement; each drop is
// selected with probability Chance / TotalWeight.
func (s *simulationService) Simulate(table *models.DropTable, casePriceCents int64, trials int) (*models.SimulationResult, error) {
	if trials < 0 {
		return nil, fmt.Errorf("trial count cannot be negative, got %d", trials)
	}
	if err := validateWeights(table); err != nil {
		return nil, err
	}

	dist := distuv.NewCategorical(table.Weights(), s.src)

	result := &models.SimulationResult{
		Trials:   trials,
		Outcomes: make([]int, trials),
		Counts:   make([]int, len(table.Drops)),
	}
	for i := 0; i < trials; i++ {
		idx := int(dist.Rand())
		drop := table.Drops[idx]

		result.Outcomes[i] = idx
		result.Counts[idx]++
		result.EarnedCents += drop.PriceCents
		if drop.PriceCents > casePriceCents {
			result.ProfitableDrops++
		}
	}

	log.WithFields(log.Fields{
		"trials":          trials,
		"items":           len(table.Drops),
		"earnedCents":     result.EarnedCents,
		"profitableDrops": result.ProfitableDrops,
	}).Debug("Simulation finished")

	return result, nil
}

// validateWeights rejects tables the categorical sampler cannot draw from
func validateWeights(table *models.DropTable) error {
	if table == nil || len(table.Drops) == 0 {
		return fmt.Errorf("%w: drop table is empty", models.ErrInvalidOdds)
	}
	for _, d := range table.Drops {
		if math.IsNaN(d.Chance) || math.IsInf(d.Chance, 0) || d.Chance < 0 {
			return fmt.Errorf("%w: %q has chance %v", models.ErrInvalidOdds, d.OriginalName, d.Chance)
		}
	}
	if table.TotalWeight() <= 0 {
		return fmt.Errorf("%w: chances sum to zero", models.ErrInvalidOdds)
	}
	return nil
}
