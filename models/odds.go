package models

// OddsEntry is one raw row of an odds listing
type OddsEntry struct {
	MarketHashName  string
	FixedPriceCents int64
	ChancePercent   float64
}

// Drop is a cleaned odds row. Name is the ASCII display name; OriginalName is
// kept so sanitization never loses information.
type Drop struct {
	Name         string
	OriginalName string
	PriceCents   int64
	Chance       float64 // percentage weight
}

// Price returns the drop price in decimal currency
func (d Drop) Price() float64 {
	return CentsToDollars(d.PriceCents)
}

// NameCollision records distinct original names that sanitize to the same name
type NameCollision struct {
	Name          string   `json:"name"`
	OriginalNames []string `json:"original_names"`
}

// DropTable is the ordered list of drops for one case
type DropTable struct {
	Drops      []Drop
	Collisions []NameCollision
}

// Weights returns the chance of every drop, in table order
func (t *DropTable) Weights() []float64 {
	weights := make([]float64, len(t.Drops))
	for i, d := range t.Drops {
		weights[i] = d.Chance
	}
	return weights
}

// TotalWeight returns the sum of all chances. Upstream listings sum to ~100
// but this is not assumed anywhere.
func (t *DropTable) TotalWeight() float64 {
	var total float64
	for _, d := range t.Drops {
		total += d.Chance
	}
	return total
}

// FilteredOddsRecord is the on-disk form of a cleaned drop
type FilteredOddsRecord struct {
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name"`
	Price        float64 `json:"price"`
	Chance       float64 `json:"chance"`
}

// Records converts the table to its on-disk form
func (t *DropTable) Records() []FilteredOddsRecord {
	records := make([]FilteredOddsRecord, len(t.Drops))
	for i, d := range t.Drops {
		records[i] = FilteredOddsRecord{
			Name:         d.Name,
			OriginalName: d.OriginalName,
			Price:        Round2(d.Price()),
			Chance:       d.Chance,
		}
	}
	return records
}
