package testutil

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"caseodds/models"
)

// TestCase describes one case inside a catalog fixture
type TestCase struct {
	Title      string
	UID        string
	PriceCents int64
}

// TestOddsRow describes one row inside an odds fixture
type TestOddsRow struct {
	Name       string
	PriceCents int64
	Chance     any // float64 or string, both appear upstream
}

// CreateTestCatalog builds a main-sections payload with one section per key
func CreateTestCatalog(sections map[string][]TestCase) []byte {
	type generation struct {
		UID string `json:"uid"`
	}
	type caseJSON struct {
		Title                    string      `json:"title"`
		Price                    int64       `json:"price"`
		LastSuccessfulGeneration *generation `json:"last_successful_generation,omitempty"`
	}
	type sectionJSON struct {
		Name  string     `json:"name"`
		Cases []caseJSON `json:"cases"`
	}

	payload := struct {
		Data []sectionJSON `json:"data"`
	}{}
	for name, cases := range sections {
		section := sectionJSON{Name: name, Cases: []caseJSON{}}
		for _, c := range cases {
			cj := caseJSON{Title: c.Title, Price: c.PriceCents}
			if c.UID != "" {
				cj.LastSuccessfulGeneration = &generation{UID: c.UID}
			}
			section.Cases = append(section.Cases, cj)
		}
		payload.Data = append(payload.Data, section)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return data
}

// CreateTestSingleCaseCatalog builds the catalog used by most tests: section
// "S" holding case "C" with uid "U123" priced 500 cents
func CreateTestSingleCaseCatalog() []byte {
	return CreateTestCatalog(map[string][]TestCase{
		"S": {{Title: "C", UID: "U123", PriceCents: 500}},
	})
}

// CreateTestOdds builds an odds-contents payload
func CreateTestOdds(rows ...TestOddsRow) []byte {
	type itemJSON struct {
		MarketHashName string `json:"market_hash_name"`
	}
	type rowJSON struct {
		Item          itemJSON `json:"item"`
		FixedPrice    int64    `json:"fixed_price"`
		ChancePercent any      `json:"chance_percent"`
	}

	payload := struct {
		Data []rowJSON `json:"data"`
	}{Data: []rowJSON{}}
	for _, r := range rows {
		payload.Data = append(payload.Data, rowJSON{
			Item:          itemJSON{MarketHashName: r.Name},
			FixedPrice:    r.PriceCents,
			ChancePercent: r.Chance,
		})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return data
}

// CreateTestDropTable builds a cleaned drop table from name/price/chance triples
func CreateTestDropTable(drops ...models.Drop) *models.DropTable {
	for i := range drops {
		if drops[i].OriginalName == "" {
			drops[i].OriginalName = drops[i].Name
		}
	}
	return &models.DropTable{Drops: drops}
}

// AgeFile sets a file's modification time to now minus age
func AgeFile(t *testing.T, path string, age time.Duration) {
	t.Helper()
	mtime := time.Now().Add(-age)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("failed to age %s: %v", path, err)
	}
}
