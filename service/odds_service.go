package service

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"caseodds/events"
	"caseodds/models"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

type oddsService struct {
	baseURL   string
	publisher EventPublisher
}

// NewOddsService creates an odds service. baseURL is the odds endpoint prefix;
// the generation uid and "contents" are appended to it.
func NewOddsService(baseURL string, publisher EventPublisher) OddsService {
	return &oddsService{
		baseURL:   baseURL,
		publisher: publisher,
	}
}

func (s *oddsService) OddsURL(uid string) (string, error) {
	if uid == "" {
		return "", fmt.Errorf("%w: empty generation uid", models.ErrNotFound)
	}
	u, err := url.JoinPath(s.baseURL, uid, "contents")
	if err != nil {
		return "", fmt.Errorf("invalid odds base URL %q: %w", s.baseURL, err)
	}
	return u, nil
}

func (s *oddsService) ParseOdds(raw []byte) ([]models.OddsEntry, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: odds listing is not valid JSON", models.ErrParseFailed)
	}

	rows := gjson.GetBytes(raw, "data")
	if !rows.IsArray() {
		return nil, fmt.Errorf("%w: odds listing has no data array", models.ErrParseFailed)
	}

	var (
		entries  []models.OddsEntry
		rowIndex int
		parseErr error
	)
	rows.ForEach(func(_, row gjson.Result) bool {
		defer func() { rowIndex++ }()

		name := row.Get("item.market_hash_name")
		if !name.Exists() {
			parseErr = fmt.Errorf("%w: odds row %d has no item.market_hash_name", models.ErrParseFailed, rowIndex)
			return false
		}
		price, err := numberField(row.Get("fixed_price"))
		if err != nil {
			parseErr = fmt.Errorf("%w: odds row %d (%s) fixed_price: %v", models.ErrParseFailed, rowIndex, name.String(), err)
			return false
		}
		chance, err := numberField(row.Get("chance_percent"))
		if err != nil {
			parseErr = fmt.Errorf("%w: odds row %d (%s) chance_percent: %v", models.ErrParseFailed, rowIndex, name.String(), err)
			return false
		}

		entries = append(entries, models.OddsEntry{
			MarketHashName:  name.String(),
			FixedPriceCents: int64(math.Round(price)),
			ChancePercent:   chance,
		})
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: odds listing is empty", models.ErrNotFound)
	}
	return entries, nil
}

// numberField accepts a JSON number or a numeric string; the upstream uses
// both for chance_percent.
func numberField(v gjson.Result) (float64, error) {
	switch v.Type {
	case gjson.Number:
		return v.Float(), nil
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v.Str)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("missing or not a number")
	}
}

// CleanOdds keeps every row, in listing order. Names that collide after
// sanitization are reported, never merged.
func (s *oddsService) CleanOdds(ctx context.Context, entries []models.OddsEntry) (*models.DropTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no odds entries to clean", models.ErrNotFound)
	}

	table := &models.DropTable{Drops: make([]models.Drop, 0, len(entries))}
	originals := make(map[string][]string)
	var order []string

	for _, e := range entries {
		name := SanitizeName(e.MarketHashName)
		if name == "" {
			name = strings.TrimSpace(e.MarketHashName)
		}

		table.Drops = append(table.Drops, models.Drop{
			Name:         name,
			OriginalName: e.MarketHashName,
			PriceCents:   e.FixedPriceCents,
			Chance:       e.ChancePercent,
		})

		if _, seen := originals[name]; !seen {
			order = append(order, name)
		}
		if !slices.Contains(originals[name], e.MarketHashName) {
			originals[name] = append(originals[name], e.MarketHashName)
		}
	}

	for _, name := range order {
		if len(originals[name]) < 2 {
			continue
		}
		collision := models.NameCollision{Name: name, OriginalNames: originals[name]}
		table.Collisions = append(table.Collisions, collision)

		log.WithFields(log.Fields{
			"name":      name,
			"originals": strings.Join(collision.OriginalNames, " | "),
		}).Warn("Distinct items share a sanitized name, keeping both")

		s.publisher.Emit(ctx, events.NameCollisionEvent{Collision: collision})
	}

	return table, nil
}
