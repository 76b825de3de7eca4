package service

import (
	"fmt"
	"strings"

	"caseodds/models"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

type catalogService struct{}

// NewCatalogService creates a catalog lookup service
func NewCatalogService() CatalogService {
	return &catalogService{}
}

// LookupCase scans data[] sections for sectionName, then its cases[] for an
// exact title match. When the same title appears more than once in the
// section the first match is used and a warning is logged.
func (s *catalogService) LookupCase(raw []byte, sectionName, caseName string) (*models.CaseInfo, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: catalog is not valid JSON", models.ErrParseFailed)
	}

	sections := gjson.GetBytes(raw, "data")
	if !sections.IsArray() {
		return nil, fmt.Errorf("%w: catalog has no data array", models.ErrParseFailed)
	}

	var (
		knownSections []string
		sectionFound  bool
		matches       []gjson.Result
	)
	sections.ForEach(func(_, section gjson.Result) bool {
		name := section.Get("name").String()
		knownSections = append(knownSections, name)
		if name != sectionName {
			return true
		}

		sectionFound = true
		section.Get("cases").ForEach(func(_, c gjson.Result) bool {
			if c.Get("title").String() == caseName {
				matches = append(matches, c)
			}
			return true
		})
		return true
	})

	if !sectionFound {
		return nil, fmt.Errorf("%w: section %q (available: %s)",
			models.ErrNotFound, sectionName, strings.Join(knownSections, ", "))
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: case %q in section %q", models.ErrNotFound, caseName, sectionName)
	}
	if len(matches) > 1 {
		log.WithFields(log.Fields{
			"section": sectionName,
			"case":    caseName,
			"matches": len(matches),
		}).Warn("Case title is not unique, using the first match")
	}

	match := matches[0]
	uid := match.Get("last_successful_generation.uid")
	if !uid.Exists() || uid.String() == "" {
		return nil, fmt.Errorf("%w: case %q has no last_successful_generation.uid", models.ErrParseFailed, caseName)
	}
	price := match.Get("price")
	if price.Type != gjson.Number {
		return nil, fmt.Errorf("%w: case %q has no numeric price", models.ErrParseFailed, caseName)
	}

	info := &models.CaseInfo{
		UID:        uid.String(),
		Title:      caseName,
		Section:    sectionName,
		PriceCents: price.Int(),
	}

	log.WithFields(log.Fields{
		"section": info.Section,
		"case":    info.Title,
		"uid":     info.UID,
		"price":   info.Price(),
	}).Info("Resolved case in catalog")

	return info, nil
}
