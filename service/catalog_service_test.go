package service

import (
	"testing"

	"caseodds/models"
	"caseodds/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_LookupCase_Found(t *testing.T) {
	service := NewCatalogService()

	info, err := service.LookupCase(testutil.CreateTestSingleCaseCatalog(), "S", "C")

	require.NoError(t, err)
	assert.Equal(t, "U123", info.UID)
	assert.Equal(t, int64(500), info.PriceCents)
	assert.Equal(t, 5.00, info.Price())
	assert.Equal(t, "S", info.Section)
	assert.Equal(t, "C", info.Title)
}

func TestCatalogService_LookupCase_CaseNotFound(t *testing.T) {
	service := NewCatalogService()

	info, err := service.LookupCase(testutil.CreateTestSingleCaseCatalog(), "S", "Missing")

	assert.Nil(t, info)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorContains(t, err, `case "Missing"`)
}

func TestCatalogService_LookupCase_SectionNotFound(t *testing.T) {
	service := NewCatalogService()

	info, err := service.LookupCase(testutil.CreateTestSingleCaseCatalog(), "Nope", "C")

	assert.Nil(t, info)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorContains(t, err, `section "Nope"`)
	assert.ErrorContains(t, err, "available: S")
}

func TestCatalogService_LookupCase_CaseInOtherSectionIsNotFound(t *testing.T) {
	service := NewCatalogService()
	catalog := testutil.CreateTestCatalog(map[string][]testutil.TestCase{
		"S": {{Title: "C", UID: "U123", PriceCents: 500}},
		"T": {{Title: "D", UID: "U456", PriceCents: 100}},
	})

	_, err := service.LookupCase(catalog, "S", "D")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCatalogService_LookupCase_MissingGeneration(t *testing.T) {
	service := NewCatalogService()
	catalog := testutil.CreateTestCatalog(map[string][]testutil.TestCase{
		"S": {{Title: "C", PriceCents: 500}},
	})

	_, err := service.LookupCase(catalog, "S", "C")

	assert.ErrorIs(t, err, models.ErrParseFailed)
	assert.ErrorContains(t, err, "last_successful_generation.uid")
}

func TestCatalogService_LookupCase_DuplicateTitleUsesFirstMatch(t *testing.T) {
	service := NewCatalogService()
	catalog := testutil.CreateTestCatalog(map[string][]testutil.TestCase{
		"S": {
			{Title: "C", UID: "first", PriceCents: 500},
			{Title: "C", UID: "second", PriceCents: 900},
		},
	})

	info, err := service.LookupCase(catalog, "S", "C")

	require.NoError(t, err)
	assert.Equal(t, "first", info.UID)
}

func TestCatalogService_LookupCase_MalformedCatalog(t *testing.T) {
	service := NewCatalogService()

	_, err := service.LookupCase([]byte(`{"data":`), "S", "C")
	assert.ErrorIs(t, err, models.ErrParseFailed)

	_, err = service.LookupCase([]byte(`{"sections":[]}`), "S", "C")
	assert.ErrorIs(t, err, models.ErrParseFailed)
}
