package publicapi

import (
	"testing"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Espresso", Description: "cafea scurta", CategoryID: ptr(10), IsAvailable: true},
		{ID: 2, Name: "Salata verde", Description: "de sezon", CategoryID: ptr(20),
			IsAvailable: true, IsVegetarian: true, IsVegan: true, IsGlutenFree: true},
		{ID: 3, Name: "Tocanita", Description: "picanta", CategoryID: ptr(20),
			IsAvailable: true, IsSpicy: true},
		{ID: 4, Name: "Tort epuizat", CategoryID: ptr(30), IsAvailable: false},
		{ID: 5, Name: "Limonada", Description: "cu menta", IsAvailable: true, IsPopular: true},
	}
}

func TestMatchesFilterSkipsUnavailable(t *testing.T) {
	assert.False(t, matchesFilter(domain.Product{IsAvailable: false}, menuFilter{}))
	assert.True(t, matchesFilter(domain.Product{IsAvailable: true}, menuFilter{}))
}

func TestFilterProductsByTags(t *testing.T) {
	products := sampleProducts()

	got := filterProducts(products, menuFilter{IsVegan: true})
	require.Len(t, got, 1)
	assert.Equal(t, "Salata verde", got[0].Name)

	got = filterProducts(products, menuFilter{IsSpicy: true})
	require.Len(t, got, 1)
	assert.Equal(t, "Tocanita", got[0].Name)

	// tags combine conjunctively
	got = filterProducts(products, menuFilter{IsVegan: true, IsSpicy: true})
	assert.Empty(t, got)

	got = filterProducts(products, menuFilter{IsPopular: true})
	require.Len(t, got, 1)
	assert.Equal(t, "Limonada", got[0].Name)
}

func TestFilterProductsByText(t *testing.T) {
	products := sampleProducts()

	got := filterProducts(products, menuFilter{Query: "CAFEA"})
	require.Len(t, got, 1)
	assert.Equal(t, "Espresso", got[0].Name)

	got = filterProducts(products, menuFilter{Query: "menta"})
	require.Len(t, got, 1)
	assert.Equal(t, "Limonada", got[0].Name)

	assert.Empty(t, filterProducts(products, menuFilter{Query: "pizza"}))
}

func TestFilterProductsByCategory(t *testing.T) {
	got := filterProducts(sampleProducts(), menuFilter{CategoryID: 20})
	require.Len(t, got, 2)

	// products without a category never match a category filter
	got = filterProducts(sampleProducts(), menuFilter{CategoryID: 999})
	assert.Empty(t, got)
}

func TestBuildMenuGroupsAndSorts(t *testing.T) {
	categories := []domain.Category{
		{ID: 20, Name: "Mancare", IsActive: true},
		{ID: 10, Name: "Cafea", IsActive: true},
		{ID: 30, Name: "Deserturi", IsActive: true},
		{ID: 40, Name: "Ascunsa", IsActive: false},
	}
	products := filterProducts(sampleProducts(), menuFilter{})

	menu := buildMenu(categories, products)
	require.Len(t, menu, 3)

	// categories alphabetical, empty and inactive ones dropped
	assert.Equal(t, "Cafea", menu[0].Name)
	assert.Equal(t, "Mancare", menu[1].Name)

	// uncategorized products trail under the synthetic group
	assert.Equal(t, "Altele", menu[2].Name)
	require.Len(t, menu[2].Products, 1)
	assert.Equal(t, "Limonada", menu[2].Products[0].Name)

	// products sorted inside their group
	require.Len(t, menu[1].Products, 2)
	assert.Equal(t, "Salata verde", menu[1].Products[0].Name)
	assert.Equal(t, "Tocanita", menu[1].Products[1].Name)
}
