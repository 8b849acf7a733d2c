package adminapi

import (
	"testing"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSortCategoriesActiveFirstThenAlphabetical(t *testing.T) {
	rows := []domain.Category{
		{Name: "Deserturi", IsActive: false},
		{Name: "Ceaiuri", IsActive: true},
		{Name: "Bauturi", IsActive: true},
		{Name: "Aperitive", IsActive: false},
	}
	sortCategories(rows)

	assert.Equal(t, "Bauturi", rows[0].Name)
	assert.Equal(t, "Ceaiuri", rows[1].Name)
	assert.Equal(t, "Aperitive", rows[2].Name)
	assert.Equal(t, "Deserturi", rows[3].Name)
}

func TestSortCategoriesIgnoresCase(t *testing.T) {
	rows := []domain.Category{
		{Name: "zacusca", IsActive: true},
		{Name: "Cafea", IsActive: true},
		{Name: "aperitive", IsActive: true},
	}
	sortCategories(rows)

	assert.Equal(t, "aperitive", rows[0].Name)
	assert.Equal(t, "Cafea", rows[1].Name)
	assert.Equal(t, "zacusca", rows[2].Name)
}
