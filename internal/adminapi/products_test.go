package adminapi

import (
	"testing"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateProductPayload(t *testing.T) {
	p := productPayload{Name: "Espresso", Price: 8.5}
	assert.Empty(t, validateProductPayload(&p))

	p = productPayload{Name: "  Espresso  ", Price: 8.5}
	assert.Empty(t, validateProductPayload(&p))
	assert.Equal(t, "Espresso", p.Name)

	p = productPayload{Name: "", Price: 8.5}
	assert.Equal(t, "Numele si pretul sunt obligatorii", validateProductPayload(&p))

	p = productPayload{Name: "Apa", Price: 0}
	assert.Equal(t, "Numele si pretul sunt obligatorii", validateProductPayload(&p))

	p = productPayload{Name: "Apa", Price: -1}
	assert.NotEmpty(t, validateProductPayload(&p))
}

func TestToProductRow(t *testing.T) {
	names := map[int64]string{7: "Cafea"}

	catID := int64(7)
	row := toProductRow(domain.Product{Name: "Espresso", CategoryID: &catID}, names)
	assert.Equal(t, "Cafea", row.Category)

	row = toProductRow(domain.Product{Name: "Surpriza"}, names)
	assert.Equal(t, NoCategoryLabel, row.Category)

	missing := int64(99)
	row = toProductRow(domain.Product{Name: "Orfan", CategoryID: &missing}, names)
	assert.Equal(t, NoCategoryLabel, row.Category)
}
