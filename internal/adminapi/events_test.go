package adminapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEventDate(t *testing.T) {
	for _, in := range []string{"2026-09-15", "15 Sep 2026", "09/15/2026", " 2026-09-15 "} {
		got, err := normalizeEventDate(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, "2026-09-15", got, "input %q", in)
	}

	_, err := normalizeEventDate("not a date")
	assert.Error(t, err)
}

func TestValidateEventPayload(t *testing.T) {
	valid := func() eventPayload {
		return eventPayload{
			Title:    "Seara de jazz",
			Date:     "2026-09-15",
			Time:     "19:30",
			Location: "Terasa",
		}
	}

	p := valid()
	assert.Empty(t, validateEventPayload(&p))
	assert.Equal(t, "2026-09-15", p.Date)

	p = valid()
	p.Title = "   "
	assert.Equal(t, "Titlul, data, ora si locatia sunt obligatorii", validateEventPayload(&p))

	p = valid()
	p.Date = ""
	assert.NotEmpty(t, validateEventPayload(&p))

	p = valid()
	p.Date = "cine stie"
	assert.Equal(t, "Data evenimentului este invalida", validateEventPayload(&p))

	p = valid()
	p.Time = "25:99"
	assert.Equal(t, "Ora evenimentului este invalida (HH:MM)", validateEventPayload(&p))

	p = valid()
	negative := -1
	p.Capacity = &negative
	assert.Equal(t, "Capacitatea nu poate fi negativa", validateEventPayload(&p))

	p = valid()
	zero := 0
	p.Capacity = &zero
	assert.Empty(t, validateEventPayload(&p))
}
