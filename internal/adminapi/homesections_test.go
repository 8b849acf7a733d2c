package adminapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertContiguous(t *testing.T, order map[int64]int, n int) {
	t.Helper()
	require.Len(t, order, n)
	seen := make([]bool, n)
	for id, pos := range order {
		require.GreaterOrEqual(t, pos, 0, "id %d", id)
		require.Less(t, pos, n, "id %d", id)
		require.False(t, seen[pos], "position %d assigned twice", pos)
		seen[pos] = true
	}
}

func TestValidateHomeSectionPayload(t *testing.T) {
	p := homeSectionPayload{Title: " Specialitati ", Description: "Cafele de sezon"}
	assert.Empty(t, validateHomeSectionPayload(&p))
	assert.Equal(t, "Specialitati", p.Title)

	p = homeSectionPayload{Title: "Specialitati"}
	assert.Equal(t, "Titlul si descrierea sunt obligatorii", validateHomeSectionPayload(&p))

	p = homeSectionPayload{Description: "ceva"}
	assert.NotEmpty(t, validateHomeSectionPayload(&p))
}

func TestRankSectionIDsFullPermutation(t *testing.T) {
	current := []int64{1, 2, 3, 4}
	order := rankSectionIDs(current, []int64{3, 1, 4, 2})

	assertContiguous(t, order, 4)
	assert.Equal(t, 0, order[3])
	assert.Equal(t, 1, order[1])
	assert.Equal(t, 2, order[4])
	assert.Equal(t, 3, order[2])
}

func TestRankSectionIDsIgnoresUnknownIDs(t *testing.T) {
	current := []int64{1, 2, 3}
	order := rankSectionIDs(current, []int64{99, 2, 100, 1})

	assertContiguous(t, order, 3)
	assert.Equal(t, 0, order[2])
	assert.Equal(t, 1, order[1])
	// omitted row keeps its relative place at the end
	assert.Equal(t, 2, order[3])
	_, present := order[99]
	assert.False(t, present)
}

func TestRankSectionIDsPartialRequest(t *testing.T) {
	current := []int64{10, 20, 30, 40}
	order := rankSectionIDs(current, []int64{40})

	assertContiguous(t, order, 4)
	assert.Equal(t, 0, order[40])
	assert.Equal(t, 1, order[10])
	assert.Equal(t, 2, order[20])
	assert.Equal(t, 3, order[30])
}

func TestRankSectionIDsDeduplicates(t *testing.T) {
	current := []int64{1, 2}
	order := rankSectionIDs(current, []int64{2, 2, 1, 2})

	assertContiguous(t, order, 2)
	assert.Equal(t, 0, order[2])
	assert.Equal(t, 1, order[1])
}

func TestRankSectionIDsAlwaysContiguous(t *testing.T) {
	current := []int64{5, 6, 7, 8, 9}
	requests := [][]int64{
		nil,
		{5},
		{9, 8, 7, 6, 5},
		{7, 100, 7, 5},
		{1, 2, 3},
	}
	for _, req := range requests {
		assertContiguous(t, rankSectionIDs(current, req), len(current))
	}
}
