package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-3, -1, 1, 10},
		{2, 25, 2, 25},
		{1, 50, 1, 50},
		{1, 999, 1, 50},
	}
	for _, tc := range cases {
		p, l := NormalizePage(tc.page, tc.limit)
		assert.Equal(t, tc.wantPage, p)
		assert.Equal(t, tc.wantLimit, l)
	}
}

func TestNewEnvelope(t *testing.T) {
	env := NewEnvelope(25, 2, 10)
	assert.Equal(t, int64(25), env.Total)
	assert.Equal(t, 3, env.TotalPages)
	assert.True(t, env.HasNextPage)
	assert.True(t, env.HasPrevPage)

	last := NewEnvelope(25, 3, 10)
	assert.False(t, last.HasNextPage)

	empty := NewEnvelope(0, 1, 10)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNextPage)
	assert.False(t, empty.HasPrevPage)
}

// Concatenating all pages must reproduce the full ordering exactly once per
// candidate, with no overlap and no gaps.
func TestSliceCoversOrderingExactlyOnce(t *testing.T) {
	items := make([]Scored, 0, 23)
	for i := 1; i <= 23; i++ {
		items = append(items, Scored{ID: uint64(i), Score: float64(i % 5)})
	}
	Order(items)

	limit := 7
	env := NewEnvelope(int64(len(items)), 1, limit)
	var all []Scored
	for page := 1; page <= env.TotalPages; page++ {
		all = append(all, Slice(items, page, limit)...)
	}
	assert.Equal(t, items, all)

	beyond := Slice(items, env.TotalPages+1, limit)
	assert.Empty(t, beyond)
}
