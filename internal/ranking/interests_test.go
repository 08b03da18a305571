package ranking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communehub/internal/pkg"
)

func TestNormalizeInterests(t *testing.T) {
	got, err := NormalizeInterests([]string{" Go ", "go", "Distributed Systems", "", "music"})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "distributed systems", "music"}, got)
}

func TestNormalizeInterestsEmptyIsValid(t *testing.T) {
	got, err := NormalizeInterests(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNormalizeInterestsTooLong(t *testing.T) {
	_, err := NormalizeInterests([]string{strings.Repeat("x", 31)})
	assert.ErrorIs(t, err, pkg.ErrValidation)
}

func TestNormalizeInterestsTooMany(t *testing.T) {
	many := make([]string, 21)
	for i := range many {
		many[i] = strings.Repeat("a", i+1)
	}
	_, err := NormalizeInterests(many)
	assert.ErrorIs(t, err, pkg.ErrValidation)
}

func TestOverlapSymmetric(t *testing.T) {
	a := []string{"go", "music", "chess"}
	b := []string{"chess", "go", "cooking"}
	assert.Equal(t, 2, Overlap(a, b))
	assert.Equal(t, Overlap(b, a), Overlap(a, b))
}

func TestOverlapEmpty(t *testing.T) {
	assert.Zero(t, Overlap(nil, []string{"go"}))
	assert.Zero(t, Overlap([]string{"go"}, nil))
}
