package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspector-binding/internal/match"
)

func TestRank(t *testing.T) {
	names := []string{"MaxHealth", "GetMaxHealth", "Speed", "maxHp", "Speed"}

	candidates := match.Rank("maxHealth", names)
	require.Len(t, candidates, 4, "duplicates are dropped")

	best := candidates.Best()
	require.NotNil(t, best)
	assert.InDelta(t, 1.0, best.Score, 1e-9)
	assert.Equal(t, []string{"GetMaxHealth", "MaxHealth"}, candidates.Top(2).Names(),
		"ties are ordered by name")
	assert.Equal(t, "Speed", candidates[len(candidates)-1].Name)
}

func TestRank_Determinism(t *testing.T) {
	names := []string{"b", "a", "c"}

	first := match.Rank("zzz", names).Names()
	for range 10 {
		assert.Equal(t, first, match.Rank("zzz", names).Names())
	}
	assert.Equal(t, []string{"a", "b", "c"}, first)
}

func TestCandidateList_Helpers(t *testing.T) {
	var empty match.CandidateList
	assert.Nil(t, empty.Best())
	assert.Nil(t, empty.Names())
	assert.Empty(t, empty.Top(3))

	list := match.CandidateList{
		{Name: "a", Score: 0.9},
		{Name: "b", Score: 0.5},
		{Name: "c", Score: 0.1},
	}
	assert.Equal(t, []string{"a", "b"}, list.AboveThreshold(0.5).Names())
	assert.Len(t, list.Top(10), 3)
}

func TestSuggest(t *testing.T) {
	names := []string{"maxHealth", "health", "Speed", "Armor"}

	assert.Equal(t, []string{"maxHealth", "health"}, match.Suggest("maxHealt", names, 3))
	assert.Equal(t, []string{"maxHealth"}, match.Suggest("maxHealt", names, 1))
	assert.Empty(t, match.Suggest("zzzz", names, 3))
}
