package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrdered(t *testing.T) {
	all := Catalog()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].RequiredScore, all[i].RequiredScore, "catalog must ascend at %d", i)
	}
}

func TestThresholdAtTen(t *testing.T) {
	venus, ok := Lookup("venus-voyager")
	require.True(t, ok)
	require.Equal(t, 10, venus.RequiredScore)

	assert.NotContains(t, Unlocked(9), venus)
	assert.Contains(t, Unlocked(10), venus)
}

func TestUnlockedMonotonic(t *testing.T) {
	for low := 0; low <= 320; low++ {
		lowSet := map[string]bool{}
		for _, a := range Unlocked(low) {
			lowSet[a.ID] = true
		}
		high := map[string]bool{}
		for _, a := range Unlocked(low + 1) {
			high[a.ID] = true
		}
		for id := range lowSet {
			assert.True(t, high[id], "achievement %s re-locked between %d and %d", id, low, low+1)
		}
	}
}

func TestNewlyUnlocked(t *testing.T) {
	assert.Empty(t, NewlyUnlocked(5, 9))
	assert.Equal(t, []string{"Venus Voyager"}, Titles(NewlyUnlocked(9, 10)))
	assert.Equal(t, []string{"Mercury Explorer", "Venus Voyager"}, Titles(NewlyUnlocked(0, 12)))
	assert.Empty(t, NewlyUnlocked(12, 3))
}

func TestProgress(t *testing.T) {
	progress := Progress(25)
	require.Len(t, progress, len(Catalog()))

	unlocked := 0
	for _, s := range progress {
		if s.Unlocked {
			unlocked++
		}
	}
	assert.Equal(t, 3, unlocked)
}

func TestLookupAndNext(t *testing.T) {
	a, ok := Lookup("Solar System Champion")
	require.True(t, ok)
	assert.Equal(t, 300, a.RequiredScore)

	_, ok = Lookup("Pluto Pioneer")
	assert.False(t, ok)

	next, ok := Next(10)
	require.True(t, ok)
	assert.Equal(t, "earth-defender", next.ID)

	_, ok = Next(300)
	assert.False(t, ok)
}
