package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParkMap() map[string]map[string]int {
	return map[string]map[string]int{
		"Oasis":   {"Oasis": 1, "Pandora": 8, "Africa": 8},
		"Pandora": {"Oasis": 8, "Pandora": 2, "Africa": 8},
		"Africa":  {"Oasis": 8, "Pandora": 8, "Africa": 2},
	}
}

func TestNewTravelMatrix_AssignsSortedIDs(t *testing.T) {
	m, err := NewTravelMatrix(testParkMap())
	require.NoError(t, err)

	// area ids follow sorted name order regardless of map iteration
	assert.Equal(t, 3, m.NumAreas())
	for want, name := range []string{"Africa", "Oasis", "Pandora"} {
		id, ok := m.AreaID(name)
		require.True(t, ok, name)
		assert.Equal(t, want, id)
		assert.Equal(t, name, m.AreaName(id))
	}
}

func TestTravelMatrix_Minutes(t *testing.T) {
	m, err := NewTravelMatrix(testParkMap())
	require.NoError(t, err)

	oasis, _ := m.AreaID("Oasis")
	pandora, _ := m.AreaID("Pandora")

	assert.Equal(t, 8, m.Minutes(oasis, pandora))
	assert.Equal(t, 1, m.Minutes(oasis, oasis), "intra-area walk uses the diagonal")
}

func TestNewTravelMatrix_RejectsBadMaps(t *testing.T) {
	t.Run("empty map", func(t *testing.T) {
		_, err := NewTravelMatrix(nil)
		assert.Error(t, err)
	})

	t.Run("missing destination entry", func(t *testing.T) {
		pm := testParkMap()
		delete(pm["Oasis"], "Africa")
		_, err := NewTravelMatrix(pm)
		assert.Error(t, err)
	})

	t.Run("missing diagonal", func(t *testing.T) {
		pm := testParkMap()
		delete(pm["Pandora"], "Pandora")
		_, err := NewTravelMatrix(pm)
		assert.Error(t, err)
	})

	t.Run("unknown destination", func(t *testing.T) {
		pm := testParkMap()
		pm["Oasis"]["Atlantis"] = 4
		_, err := NewTravelMatrix(pm)
		assert.Error(t, err)
	})

	t.Run("negative travel time", func(t *testing.T) {
		pm := testParkMap()
		pm["Oasis"]["Pandora"] = -1
		_, err := NewTravelMatrix(pm)
		assert.Error(t, err)
	})
}
