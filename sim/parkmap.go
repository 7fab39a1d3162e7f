package sim

import (
	"fmt"
	"sort"
)

// TravelMatrix is the fixed area-to-area walk cost in minutes. Area names
// are assigned integer ids in sorted order at build time; the name map is
// kept only for configuration and reporting.
type TravelMatrix struct {
	areas   []string
	index   map[string]int
	minutes [][]int
}

// NewTravelMatrix builds the indexed matrix from a name-keyed park map.
// Every row must carry an entry for every area, including itself (the
// diagonal is the intra-area walk).
func NewTravelMatrix(parkMap map[string]map[string]int) (*TravelMatrix, error) {
	if len(parkMap) == 0 {
		return nil, fmt.Errorf("park map is empty")
	}
	areas := make([]string, 0, len(parkMap))
	for name := range parkMap {
		areas = append(areas, name)
	}
	sort.Strings(areas)

	index := make(map[string]int, len(areas))
	for id, name := range areas {
		index[name] = id
	}

	minutes := make([][]int, len(areas))
	for from, name := range areas {
		row := parkMap[name]
		minutes[from] = make([]int, len(areas))
		for to, destName := range areas {
			cost, ok := row[destName]
			if !ok {
				return nil, fmt.Errorf("park map: area %q has no travel time to %q", name, destName)
			}
			if cost < 0 {
				return nil, fmt.Errorf("park map: travel time %q -> %q is negative", name, destName)
			}
			minutes[from][to] = cost
		}
		// reject destinations that are not areas themselves
		for destName := range row {
			if _, ok := index[destName]; !ok {
				return nil, fmt.Errorf("park map: area %q references unknown area %q", name, destName)
			}
		}
	}

	return &TravelMatrix{areas: areas, index: index, minutes: minutes}, nil
}

// AreaID resolves an area name to its integer id.
func (m *TravelMatrix) AreaID(name string) (int, bool) {
	id, ok := m.index[name]
	return id, ok
}

// AreaName resolves an area id back to its name.
func (m *TravelMatrix) AreaName(id int) string {
	return m.areas[id]
}

// NumAreas returns the number of park areas.
func (m *TravelMatrix) NumAreas() int {
	return len(m.areas)
}

// Minutes returns the walk cost between two areas.
func (m *TravelMatrix) Minutes(from, to int) int {
	return m.minutes[from][to]
}
