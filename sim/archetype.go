package sim

import (
	"fmt"
	"math/rand"
)

// AgeClass partitions agents by which rides they will board.
type AgeClass string

const (
	AgeClassNoChildRides AgeClass = "no_child_rides"
	AgeClassNoAdultRides AgeClass = "no_adult_rides"
	AgeClassNoPreference AgeClass = "no_preference"
)

// ArchetypeParams is the static parameter bundle for one behavior archetype:
// how long the agent wants to stay, whether it repeats rides, how strongly it
// favors attractions over activities, how long it tolerates queues, and the
// age-class mix of agents drawn from this archetype.
type ArchetypeParams struct {
	StayTimePreference   int     // mean preferred stay, minutes
	AllowRepeats         bool    // may ride the same attraction twice
	AttractionPreference float64 // [0,1], chance of seeking an attraction when idle
	WaitThreshold        int     // base tolerated standby wait, minutes
	WaitDiscountBeta     float64 // per-minute utility discount, ~0.98..0.998
	PercentNoChildRides  float64
	PercentNoAdultRides  float64
	PercentNoPreference  float64
}

// ageClassSum returns the total of the three age-class percents.
func (p ArchetypeParams) ageClassSum() float64 {
	return p.PercentNoChildRides + p.PercentNoAdultRides + p.PercentNoPreference
}

// SampleAgeClass draws an age class from the archetype's distribution.
// Returns "" if the draw falls outside the cumulative mass, which the
// caller must treat as a configuration fault.
func (p ArchetypeParams) SampleAgeClass(rng *rand.Rand) AgeClass {
	draw := rng.Float64() * p.ageClassSum()
	floor := 0.0
	for _, entry := range []struct {
		class  AgeClass
		weight float64
	}{
		{AgeClassNoChildRides, p.PercentNoChildRides},
		{AgeClassNoAdultRides, p.PercentNoAdultRides},
		{AgeClassNoPreference, p.PercentNoPreference},
	} {
		floor += entry.weight
		if draw < floor {
			return entry.class
		}
	}
	return ""
}

// ArchetypeTable maps archetype names to their parameter bundles.
type ArchetypeTable map[string]ArchetypeParams

// Validate checks every archetype's age-class percents. Float literals like
// 0.18+0.02+0.8 rarely sum to exactly 1, so a tolerance band is accepted.
func (t ArchetypeTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("archetype table is empty")
	}
	for name, params := range t {
		sum := params.ageClassSum()
		if sum < 0.98 || sum > 1.0 {
			return fmt.Errorf(
				"archetype %q: percent_no_child_rides, percent_no_adult_rides, and percent_no_preference must add up to 1, got %.4f",
				name, sum)
		}
	}
	return nil
}

// ArchetypeWeight pairs an archetype name with its integer share of the
// population. Order matters: sampling walks the cumulative distribution in
// slice order.
type ArchetypeWeight struct {
	Name   string
	Weight int
}

// ValidateArchetypeDistribution checks that the weights cover the full
// population and that every named archetype exists in the table.
func ValidateArchetypeDistribution(dist []ArchetypeWeight, table ArchetypeTable) error {
	total := 0
	for _, w := range dist {
		if _, ok := table[w.Name]; !ok {
			return fmt.Errorf("archetype distribution references unknown archetype %q", w.Name)
		}
		total += w.Weight
	}
	if total != 100 {
		return fmt.Errorf("the percent of behavior archetypes does not add up to 100, got %d", total)
	}
	return nil
}

// SampleArchetype draws an archetype name by cumulative weight.
func SampleArchetype(dist []ArchetypeWeight, rng *rand.Rand) string {
	total := 0
	for _, w := range dist {
		total += w.Weight
	}
	draw := rng.Float64() * float64(total)
	floor := 0.0
	for _, w := range dist {
		floor += float64(w.Weight)
		if draw < floor {
			return w.Name
		}
	}
	// Unreachable for a validated distribution; the final floor equals total.
	return dist[len(dist)-1].Name
}
