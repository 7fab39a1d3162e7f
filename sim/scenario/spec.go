// Package scenario defines the YAML schema for a simulated park day and the
// conversion into the simulator's configuration. Files are decoded strictly:
// unknown fields are rejected so typos fail loudly instead of silently
// falling back to defaults.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AlexBorger/shapeland/sim"
)

// AttractionSpec describes one ride. VehicleCount and AgentsPerVehicle are
// descriptive only; capacity derives from the hourly throughput.
type AttractionSpec struct {
	Name             string  `yaml:"name"`
	ParkArea         string  `yaml:"park_area"`
	RunTime          int     `yaml:"run_time"`
	HourlyThroughput int     `yaml:"hourly_throughput"`
	VehicleCount     int     `yaml:"num_vehicles,omitempty"`
	AgentsPerVehicle int     `yaml:"agents_per_vehicle,omitempty"`
	Popularity       int     `yaml:"popularity"`
	ExpeditedQueue   bool    `yaml:"expedited_queue"`
	ExpQueueRatio    float64 `yaml:"expedited_queue_ratio"`
	ChildEligible    bool    `yaml:"child_eligible"`
	AdultEligible    bool    `yaml:"adult_eligible"`
}

// ActivitySpec describes one dwell location.
type ActivitySpec struct {
	Name       string `yaml:"name"`
	ParkArea   string `yaml:"park_area"`
	Popularity int    `yaml:"popularity"`
	MeanTime   int    `yaml:"mean_time"`
}

// HourlyArrivalSpec is one hour of the arrival seed. Entries are ordered;
// the final entry is park close and must carry zero percent.
type HourlyArrivalSpec struct {
	Hour    string `yaml:"hour"`
	Percent int    `yaml:"percent"`
}

// ArchetypeSpec holds one behavior archetype's parameters.
type ArchetypeSpec struct {
	StayTimePreference   int     `yaml:"stay_time_preference"`
	AllowRepeats         bool    `yaml:"allow_repeats"`
	AttractionPreference float64 `yaml:"attraction_preference"`
	WaitThreshold        int     `yaml:"wait_threshold"`
	WaitDiscountBeta     float64 `yaml:"wait_discount_beta"`
	PercentNoChildRides  float64 `yaml:"percent_no_child_rides"`
	PercentNoAdultRides  float64 `yaml:"percent_no_adult_rides"`
	PercentNoPreference  float64 `yaml:"percent_no_preference"`
}

// ArchetypeShareSpec is one ordered entry of the population mix.
type ArchetypeShareSpec struct {
	Archetype string `yaml:"archetype"`
	Percent   int    `yaml:"percent"`
}

// Scenario is the full description of one simulated day.
type Scenario struct {
	Seed             int64 `yaml:"seed"`
	TotalDailyAgents int   `yaml:"total_daily_agents"`
	PerfectArrivals  bool  `yaml:"perfect_arrivals"`

	ExpAbilityPct    float64 `yaml:"exp_ability_pct"`
	ExpWaitThreshold int     `yaml:"exp_wait_threshold"`
	ExpLimit         int     `yaml:"exp_limit"`

	HourlyArrivals []HourlyArrivalSpec `yaml:"hourly_arrivals"`

	Archetypes            map[string]ArchetypeSpec `yaml:"archetypes"`
	ArchetypeDistribution []ArchetypeShareSpec     `yaml:"archetype_distribution"`

	Attractions []AttractionSpec `yaml:"attractions"`
	Activities  []ActivitySpec   `yaml:"activities"`

	ParkMap      map[string]map[string]int `yaml:"park_map"`
	EntranceArea string                    `yaml:"entrance_park_area"`
}

// Load reads and strictly decodes a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Parse(data)
}

// Parse strictly decodes scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the structural requirements the simulator's own
// constructors cannot see: presence of the rosters and the schedule. Value
// ranges and cross-references are validated by sim.NewPark.
func (s *Scenario) Validate() error {
	if len(s.HourlyArrivals) == 0 {
		return fmt.Errorf("scenario has no hourly_arrivals")
	}
	if len(s.Archetypes) == 0 {
		return fmt.Errorf("scenario has no archetypes")
	}
	if len(s.ArchetypeDistribution) == 0 {
		return fmt.Errorf("scenario has no archetype_distribution")
	}
	if len(s.Attractions) == 0 && len(s.Activities) == 0 {
		return fmt.Errorf("scenario has neither attractions nor activities")
	}
	if len(s.ParkMap) == 0 {
		return fmt.Errorf("scenario has no park_map")
	}
	if s.EntranceArea == "" {
		return fmt.Errorf("scenario has no entrance_park_area")
	}
	seen := make(map[string]bool, len(s.Attractions))
	for _, a := range s.Attractions {
		if seen[a.Name] {
			return fmt.Errorf("duplicate attraction name %q", a.Name)
		}
		seen[a.Name] = true
	}
	seen = make(map[string]bool, len(s.Activities))
	for _, a := range s.Activities {
		if seen[a.Name] {
			return fmt.Errorf("duplicate activity name %q", a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}

// ToParkConfig converts the scenario into the simulator's configuration.
func (s *Scenario) ToParkConfig() sim.ParkConfig {
	cfg := sim.ParkConfig{
		ParkMap:          s.ParkMap,
		EntranceArea:     s.EntranceArea,
		TotalDailyAgents: s.TotalDailyAgents,
		PerfectArrivals:  s.PerfectArrivals,
		ExpAbilityPct:    s.ExpAbilityPct,
		ExpWaitThreshold: s.ExpWaitThreshold,
		ExpLimit:         s.ExpLimit,
		Seed:             s.Seed,
		Archetypes:       make(sim.ArchetypeTable, len(s.Archetypes)),
	}
	for _, a := range s.Attractions {
		cfg.Attractions = append(cfg.Attractions, sim.AttractionConfig{
			Name:             a.Name,
			ParkArea:         a.ParkArea,
			RunTime:          a.RunTime,
			HourlyThroughput: a.HourlyThroughput,
			Popularity:       a.Popularity,
			ExpeditedQueue:   a.ExpeditedQueue,
			ExpQueueRatio:    a.ExpQueueRatio,
			ChildEligible:    a.ChildEligible,
			AdultEligible:    a.AdultEligible,
		})
	}
	for _, a := range s.Activities {
		cfg.Activities = append(cfg.Activities, sim.ActivityConfig{
			Name:       a.Name,
			ParkArea:   a.ParkArea,
			Popularity: a.Popularity,
			MeanTime:   a.MeanTime,
		})
	}
	for _, h := range s.HourlyArrivals {
		cfg.ArrivalSchedule = append(cfg.ArrivalSchedule, sim.HourlyArrival{
			Hour:    h.Hour,
			Percent: h.Percent,
		})
	}
	for name, a := range s.Archetypes {
		cfg.Archetypes[name] = sim.ArchetypeParams{
			StayTimePreference:   a.StayTimePreference,
			AllowRepeats:         a.AllowRepeats,
			AttractionPreference: a.AttractionPreference,
			WaitThreshold:        a.WaitThreshold,
			WaitDiscountBeta:     a.WaitDiscountBeta,
			PercentNoChildRides:  a.PercentNoChildRides,
			PercentNoAdultRides:  a.PercentNoAdultRides,
			PercentNoPreference:  a.PercentNoPreference,
		}
	}
	for _, d := range s.ArchetypeDistribution {
		cfg.ArchetypeDistribution = append(cfg.ArchetypeDistribution, sim.ArchetypeWeight{
			Name:   d.Archetype,
			Weight: d.Percent,
		})
	}
	return cfg
}
