package scenario

// Default returns the built-in scenario: a five-land park with eight rides,
// four common activity types, and a 13-hour operating day. It is used when
// no scenario file is given and doubles as schema documentation.
func Default() *Scenario {
	return &Scenario{
		Seed:             5,
		TotalDailyAgents: 5000,
		PerfectArrivals:  true,

		ExpAbilityPct:    0.9,
		ExpWaitThreshold: 30,
		ExpLimit:         1,

		HourlyArrivals: []HourlyArrivalSpec{
			{Hour: "10:00 AM", Percent: 10},
			{Hour: "11:00 AM", Percent: 20},
			{Hour: "12:00 PM", Percent: 17},
			{Hour: "3:00 PM", Percent: 20},
			{Hour: "4:00 PM", Percent: 15},
			{Hour: "5:00 PM", Percent: 10},
			{Hour: "6:00 PM", Percent: 1},
			{Hour: "7:00 PM", Percent: 5},
			{Hour: "8:00 PM", Percent: 1},
			{Hour: "9:00 PM", Percent: 1},
			{Hour: "10:00 PM", Percent: 0},
			{Hour: "11:00 PM", Percent: 0},
			{Hour: "12:00 AM", Percent: 0},
		},

		Archetypes: map[string]ArchetypeSpec{
			// long stay, rides only, very patient
			"ride_enthusiast": {
				StayTimePreference:   540,
				AllowRepeats:         true,
				AttractionPreference: 0.6,
				WaitThreshold:        400,
				WaitDiscountBeta:     0.9975,
				PercentNoChildRides:  0.18,
				PercentNoAdultRides:  0.02,
				PercentNoPreference:  0.8,
			},
			"ride_favorer": {
				StayTimePreference:   480,
				AllowRepeats:         true,
				AttractionPreference: 0.5,
				WaitThreshold:        300,
				WaitDiscountBeta:     0.9925,
				PercentNoChildRides:  0.2,
				PercentNoAdultRides:  0.2,
				PercentNoPreference:  0.6,
			},
			"park_tourer": {
				StayTimePreference:   420,
				AllowRepeats:         false,
				AttractionPreference: 0.4,
				WaitThreshold:        240,
				WaitDiscountBeta:     0.995,
				PercentNoChildRides:  0.05,
				PercentNoAdultRides:  0.05,
				PercentNoPreference:  0.9,
			},
			"park_visitor": {
				StayTimePreference:   360,
				AllowRepeats:         false,
				AttractionPreference: 0.3,
				WaitThreshold:        180,
				WaitDiscountBeta:     0.9925,
				PercentNoChildRides:  0.3,
				PercentNoAdultRides:  0.3,
				PercentNoPreference:  0.4,
			},
			"activity_favorer": {
				StayTimePreference:   300,
				AllowRepeats:         false,
				AttractionPreference: 0.2,
				WaitThreshold:        120,
				WaitDiscountBeta:     0.99,
				PercentNoChildRides:  0.1,
				PercentNoAdultRides:  0.8,
				PercentNoPreference:  0.1,
			},
			"activity_enthusiast": {
				StayTimePreference:   240,
				AllowRepeats:         false,
				AttractionPreference: 0.2,
				WaitThreshold:        90,
				WaitDiscountBeta:     0.9875,
				PercentNoChildRides:  0.0,
				PercentNoAdultRides:  0.9,
				PercentNoPreference:  0.1,
			},
		},

		ArchetypeDistribution: []ArchetypeShareSpec{
			{Archetype: "ride_enthusiast", Percent: 10},
			{Archetype: "ride_favorer", Percent: 15},
			{Archetype: "park_tourer", Percent: 25},
			{Archetype: "park_visitor", Percent: 30},
			{Archetype: "activity_favorer", Percent: 15},
			{Archetype: "activity_enthusiast", Percent: 5},
		},

		Attractions: []AttractionSpec{
			{
				Name:             "Ride of Passage",
				ParkArea:         "Pandora",
				RunTime:          7,
				HourlyThroughput: 1646,
				VehicleCount:     4,
				AgentsPerVehicle: 48,
				Popularity:       10,
				ExpeditedQueue:   true,
				ExpQueueRatio:    0.8,
				ChildEligible:    true,
				AdultEligible:    true,
			},
			{
				Name:             "Serengeti Safari",
				ParkArea:         "Africa",
				RunTime:          20,
				HourlyThroughput: 3240,
				VehicleCount:     30,
				AgentsPerVehicle: 36,
				Popularity:       9,
				ExpeditedQueue:   true,
				ExpQueueRatio:    0.8,
				ChildEligible:    true,
				AdultEligible:    true,
			},
			{
				Name:             "Annapurna Adventure",
				ParkArea:         "Asia",
				RunTime:          3,
				HourlyThroughput: 2040,
				VehicleCount:     3,
				AgentsPerVehicle: 34,
				Popularity:       8,
				ExpeditedQueue:   true,
				ExpQueueRatio:    0.8,
				ChildEligible:    false,
				AdultEligible:    true,
			},
			{
				Name:             "Kaveri Rapids",
				ParkArea:         "Asia",
				RunTime:          5,
				HourlyThroughput: 2160,
				VehicleCount:     15,
				AgentsPerVehicle: 12,
				Popularity:       7,
				ExpeditedQueue:   true,
				ExpQueueRatio:    0.8,
				ChildEligible:    true,
				AdultEligible:    true,
			},
			{
				Name:             "Agave River Journey",
				ParkArea:         "Pandora",
				RunTime:          5,
				HourlyThroughput: 1440,
				VehicleCount:     15,
				AgentsPerVehicle: 8,
				Popularity:       6,
				ExpeditedQueue:   true,
				ExpQueueRatio:    0.8,
				ChildEligible:    true,
				AdultEligible:    true,
			},
			{
				Name:             "Dinosaur",
				ParkArea:         "Dinoland USA",
				RunTime:          4,
				HourlyThroughput: 2520,
				VehicleCount:     14,
				AgentsPerVehicle: 12,
				Popularity:       5,
				ExpeditedQueue:   true,
				ExpQueueRatio:    0.8,
				ChildEligible:    false,
				AdultEligible:    true,
			},
			{
				Name:             "Primeval Hurl",
				ParkArea:         "Dinoland USA",
				RunTime:          2,
				HourlyThroughput: 1440,
				VehicleCount:     12,
				AgentsPerVehicle: 4,
				Popularity:       4,
				ExpeditedQueue:   true,
				ExpQueueRatio:    0.8,
				ChildEligible:    true,
				AdultEligible:    true,
			},
			{
				Name:             "It's Difficult to Be an Insect",
				ParkArea:         "Discovery Island",
				RunTime:          13,
				HourlyThroughput: 1985,
				VehicleCount:     1,
				AgentsPerVehicle: 430,
				Popularity:       3,
				ExpeditedQueue:   true,
				ExpQueueRatio:    0.8,
				ChildEligible:    true,
				AdultEligible:    true,
			},
		},

		Activities: []ActivitySpec{
			{Name: "sightseeing", ParkArea: "Discovery Island", Popularity: 5, MeanTime: 5},
			{Name: "show", ParkArea: "Discovery Island", Popularity: 5, MeanTime: 30},
			{Name: "merchandise", ParkArea: "Discovery Island", Popularity: 5, MeanTime: 30},
			{Name: "food", ParkArea: "Discovery Island", Popularity: 5, MeanTime: 45},
		},

		ParkMap: map[string]map[string]int{
			"Discovery Island": {
				"Discovery Island": 1, // intra-area walk
				"Pandora":          5,
				"Africa":           5,
				"Asia":             5,
				"Dinoland USA":     5,
				"Oasis":            3,
			},
			"Pandora": {
				"Discovery Island": 5,
				"Pandora":          2,
				"Africa":           8,
				"Asia":             10,
				"Dinoland USA":     10,
				"Oasis":            8,
			},
			"Africa": {
				"Discovery Island": 5,
				"Pandora":          8,
				"Africa":           2,
				"Asia":             6,
				"Dinoland USA":     10,
				"Oasis":            8,
			},
			"Asia": {
				"Discovery Island": 5,
				"Pandora":          10,
				"Africa":           6,
				"Asia":             2,
				"Dinoland USA":     5,
				"Oasis":            8,
			},
			"Dinoland USA": {
				"Discovery Island": 5,
				"Pandora":          10,
				"Africa":           10,
				"Asia":             5,
				"Dinoland USA":     1,
				"Oasis":            8,
			},
			"Oasis": {
				"Discovery Island": 3,
				"Pandora":          8,
				"Africa":           8,
				"Asia":             8,
				"Dinoland USA":     8,
				"Oasis":            1,
			},
		},

		EntranceArea: "Oasis",
	}
}
