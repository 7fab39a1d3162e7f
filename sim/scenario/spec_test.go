package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/AlexBorger/shapeland/sim"
)

func TestDefault_IsValidAndBuildsAPark(t *testing.T) {
	scn := Default()
	require.NoError(t, scn.Validate())

	_, err := sim.NewPark(scn.ToParkConfig())
	assert.NoError(t, err)
}

func TestParse_RoundTripsDefault(t *testing.T) {
	data, err := yaml.Marshal(Default())
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, Default(), got)
}

func TestLoad_ReadsScenarioFile(t *testing.T) {
	data, err := yaml.Marshal(Default())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "day.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Seed)
	assert.Len(t, got.Attractions, 8)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	// strict decoding turns typos into load errors
	_, err := Parse([]byte("seed: 1\ntotal_daily_agnets: 100\n"))
	assert.Error(t, err)
}

func TestParse_RejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("seed: [unclosed"))
	assert.Error(t, err)
}

func TestScenario_Validate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"no hourly arrivals", func(s *Scenario) { s.HourlyArrivals = nil }},
		{"no archetypes", func(s *Scenario) { s.Archetypes = nil }},
		{"no distribution", func(s *Scenario) { s.ArchetypeDistribution = nil }},
		{"no park map", func(s *Scenario) { s.ParkMap = nil }},
		{"no entrance", func(s *Scenario) { s.EntranceArea = "" }},
		{"nothing to do", func(s *Scenario) { s.Attractions, s.Activities = nil, nil }},
		{"duplicate attraction", func(s *Scenario) {
			s.Attractions = append(s.Attractions, s.Attractions[0])
		}},
		{"duplicate activity", func(s *Scenario) {
			s.Activities = append(s.Activities, s.Activities[0])
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scn := Default()
			tc.mutate(scn)
			assert.Error(t, scn.Validate())
		})
	}
}

func TestToParkConfig_PreservesOrder(t *testing.T) {
	cfg := Default().ToParkConfig()

	// ordered sections must survive conversion: sampling walks them in
	// declaration order
	require.Len(t, cfg.ArrivalSchedule, 13)
	assert.Equal(t, sim.HourlyArrival{Hour: "10:00 AM", Percent: 10}, cfg.ArrivalSchedule[0])
	assert.Equal(t, 0, cfg.ArrivalSchedule[12].Percent)

	require.Len(t, cfg.ArchetypeDistribution, 6)
	assert.Equal(t, sim.ArchetypeWeight{Name: "ride_enthusiast", Weight: 10}, cfg.ArchetypeDistribution[0])
	assert.Equal(t, sim.ArchetypeWeight{Name: "activity_enthusiast", Weight: 5}, cfg.ArchetypeDistribution[5])
}

func TestToParkConfig_MapsScalarKnobs(t *testing.T) {
	cfg := Default().ToParkConfig()

	assert.Equal(t, int64(5), cfg.Seed)
	assert.Equal(t, 5000, cfg.TotalDailyAgents)
	assert.True(t, cfg.PerfectArrivals)
	assert.Equal(t, 0.9, cfg.ExpAbilityPct)
	assert.Equal(t, 30, cfg.ExpWaitThreshold)
	assert.Equal(t, 1, cfg.ExpLimit)
	assert.Equal(t, "Oasis", cfg.EntranceArea)
}
