package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// HourlyArrival is one entry of the ordered arrival seed: a labeled hour
// and the integer percent of the day's visitors arriving during it. The
// final entry is park close and must carry zero arrivals.
type HourlyArrival struct {
	Hour    string
	Percent int
}

// ArrivalSchedule maps each operating minute to its arrival count. The
// time axis covers the full operating day including the closing hour.
type ArrivalSchedule struct {
	PerMinute []int
	ParkClose int // minutes from open; no arrivals at or after this
	Total     int
}

// BuildArrivalSchedule draws per-minute arrival counts from a Poisson
// distribution per hour, using a fresh RNG per hour so hours stay
// independent yet reproducible. With perfect arrivals the schedule is
// rebalanced until its sum equals totalDailyAgents exactly.
func BuildArrivalSchedule(key SimulationKey, hours []HourlyArrival, totalDailyAgents int, perfect bool, balance *rand.Rand) (*ArrivalSchedule, error) {
	percentSum := 0
	for _, h := range hours {
		percentSum += h.Percent
	}
	if percentSum != 100 {
		return nil, fmt.Errorf("the percent of hourly arrivals does not add up to 100, got %d", percentSum)
	}
	if len(hours) > 24 {
		return nil, fmt.Errorf("arrival schedule suggests park is open more than 24 hours (%d)", len(hours))
	}
	if last := hours[len(hours)-1]; last.Percent != 0 {
		return nil, fmt.Errorf("arrival schedule suggests closing hour has nonzero arrivals: %d", last.Percent)
	}

	sched := &ArrivalSchedule{
		PerMinute: make([]int, len(hours)*60),
		ParkClose: (len(hours) - 1) * 60, // last entry is closing time, don't count it
	}

	for hour, h := range hours {
		lambda := float64(totalDailyAgents) * float64(h.Percent) * 0.01 / 60.0
		rng := key.HourStream(hour)
		for minute := 0; minute < 60; minute++ {
			sched.PerMinute[hour*60+minute] = poisson(rng, lambda)
		}
	}

	if perfect {
		rebalance(sched.PerMinute, totalDailyAgents, hours, balance)
	}

	for _, n := range sched.PerMinute {
		sched.Total += n
	}
	if perfect && sched.Total != totalDailyAgents {
		return nil, fmt.Errorf("perfect arrivals requested but schedule sums to %d, want %d", sched.Total, totalDailyAgents)
	}
	logrus.Debugf("arrival schedule built: %d agents over %d minutes, park closes at %d",
		sched.Total, len(sched.PerMinute), sched.ParkClose)
	return sched, nil
}

// rebalance nudges uniformly chosen slots up or down until the schedule
// sums to the configured total. Decrements pick among nonzero slots;
// increments do too, falling back to any minute of a nonzero-percent hour
// when every draw came up zero.
func rebalance(perMinute []int, total int, hours []HourlyArrival, rng *rand.Rand) {
	sum := 0
	for _, n := range perMinute {
		sum += n
	}
	for diff := sum - total; diff > 0; diff-- {
		slots := nonzeroSlots(perMinute)
		perMinute[slots[rng.Intn(len(slots))]]--
	}
	for diff := total - sum; diff > 0; diff-- {
		slots := nonzeroSlots(perMinute)
		if len(slots) == 0 {
			slots = openSlots(perMinute, hours)
		}
		perMinute[slots[rng.Intn(len(slots))]]++
	}
}

func nonzeroSlots(perMinute []int) []int {
	var slots []int
	for minute, n := range perMinute {
		if n > 0 {
			slots = append(slots, minute)
		}
	}
	return slots
}

func openSlots(perMinute []int, hours []HourlyArrival) []int {
	var slots []int
	for hour, h := range hours {
		if h.Percent == 0 {
			continue
		}
		for minute := 0; minute < 60; minute++ {
			slots = append(slots, hour*60+minute)
		}
	}
	if len(slots) == 0 {
		// degenerate schedule; allow any pre-close minute
		for minute := 0; minute < len(perMinute)-60; minute++ {
			slots = append(slots, minute)
		}
	}
	return slots
}

// poisson samples Poisson(lambda) by counting unit-rate exponential
// inter-arrivals inside [0, lambda). Numerically robust for the per-minute
// rates a park day produces, unlike the classic product-of-uniforms form.
func poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	k := 0
	for t := rng.ExpFloat64(); t < lambda; t += rng.ExpFloat64() {
		k++
	}
	return k
}
