package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAttractionConfig() AttractionConfig {
	return AttractionConfig{
		Name:             "Test Coaster",
		ParkArea:         "North",
		RunTime:          5,
		HourlyThroughput: 48, // 4 seats per 5-minute cycle
		Popularity:       5,
		ExpeditedQueue:   false,
		ExpQueueRatio:    0,
		ChildEligible:    true,
		AdultEligible:    true,
	}
}

func TestNewAttraction_DerivesCapacityFromThroughput(t *testing.T) {
	a, err := NewAttraction(0, 0, testAttractionConfig())
	require.NoError(t, err)

	// 48 riders/hour * 5 min/cycle / 60 min/hour = 4 seats per cycle
	assert.Equal(t, 4.0, a.Capacity)
	assert.Equal(t, PassStatusClosed, a.Status())
}

func TestNewAttraction_RejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*AttractionConfig)
	}{
		{"popularity too low", func(c *AttractionConfig) { c.Popularity = 0 }},
		{"popularity too high", func(c *AttractionConfig) { c.Popularity = 11 }},
		{"zero run time", func(c *AttractionConfig) { c.RunTime = 0 }},
		{"ratio above one", func(c *AttractionConfig) { c.ExpQueueRatio = 1.5 }},
		{"negative ratio", func(c *AttractionConfig) { c.ExpQueueRatio = -0.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testAttractionConfig()
			tc.mutate(&cfg)
			_, err := NewAttraction(0, 0, cfg)
			assert.Error(t, err)
		})
	}
}

func TestAttraction_UpdateWaitTimes_FullCyclesPlusRemainder(t *testing.T) {
	// GIVEN 4 seats per cycle, a 9-agent queue, and 3 minutes left in the
	// current cycle
	a, err := NewAttraction(0, 0, testAttractionConfig())
	require.NoError(t, err)
	for id := 0; id < 9; id++ {
		a.AddToQueue(id)
	}
	a.runTimeRemaining = 3

	// WHEN wait times are recomputed
	a.UpdateWaitTimes()

	// THEN the posted wait is floor(9/4)=2 full cycles plus the remainder
	assert.Equal(t, 2*5+3, a.WaitTime())
}

func TestAttraction_UpdateWaitTimes_Idempotent(t *testing.T) {
	a, err := NewAttraction(0, 0, testAttractionConfig())
	require.NoError(t, err)
	for id := 0; id < 7; id++ {
		a.AddToQueue(id)
	}

	a.UpdateWaitTimes()
	first := a.WaitTime()
	a.UpdateWaitTimes()

	assert.Equal(t, first, a.WaitTime(), "recomputing without state changes must not drift")
}

func TestAttraction_UpdateWaitTimes_SplitsCapacityAcrossQueues(t *testing.T) {
	// GIVEN an expedited queue taking half the 4 seats
	cfg := testAttractionConfig()
	cfg.ExpeditedQueue = true
	cfg.ExpQueueRatio = 0.5
	a, err := NewAttraction(0, 0, cfg)
	require.NoError(t, err)
	for id := 0; id < 4; id++ {
		a.AddToQueue(id)
		a.AddToExpQueue(10 + id)
	}

	// WHEN wait times are recomputed
	a.UpdateWaitTimes()

	// THEN each queue sees only its share: floor(4/2)=2 cycles
	assert.Equal(t, 10, a.WaitTime())
	assert.Equal(t, 10, a.ExpWaitTime())
}

func TestAttraction_Step_LoadsUpToCapacity(t *testing.T) {
	// GIVEN 10 agents queued for a 4-seat cycle
	a, err := NewAttraction(0, 0, testAttractionConfig())
	require.NoError(t, err)
	for id := 0; id < 10; id++ {
		a.AddToQueue(id)
	}

	// WHEN the ride dispatches
	exiting, loaded := a.Step(0)

	// THEN nobody exits, the queue head boards, and the rest keep waiting
	assert.Empty(t, exiting)
	assert.Equal(t, []int{0, 1, 2, 3}, loaded)
	assert.Equal(t, 6, a.QueueLen())
}

func TestAttraction_Step_ExpeditedHeadBoardsFirst(t *testing.T) {
	// GIVEN 4 seats with 0.5 reserved for the expedited queue and both
	// queues saturated
	cfg := testAttractionConfig()
	cfg.ExpeditedQueue = true
	cfg.ExpQueueRatio = 0.5
	a, err := NewAttraction(0, 0, cfg)
	require.NoError(t, err)
	for id := 0; id < 5; id++ {
		a.AddToQueue(id)
	}
	for id := 10; id < 15; id++ {
		a.AddToExpQueue(id)
	}

	// WHEN the ride dispatches
	_, loaded := a.Step(0)

	// THEN 2 expedited riders board before 2 standby riders
	assert.Equal(t, []int{10, 11, 0, 1}, loaded)
}

func TestAttraction_Step_UnusedExpeditedSeatsGoToStandby(t *testing.T) {
	// GIVEN 2 of 4 seats reserved for an expedited queue with one rider
	cfg := testAttractionConfig()
	cfg.ExpeditedQueue = true
	cfg.ExpQueueRatio = 0.5
	a, err := NewAttraction(0, 0, cfg)
	require.NoError(t, err)
	a.AddToExpQueue(10)
	for id := 0; id < 5; id++ {
		a.AddToQueue(id)
	}

	// WHEN the ride dispatches
	_, loaded := a.Step(0)

	// THEN the idle expedited seat is given back to standby
	assert.Equal(t, []int{10, 0, 1, 2}, loaded)
}

func TestAttraction_Step_MidCycleReturnsNothing(t *testing.T) {
	a, err := NewAttraction(0, 0, testAttractionConfig())
	require.NoError(t, err)
	a.AddToQueue(1)
	a.Step(0)
	a.PassTime()

	// WHEN stepped mid-cycle
	exiting, loaded := a.Step(1)

	// THEN nothing happens until the cycle completes
	assert.Nil(t, exiting)
	assert.Nil(t, loaded)
	assert.Equal(t, 1, a.RiderCount())
}

func TestAttraction_Step_RidersExitAfterFullCycle(t *testing.T) {
	// GIVEN a dispatched 5-minute cycle
	a, err := NewAttraction(0, 0, testAttractionConfig())
	require.NoError(t, err)
	a.AddToQueue(7)
	_, loaded := a.Step(0)
	require.Equal(t, []int{7}, loaded)

	// WHEN five minutes pass
	for minute := 0; minute < 5; minute++ {
		a.PassTime()
	}
	exiting, _ := a.Step(5)

	// THEN the rider exits
	assert.Equal(t, []int{7}, exiting)
	assert.Equal(t, 0, a.RiderCount())
}

func TestAttraction_UpdateExpReturnWindow_SnapsToNextBoundary(t *testing.T) {
	// one expedited seat per 1-minute cycle makes estClear = now + backlog
	newExpAttraction := func(t *testing.T) *Attraction {
		t.Helper()
		a, err := NewAttraction(0, 0, AttractionConfig{
			Name:             "Snap",
			ParkArea:         "North",
			RunTime:          1,
			HourlyThroughput: 60,
			Popularity:       5,
			ExpeditedQueue:   true,
			ExpQueueRatio:    1.0,
			ChildEligible:    true,
			AdultEligible:    true,
		})
		require.NoError(t, err)
		return a
	}

	cases := []struct {
		backlog int
		want    int
	}{
		{backlog: 47, want: 50}, // estimate between boundaries rounds up
		{backlog: 52, want: 55},
		{backlog: 50, want: 55}, // exactly on a boundary still moves up
	}
	for _, tc := range cases {
		a := newExpAttraction(t)
		a.passesDistributed = tc.backlog

		a.UpdateExpReturnWindow(0, 780)

		assert.Equal(t, tc.want, a.ExpReturnTime(), "backlog %d", tc.backlog)
	}
}

func TestAttraction_UpdateExpReturnWindow_NeverDecreases(t *testing.T) {
	// GIVEN a posted window from a large backlog
	a, err := NewAttraction(0, 0, AttractionConfig{
		Name: "Snap", ParkArea: "North", RunTime: 1, HourlyThroughput: 60,
		Popularity: 5, ExpeditedQueue: true, ExpQueueRatio: 1.0,
		ChildEligible: true, AdultEligible: true,
	})
	require.NoError(t, err)
	a.passesDistributed = 47
	a.UpdateExpReturnWindow(0, 780)
	require.Equal(t, 50, a.ExpReturnTime())

	// WHEN the backlog drains and the window is recomputed
	a.passesRedeemed = 40
	a.UpdateExpReturnWindow(1, 780)

	// THEN the posted window holds rather than moving earlier
	assert.Equal(t, 50, a.ExpReturnTime())
}

func TestAttraction_UpdateExpReturnWindow_ClosesInFinalHour(t *testing.T) {
	// GIVEN a backlog whose earliest postable window lands inside the
	// final operating hour
	a, err := NewAttraction(0, 0, AttractionConfig{
		Name: "Snap", ParkArea: "North", RunTime: 1, HourlyThroughput: 60,
		Popularity: 5, ExpeditedQueue: true, ExpQueueRatio: 1.0,
		ChildEligible: true, AdultEligible: true,
	})
	require.NoError(t, err)
	require.Equal(t, PassStatusOpen, a.Status())
	a.passesDistributed = 200

	// WHEN the window is recomputed near close (park closes at 240)
	a.UpdateExpReturnWindow(50, 240)

	// THEN the pass machine shuts down for the day
	assert.Equal(t, PassStatusClosed, a.Status())
}

func TestAttraction_PassCounters(t *testing.T) {
	a, err := NewAttraction(0, 0, testAttractionConfig())
	require.NoError(t, err)

	a.RemovePass()
	a.RemovePass()
	a.RemovePass()
	a.RedeemPass()
	a.SkipPass()

	assert.Equal(t, 3, a.PassesDistributed())
	assert.Equal(t, 1, a.PassesRedeemed())
	assert.Equal(t, 1, a.PassesSkipped())
}
