package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestActivity(t *testing.T, meanTime int) *Activity {
	t.Helper()
	rng := NewPartitionedRNG(NewSimulationKey(11)).ForSubsystem(SubsystemActivity(0))
	act, err := NewActivity(0, 0, ActivityConfig{
		Name: "show", ParkArea: "North", Popularity: 5, MeanTime: meanTime,
	}, rng)
	require.NoError(t, err)
	return act
}

func TestNewActivity_RejectsBadConfig(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1)).ForSubsystem(SubsystemActivity(0))

	_, err := NewActivity(0, 0, ActivityConfig{Name: "x", Popularity: 5, MeanTime: 0}, rng)
	assert.Error(t, err)

	_, err = NewActivity(0, 0, ActivityConfig{Name: "x", Popularity: 0, MeanTime: 10}, rng)
	assert.Error(t, err)
}

func TestActivity_AddAgent_DwellIsAtLeastOneMinute(t *testing.T) {
	// GIVEN a 1-minute mean, which rounds many exponential draws to zero
	act := newTestActivity(t, 1)
	for id := 0; id < 50; id++ {
		act.AddAgent(id, nil)
	}

	// THEN every visitor dwells at least one minute
	for _, v := range act.visitors {
		assert.GreaterOrEqual(t, v.remaining, 1)
	}
}

func TestActivity_AddAgent_CapsDwellAtPendingReturn(t *testing.T) {
	// GIVEN a long mean dwell and a pass window opening in 3 minutes
	act := newTestActivity(t, 500)
	act.AddAgent(1, []int{3})

	// THEN the dwell is cut so the agent is idle in time to redeem
	require.Len(t, act.visitors, 1)
	assert.LessOrEqual(t, act.visitors[0].remaining, 3)
}

func TestActivity_AddAgent_IgnoresExpiredReturns(t *testing.T) {
	// a window that already opened (delay <= 0) no longer caps the dwell
	act := newTestActivity(t, 500)
	act.AddAgent(1, []int{0, -5})

	require.Len(t, act.visitors, 1)
	assert.GreaterOrEqual(t, act.visitors[0].remaining, 1)
}

func TestActivity_Step_ReleasesInEntryOrder(t *testing.T) {
	// GIVEN three visitors with pinned dwells
	act := newTestActivity(t, 10)
	act.visitors = []activityVisit{
		{agentID: 1, remaining: 2},
		{agentID: 2, remaining: 2},
		{agentID: 3, remaining: 5},
	}

	// WHEN two minutes elapse
	first := act.Step(0)
	second := act.Step(1)

	// THEN the two short dwells expire together, in entry order
	assert.Empty(t, first)
	assert.Equal(t, []int{1, 2}, second)
	assert.Equal(t, 1, act.VisitorCount())
}

func TestActivity_ForceExit(t *testing.T) {
	act := newTestActivity(t, 10)
	act.AddAgent(1, nil)
	act.AddAgent(2, nil)

	assert.True(t, act.ForceExit(1))
	assert.False(t, act.ForceExit(1), "second removal of the same agent must fail")
	assert.Equal(t, 1, act.VisitorCount())
}
