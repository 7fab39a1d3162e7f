package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// ActivityConfig holds the static characteristics of an untimed dwell
// location (shows, food, merchandise, sightseeing).
type ActivityConfig struct {
	Name       string
	ParkArea   string
	Popularity int
	MeanTime   int // mean dwell, minutes
}

// activityVisit tracks one agent's remaining dwell. Visits are kept in
// entry order so exits replay deterministically.
type activityVisit struct {
	agentID   int
	remaining int
}

// Activity is a dwell-only location: agents enter, stay for a sampled
// number of minutes, and leave. It has no queue and no capacity limit.
type Activity struct {
	ActivityConfig
	ID     int
	AreaID int

	rng      *rand.Rand
	visitors []activityVisit
}

// NewActivity validates the configuration and binds the activity's dwell
// sampling stream.
func NewActivity(id, areaID int, cfg ActivityConfig, rng *rand.Rand) (*Activity, error) {
	if cfg.MeanTime <= 0 {
		return nil, fmt.Errorf("activity %q: mean_time must be positive, got %d", cfg.Name, cfg.MeanTime)
	}
	if cfg.Popularity < 1 {
		return nil, fmt.Errorf("activity %q: popularity must be positive, got %d", cfg.Name, cfg.Popularity)
	}
	return &Activity{
		ActivityConfig: cfg,
		ID:             id,
		AreaID:         areaID,
		rng:            rng,
	}, nil
}

// VisitorCount returns the number of agents currently dwelling here.
func (ac *Activity) VisitorCount() int { return len(ac.visitors) }

// AddAgent records an entry and samples the agent's remaining dwell from an
// exponential with the activity's mean, floored at one minute. When the
// agent holds pending expedited-return delays, the dwell is capped at the
// soonest one so the agent is idle again in time to redeem.
func (ac *Activity) AddAgent(agentID int, pendingReturns []int) {
	dwell := int(math.Round(ac.rng.ExpFloat64() * float64(ac.MeanTime)))
	if dwell < 1 {
		dwell = 1
	}
	for _, delay := range pendingReturns {
		if delay >= 1 && dwell > delay {
			dwell = delay
		}
	}
	ac.visitors = append(ac.visitors, activityVisit{agentID: agentID, remaining: dwell})
}

// Step advances every visitor's dwell by one minute and returns the agents
// whose dwell expired, in entry order.
func (ac *Activity) Step(now int) []int {
	var exiting []int
	remaining := ac.visitors[:0]
	for _, v := range ac.visitors {
		v.remaining--
		if v.remaining <= 0 {
			exiting = append(exiting, v.agentID)
		} else {
			remaining = append(remaining, v)
		}
	}
	ac.visitors = remaining
	return exiting
}

// ForceExit removes the agent immediately, used when the orchestrator must
// yank a browsing agent onto a ride. Reports whether the agent was present.
func (ac *Activity) ForceExit(agentID int) bool {
	for i, v := range ac.visitors {
		if v.agentID == agentID {
			ac.visitors = append(ac.visitors[:i], ac.visitors[i+1:]...)
			return true
		}
	}
	return false
}
