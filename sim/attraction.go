package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// PassStatus reports whether an attraction is still issuing expedited passes.
type PassStatus string

const (
	PassStatusOpen   PassStatus = "open"
	PassStatusClosed PassStatus = "closed"
)

// AttractionConfig holds the static characteristics of a ride.
type AttractionConfig struct {
	Name             string
	ParkArea         string
	RunTime          int // minutes per ride cycle
	HourlyThroughput int // riders per hour at theoretical capacity
	Popularity       int // 1..10
	ExpeditedQueue   bool
	ExpQueueRatio    float64 // [0,1] share of seats reserved for the expedited queue
	ChildEligible    bool
	AdultEligible    bool
}

// Attraction is a ride with a standby queue and an optional expedited queue.
// Riders board in batches every RunTime minutes; seats per cycle derive from
// the hourly throughput. Capacity stays real-valued so fractional throughput
// aggregates across cycles without drift; floors are applied only at the
// points the loading and wait rules call for them.
type Attraction struct {
	AttractionConfig
	ID       int
	AreaID   int
	Capacity float64 // seats per cycle, real-valued

	riders           []int // agents currently on the ride
	queue            []int // standby queue, FIFO of agent ids
	expQueue         []int // expedited queue, FIFO of agent ids
	runTimeRemaining int
	waitTime         int
	expWaitTime      int
	expReturnTime    int // absolute minute offered to the next pass taker
	passStatus       PassStatus

	passesDistributed int
	passesRedeemed    int
	passesSkipped     int
}

// NewAttraction validates the configuration and derives per-cycle capacity.
func NewAttraction(id, areaID int, cfg AttractionConfig) (*Attraction, error) {
	if cfg.Popularity < 1 || cfg.Popularity > 10 {
		return nil, fmt.Errorf("attraction %q: popularity must be an integer between 1 and 10, got %d", cfg.Name, cfg.Popularity)
	}
	if cfg.RunTime <= 0 {
		return nil, fmt.Errorf("attraction %q: run_time must be positive, got %d", cfg.Name, cfg.RunTime)
	}
	if cfg.ExpQueueRatio < 0 || cfg.ExpQueueRatio > 1 {
		return nil, fmt.Errorf("attraction %q: expedited_queue_ratio must be in [0,1], got %f", cfg.Name, cfg.ExpQueueRatio)
	}
	status := PassStatusClosed
	if cfg.ExpQueueRatio > 0 {
		status = PassStatusOpen
	}
	return &Attraction{
		AttractionConfig: cfg,
		ID:               id,
		AreaID:           areaID,
		Capacity:         float64(cfg.HourlyThroughput) * float64(cfg.RunTime) / 60.0,
		passStatus:       status,
	}, nil
}

// WaitTime returns the posted standby wait estimate in minutes.
func (a *Attraction) WaitTime() int { return a.waitTime }

// ExpWaitTime returns the posted expedited wait estimate in minutes.
func (a *Attraction) ExpWaitTime() int { return a.expWaitTime }

// ExpReturnTime returns the absolute minute offered to a new pass taker.
func (a *Attraction) ExpReturnTime() int { return a.expReturnTime }

// Status reports whether expedited passes are still being issued today.
func (a *Attraction) Status() PassStatus { return a.passStatus }

// QueueLen returns the standby queue length.
func (a *Attraction) QueueLen() int { return len(a.queue) }

// ExpQueueLen returns the expedited queue length.
func (a *Attraction) ExpQueueLen() int { return len(a.expQueue) }

// RiderCount returns the number of agents currently on the ride.
func (a *Attraction) RiderCount() int { return len(a.riders) }

// RunTimeRemaining returns minutes until the current cycle dispatches.
func (a *Attraction) RunTimeRemaining() int { return a.runTimeRemaining }

// PassesDistributed returns the monotonic count of passes issued.
func (a *Attraction) PassesDistributed() int { return a.passesDistributed }

// PassesRedeemed returns the monotonic count of passes redeemed at boarding.
func (a *Attraction) PassesRedeemed() int { return a.passesRedeemed }

// PassesSkipped returns the monotonic count of passes abandoned by agents
// who left the park still holding them.
func (a *Attraction) PassesSkipped() int { return a.passesSkipped }

// UpdateWaitTimes recomputes the posted wait estimates assuming the queues
// stay saturated and the ride runs at theoretical capacity. The division
// keeps capacity real-valued; only the quotient is floored.
func (a *Attraction) UpdateWaitTimes() {
	if a.ExpeditedQueue {
		a.waitTime = queueWait(len(a.queue), a.Capacity*(1-a.ExpQueueRatio), a.RunTime, a.runTimeRemaining)
		a.expWaitTime = queueWait(len(a.expQueue), a.Capacity*a.ExpQueueRatio, a.RunTime, a.runTimeRemaining)
	} else {
		a.waitTime = queueWait(len(a.queue), a.Capacity, a.RunTime, a.runTimeRemaining)
	}
}

// queueWait is floor(queued / seatsPerCycle) full cycles plus the partial
// cycle in progress. A queue with zero dedicated seats never drains; report
// just the in-progress cycle rather than dividing by zero.
func queueWait(queued int, seatsPerCycle float64, runTime, remaining int) int {
	if seatsPerCycle <= 0 {
		return remaining
	}
	return int(math.Floor(float64(queued)/seatsPerCycle))*runTime + remaining
}

// UpdateExpReturnWindow recomputes the return time offered to the next pass
// taker from the backlog of unredeemed passes. Return windows never
// decrease, always land on a 5-minute boundary strictly greater than now,
// and close for the day once the earliest postable window would fall inside
// the final hour.
func (a *Attraction) UpdateExpReturnWindow(now, parkClose int) {
	if !a.ExpeditedQueue || a.ExpQueueRatio <= 0 {
		return
	}
	unredeemed := a.passesDistributed - a.passesRedeemed - a.passesSkipped
	minutesToProcess := float64(unredeemed*a.RunTime) / (a.Capacity * a.ExpQueueRatio)
	estClear := float64(now) + minutesToProcess

	minPost := math.Max(estClear, float64(now+(5-now%5))) // next 5-minute boundary, always > now
	minPost = math.Max(minPost, float64(a.expReturnTime)) // never lower the return window
	maxPost := float64(parkClose - 60)

	switch {
	case minPost > maxPost:
		// no more expedited passes for the day
		a.passStatus = PassStatusClosed
	case estClear < minPost:
		a.expReturnTime = int(minPost)
	default:
		a.expReturnTime = int(estClear + (5.0 - math.Mod(estClear, 5.0)))
	}
}

// AddToQueue appends an agent to the standby queue.
func (a *Attraction) AddToQueue(agentID int) {
	a.queue = append(a.queue, agentID)
}

// AddToExpQueue appends an agent to the expedited queue and returns the
// posted expedited wait.
func (a *Attraction) AddToExpQueue(agentID int) int {
	a.expQueue = append(a.expQueue, agentID)
	return a.expWaitTime
}

// RemovePass records the issuance of one expedited pass.
func (a *Attraction) RemovePass() {
	a.passesDistributed++
}

// RedeemPass records the redemption of a valid pass at boarding.
func (a *Attraction) RedeemPass() {
	a.passesRedeemed++
}

// SkipPass records a distributed pass that will never be redeemed because
// its holder left the park.
func (a *Attraction) SkipPass() {
	a.passesSkipped++
}

// Step dispatches the ride if the current cycle is complete: all riders
// exit, then seats are filled from the expedited queue head and the standby
// queue head in that order. Unused expedited seats are given back to
// standby. Returns the exiting and newly loaded agent ids; both are nil
// while a cycle is in progress.
func (a *Attraction) Step(now int) (exiting, loaded []int) {
	if a.runTimeRemaining != 0 {
		return nil, nil
	}

	exiting = a.riders
	a.riders = nil
	a.runTimeRemaining = a.RunTime

	maxExp := int(a.Capacity * a.ExpQueueRatio)
	var maxStd int
	if len(a.expQueue) < maxExp {
		maxStd = int(a.Capacity - float64(len(a.expQueue)))
	} else {
		maxStd = int(a.Capacity - float64(maxExp))
	}

	nExp := min(maxExp, len(a.expQueue))
	a.riders = append(a.riders, a.expQueue[:nExp]...)
	a.expQueue = a.expQueue[nExp:]

	nStd := min(maxStd, len(a.queue))
	a.riders = append(a.riders, a.queue[:nStd]...)
	a.queue = a.queue[nStd:]

	if len(exiting) > 0 || len(a.riders) > 0 {
		logrus.Debugf("[minute %04d] %s dispatched: %d off, %d on (%d standby, %d expedited queued)",
			now, a.Name, len(exiting), len(a.riders), len(a.queue), len(a.expQueue))
	}
	return exiting, a.riders
}

// PassTime advances the ride cycle by one minute.
func (a *Attraction) PassTime() {
	a.runTimeRemaining--
}
