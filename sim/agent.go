package sim

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Pass is one expedited-pass holding: which attraction it is for and how
// many minutes remain until its return window opens. The delay decrements
// every minute and goes negative once the window is open; a value <= 0
// signals "available".
type Pass struct {
	AttractionID   int
	RemainingDelay int
}

// Behavior is an agent's resolved behavior parameters: the archetype tag
// plus the concrete values drawn from it at creation time.
type Behavior struct {
	Archetype            string
	StayTimePreference   int
	AllowRepeats         bool
	AttractionPreference float64
	WaitThreshold        int
	WaitDiscountBeta     float64
}

// ActivityTally accumulates an agent's history at one activity.
type ActivityTally struct {
	TimesVisited int
	TimeSpent    int
}

// Agent is one park visitor: identity, behavior drawn from an archetype,
// and the volatile state the orchestrator advances minute by minute.
type Agent struct {
	ID  int
	key SimulationKey

	AgeClass         AgeClass
	Behavior         Behavior
	PassAbility      bool
	ExpWaitThreshold int
	ExpLimit         int

	WithinPark        bool
	ArrivalTime       int // -1 until the agent enters
	ExitTime          int // -1 until the agent leaves
	LocationKind      LocationKind
	LocationID        int // attraction/activity id when applicable
	CurrentAreaID     int // -1 while outside the park
	Action            Action
	DestKind          LocationKind
	DestID            int
	TimeToDestination int
	TimeAtLocation    int

	Passes         []Pass
	TimesCompleted []int           // by attraction id
	ActivityStats  []ActivityTally // by activity id

	log strings.Builder
}

// NewAgent draws the agent's identity from its per-agent stream: pass
// ability, archetype, age class, and stay-time preference, in that order.
func NewAgent(
	id int,
	key SimulationKey,
	table ArchetypeTable,
	dist []ArchetypeWeight,
	expAbilityPct float64,
	expWaitThreshold int,
	expLimit int,
	numAttractions int,
	numActivities int,
) (*Agent, error) {
	rng := key.AgentStream(id)

	passAbility := rng.Float64() < expAbilityPct
	archetype := SampleArchetype(dist, rng)
	params := table[archetype]
	ageClass := params.SampleAgeClass(rng)
	if ageClass == "" {
		return nil, fmt.Errorf("agent %d: age_class not set", id)
	}

	mean := float64(params.StayTimePreference)
	stayPref := int(math.Max(rng.NormFloat64()*mean/4+mean, 0))

	return &Agent{
		ID:  id,
		key: key,
		AgeClass: ageClass,
		Behavior: Behavior{
			Archetype:            archetype,
			StayTimePreference:   stayPref,
			AllowRepeats:         params.AllowRepeats,
			AttractionPreference: params.AttractionPreference,
			WaitThreshold:        params.WaitThreshold,
			WaitDiscountBeta:     params.WaitDiscountBeta,
		},
		PassAbility:      passAbility,
		ExpWaitThreshold: expWaitThreshold,
		ExpLimit:         expLimit,
		ArrivalTime:      -1,
		ExitTime:         -1,
		LocationID:       -1,
		CurrentAreaID:    -1,
		DestID:           -1,
		TimesCompleted:   make([]int, numAttractions),
		ActivityStats:    make([]ActivityTally, numActivities),
	}, nil
}

// HoldsPass reports whether the agent holds a pass for the attraction.
func (ag *Agent) HoldsPass(attractionID int) bool {
	for _, p := range ag.Passes {
		if p.AttractionID == attractionID {
			return true
		}
	}
	return false
}

// PassDelays returns a copy of the remaining return-window delays.
func (ag *Agent) PassDelays() []int {
	if len(ag.Passes) == 0 {
		return nil
	}
	delays := make([]int, len(ag.Passes))
	for i, p := range ag.Passes {
		delays[i] = p.RemainingDelay
	}
	return delays
}

// Log returns the agent's textual history.
func (ag *Agent) Log() string {
	return ag.log.String()
}

// === Decision procedure ===

// DecisionContext is the read-only snapshot an idle agent decides against:
// the minute, the posted attraction estimates, the activity roster, the
// travel matrix, and the shared decisions RNG stream.
type DecisionContext struct {
	Time        int
	ParkClosed  bool
	Attractions []*Attraction
	Activities  []*Activity
	Travel      *TravelMatrix
	Decisions   *rand.Rand
}

// NextMove is invoked each minute the agent is idling. It resolves, in
// order: leaving (forced at close, stochastic past the preferred stay),
// redeeming a due pass, and the attraction-vs-activity choice.
func (ag *Agent) NextMove(ctx *DecisionContext) Move {
	if ctx.ParkClosed {
		return Move{Action: ActionLeaving, Kind: LocationGate, ID: -1}
	}
	if ag.decideToLeave(ctx.Time) {
		return Move{Action: ActionLeaving, Kind: LocationGate, ID: -1}
	}
	return ag.makeAttractionActivityMove(ctx)
}

// decideToLeave compares the agent's overstay against a wide normal draw
// seeded per agent and minute, giving a gradually rising leave probability
// past the preferred stay length. Agents never leave the minute they
// arrive.
func (ag *Agent) decideToLeave(now int) bool {
	if now == ag.ArrivalTime {
		return false
	}
	overstay := (now - ag.ArrivalTime) - ag.Behavior.StayTimePreference
	draw := ag.key.AgentMinuteStream(ag.ID, now).NormFloat64() * 60 // N(0,1)*60: 95% CI ~ (-117.6, 117.6)
	return float64(overstay) > draw
}

// makeAttractionActivityMove redeems the earliest held pass whose return
// window has opened, otherwise chooses between an attraction and an
// activity.
func (ag *Agent) makeAttractionActivityMove(ctx *DecisionContext) Move {
	for _, p := range ag.Passes {
		if p.RemainingDelay <= 0 {
			return Move{Action: ActionRedeemingPass, Kind: LocationAttraction, ID: p.AttractionID}
		}
	}

	if candidates, wantAttraction := ag.eligibleAttractions(ctx); wantAttraction {
		if mv, ok := ag.selectAttraction(ctx, candidates); ok {
			return mv
		}
	}
	// only default to an activity if no attraction survived the agent's
	// wait and pass constraints; a park with no activities leaves the
	// agent idling until something opens up
	if len(ctx.Activities) == 0 {
		return Move{Action: ActionIdling, Kind: LocationNone, ID: -1}
	}
	return Move{Action: ActionTraveling, Kind: LocationActivity, ID: ag.selectActivity(ctx)}
}

// eligibleAttractions runs the attraction-vs-activity coinflip and the
// eligibility filter. An agent with room for another expedited pass always
// attempts attraction selection.
func (ag *Agent) eligibleAttractions(ctx *DecisionContext) ([]int, bool) {
	canGetExp := len(ag.Passes) < ag.ExpLimit && ag.PassAbility
	coin := ctx.Decisions.Float64()
	if coin > ag.Behavior.AttractionPreference && !canGetExp {
		return nil, false
	}

	var candidates []int
	for _, att := range ctx.Attractions {
		if ag.HoldsPass(att.ID) {
			continue
		}
		if !ag.Behavior.AllowRepeats && ag.TimesCompleted[att.ID] > 0 {
			continue
		}
		switch ag.AgeClass {
		case AgeClassNoChildRides:
			if !att.AdultEligible {
				continue
			}
		case AgeClassNoAdultRides:
			if !att.ChildEligible {
				continue
			}
		}
		candidates = append(candidates, att.ID)
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates, true
}

// selectAttraction scores the candidates, then samples from a normalized
// softmax and validates the draw: seek a pass when the standby wait is
// past the agent's expedited threshold, drop candidates whose wait exceeds
// the agent's popularity-adjusted threshold or would make the agent miss a
// pending return window, and resample until a candidate is accepted or the
// pool empties.
func (ag *Agent) selectAttraction(ctx *DecisionContext, candidates []int) (Move, bool) {
	waits := make(map[int]int, len(candidates))
	utilities := make(map[int]float64, len(candidates))

	pool := make([]int, 0, len(candidates))
	for _, id := range candidates {
		att := ctx.Attractions[id]
		wait := att.WaitTime()
		distance := ctx.Travel.Minutes(ag.CurrentAreaID, att.AreaID)
		nFuture := 0
		if ag.HoldsPass(id) {
			nFuture = 1
		}
		u := calculateUtility(att.Popularity, ag.TimesCompleted[id], nFuture, ag.Behavior.WaitDiscountBeta, wait, distance)
		if u <= 0 {
			continue
		}
		pool = append(pool, id)
		waits[id] = wait
		utilities[id] = u
	}

	for len(pool) > 0 {
		utils := make([]float64, len(pool))
		for i, id := range pool {
			utils[i] = utilities[id]
		}
		idx := weightedChoice(ctx.Decisions, softmaxNormalized(utils))
		pick := pool[idx]
		att := ctx.Attractions[pick]

		switch {
		case waits[pick] > ag.ExpWaitThreshold &&
			ag.PassAbility &&
			len(ag.Passes) < ag.ExpLimit &&
			att.ExpeditedQueue &&
			att.Status() == PassStatusOpen:
			return Move{Action: ActionGettingPass, Kind: LocationAttraction, ID: pick}, true

		case waits[pick] > ag.Behavior.WaitThreshold+6*att.Popularity:
			pool = append(pool[:idx], pool[idx+1:]...)

		case ag.wouldMissReturnWindow(waits[pick] + att.RunTime):
			pool = append(pool[:idx], pool[idx+1:]...)

		default:
			return Move{Action: ActionTraveling, Kind: LocationAttraction, ID: pick}, true
		}
	}
	return Move{}, false
}

// wouldMissReturnWindow reports whether queueing for the given number of
// minutes would overrun any held pass's pending return window.
func (ag *Agent) wouldMissReturnWindow(minutes int) bool {
	for _, p := range ag.Passes {
		if p.RemainingDelay < minutes {
			return true
		}
	}
	return false
}

// selectActivity picks an activity by raw popularity weight.
func (ag *Agent) selectActivity(ctx *DecisionContext) int {
	total := 0
	for _, act := range ctx.Activities {
		total += act.Popularity
	}
	draw := ctx.Decisions.Float64() * float64(total)
	floor := 0.0
	for _, act := range ctx.Activities {
		floor += float64(act.Popularity)
		if draw < floor {
			return act.ID
		}
	}
	return ctx.Activities[len(ctx.Activities)-1].ID
}

// calculateUtility scores an attraction for one agent. Utility is
// proportional to popularity with diminishing returns in prior and planned
// visits, discounted exponentially by the posted wait and linearly by the
// walk. Stable betas range 0.98..0.998; at beta=0.9885 a 60-minute wait
// halves the utility.
func calculateUtility(popularity, nPast, nFuture int, beta float64, waitTime, distance int) float64 {
	u := 10.0 * float64(popularity) / float64(1+nPast+nFuture)
	u *= math.Pow(beta, float64(waitTime))
	u -= 3.0 * float64(distance)
	return u
}

// softmaxNormalized standardizes the utilities ((u-mu)/sigma, sigma clamped
// to >= 1) before exponentiating, keeping selection temperature stable
// across popularity regimes.
func softmaxNormalized(utils []float64) []float64 {
	mu := 0.0
	for _, u := range utils {
		mu += u
	}
	mu /= float64(len(utils))

	variance := 0.0
	for _, u := range utils {
		d := u - mu
		variance += d * d
	}
	sigma := math.Max(math.Sqrt(variance/float64(len(utils))), 1)

	probs := make([]float64, len(utils))
	sum := 0.0
	for i, u := range utils {
		probs[i] = math.Exp((u - mu) / sigma)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// weightedChoice draws an index from the weight vector.
func weightedChoice(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	draw := rng.Float64() * total
	floor := 0.0
	for i, w := range weights {
		floor += w
		if draw < floor {
			return i
		}
	}
	return len(weights) - 1
}

// === State transitions (applied by the orchestrator) ===

// ArriveAtPark admits the agent at the gate in the entrance area.
func (ag *Agent) ArriveAtPark(now, entranceAreaID int) {
	ag.WithinPark = true
	ag.ArrivalTime = now
	ag.LocationKind = LocationGate
	ag.LocationID = -1
	ag.CurrentAreaID = entranceAreaID
	ag.Action = ActionIdling
	ag.TimeAtLocation = 0
	fmt.Fprintf(&ag.log, "Agent arrived at park at time %d. ", now)
}

// SetDestination commits a decided move with its travel time.
func (ag *Agent) SetDestination(mv Move, travelTime int) {
	ag.DestKind = mv.Kind
	ag.DestID = mv.ID
	ag.TimeToDestination = travelTime
	ag.Action = mv.Action
}

// LeavePark marks the agent outside the park. Held passes are void at the
// gate; the orchestrator records them as skipped before calling this.
func (ag *Agent) LeavePark(now int) {
	ag.Passes = nil
	ag.WithinPark = false
	ag.LocationKind = LocationOutsidePark
	ag.LocationID = -1
	ag.CurrentAreaID = -1
	ag.DestKind = LocationNone
	ag.DestID = -1
	ag.TimeToDestination = 0
	ag.Action = ActionNone
	ag.ExitTime = now
	ag.TimeAtLocation = 0
	fmt.Fprintf(&ag.log, "Agent left park at %d. ", now)
}

// EnterQueue places the agent in an attraction's standby queue.
func (ag *Agent) EnterQueue(attractionID int, name string, areaID, now int) {
	ag.LocationKind = LocationAttraction
	ag.LocationID = attractionID
	ag.CurrentAreaID = areaID
	ag.DestKind = LocationNone
	ag.DestID = -1
	ag.TimeToDestination = 0
	ag.Action = ActionQueueing
	ag.TimeAtLocation = 0
	fmt.Fprintf(&ag.log, "Agent entered queue for %s at time %d. ", name, now)
}

// EnterExpQueue places the agent in an attraction's expedited queue.
func (ag *Agent) EnterExpQueue(attractionID int, name string, areaID, now int) {
	ag.LocationKind = LocationAttraction
	ag.LocationID = attractionID
	ag.CurrentAreaID = areaID
	ag.DestKind = LocationNone
	ag.DestID = -1
	ag.TimeToDestination = 0
	ag.Action = ActionQueueing
	ag.TimeAtLocation = 0
	fmt.Fprintf(&ag.log, "Agent entered exp queue for %s at time %d. ", name, now)
}

// BeginActivity starts the agent dwelling at an activity.
func (ag *Agent) BeginActivity(activityID int, name string, areaID, now int) {
	ag.LocationKind = LocationActivity
	ag.LocationID = activityID
	ag.CurrentAreaID = areaID
	ag.DestKind = LocationNone
	ag.DestID = -1
	ag.TimeToDestination = 0
	ag.Action = ActionBrowsing
	ag.TimeAtLocation = 0
	fmt.Fprintf(&ag.log, "Agent visited the activity %s at time %d. ", name, now)
}

// AcquirePass records a freshly issued expedited pass and its return delay,
// then returns the agent to idling at the attraction's area.
func (ag *Agent) AcquirePass(attractionID int, name string, areaID, returnTime, now int) {
	ag.LocationKind = LocationAttraction
	ag.LocationID = attractionID
	ag.CurrentAreaID = areaID
	ag.DestKind = LocationNone
	ag.DestID = -1
	ag.TimeToDestination = 0
	ag.TimeAtLocation = 0
	delay := max(0, returnTime-now)
	ag.Passes = append(ag.Passes, Pass{AttractionID: attractionID, RemainingDelay: delay})
	ag.Action = ActionIdling
	fmt.Fprintf(&ag.log, "Agent picked up an expedited pass for %s at time %d. ", name, now)
	fmt.Fprintf(&ag.log, "The expedited queue return time is in %d minutes. ", delay)
}

// BoardAttraction moves the agent onto the ride. If a pass for the
// attraction is held, the earliest-held one is consumed and true is
// returned so the orchestrator can record the redemption.
func (ag *Agent) BoardAttraction(attractionID int, name string, now int) bool {
	ag.Action = ActionRiding
	ag.TimeAtLocation = 0
	for i, p := range ag.Passes {
		if p.AttractionID == attractionID {
			ag.Passes = append(ag.Passes[:i], ag.Passes[i+1:]...)
			fmt.Fprintf(&ag.log, "Agent boarded %s and redeemed their expedited queue pass at time %d. ", name, now)
			return true
		}
	}
	fmt.Fprintf(&ag.log, "Agent boarded %s at time %d. ", name, now)
	return false
}

// ExitAttraction returns the agent to idling after a completed ride.
func (ag *Agent) ExitAttraction(attractionID int, name string, now int) {
	ag.Action = ActionIdling
	ag.TimesCompleted[attractionID]++
	ag.TimeAtLocation = 0
	fmt.Fprintf(&ag.log, "Agent exited %s at time %d. ", name, now)
}

// ExitActivity returns the agent to idling after a dwell.
func (ag *Agent) ExitActivity(activityID int, name string, now int) {
	ag.Action = ActionIdling
	ag.ActivityStats[activityID].TimesVisited++
	ag.ActivityStats[activityID].TimeSpent += ag.TimeAtLocation
	ag.TimeAtLocation = 0
	fmt.Fprintf(&ag.log, "Agent exited the activity %s at time %d. ", name, now)
}

// PassTime ages the agent's timers by one minute: time at the current
// location, every pass's return delay (negative means the window is open),
// and the remaining travel time, floored at zero.
func (ag *Agent) PassTime() {
	if !ag.WithinPark {
		return
	}
	ag.TimeAtLocation++
	for i := range ag.Passes {
		ag.Passes[i].RemainingDelay--
	}
	if ag.TimeToDestination > 0 {
		ag.TimeToDestination--
	}
}
