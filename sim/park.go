package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// ParkConfig is everything needed to build a simulated day: the scenario
// content plus the scalar knobs and the master seed.
type ParkConfig struct {
	Attractions           []AttractionConfig
	Activities            []ActivityConfig
	ParkMap               map[string]map[string]int
	EntranceArea          string
	ArrivalSchedule       []HourlyArrival
	Archetypes            ArchetypeTable
	ArchetypeDistribution []ArchetypeWeight
	TotalDailyAgents      int
	PerfectArrivals       bool
	ExpAbilityPct         float64 // share of agents able to acquire passes
	ExpWaitThreshold      int     // posted wait beyond which agents seek a pass
	ExpLimit              int     // max passes held at once
	Seed                  int64
}

// Park is the orchestrator: it owns the registries, advances global time
// one minute per Step, and synchronizes agent, attraction, and activity
// transitions. All mutation happens inside the well-defined tick phases;
// the tick itself is strictly single-threaded.
type Park struct {
	key SimulationKey
	rng *PartitionedRNG

	travel         *TravelMatrix
	entranceAreaID int

	attractions []*Attraction
	activities  []*Activity
	agents      []*Agent

	schedule  *ArrivalSchedule
	parkClose int
	horizon   int // total operating minutes

	time         int
	arrivalIndex int
	activeAgents int
	leftAgents   int

	distributedPasses int
	redeemedPasses    int

	history *History
}

// NewPark validates the configuration and builds all registries. Every
// configuration fault surfaces here, before any time passes.
func NewPark(cfg ParkConfig) (*Park, error) {
	if cfg.TotalDailyAgents < 0 {
		return nil, fmt.Errorf("total_daily_agents must be non-negative, got %d", cfg.TotalDailyAgents)
	}
	if cfg.ExpAbilityPct < 0 || cfg.ExpAbilityPct > 1 {
		return nil, fmt.Errorf("exp_ability_pct must be in [0,1], got %f", cfg.ExpAbilityPct)
	}
	if cfg.ExpLimit < 0 {
		return nil, fmt.Errorf("exp_limit must be non-negative, got %d", cfg.ExpLimit)
	}
	if err := cfg.Archetypes.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateArchetypeDistribution(cfg.ArchetypeDistribution, cfg.Archetypes); err != nil {
		return nil, err
	}

	travel, err := NewTravelMatrix(cfg.ParkMap)
	if err != nil {
		return nil, err
	}
	entranceID, ok := travel.AreaID(cfg.EntranceArea)
	if !ok {
		return nil, fmt.Errorf("entrance park area %q is not in the park map", cfg.EntranceArea)
	}

	key := NewSimulationKey(cfg.Seed)
	p := &Park{
		key:            key,
		rng:            NewPartitionedRNG(key),
		travel:         travel,
		entranceAreaID: entranceID,
	}

	// attractions and activities are id-assigned in ascending popularity
	// order so decision sweeps visit them the same way every run
	attractionCfgs := append([]AttractionConfig(nil), cfg.Attractions...)
	sort.SliceStable(attractionCfgs, func(i, j int) bool {
		return attractionCfgs[i].Popularity < attractionCfgs[j].Popularity
	})
	for id, ac := range attractionCfgs {
		areaID, ok := travel.AreaID(ac.ParkArea)
		if !ok {
			return nil, fmt.Errorf("attraction %q references unknown park area %q", ac.Name, ac.ParkArea)
		}
		att, err := NewAttraction(id, areaID, ac)
		if err != nil {
			return nil, err
		}
		p.attractions = append(p.attractions, att)
	}

	activityCfgs := append([]ActivityConfig(nil), cfg.Activities...)
	sort.SliceStable(activityCfgs, func(i, j int) bool {
		return activityCfgs[i].Popularity < activityCfgs[j].Popularity
	})
	for id, ac := range activityCfgs {
		areaID, ok := travel.AreaID(ac.ParkArea)
		if !ok {
			return nil, fmt.Errorf("activity %q references unknown park area %q", ac.Name, ac.ParkArea)
		}
		act, err := NewActivity(id, areaID, ac, p.rng.ForSubsystem(SubsystemActivity(id)))
		if err != nil {
			return nil, err
		}
		p.activities = append(p.activities, act)
	}

	p.schedule, err = BuildArrivalSchedule(key, cfg.ArrivalSchedule, cfg.TotalDailyAgents,
		cfg.PerfectArrivals, p.rng.ForSubsystem(SubsystemArrivalBalance))
	if err != nil {
		return nil, err
	}
	p.parkClose = p.schedule.ParkClose
	p.horizon = len(p.schedule.PerMinute)

	for id := 0; id < p.schedule.Total; id++ {
		agent, err := NewAgent(id, key, cfg.Archetypes, cfg.ArchetypeDistribution,
			cfg.ExpAbilityPct, cfg.ExpWaitThreshold, cfg.ExpLimit,
			len(p.attractions), len(p.activities))
		if err != nil {
			return nil, err
		}
		p.agents = append(p.agents, agent)
	}

	attractionNames := make([]string, len(p.attractions))
	for i, a := range p.attractions {
		attractionNames[i] = a.Name
	}
	activityNames := make([]string, len(p.activities))
	for i, a := range p.activities {
		activityNames[i] = a.Name
	}
	p.history = NewHistory(p.horizon, attractionNames, activityNames)

	logrus.Infof("park built: %d agents, %d attractions, %d activities, %d areas, close at minute %d",
		len(p.agents), len(p.attractions), len(p.activities), travel.NumAreas(), p.parkClose)
	return p, nil
}

// Time returns the current simulation minute.
func (p *Park) Time() int { return p.time }

// ParkClose returns the closing minute.
func (p *Park) ParkClose() int { return p.parkClose }

// Horizon returns the total number of operating minutes.
func (p *Park) Horizon() int { return p.horizon }

// Seed returns the master seed of this run.
func (p *Park) Seed() int64 { return int64(p.key) }

// History returns the recorded day.
func (p *Park) History() *History { return p.history }

// Agents returns the agent registry.
func (p *Park) Agents() []*Agent { return p.agents }

// Attractions returns the attraction registry in id order.
func (p *Park) Attractions() []*Attraction { return p.attractions }

// Activities returns the activity registry in id order.
func (p *Park) Activities() []*Activity { return p.activities }

// ActiveAgents returns the in-park population after the last tick.
func (p *Park) ActiveAgents() int { return p.activeAgents }

// LeftAgents returns the cumulative departed population.
func (p *Park) LeftAgents() int { return p.leftAgents }

// ArrivedAgents returns the cumulative admitted population.
func (p *Park) ArrivedAgents() int { return p.arrivalIndex }

// Run advances the park through the rest of the operating day.
func (p *Park) Run() error {
	for p.time < p.horizon {
		if err := p.Step(); err != nil {
			return fmt.Errorf("minute %d: %w", p.time, err)
		}
	}
	logrus.Infof("simulation ended at minute %d: %d agents left, %d still in park",
		p.time, p.leftAgents, p.activeAgents)
	return nil
}

// Step advances one minute. The phase order is load-bearing: decisions see
// wait times recomputed this minute, attraction dispatches see queues after
// this minute's arrivals committed, and timers age after all transitions.
func (p *Park) Step() error {
	// 1. admit arrivals while the park is open
	if p.time < p.parkClose {
		arrivals := p.schedule.PerMinute[p.time]
		for i := 0; i < arrivals; i++ {
			p.agents[p.arrivalIndex+i].ArriveAtPark(p.time, p.entranceAreaID)
		}
		p.arrivalIndex += arrivals
	}

	// 2. collect idle agents before any estimate changes
	idle := p.idleAgentIDs()

	// 3. refresh posted wait times and expedited return windows
	for _, att := range p.attractions {
		att.UpdateWaitTimes()
		att.UpdateExpReturnWindow(p.time, p.parkClose)
	}

	// 4. decision pass: every idle agent picks a move and starts traveling
	ctx := &DecisionContext{
		Time:        p.time,
		ParkClosed:  p.parkClose <= p.time,
		Attractions: p.attractions,
		Activities:  p.activities,
		Travel:      p.travel,
		Decisions:   p.rng.ForSubsystem(SubsystemDecisions),
	}
	for _, id := range idle {
		agent := p.agents[id]
		move := agent.NextMove(ctx)
		if move.Action == ActionIdling {
			continue
		}
		destAreaID, err := p.destinationArea(move)
		if err != nil {
			return fmt.Errorf("agent %d: %w", agent.ID, err)
		}
		agent.SetDestination(move, p.travel.Minutes(agent.CurrentAreaID, destAreaID))
	}

	// 5. arrival pass: commit every delayed action whose travel finished
	for _, agent := range p.agents {
		if !agent.WithinPark || agent.TimeToDestination != 0 {
			continue
		}
		switch agent.Action {
		case ActionLeaving, ActionTraveling, ActionRedeemingPass, ActionGettingPass:
			if err := p.commitArrival(agent); err != nil {
				return err
			}
		}
	}

	// 6. dispatch attractions
	for _, att := range p.attractions {
		exiting, loaded := att.Step(p.time)
		for _, id := range exiting {
			p.agents[id].ExitAttraction(att.ID, att.Name, p.time)
		}
		for _, id := range loaded {
			agent := p.agents[id]
			if agent.Action == ActionBrowsing {
				// the expedited return estimate ran long; pull the agent
				// out of the activity before boarding
				act := p.activities[agent.LocationID]
				if !act.ForceExit(agent.ID) {
					return fmt.Errorf("agent %d marked browsing but absent from activity %q", agent.ID, act.Name)
				}
				agent.ExitActivity(act.ID, act.Name, p.time)
			}
			if agent.BoardAttraction(att.ID, att.Name, p.time) {
				p.redeemedPasses++
				att.RedeemPass()
			}
		}
	}

	// 7. release agents whose dwell expired
	for _, act := range p.activities {
		for _, id := range act.Step(p.time) {
			p.agents[id].ExitActivity(act.ID, act.Name, p.time)
		}
	}

	// 8. age timers and record per-entity history
	for _, agent := range p.agents {
		agent.PassTime()
	}
	for _, att := range p.attractions {
		att.PassTime()
		p.history.RecordAttraction(p.time, att)
	}
	for _, act := range p.activities {
		p.history.RecordActivity(p.time, act)
	}

	// 9. snapshot park-wide totals
	active := 0
	for _, agent := range p.agents {
		if agent.WithinPark {
			active++
		}
	}
	p.activeAgents = active
	p.history.RecordTotals(p.time, active, p.leftAgents)
	p.history.DistributedPasses = p.distributedPasses
	p.history.RedeemedPasses = p.redeemedPasses

	if p.time%60 == 0 {
		logrus.Infof("[minute %04d] in park: %d, left: %d, passes distributed/redeemed: %d/%d",
			p.time, active, p.leftAgents, p.distributedPasses, p.redeemedPasses)
	} else {
		logrus.Debugf("[minute %04d] in park: %d, left: %d", p.time, active, p.leftAgents)
	}

	// 10. advance the clock
	p.time++
	return nil
}

// idleAgentIDs identifies agents who just arrived, exited a ride, or left
// an activity, and are ready to decide.
func (p *Park) idleAgentIDs() []int {
	var idle []int
	for _, agent := range p.agents {
		if agent.WithinPark && agent.Action == ActionIdling {
			idle = append(idle, agent.ID)
		}
	}
	return idle
}

// destinationArea resolves a move's target park area.
func (p *Park) destinationArea(move Move) (int, error) {
	switch move.Kind {
	case LocationAttraction:
		return p.attractions[move.ID].AreaID, nil
	case LocationActivity:
		return p.activities[move.ID].AreaID, nil
	case LocationGate:
		return p.entranceAreaID, nil
	default:
		return 0, fmt.Errorf("cannot travel to location kind %d: unknown park area mapping", move.Kind)
	}
}

// commitArrival applies an agent's delayed action once travel completes.
func (p *Park) commitArrival(agent *Agent) error {
	if agent.TimeToDestination > 0 {
		return fmt.Errorf("agent %d reached the commit phase before reaching its destination", agent.ID)
	}

	switch agent.Action {
	case ActionLeaving:
		// passes still held will never be redeemed; record them so the
		// return-window estimator stops waiting for their holders
		for _, pass := range agent.Passes {
			p.attractions[pass.AttractionID].SkipPass()
		}
		agent.LeavePark(p.time)
		p.leftAgents++

	case ActionTraveling:
		switch agent.DestKind {
		case LocationAttraction:
			att := p.attractions[agent.DestID]
			agent.EnterQueue(att.ID, att.Name, att.AreaID, p.time)
			att.AddToQueue(agent.ID)
		case LocationActivity:
			act := p.activities[agent.DestID]
			delays := agent.PassDelays()
			agent.BeginActivity(act.ID, act.Name, act.AreaID, p.time)
			act.AddAgent(agent.ID, delays)
		default:
			return fmt.Errorf("agent %d traveling to unknown destination kind %d", agent.ID, agent.DestKind)
		}

	case ActionRedeemingPass:
		if agent.DestKind != LocationAttraction {
			return fmt.Errorf("agent %d tried to redeem an expedited pass at a non-attraction location", agent.ID)
		}
		att := p.attractions[agent.DestID]
		if !agent.HoldsPass(att.ID) {
			return fmt.Errorf("agent %d tried to redeem a pass for %q without holding one", agent.ID, att.Name)
		}
		agent.EnterExpQueue(att.ID, att.Name, att.AreaID, p.time)
		att.AddToExpQueue(agent.ID)

	case ActionGettingPass:
		if agent.DestKind != LocationAttraction {
			return fmt.Errorf("agent %d tried to get a pass at a non-attraction location", agent.ID)
		}
		att := p.attractions[agent.DestID]
		att.RemovePass()
		agent.AcquirePass(att.ID, att.Name, att.AreaID, att.ExpReturnTime(), p.time)
		p.distributedPasses++
	}
	return nil
}
