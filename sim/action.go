package sim

// Action is the closed set of things an agent can be doing at any minute.
// The orchestrator's commit phase switches exhaustively over this enum.
type Action int

const (
	// ActionNone means the agent has no current action (outside the park).
	ActionNone Action = iota
	// ActionIdling: the agent is between activities and will decide this minute.
	ActionIdling
	// ActionTraveling: the agent is walking toward a chosen attraction or activity.
	ActionTraveling
	// ActionQueueing: the agent is standing in a standby or expedited queue.
	ActionQueueing
	// ActionRiding: the agent is on an attraction mid-cycle.
	ActionRiding
	// ActionBrowsing: the agent is dwelling at an activity.
	ActionBrowsing
	// ActionGettingPass: the agent is walking to pick up an expedited pass.
	ActionGettingPass
	// ActionRedeemingPass: the agent is walking to an expedited queue with a due pass.
	ActionRedeemingPass
	// ActionLeaving: the agent is walking to the gate to exit the park.
	ActionLeaving
)

var actionNames = map[Action]string{
	ActionNone:          "none",
	ActionIdling:        "idling",
	ActionTraveling:     "traveling",
	ActionQueueing:      "queueing",
	ActionRiding:        "riding",
	ActionBrowsing:      "browsing",
	ActionGettingPass:   "get pass",
	ActionRedeemingPass: "redeeming exp pass",
	ActionLeaving:       "leaving",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// LocationKind distinguishes the kinds of places an agent can occupy or
// travel toward. Attraction and activity locations carry an integer id.
type LocationKind int

const (
	LocationNone LocationKind = iota
	LocationGate
	LocationAttraction
	LocationActivity
	LocationOutsidePark
)

// Move is a decision produced by an agent: what to do and where.
// For gate-bound moves (leaving) the ID field is unused.
type Move struct {
	Action Action
	Kind   LocationKind
	ID     int
}
