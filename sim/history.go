package sim

// AttractionSeries holds the minute-indexed metrics of one attraction.
type AttractionSeries struct {
	QueueLength      []int `json:"queue_length"`
	QueueWaitTime    []int `json:"queue_wait_time"`
	ExpQueueLength   []int `json:"exp_queue_length"`
	ExpQueueWaitTime []int `json:"exp_queue_wait_time"`
	ExpReturnTime    []int `json:"exp_return_time"`
}

// ActivitySeries holds the minute-indexed metrics of one activity.
type ActivitySeries struct {
	TotalVisitors []int `json:"total_visitors"`
}

// History is the time-indexed record of a full simulated day. Entity series
// are indexed by integer id; the parallel name slices exist for I/O only.
type History struct {
	Minutes int `json:"minutes"`

	AttractionNames []string           `json:"attraction_names"`
	Attractions     []AttractionSeries `json:"attractions"`
	ActivityNames   []string           `json:"activity_names"`
	Activities      []ActivitySeries   `json:"activities"`

	TotalActiveAgents []int `json:"total_active_agents"`
	TotalLeftAgents   []int `json:"total_left_agents"`

	DistributedPasses int `json:"distributed_passes"`
	RedeemedPasses    int `json:"redeemed_passes"`
}

// NewHistory allocates the full time axis up front so every series carries
// a value for every operating minute, including zero-activity ones.
func NewHistory(minutes int, attractionNames, activityNames []string) *History {
	h := &History{
		Minutes:           minutes,
		AttractionNames:   attractionNames,
		Attractions:       make([]AttractionSeries, len(attractionNames)),
		ActivityNames:     activityNames,
		Activities:        make([]ActivitySeries, len(activityNames)),
		TotalActiveAgents: make([]int, minutes),
		TotalLeftAgents:   make([]int, minutes),
	}
	for i := range h.Attractions {
		h.Attractions[i] = AttractionSeries{
			QueueLength:      make([]int, minutes),
			QueueWaitTime:    make([]int, minutes),
			ExpQueueLength:   make([]int, minutes),
			ExpQueueWaitTime: make([]int, minutes),
			ExpReturnTime:    make([]int, minutes),
		}
	}
	for i := range h.Activities {
		h.Activities[i] = ActivitySeries{TotalVisitors: make([]int, minutes)}
	}
	return h
}

// RecordAttraction samples one attraction's posted state at one minute.
func (h *History) RecordAttraction(minute int, a *Attraction) {
	s := &h.Attractions[a.ID]
	s.QueueLength[minute] = a.QueueLen()
	s.QueueWaitTime[minute] = a.WaitTime()
	s.ExpQueueLength[minute] = a.ExpQueueLen()
	s.ExpQueueWaitTime[minute] = a.ExpWaitTime()
	s.ExpReturnTime[minute] = a.ExpReturnTime()
}

// RecordActivity samples one activity's population at one minute.
func (h *History) RecordActivity(minute int, ac *Activity) {
	h.Activities[ac.ID].TotalVisitors[minute] = ac.VisitorCount()
}

// RecordTotals samples the park-wide population counters at one minute.
func (h *History) RecordTotals(minute, active, left int) {
	h.TotalActiveAgents[minute] = active
	h.TotalLeftAgents[minute] = left
}
