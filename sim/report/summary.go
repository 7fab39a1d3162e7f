// Package report turns a finished simulation into human and machine
// readable output: a console summary, JSON dumps of the recorded day, and
// sampled agent travelogues.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/AlexBorger/shapeland/sim"
)

// AttractionSummary is one ride's day in aggregate.
type AttractionSummary struct {
	Name            string  `json:"name"`
	AvgWaitTime     float64 `json:"avg_wait_time"`
	AvgExpWaitTime  float64 `json:"avg_exp_wait_time"`
	TotalVisits     int     `json:"total_visits"`
	PassesIssued    int     `json:"passes_issued"`
	PassesRedeemed  int     `json:"passes_redeemed"`
	PassesAbandoned int     `json:"passes_abandoned"`
}

// ActivitySummary is one activity's day in aggregate.
type ActivitySummary struct {
	Name        string `json:"name"`
	TotalVisits int    `json:"total_visits"`
	TotalTime   int    `json:"total_time"`
}

// Summary aggregates a completed day.
type Summary struct {
	Minutes        int                 `json:"minutes"`
	AgentsArrived  int                 `json:"agents_arrived"`
	AgentsLeft     int                 `json:"agents_left"`
	AgentsInPark   int                 `json:"agents_in_park"`
	Attractions    []AttractionSummary `json:"attractions"`
	Activities     []ActivitySummary   `json:"activities"`
	PassesIssued   int                 `json:"passes_issued"`
	PassesRedeemed int                 `json:"passes_redeemed"`
}

// Summarize aggregates the park's recorded history and registries. It must
// be called after Run completes.
func Summarize(p *sim.Park) *Summary {
	h := p.History()
	s := &Summary{
		Minutes:        h.Minutes,
		AgentsArrived:  p.ArrivedAgents(),
		AgentsLeft:     p.LeftAgents(),
		AgentsInPark:   p.ActiveAgents(),
		PassesIssued:   h.DistributedPasses,
		PassesRedeemed: h.RedeemedPasses,
	}

	for _, att := range p.Attractions() {
		series := h.Attractions[att.ID]
		visits := 0
		for _, agent := range p.Agents() {
			visits += agent.TimesCompleted[att.ID]
		}
		s.Attractions = append(s.Attractions, AttractionSummary{
			Name:            att.Name,
			AvgWaitTime:     mean(series.QueueWaitTime),
			AvgExpWaitTime:  mean(series.ExpQueueWaitTime),
			TotalVisits:     visits,
			PassesIssued:    att.PassesDistributed(),
			PassesRedeemed:  att.PassesRedeemed(),
			PassesAbandoned: att.PassesSkipped(),
		})
	}

	for _, act := range p.Activities() {
		visits, minutes := 0, 0
		for _, agent := range p.Agents() {
			visits += agent.ActivityStats[act.ID].TimesVisited
			minutes += agent.ActivityStats[act.ID].TimeSpent
		}
		s.Activities = append(s.Activities, ActivitySummary{
			Name:        act.Name,
			TotalVisits: visits,
			TotalTime:   minutes,
		})
	}
	return s
}

// Print writes the summary as aligned console tables.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Simulated %d minutes: %d agents arrived, %d left, %d still in park\n",
		s.Minutes, s.AgentsArrived, s.AgentsLeft, s.AgentsInPark)
	fmt.Fprintf(w, "Expedited passes: %d issued, %d redeemed\n\n", s.PassesIssued, s.PassesRedeemed)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ATTRACTION\tAVG WAIT\tAVG EXP WAIT\tVISITS\tPASSES (issued/redeemed/abandoned)")
	for _, a := range s.Attractions {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%d\t%d/%d/%d\n",
			a.Name, a.AvgWaitTime, a.AvgExpWaitTime, a.TotalVisits,
			a.PassesIssued, a.PassesRedeemed, a.PassesAbandoned)
	}
	tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTIVITY\tVISITS\tTOTAL MINUTES")
	for _, a := range s.Activities {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", a.Name, a.TotalVisits, a.TotalTime)
	}
	tw.Flush()
}

func mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}
