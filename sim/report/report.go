package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AlexBorger/shapeland/sim"
)

// WriteHistoryJSON dumps the full minute-indexed history to a JSON file,
// creating parent directories as needed.
func WriteHistoryJSON(path string, h *sim.History) error {
	return writeJSON(path, h)
}

// WriteParametersJSON dumps the run's input parameters to a JSON file so a
// recorded day can be tied back to the configuration that produced it.
func WriteParametersJSON(path string, params any) error {
	return writeJSON(path, params)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// PrintAgentLogs samples n agents from the finished run and prints each
// one's travelogue. Sampling draws from the run's report stream, so the same
// seed prints the same agents.
func PrintAgentLogs(w io.Writer, p *sim.Park, n int) {
	agents := p.Agents()
	if n > len(agents) {
		n = len(agents)
	}
	if n <= 0 {
		return
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(p.Seed())).ForSubsystem(sim.SubsystemReport)
	for _, idx := range rng.Perm(len(agents))[:n] {
		agent := agents[idx]
		fmt.Fprintf(w, "--- agent %d (%s, %s) ---\n", agent.ID, agent.Behavior.Archetype, agent.AgeClass)
		log := agent.Log()
		if log == "" {
			log = "Agent never entered the park."
		}
		fmt.Fprintln(w, log)
	}
}
