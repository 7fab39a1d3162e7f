package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AlexBorger/shapeland/sim"
	"github.com/AlexBorger/shapeland/sim/report"
	"github.com/AlexBorger/shapeland/sim/scenario"
)

var (
	// CLI flags for the simulated day
	scenarioPath string // Path to a scenario YAML; empty uses the built-in day
	seed         int64  // Master seed; overrides the scenario's seed when set
	totalAgents  int    // Overrides the scenario's total_daily_agents when set
	logLevel     string // Log verbosity level
	outputDir    string // Directory for JSON dumps; empty disables them
	agentLogs    int    // Number of agent travelogues to print after the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "shapeland",
	Short: "Agent-based discrete-event simulator for a theme park day",
}

// runCmd executes one simulated day using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulated park day",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		scn := scenario.Default()
		if scenarioPath != "" {
			scn, err = scenario.Load(scenarioPath)
			if err != nil {
				logrus.Fatalf("Could not load scenario: %v", err)
			}
		}
		if cmd.Flags().Changed("seed") {
			scn.Seed = seed
		}
		if cmd.Flags().Changed("total-agents") {
			scn.TotalDailyAgents = totalAgents
		}

		logrus.Infof("Starting simulation: seed=%d, %d agents over %d hours",
			scn.Seed, scn.TotalDailyAgents, len(scn.HourlyArrivals))
		startTime := time.Now()

		park, err := sim.NewPark(scn.ToParkConfig())
		if err != nil {
			logrus.Fatalf("Could not build park: %v", err)
		}
		if err := park.Run(); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		report.Summarize(park).Print(os.Stdout)

		if outputDir != "" {
			if err := report.WriteHistoryJSON(filepath.Join(outputDir, "history.json"), park.History()); err != nil {
				logrus.Fatalf("Could not write history: %v", err)
			}
			if err := report.WriteParametersJSON(filepath.Join(outputDir, "parameters.json"), scn); err != nil {
				logrus.Fatalf("Could not write parameters: %v", err)
			}
			logrus.Infof("Wrote history.json and parameters.json to %s", outputDir)
		}
		if agentLogs > 0 {
			report.PrintAgentLogs(os.Stdout, park, agentLogs)
		}

		logrus.Infof("Simulation complete in %s.", time.Since(startTime).Round(time.Millisecond))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a scenario YAML file (default: built-in day)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Master seed for deterministic replay (overrides scenario)")
	runCmd.Flags().IntVar(&totalAgents, "total-agents", 0, "Total daily agents (overrides scenario)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&outputDir, "output", "", "Directory for history.json and parameters.json dumps")
	runCmd.Flags().IntVar(&agentLogs, "agent-logs", 0, "Number of sampled agent travelogues to print")

	rootCmd.AddCommand(runCmd)
}
