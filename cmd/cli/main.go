package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ciso-sim/internal/config"
	"ciso-sim/internal/loader"
	"ciso-sim/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ciso-sim",
		Short: "Terminal interface for the security incident response simulation",
		Long: `ciso-sim runs a branching security incident scenario in the terminal.

You pick a scenario and a team within the hiring budget, then make one
decision per round while unplanned injections disrupt your plan. Lose all
budget or reputation and the board fires you.`,
		RunE: run,
	}

	rootCmd.Flags().Bool("list-scenarios", false, "List available scenarios and exit")
	rootCmd.Flags().String("scenario", "", "Scenario id to run")
	rootCmd.Flags().Bool("auto-team", false, "Auto-select the default team (first 3 roster members)")
	rootCmd.Flags().String("data", "", "Data directory (overrides DATA_DIR)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dataDir, _ := cmd.Flags().GetString("data"); dataDir != "" {
		cfg.DataDir = dataDir
	}

	// Console logging at warn level so game output stays readable.
	log, err := logger.New(logger.Config{Level: "warn", Encoding: "console"})
	if err != nil {
		return err
	}
	defer log.Sync()

	scenarios, err := loader.LoadScenarios(cfg.DataDir)
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios found in %q", cfg.DataDir)
	}

	if list, _ := cmd.Flags().GetBool("list-scenarios"); list {
		fmt.Println("Available scenarios:")
		for _, s := range sortedScenarios(scenarios) {
			fmt.Printf("- %s: %s\n", s.ID, s.Name)
		}
		return nil
	}

	roster, err := loader.LoadRoster(cfg.DataDir)
	if err != nil {
		return err
	}

	chosenID, _ := cmd.Flags().GetString("scenario")
	scenario, err := chooseScenario(scenarios, chosenID)
	if err != nil {
		return err
	}

	autoTeam, _ := cmd.Flags().GetBool("auto-team")
	team, err := chooseTeam(roster, cfg.Simulation().TeamBudget, autoTeam)
	if err != nil {
		return err
	}

	return runTextUI(scenario, team, cfg.Simulation(), log)
}
