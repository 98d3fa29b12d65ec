package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"ciso-sim/internal/domain"
	"ciso-sim/internal/loader"
	"ciso-sim/internal/simulation"
)

var stdin = bufio.NewReader(os.Stdin)

func prompt(question string) (string, error) {
	fmt.Print(question)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func sortedScenarios(scenarios map[string]*domain.Scenario) []*domain.Scenario {
	out := make([]*domain.Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func chooseScenario(scenarios map[string]*domain.Scenario, chosenID string) (*domain.Scenario, error) {
	if chosenID != "" {
		scenario, ok := scenarios[chosenID]
		if !ok {
			return nil, fmt.Errorf("scenario %q not found", chosenID)
		}
		return scenario, nil
	}

	ordered := sortedScenarios(scenarios)
	fmt.Println("Available scenarios:")
	for i, s := range ordered {
		briefing := s.Briefing
		if len(briefing) > 60 {
			briefing = briefing[:60]
		}
		fmt.Printf("%d. %s (%s) - %s\n", i+1, s.Name, s.ID, briefing)
	}
	selection, err := prompt("Choose scenario number: ")
	if err != nil {
		return nil, err
	}
	idx, err := strconv.Atoi(selection)
	if err != nil || idx < 1 || idx > len(ordered) {
		return nil, fmt.Errorf("invalid selection %q", selection)
	}
	return ordered[idx-1], nil
}

func teamCost(members []domain.CharacterSpec) int {
	total := 0
	for _, m := range members {
		total += domain.NewCharacter(m).Cost
	}
	return total
}

func defaultTeam(roster []domain.CharacterSpec) []domain.CharacterSpec {
	n := min(3, len(roster))
	return roster[:n]
}

// chooseTeam presents a numbered roster and reads a comma-separated
// selection. Selections over the hiring budget can be reselected or
// confirmed anyway.
func chooseTeam(roster []domain.CharacterSpec, budget int, auto bool) ([]domain.CharacterSpec, error) {
	if auto {
		return defaultTeam(roster), nil
	}

	fmt.Println("Available roster (choose by number, comma-separated):")
	for i, member := range roster {
		fmt.Printf("%d. %s (%s) - %s\n", i+1, member.Name, loader.RosterKey(member), member.Role)
	}

	for {
		selection, err := prompt("Enter numbers (comma) or press Enter for default (first 3): ")
		if err != nil {
			return nil, err
		}
		chosen := pickMembers(roster, selection)
		if len(chosen) == 0 {
			fmt.Println("No valid team selected; using default.")
			chosen = defaultTeam(roster)
		}

		total := teamCost(chosen)
		if total <= budget {
			return chosen, nil
		}
		fmt.Printf("\nWarning: selected team cost %d exceeds budget %d.\n", total, budget)
		resp, err := prompt("Enter 'r' to reselect team, 'c' to confirm and proceed anyway: ")
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(resp) {
		case "c":
			return chosen, nil
		case "r":
			continue
		default:
			fmt.Println("Invalid response; reselecting.")
		}
	}
}

func pickMembers(roster []domain.CharacterSpec, selection string) []domain.CharacterSpec {
	if selection == "" {
		return defaultTeam(roster)
	}
	var chosen []domain.CharacterSpec
	for _, part := range strings.Split(selection, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			if idx >= 1 && idx <= len(roster) {
				chosen = append(chosen, roster[idx-1])
			} else {
				fmt.Printf("Warning: number %q out of range; skipping\n", part)
			}
			continue
		}
		// Fall back to selecting by roster id.
		found := false
		for _, member := range roster {
			if loader.RosterKey(member) == part {
				chosen = append(chosen, member)
				found = true
				break
			}
		}
		if !found {
			fmt.Printf("Warning: %q not a valid number or id; skipping\n", part)
		}
	}
	return chosen
}

func runTextUI(scenario *domain.Scenario, team []domain.CharacterSpec, settings simulation.Settings, log *zap.Logger) error {
	engine := simulation.NewEngine(scenario, team, settings, simulation.WithLogger(log))

	fmt.Printf("\n=== %s ===\n%s\n", scenario.Name, scenario.Briefing)

	for {
		presentable, err := engine.CurrentPresentable()
		if err != nil {
			return err
		}
		fmt.Printf("\n== %s ==\n%s\n", presentable.Title, presentable.Summary)
		challenge := presentable.Challenges[0]
		fmt.Printf("\n%s\n%s\n\n", challenge.Title, challenge.Prompt)
		for i, opt := range challenge.Options {
			probStr := ""
			if prob, ok := presentable.Probabilities[opt.ID]; ok {
				probStr = fmt.Sprintf(" (chance: %d%%)", prob)
			}
			fmt.Printf("%d. %s%s\n   %s\n\n", i+1, opt.Label, probStr, opt.Narrative)
		}

		choice, err := prompt("Choose option number (or 'q' to quit): ")
		if err != nil {
			return err
		}
		switch strings.ToLower(choice) {
		case "q", "quit", "exit":
			fmt.Println("Exiting game.")
			return nil
		}
		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(challenge.Options) {
			fmt.Println("Invalid choice; try again.")
			continue
		}

		result, err := engine.ApplyOption(challenge.Options[idx-1].ID)
		if err != nil {
			return err
		}
		fmt.Printf("\nOutcome: %s\n", result.Outcome)
		printState(result.State, result.Round)

		if !result.Finished {
			continue
		}
		if result.State.Budget <= 0 || result.State.Reputation <= 0 {
			printFiredBanner(result.Outcome, result.State, result.Round)
		} else {
			fmt.Println("\n=== Scenario Complete ===")
			fmt.Printf("Final Budget: %d\n", result.State.Budget)
			fmt.Printf("Final Reputation: %d\n", result.State.Reputation)
			fmt.Printf("Final Risk: %d\n", result.State.Risk)
		}
		printHistory(result.State.History)
		return nil
	}
}

func printState(state domain.PlayerState, round int) {
	fmt.Println("\n--- Current State ---")
	fmt.Printf("Budget: %d\n", state.Budget)
	fmt.Printf("Reputation: %d\n", state.Reputation)
	fmt.Printf("Risk: %d\n", state.Risk)
	fmt.Printf("Round: %d\n", round)
	fmt.Println("---------------------")
}

func printFiredBanner(reason string, state domain.PlayerState, round int) {
	line := strings.Repeat("=", 70)
	block := strings.Repeat("█", 70)
	fmt.Println("\n" + line)
	fmt.Println(block)
	fmt.Println("║" + strings.Repeat(" ", 68) + "║")
	fmt.Println("║" + center("YOU HAVE BEEN FIRED AS CISO", 68) + "║")
	fmt.Println("║" + strings.Repeat(" ", 68) + "║")
	fmt.Println(block)
	fmt.Println(line)
	fmt.Printf("\nReason:\n%s\n", reason)
	fmt.Println("\nFinal State:")
	fmt.Printf("  Budget: %d\n", state.Budget)
	fmt.Printf("  Reputation: %d\n", state.Reputation)
	fmt.Printf("  Risk: %d\n", state.Risk)
	fmt.Printf("  Rounds Survived: %d\n", round)
	fmt.Println("\n" + line)
}

func printHistory(history []domain.HistoryEntry) {
	fmt.Println("\nGame History:")
	for _, h := range history {
		fmt.Printf("- Stage: %s | Option: %s -> %s\n", h.Stage, h.Label, h.Outcome)
	}
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
