package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hex-tactics/internal/render"
	"github.com/vovakirdan/hex-tactics/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List all available scenarios",
	Long:  `Shows the built-in scenarios and, with --dir, the scenarios found in that directory.`,
	Args:  cobra.NoArgs,
	RunE:  runScenarios,
}

func runScenarios(cmd *cobra.Command, args []string) error {
	builtins, err := scenario.Builtins(logger)
	if err != nil {
		return err
	}

	var list []scenario.Scenario
	for _, id := range builtins.IDs() {
		s, _ := builtins.Get(id)
		list = append(list, s)
	}
	if flagDir != "" {
		extra, err := scenario.NewLoader(flagDir, logger).LoadAll()
		if err != nil {
			return err
		}
		for _, s := range extra {
			if builtins.Exists(s.ID) {
				logger.Warn("scenario shadowed by built-in", "id", s.ID, "path", s.FilePath)
				continue
			}
			list = append(list, s)
		}
	}

	if len(list) == 0 {
		fmt.Println("No scenarios available.")
		return nil
	}

	fmt.Println(render.TitleStyle.Render("Available scenarios:"))
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range list {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Map", "Units", "Title")
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "--", "---", "-----", "-----")

	for _, s := range list {
		size := fmt.Sprintf("%dx%d", s.Grid.W, s.Grid.H)
		fmt.Printf("  %-*s  %-7s  %-5d  %s\n", maxIDLen, s.ID, size, len(s.Units), scenario.Title(s))
	}

	fmt.Println()
	fmt.Println("Run 'tactics simulate <id>' to play a scenario out.")
	return nil
}
