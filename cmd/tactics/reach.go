package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hex-tactics/internal/battle"
	"github.com/vovakirdan/hex-tactics/internal/render"
)

var reachCmd = &cobra.Command{
	Use:   "reach <scenario> <unit>",
	Short: "Show the cells a unit can move to",
	Long: `Computes the cells a unit can end its move on from the scenario's starting
position, taking terrain, zones of control and stacking into account.

Examples:
  tactics reach river-crossing knight
  tactics reach night-raid bat`,
	Args: cobra.ExactArgs(2),
	RunE: runReach,
}

func runReach(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	rules, err := loadRules()
	if err != nil {
		return err
	}

	b := battle.New(s, rules, nil, logger)
	cells, err := b.Reachable(args[1])
	if err != nil {
		return err
	}

	snap := b.Snapshot()
	fmt.Println(render.Styled(render.Board(s.Grid, snap.Units, cells)))
	fmt.Println()

	sorted := cells.Sorted()
	names := make([]string, len(sorted))
	for i, c := range sorted {
		names[i] = c.ToOffset().String()
	}
	fmt.Printf("%s can reach %d cells: %s\n", args[1], len(sorted), strings.Join(names, " "))
	return nil
}
