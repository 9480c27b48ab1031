package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hex-tactics/internal/render"
	"github.com/vovakirdan/hex-tactics/internal/scenario"
	"github.com/vovakirdan/hex-tactics/internal/unit"
)

var showCmd = &cobra.Command{
	Use:   "show <scenario>",
	Short: "Draw a scenario map and roster",
	Long: `Draws the scenario map in odd-r layout with the starting units and lists
the roster and blessings.

Examples:
  tactics show river-crossing
  tactics show my-map --dir ./scenarios`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Println(render.TitleStyle.Render(scenario.Title(s)))
	fmt.Println()
	fmt.Println(render.Styled(render.Board(s.Grid, s.Units.Values(), nil)))
	fmt.Println()
	fmt.Println(render.Legend())
	fmt.Println()
	printRoster(s.Units.Values())

	if len(s.Blessings) > 0 {
		fmt.Println()
		fmt.Println(render.HeaderStyle.Render("Blessings"))
		for _, b := range s.Blessings {
			fmt.Printf("  %-16s %-7s %-16s %s\n", b.ID, b.Faction, b.Trigger, b.Usage)
		}
	}
	return nil
}

func printRoster(units []unit.Unit) {
	fmt.Printf("  %-10s %-7s %-7s %-7s %4s %4s %4s %4s  %s\n",
		"ID", "Faction", "Cell", "Move", "HP", "Atk", "Mov", "AV", "Traits")
	for _, u := range units {
		fmt.Printf("  %-10s %-7s %-7s %-7s %4d %4d %4d %4d  %s\n",
			u.ID, u.Faction, u.Pos.ToOffset(), u.MoveType,
			u.HP, u.Base.Attack, u.Base.Movement, u.ActionValue,
			strings.Join(append(append([]string(nil), u.Characteristics...), u.BuffIDs()...), ","))
	}
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}
