package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hex-tactics/internal/render"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "List archived battles",
	Long: `Lists the most recent battles recorded with 'tactics simulate --record',
optionally only those of one scenario.

Examples:
  tactics history
  tactics history river-crossing --limit 5
  tactics history show <battle-id>
  tactics history stats river-crossing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <battle-id>",
	Short: "Print the event log of an archived battle",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats <scenario>",
	Short: "Show win/loss totals for a scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryStats,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear <scenario>",
	Short: "Delete every archived battle of a scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of battles to list")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	scenarioID := ""
	if len(args) == 1 {
		scenarioID = args[0]
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	battles, err := store.RecentBattles(scenarioID, flagLimit)
	if err != nil {
		return err
	}

	if len(battles) == 0 {
		fmt.Println("No battles recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tactics simulate <scenario> --record' to archive one.")
		return nil
	}

	fmt.Println(render.TitleStyle.Render("Recorded battles"))
	fmt.Println()
	fmt.Printf("  %-36s  %-16s  %-9s  %5s  %6s  %s\n", "Battle", "Scenario", "Outcome", "Turns", "Events", "Date")
	fmt.Printf("  %-36s  %-16s  %-9s  %5s  %6s  %s\n", "------", "--------", "-------", "-----", "------", "----")
	for _, b := range battles {
		fmt.Printf("  %-36s  %-16s  %-9s  %5d  %6d  %s\n",
			b.BattleID, b.ScenarioID, b.Outcome, b.Turns, b.EventCount,
			b.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.BattleByID(args[0])
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no recorded battle %q", args[0])
	}

	events, err := store.BattleEvents(rec.BattleID)
	if err != nil {
		return err
	}

	fmt.Println(render.TitleStyle.Render(fmt.Sprintf("%s - %s", rec.ScenarioID, rec.Outcome)))
	for _, e := range events {
		unitID := e.UnitID
		if unitID == "" {
			unitID = "-"
		}
		fmt.Printf("  %4d  %-10s  %-10s  %s\n", e.Seq, e.Kind, unitID, e.Description)
	}
	fmt.Println()
	fmt.Printf("%d turns, %d steps, %d events\n", rec.Turns, rec.Steps, len(events))
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.GetScenarioStats(args[0])
	if err != nil {
		return err
	}
	if stats.Battles == 0 {
		fmt.Printf("No battles recorded for %s.\n", args[0])
		return nil
	}

	fmt.Println(render.TitleStyle.Render(args[0]))
	fmt.Printf("  Battles:   %d\n", stats.Battles)
	fmt.Printf("  Victories: %d\n", stats.Victories)
	fmt.Printf("  Defeats:   %d\n", stats.Defeats)
	fmt.Printf("  Avg turns: %.1f\n", stats.AvgTurns)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  Last:      %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ClearBattles(args[0]); err != nil {
		return err
	}
	fmt.Printf("Cleared recorded battles for %s.\n", args[0])
	return nil
}
