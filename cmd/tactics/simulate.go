package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hex-tactics/internal/battle"
	"github.com/vovakirdan/hex-tactics/internal/event"
	"github.com/vovakirdan/hex-tactics/internal/render"
	"github.com/vovakirdan/hex-tactics/internal/scenario"
)

var (
	flagSteps  int
	flagRecord bool
	flagPaced  bool
	flagDelay  time.Duration
	flagQuiet  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario>",
	Short: "Run a battle to its outcome",
	Long: `Runs the scenario with every unit targeting the nearest hostile until
one side is defeated or the step limit is reached.

Pacing:
  --paced        - Wait the configured delay between steps
  --delay <d>    - Wait a custom delay between steps (e.g. 250ms)

Examples:
  tactics simulate river-crossing
  tactics simulate night-raid --paced
  tactics simulate river-crossing --record --quiet`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSteps, "steps", 2000, "Maximum number of steps before giving up")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Archive the battle in the database")
	simulateCmd.Flags().BoolVar(&flagPaced, "paced", false, "Wait the configured delay between steps")
	simulateCmd.Flags().DurationVar(&flagDelay, "delay", 0, "Custom delay between steps")
	simulateCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print the outcome")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	rules, err := loadRules()
	if err != nil {
		return err
	}

	b := battle.New(s, rules, battle.NearestHostile, logger)
	logger.Debug("battle created", "id", b.ID, "scenario", s.ID)

	width := terminalWidth()
	emit := func(log event.Log) {
		if flagQuiet {
			return
		}
		for _, e := range log {
			fmt.Println(render.Event(e, width))
		}
	}

	fmt.Println(render.TitleStyle.Render(scenario.Title(s)))
	emit(b.Start())

	delay := flagDelay
	if delay == 0 && flagPaced {
		delay = b.Manager().WaitDelay()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	steps := 0
	for ; steps < flagSteps && !b.Manager().Outcome().Decided(); steps++ {
		var log event.Log
		if delay > 0 {
			log, err = stepAfter(ctx, b, delay)
			if err != nil {
				logger.Warn("simulation interrupted", "steps", steps)
				break
			}
		} else {
			log = b.Step()
		}
		if len(log) == 0 {
			break
		}
		emit(log)
	}

	snap := b.Snapshot()
	if !flagQuiet {
		fmt.Println()
		fmt.Println(render.Styled(render.Board(s.Grid, snap.Units, nil)))
	}
	fmt.Println()
	fmt.Printf("Outcome: %s after %d turns (%d steps, %d deaths)\n",
		snap.Outcome, snap.State.Turn, steps, b.History().Count(event.Death))

	if flagRecord {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := b.Save(store); err != nil {
			return err
		}
		fmt.Printf("Recorded battle %s\n", b.ID)
	}
	return nil
}

// stepAfter runs one delayed step, cancelling it if ctx ends first.
func stepAfter(ctx context.Context, b *battle.Battle, delay time.Duration) (event.Log, error) {
	var log event.Log
	c := b.StepAfter(delay, func(l event.Log) {
		log = l
	})
	select {
	case <-c.Done():
		return log, nil
	case <-ctx.Done():
		if c.Cancel() {
			return nil, ctx.Err()
		}
		<-c.Done()
		return log, nil
	}
}
