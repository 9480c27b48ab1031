// tactics runs hex-grid battle scenarios in the terminal.
//
// Usage:
//
//	tactics scenarios                   - List available scenarios
//	tactics show <scenario>             - Draw a scenario map and roster
//	tactics reach <scenario> <unit>     - Show where a unit can move
//	tactics simulate <scenario>         - Run a battle to its outcome
//	tactics history [scenario]          - List archived battles
//
// Global flags:
//
//	--config <path>     - Rules file (default: search ~/.tactics/configs, ./configs)
//	--dir <path>        - Extra scenario directory
//	--db <path>         - Battle archive (default: ~/.tactics/battles.db)
//	--log-level <lvl>   - debug, info, warn or error
//
// TACTICS_CONFIG, TACTICS_DB and TACTICS_LOG_LEVEL set the same values when
// the flags are not given.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hex-tactics/internal/config"
	"github.com/vovakirdan/hex-tactics/internal/scenario"
	"github.com/vovakirdan/hex-tactics/internal/storage"
)

const defaultDBPath = "~/.tactics/battles.db"

var (
	// Global flags
	flagConfig   string
	flagDir      string
	flagDBPath   string
	flagLogLevel string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tactics",
	Short: "Hex Tactics - turn-based battles on a hex grid",
	Long: `Hex Tactics simulates turn-based tactical battles on a hex grid:
terrain costs, zones of control, day/night phases, buffs and blessings.

Available commands:
  scenarios  - Show all available scenarios
  show       - Draw a scenario map and its roster
  reach      - Show the cells a unit can move to
  simulate   - Run a battle with automatic targeting
  history    - Browse archived battles

Examples:
  tactics scenarios
  tactics reach river-crossing knight
  tactics simulate night-raid --record
  tactics history night-raid`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a rules YAML file")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Directory with additional scenario files")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to the battle archive")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(reachCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
}

// setup applies environment overrides for flags left at their defaults and
// builds the shared logger.
func setup(cmd *cobra.Command, _ []string) error {
	e, err := config.LoadEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("config") && e.ConfigPath != "" {
		flagConfig = e.ConfigPath
	}
	if !flags.Changed("db") && e.DBPath != "" {
		flagDBPath = e.DBPath
	}
	if !flags.Changed("log-level") && e.LogLevel != "" {
		flagLogLevel = e.LogLevel
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "tactics",
	})
	return nil
}

// loadScenario finds a scenario by ID among the built-ins, then in --dir.
func loadScenario(id string) (scenario.Scenario, error) {
	builtins, err := scenario.Builtins(logger)
	if err != nil {
		return scenario.Scenario{}, err
	}
	if s, ok := builtins.Get(id); ok {
		return s, nil
	}
	if flagDir == "" {
		return scenario.Scenario{}, fmt.Errorf("unknown scenario %q (run 'tactics scenarios' to list them)", id)
	}
	return scenario.NewLoader(flagDir, logger).LoadByID(id)
}

func loadRules() (config.Rules, error) {
	rules, err := config.LoadRules(flagConfig)
	if err != nil {
		return config.Rules{}, fmt.Errorf("loading rules: %w", err)
	}
	return rules, nil
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening battle archive: %w", err)
	}
	return store, nil
}
