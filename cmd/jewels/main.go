// jewels is a jewel-matching puzzle game for the terminal.
//
// Usage:
//
//	jewels                   - Start menu (play, high scores)
//	jewels list              - List available games
//	jewels play [game]       - Play a game
//	jewels scores [game]     - Show high scores for a game
//	jewels config dump       - Print the effective configuration
//	jewels config check      - Validate the configuration
//	jewels save status       - Show whether a saved game exists
//	jewels save clear [game] - Delete a saved game
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.jewels/scores.db)
//	--log-file <path>  - Write logs to a file
//
// Environment (also read from a .env file): JEWELS_DB, JEWELS_CONFIG,
// JEWELS_LOG.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels"
)

const defaultGame = jewels.GameID

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string

	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jewels",
	Short: "Jewels - match jewels in your terminal",
	Long: `Jewels is a match-three puzzle for the terminal. Swap neighbouring
jewels to line up three or more of a kind, keep the bonus meter from
running dry and climb through the levels.

Available commands:
  list     - Show all available games
  play     - Play directly, skipping the menu
  scores   - View high scores
  config   - Inspect the configuration
  save     - Manage saved games

Examples:
  jewels
  jewels play --difficulty hard
  jewels play --continue
  jewels scores --interactive
  jewels config dump > ~/.jewels/configs/jewels.yaml`,
	Args:              cobra.NoArgs,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	Run:               runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.jewels/scores.db", "Path to scores database (env JEWELS_DB)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML (env JEWELS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (env JEWELS_LOG)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(saveCmd)
}

// envFlags binds flags to environment variables. Explicit flags win.
var envFlags = []struct {
	flag string
	env  string
	dst  *string
}{
	{"db", "JEWELS_DB", &flagDBPath},
	{"config", "JEWELS_CONFIG", &flagConfig},
	{"log-file", "JEWELS_LOG", &flagLogFile},
}

func setup(cmd *cobra.Command, _ []string) error {
	for _, ef := range envFlags {
		if v := os.Getenv(ef.env); v != "" && !cmd.Flags().Changed(ef.flag) {
			*ef.dst = v
		}
	}
	return setupLogging()
}

// setupLogging opens the log file. Without one, logs are discarded: the
// game owns the terminal while it runs.
func setupLogging() error {
	if flagLogFile == "" {
		return nil
	}
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "jewels",
		Level:           level,
	})
	jewels.SetLogger(logger)
	return nil
}
