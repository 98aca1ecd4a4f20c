package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jewels/internal/audio"
	"github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels"
	"github.com/vovakirdan/tui-jewels/internal/platform/tui"
	"github.com/vovakirdan/tui-jewels/internal/registry"
	"github.com/vovakirdan/tui-jewels/internal/storage"
)

var (
	flagDifficulty string
	flagContinue   bool
	flagMute       bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing immediately, skipping the launcher.

Controls:
  Mouse        - Drag a jewel onto a neighbour to swap
  Arrows/WASD  - Move the cursor
  Space/Enter  - Pick up the jewel under the cursor, then an arrow swaps it
  P            - Pause
  R            - Restart (after game over)
  M, +/-       - Mute, volume
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Save and quit

Difficulty options:
  easy   - Slower bonus drain, fuller starting meter
  normal - Starts at 30% difficulty, progresses to max
  hard   - Faster drain from the start
  fixed  - No progression, stays at config's initial level

Examples:
  jewels play
  jewels play --difficulty hard
  jewels play --continue
  jewels play --config ./my-jewels.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	// Shared with the launcher, so they live on the root command.
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Start with sound muted")
	rootCmd.PersistentFlags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume (0..1)")

	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Resume the saved game without showing the title")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'jewels list' to see available games.")
		os.Exit(1)
	}

	store := openStore()
	jewels.SetAutoContinue(flagContinue)
	runErr := playGame(gameID, runtimeConfig(), store)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// playGame runs one game session in the terminal until the player quits.
func playGame(gameID string, cfg core.RuntimeConfig, store *storage.Store) error {
	jewels.SetConfigPath(flagConfig)
	jewels.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	player := audio.NewPlayer(flagVolume, logger)
	if err := player.Init(); err != nil {
		logger.Warn("sound disabled", "err", err)
	}
	defer player.Close()
	if flagMute {
		player.ToggleMute()
	}

	logger.Info("starting game", "game", gameID, "difficulty", flagDifficulty, "seed", cfg.Seed)
	return tui.Run(game, store, cfg, tui.WithAudio(player), tui.WithLogger(logger))
}
