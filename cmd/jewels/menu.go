package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jewels/internal/platform/tui"
	"github.com/vovakirdan/tui-jewels/internal/registry"
)

// runMenu is the launcher loop: after a game or the scoreboard the player
// returns to the menu.
func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	title := defaultGame
	if game, err := registry.Create(defaultGame); err == nil {
		title = game.Title()
	}

	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(store, defaultGame, title, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = result.Config

		switch result.Choice {
		case tui.MenuChoicePlay:
			// Each round gets a fresh seed unless one was pinned.
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			if err := playGame(defaultGame, cfg, store); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
				return
			}

		case tui.MenuChoiceScores:
			if store == nil {
				continue
			}
			goBack, err := tui.RunScoreboard(store, defaultGame, title, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !goBack {
				return
			}

		default:
			return
		}
	}
}
