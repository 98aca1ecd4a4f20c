package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jewels/internal/registry"
	"github.com/vovakirdan/tui-jewels/internal/storage"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Manage saved games",
	Long: `A game in progress is saved when you quit and offered again on the
title screen. These commands inspect or discard it.`,
}

var saveStatusCmd = &cobra.Command{
	Use:   "status [game]",
	Short: "Show whether a saved game exists",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSaveStatus,
}

var saveClearCmd = &cobra.Command{
	Use:   "clear [game]",
	Short: "Delete the saved game",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSaveClear,
}

func init() {
	saveCmd.AddCommand(saveStatusCmd)
	saveCmd.AddCommand(saveClearCmd)
}

// saveTarget resolves the game argument and opens the store.
func saveTarget(args []string) (string, *storage.Store, error) {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return "", nil, fmt.Errorf("unknown game %q", gameID)
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return "", nil, fmt.Errorf("opening scores database: %w", err)
	}
	return gameID, store, nil
}

func runSaveStatus(_ *cobra.Command, args []string) error {
	gameID, store, err := saveTarget(args)
	if err != nil {
		return err
	}
	defer store.Close()

	ok, err := store.HasSave(gameID)
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("%s: saved game present\n", gameID)
	} else {
		fmt.Printf("%s: no saved game\n", gameID)
	}
	return nil
}

func runSaveClear(_ *cobra.Command, args []string) error {
	gameID, store, err := saveTarget(args)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteGame(gameID); err != nil {
		return err
	}
	logger.Info("save cleared", "game", gameID)
	fmt.Fprintf(os.Stdout, "%s: saved game deleted\n", gameID)
	return nil
}
