package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jewels/internal/config"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the game configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration the game would use, after the search path
and the --difficulty preset are applied. The output is a valid config
file and can be edited and passed back with --config.`,
	Args: cobra.NoArgs,
	RunE: runConfigDump,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the configuration can build a board",
	Args:  cobra.NoArgs,
	RunE:  runConfigCheck,
}

func init() {
	configCmd.AddCommand(configDumpCmd)
	configCmd.AddCommand(configCheckCmd)
}

// effectiveConfig resolves the config the way the game does on Reset.
func effectiveConfig() (config.JewelsConfig, error) {
	cfg, err := config.LoadJewels(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyJewelsPreset(&cfg, preset)
	}
	return cfg, nil
}

func runConfigDump(_ *cobra.Command, _ []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runConfigCheck(_ *cobra.Command, _ []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	settings, err := jewels.SettingsFromConfig(cfg, config.NewDifficultyManager(cfg.Difficulty))
	if err != nil {
		return err
	}
	fmt.Printf("OK: %dx%d board, %d jewel kinds, %d to %d combos per level\n",
		settings.Geometry.Cols, settings.Geometry.Rows, len(settings.Colors)*len(settings.Ranks),
		settings.InitialCombos, settings.MaxCombos)
	return nil
}
