package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg JewelsConfig
	if err := yaml.Unmarshal(GetDefaultYAML("jewels"), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultJewelsConfig()) {
		t.Errorf("embedded defaults differ from DefaultJewelsConfig:\n%+v\n%+v", cfg, DefaultJewelsConfig())
	}
	if GetDefaultYAML("chess") != nil {
		t.Error("unknown game should have no defaults")
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultJewelsConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*JewelsConfig)
	}{
		{"min match", func(c *JewelsConfig) { c.Scoring.MinMatch = 2 }},
		{"small grid", func(c *JewelsConfig) { c.Grid.Rows = 2 }},
		{"cell size", func(c *JewelsConfig) { c.Grid.CellWidth = 0 }},
		{"no colors", func(c *JewelsConfig) { c.Jewels.Colors = nil }},
		{"combo cap", func(c *JewelsConfig) { c.Jewels.MaxCombos = 1 }},
		{"bonus max", func(c *JewelsConfig) { c.Bonus.Max = -1 }},
		{"start fraction", func(c *JewelsConfig) { c.Bonus.StartFraction = 0 }},
		{"drain", func(c *JewelsConfig) { c.Bonus.DrainPerMS = -0.1 }},
		{"speed", func(c *JewelsConfig) { c.Timing.SwapMSPerPx = -1 }},
		{"timing", func(c *JewelsConfig) { c.Timing.IconCycleMS = -1 }},
		{"targets", func(c *JewelsConfig) { c.Scoring.TargetBase = 0 }},
		{"rank", func(c *JewelsConfig) { c.Jewels.Ranks = []int{0} }},
		{"easing", func(c *JewelsConfig) { c.Timing.ReseatEasing = "wobble" }},
		{"progression", func(c *JewelsConfig) { c.Difficulty.Progression.Type = "time" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultJewelsConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadJewelsCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jewels.yaml")
	data := []byte("grid:\n  columns: 10\nbonus:\n  max: 2000\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadJewels(path)
	if err != nil {
		t.Fatalf("LoadJewels: %v", err)
	}
	if cfg.Grid.Columns != 10 {
		t.Errorf("Columns = %d, want 10", cfg.Grid.Columns)
	}
	if cfg.Grid.Rows != 8 {
		t.Errorf("Rows = %d, want default 8", cfg.Grid.Rows)
	}
	if cfg.Bonus.Max != 2000 {
		t.Errorf("Bonus.Max = %v, want 2000", cfg.Bonus.Max)
	}
}

func TestLoadJewelsCustomPathErrors(t *testing.T) {
	if _, err := LoadJewels(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("grid: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJewels(bad); err == nil {
		t.Error("expected error for malformed file")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("scoring:\n  min_match: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJewels(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestApplyJewelsPreset(t *testing.T) {
	cfg := DefaultJewelsConfig()
	ApplyJewelsPreset(&cfg, DifficultyEasy)
	if cfg.Jewels.InitialCombos != 5 || cfg.Bonus.StartFraction != 0.6 {
		t.Errorf("easy preset: combos %d, start %.2f", cfg.Jewels.InitialCombos, cfg.Bonus.StartFraction)
	}

	cfg = DefaultJewelsConfig()
	ApplyJewelsPreset(&cfg, DifficultyHard)
	if cfg.Jewels.InitialCombos != 7 || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: combos %d, level %.2f", cfg.Jewels.InitialCombos, cfg.Difficulty.InitialLevel)
	}

	if cfg.Difficulty.Scaling.DrainMultiplier != presetDrainMultiplier {
		t.Errorf("hard preset: drain multiplier %.2f, want %.2f", cfg.Difficulty.Scaling.DrainMultiplier, presetDrainMultiplier)
	}

	cfg = DefaultJewelsConfig()
	cfg.Difficulty.Scaling.DrainMultiplier = 0.25
	ApplyJewelsPreset(&cfg, DifficultyNormal)
	if cfg.Difficulty.Scaling.DrainMultiplier != 0.25 {
		t.Errorf("preset overrode a configured drain multiplier: %.2f", cfg.Difficulty.Scaling.DrainMultiplier)
	}

	cfg = DefaultJewelsConfig()
	ApplyJewelsPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestParsePreset(t *testing.T) {
	for in, want := range map[string]DifficultyPreset{
		"":     DifficultyNormal,
		"easy": DifficultyEasy,
		"hard": DifficultyHard,
	} {
		got, err := ParsePreset(in)
		if err != nil || got != want {
			t.Errorf("ParsePreset(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultJewelsConfig().Difficulty
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(0, 1); got != 0 {
		t.Errorf("Level at start = %v, want 0", got)
	}
	if got := dm.Level(0, 11); got != 0.5 {
		t.Errorf("Level at game level 11 = %v, want 0.5", got)
	}
	if got := dm.Level(0, 99); got != 1 {
		t.Errorf("Level past max = %v, want 1", got)
	}

	scaled := cfg
	scaled.Scaling.DrainMultiplier = 1
	if got := NewDifficultyManager(scaled).Drain(0.01, 0, 21); got != 0.02 {
		t.Errorf("Drain at max = %v, want 0.02", got)
	}

	half := cfg
	half.InitialLevel = 0.5
	if got := NewDifficultyManager(half).StartBonus(0.5); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("StartBonus = %v, want 0.4", got)
	}

	half.Enabled = false
	dm = NewDifficultyManager(half)
	if dm.IsEnabled() {
		t.Error("manager should be disabled")
	}
	if got := dm.Level(1e6, 50); got != 0.5 {
		t.Errorf("disabled Level = %v, want initial 0.5", got)
	}
}

func TestDefaultDrainIgnoresLevel(t *testing.T) {
	// The embedded YAML is checked against these defaults above.
	dm := NewDifficultyManager(DefaultJewelsConfig().Difficulty)
	for _, level := range []int{1, 2, 5, 10, 21} {
		if got := dm.Drain(1, 0, level); got != 1 {
			t.Errorf("default drain factor at level %d = %v, want 1", level, got)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultJewelsConfig())
	if err != nil {
		t.Fatal(err)
	}
	var cfg JewelsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, DefaultJewelsConfig()) {
		t.Error("marshalled config does not round-trip")
	}
}
