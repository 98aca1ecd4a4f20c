// Package jewels provides the jewel-matching puzzle game.
package jewels

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/looplab/fsm"

	"github.com/vovakirdan/tui-jewels/internal/config"
	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels/core"
	"github.com/vovakirdan/tui-jewels/internal/registry"
	"github.com/vovakirdan/tui-jewels/internal/tween"
)

// GameID is the registry and storage key of the game.
const GameID = "jewels"

var (
	// configPath stores the custom config path set via CLI
	configPath string

	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset

	// autoContinue resumes a loaded save without showing the title menu
	autoContinue bool

	logger = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetAutoContinue makes LoadState resume the save immediately.
func SetAutoContinue(on bool) {
	autoContinue = on
}

// SetLogger sets the logger used by the game.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

var (
	_ registry.Persistent     = (*Game)(nil)
	_ registry.SoundAware     = (*Game)(nil)
	_ registry.HighScoreAware = (*Game)(nil)
	_ registry.Resizable      = (*Game)(nil)
)

// Game implements the jewels puzzle on top of the board engine.
type Game struct {
	runtime    platformcore.RuntimeConfig
	cfg        config.JewelsConfig
	settings   core.Settings
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	sound      platformcore.SoundPlayer

	board *core.Board
	flow  *fsm.FSM
	next  string // event fired once the current step finishes

	// Screen-level animations (labels, cover fades, icons).
	fx      tween.Group
	cover   float64 // 0 shows the board, 1 hides it
	banner  [2]banner
	leaving bool
	clock   time.Duration // time spent on the current screen
	resumed bool          // clear_bonus has scheduled the return to play
	menu    []menuItem
	menuSel int
	titleY  float64
	warning int

	sinceClick time.Duration // since the last accepted grab
	idle       time.Duration // since the last move, for the hint
	cursor     core.Coord
	armed      bool

	// Bonus selection
	icons     []core.Token
	iconIndex int
	iconTimer time.Duration
	iconsOn   bool
	picked    bool

	resumable *core.Snapshot
	highs     []int
	rank      int

	screenW, screenH int
}

// banner is a screen-level word that drops onto the board.
type banner struct {
	Text string
	Y    float64 // board pixels, top of the text row
}

type menuItem struct {
	Label  string
	resume bool
}

// New creates a new jewels game.
func New() *Game {
	return &Game{sound: platformcore.NopSound{}}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Jewels"
}

// SetSound sets the audio player. nil silences the game.
func (g *Game) SetSound(p platformcore.SoundPlayer) {
	if p == nil {
		p = platformcore.NopSound{}
	}
	g.sound = p
}

// SetHighScores hands the game the current high-score table.
func (g *Game) SetHighScores(table []int, rank int) {
	g.highs = append(g.highs[:0], table...)
	g.rank = rank
}

// Reset loads the configuration and shows the title screen.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = platformcore.DefaultTickRate
	}
	g.runtime = runtime
	g.rng = rand.New(rand.NewPCG(uint64(runtime.Seed), 0))

	cfg, err := config.LoadJewels(configPath)
	if err != nil {
		logger.Warn("config rejected, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultJewelsConfig()
	}
	if difficultyPreset != "" {
		config.ApplyJewelsPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	settings, err := SettingsFromConfig(cfg, g.difficulty)
	if err != nil {
		logger.Warn("config cannot build a board, using defaults", "err", err)
		settings = core.DefaultSettings()
	}
	g.settings = settings

	g.newGame()
	g.flow = newFlow(g)
	g.enterTitle()
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// newGame replaces the board with a fresh one.
func (g *Game) newGame() {
	board, err := core.NewBoard(g.settings, g.rng, g.sound)
	if err != nil {
		logger.Error("default settings rejected", "err", err)
		board, _ = core.NewBoard(core.DefaultSettings(), g.rng, g.sound)
	}
	g.board = board
	g.cursor = core.C(0, 0)
	g.armed = false
	g.rank = 0
}

// resumeGame rebuilds the board from the offered save. It falls back to a
// fresh board when the save does not fit the current settings.
func (g *Game) resumeGame() {
	snap := g.resumable
	g.resumable = nil
	if snap == nil {
		g.newGame()
		return
	}
	board, err := core.RestoreBoard(g.settings, *snap, g.rng, g.sound)
	if err != nil {
		logger.Warn("saved game rejected, starting fresh", "err", err)
		g.newGame()
		return
	}
	g.board = board
	g.cursor = core.C(0, 0)
	g.armed = false
	logger.Info("resumed saved game", "level", snap.Level, "score", snap.Score)
}

// SettingsFromConfig converts the YAML configuration into board settings.
// Difficulty lowers the starting bonus.
func SettingsFromConfig(cfg config.JewelsConfig, dm *config.DifficultyManager) (core.Settings, error) {
	s := core.DefaultSettings()
	s.Geometry = core.Geometry{
		Cols:    cfg.Grid.Columns,
		Rows:    cfg.Grid.Rows,
		CellW:   cfg.Grid.CellWidth,
		CellH:   cfg.Grid.CellHeight,
		OriginX: cfg.Grid.OriginX,
		OriginY: cfg.Grid.OriginY,
	}
	s.MinMatch = cfg.Scoring.MinMatch

	s.Colors = s.Colors[:0]
	for _, name := range cfg.Jewels.Colors {
		c, err := core.ParseColor(name)
		if err != nil {
			return core.Settings{}, err
		}
		s.Colors = append(s.Colors, c)
	}
	s.Ranks = s.Ranks[:0]
	for _, r := range cfg.Jewels.Ranks {
		s.Ranks = append(s.Ranks, core.Rank(r))
	}
	s.InitialCombos = cfg.Jewels.InitialCombos
	s.MaxCombos = cfg.Jewels.MaxCombos
	s.ColorScheme = cfg.Jewels.ColorScheme

	s.MaxBonus = cfg.Bonus.Max
	s.StartBonus = cfg.Bonus.StartFraction
	if dm != nil {
		s.StartBonus = dm.StartBonus(cfg.Bonus.StartFraction)
	}
	s.BonusDrain = cfg.Bonus.DrainPerMS
	s.DrainStep = cfg.Bonus.DrainStep

	s.TargetBase = cfg.Scoring.TargetBase
	s.TargetLevels = cfg.Scoring.TargetLevels

	s.FallSpeed = cfg.Timing.FallMSPerPx
	s.SwapSpeed = cfg.Timing.SwapMSPerPx
	s.ReseatSpeed = cfg.Timing.ReseatMSPerPx
	if e, ok := tween.Lookup(cfg.Timing.ReseatEasing); ok {
		s.ReseatEasing = e
	}
	s.SoundStagger = config.Millis(cfg.Timing.SoundStaggerMS)
	s.LabelDuration = config.Millis(cfg.Timing.LabelMS)
	s.LabelRise = cfg.Timing.LabelRise
	s.ClearInterval = config.Millis(cfg.Timing.ClearIntervalMS)

	if err := s.Validate(); err != nil {
		return core.Settings{}, err
	}
	return s, nil
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	dt := time.Second / time.Duration(g.runtime.TickRate)
	g.clock += dt
	g.fx.Update(dt)

	switch g.flow.Current() {
	case stateTitle:
		g.stepTitle(in)
	case statePlaying:
		g.stepPlaying(in, dt)
	case statePaused:
		g.stepPaused(in)
	case stateLevelUp, stateNoMoves:
		g.stepInterlude(dt)
	case stateBonus:
		g.stepBonus(in, dt)
	case stateClearBonus:
		g.stepClearBonus(dt)
	case stateGameOver:
		g.stepGameOver(in)
	}

	if g.next != "" {
		event := g.next
		g.next = ""
		g.fire(event)
	}
	return platformcore.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{}
	if g.board != nil {
		st.Score = g.board.Session().Score
	}
	if g.flow != nil {
		st.GameOver = g.flow.Is(stateGameOver)
		st.Paused = g.flow.Is(statePaused)
	}
	return st
}

// Screen returns the name of the current screen.
func (g *Game) Screen() string {
	return g.flow.Current()
}

// Board exposes the board for rendering and tests.
func (g *Game) Board() *core.Board {
	return g.board
}

// SaveState encodes the game in progress.
func (g *Game) SaveState() ([]byte, bool) {
	if g.board == nil || g.flow == nil {
		return nil, false
	}
	switch g.flow.Current() {
	case stateTitle, stateGameOver:
		return nil, false
	}
	data, err := core.EncodeSnapshot(g.board.Snapshot())
	if err != nil {
		logger.Error("cannot encode save", "err", err)
		return nil, false
	}
	return data, true
}

// LoadState offers a saved game on the title screen, or resumes it at once
// when auto-continue is set.
func (g *Game) LoadState(data []byte) error {
	snap, err := core.DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("jewels: load save: %w", err)
	}
	g.resumable = &snap
	if g.flow == nil || !g.flow.Is(stateTitle) {
		return nil
	}
	if autoContinue {
		g.resumeGame()
		g.fire(evStart)
		return nil
	}
	g.buildMenu()
	return nil
}
