package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/registry"
	"github.com/vovakirdan/tui-jewels/internal/storage"
)

const volumeStep = 0.1

// Audio is the sound output behind the mute and volume keys.
type Audio interface {
	core.SoundPlayer
	ToggleMute() bool
	Volume() float64
	SetVolume(v float64)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	audio      Audio
	logger     *log.Logger
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether the finished game has been recorded
}

// Option configures a Model.
type Option func(*Model)

// WithAudio routes the game's sound cues to a and enables the mute and
// volume keys.
func WithAudio(a Audio) Option {
	return func(m *Model) { m.audio = a }
}

// WithLogger sets the logger for storage and audio events.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewModel creates a Bubble Tea model for the given game, resets it and
// hands it the stored high scores and saved game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.New(io.Discard),
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	if sa, ok := game.(registry.SoundAware); ok && m.audio != nil {
		sa.SetSound(m.audio)
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.loadHighScores()
	m.loadSave()
	return m
}

func (m *Model) loadHighScores() {
	hs, ok := m.game.(registry.HighScoreAware)
	if !ok || m.store == nil {
		return
	}
	table, err := m.store.HighScores(m.game.ID())
	if err != nil {
		m.logger.Warn("cannot load high scores", "err", err)
		return
	}
	hs.SetHighScores(table, 0)
}

func (m *Model) loadSave() {
	p, ok := m.game.(registry.Persistent)
	if !ok || m.store == nil {
		return
	}
	data, found, err := m.store.LoadGame(m.game.ID())
	if err != nil {
		m.logger.Warn("cannot read saved game", "err", err)
		return
	}
	if !found {
		return
	}
	if err := p.LoadState(data); err != nil {
		m.logger.Warn("discarding unreadable saved game", "err", err)
		if err := m.store.DeleteGame(m.game.ID()); err != nil {
			m.logger.Warn("cannot delete saved game", "err", err)
		}
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.persist()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionMute:
		if m.audio != nil {
			m.logger.Debug("sound", "muted", m.audio.ToggleMute())
		}
	case core.ActionVolumeUp, core.ActionVolumeDown:
		if m.audio != nil {
			step := volumeStep
			if action == core.ActionVolumeDown {
				step = -step
			}
			m.audio.SetVolume(m.audio.Volume() + step)
			m.logger.Debug("sound", "volume", fmt.Sprintf("%.1f", m.audio.Volume()))
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games that cannot adapt restart at the new size.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Record the finished game once
	if m.gameState.GameOver && !m.scoreSaved {
		m.recordGameOver()
		m.scoreSaved = true
	}
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// recordGameOver stores the final score, hands the game its rank and
// drops the save of the finished game.
func (m *Model) recordGameOver() {
	if m.store == nil {
		return
	}
	id := m.game.ID()

	if _, ok := m.game.(registry.Persistent); ok {
		if err := m.store.DeleteGame(id); err != nil {
			m.logger.Warn("cannot delete saved game", "err", err)
		}
	}

	score := m.gameState.Score
	if score <= 0 {
		return
	}
	table, rank, err := m.store.RecordHighScore(id, score)
	if err != nil {
		m.logger.Error("cannot record score", "score", score, "err", err)
		return
	}
	if hs, ok := m.game.(registry.HighScoreAware); ok {
		hs.SetHighScores(table, rank)
	}
	m.logger.Info("score recorded", "score", score, "rank", rank)
}

// persist saves a game in progress so it can be continued later.
func (m *Model) persist() {
	p, ok := m.game.(registry.Persistent)
	if !ok || m.store == nil {
		return
	}
	data, ok := p.SaveState()
	if !ok {
		return
	}
	if err := m.store.SaveGame(m.game.ID(), data); err != nil {
		m.logger.Error("cannot save game", "err", err)
		return
	}
	m.logger.Info("game saved", "bytes", len(data))
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".jewels", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot dir", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot write screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Press, drag and release reach the game as pointer events
	)

	_, err := p.Run()
	return err
}
