package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/registry"
	"github.com/vovakirdan/tui-jewels/internal/storage"
)

// fakeGame records what the platform hands it.
type fakeGame struct {
	resets  int
	frames  []core.InputFrame
	state   core.GameState
	save    []byte
	loaded  []byte
	loadErr error
	highs   []int
	rank    int
	w, h    int
	sound   core.SoundPlayer
}

var (
	_ registry.Persistent     = (*fakeGame)(nil)
	_ registry.HighScoreAware = (*fakeGame)(nil)
	_ registry.Resizable      = (*fakeGame)(nil)
	_ registry.SoundAware     = (*fakeGame)(nil)
)

func (g *fakeGame) ID() string                   { return "fake" }
func (g *fakeGame) Title() string                { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig)     { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)      { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState        { return g.state }
func (g *fakeGame) SetSound(p core.SoundPlayer)  { g.sound = p }
func (g *fakeGame) SetHighScores(t []int, r int) { g.highs, g.rank = t, r }
func (g *fakeGame) Resize(w, h int)              { g.w, g.h = w, h }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *fakeGame) SaveState() ([]byte, bool) { return g.save, g.save != nil }

func (g *fakeGame) LoadState(data []byte) error {
	g.loaded = data
	return g.loadErr
}

func (g *fakeGame) lastFrame() core.InputFrame {
	return g.frames[len(g.frames)-1]
}

type fakeAudio struct {
	core.NopSound
	muted  bool
	volume float64
}

func (a *fakeAudio) ToggleMute() bool    { a.muted = !a.muted; return a.muted }
func (a *fakeAudio) Volume() float64     { return a.volume }
func (a *fakeAudio) SetVolume(v float64) { a.volume = v }

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestNewModelLoadsStoredState(t *testing.T) {
	store := openStore(t)
	_, _, err := store.RecordHighScore("fake", 300)
	require.NoError(t, err)
	require.NoError(t, store.SaveGame("fake", []byte("saved")))

	g := &fakeGame{}
	audio := &fakeAudio{}
	NewModel(g, store, testConfig, WithAudio(audio))

	assert.Equal(t, 1, g.resets)
	assert.Equal(t, []int{300}, g.highs)
	assert.Zero(t, g.rank)
	assert.Equal(t, []byte("saved"), g.loaded)
	assert.Same(t, audio, g.sound)
}

func TestNewModelDropsUnreadableSave(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveGame("fake", []byte("garbage")))

	g := &fakeGame{loadErr: errors.New("bad save")}
	NewModel(g, store, testConfig)

	ok, err := store.HasSave("fake")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestModelForwardsInput(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig)

	m = send(t, m, runeKey('p'))
	m = send(t, m, tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = send(t, m, TickMsg{})

	frame := g.lastFrame()
	assert.True(t, frame.Has(core.ActionPause))
	assert.Equal(t, []core.PointerEvent{{Kind: core.PointerDown, X: 4, Y: 7}}, frame.Pointer)

	send(t, m, TickMsg{})
	frame = g.lastFrame()
	assert.False(t, frame.Has(core.ActionPause), "input is cleared after each tick")
	assert.Empty(t, frame.Pointer)
}

func TestModelAudioKeys(t *testing.T) {
	g := &fakeGame{}
	audio := &fakeAudio{volume: 0.5}
	m := NewModel(g, nil, testConfig, WithAudio(audio))

	m = send(t, m, runeKey('m'))
	assert.True(t, audio.muted)
	m = send(t, m, runeKey('+'))
	assert.InDelta(t, 0.6, audio.volume, 1e-9)
	m = send(t, m, runeKey('-'))
	m = send(t, m, runeKey('-'))
	assert.InDelta(t, 0.4, audio.volume, 1e-9)

	send(t, m, TickMsg{})
	assert.False(t, g.lastFrame().Has(core.ActionMute), "audio keys are not game input")
}

func TestModelRecordsGameOverOnce(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveGame("fake", []byte("in progress")))

	g := &fakeGame{}
	m := NewModel(g, store, testConfig)

	g.state = core.GameState{Score: 500, GameOver: true}
	m = send(t, m, TickMsg{})
	m = send(t, m, TickMsg{})

	assert.Equal(t, []int{500}, g.highs)
	assert.Equal(t, 1, g.rank)

	history, err := store.RecentScores("fake", 100)
	require.NoError(t, err)
	assert.Len(t, history, 1, "game over is recorded once")

	ok, err := store.HasSave("fake")
	require.NoError(t, err)
	assert.False(t, ok, "finished game drops its save")

	// A restarted game can be recorded again.
	g.state = core.GameState{}
	m = send(t, m, TickMsg{})
	g.state = core.GameState{Score: 200, GameOver: true}
	send(t, m, TickMsg{})
	assert.Equal(t, []int{500, 200}, g.highs)
	assert.Equal(t, 2, g.rank)
}

func TestModelSkipsZeroScore(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{state: core.GameState{GameOver: true}}
	m := NewModel(g, store, testConfig)
	send(t, m, TickMsg{})

	history, err := store.RecentScores("fake", 100)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestModelSavesOnQuit(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{save: []byte("snapshot")}
	m := NewModel(g, store, testConfig)

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)

	data, ok, err := store.LoadGame("fake")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("snapshot"), data)
}

func TestModelQuitWithoutSaveKeepsOldSave(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveGame("fake", []byte("older")))
	g := &fakeGame{}
	m := NewModel(g, store, testConfig)

	m.Update(runeKey('q'))

	data, ok, err := store.LoadGame("fake")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("older"), data)
}

func TestModelResize(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig)

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 1, g.resets, "resizable games keep their state")
	assert.Equal(t, 100, g.w)
	assert.Equal(t, 40, g.h)
	assert.Equal(t, 100, m.screen.Width())
}

func TestModelView(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig)
	assert.Contains(t, m.View(), "fake")

	m = send(t, m, runeKey('q'))
	assert.Empty(t, m.View())
}
