// Package audio plays the game's synthesized sound cues through the
// system speaker using gopxl/beep.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-jewels/internal/core"
)

// Player implements core.SoundPlayer. When no audio device is available
// it stays silent and every call is a no-op.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	cache       map[core.Sound]floatBuffer
	loop        *beep.Ctrl
	loopCue     core.Sound
	volume      float64
	muted       bool
	initialized bool
	logger      *log.Logger
}

var _ core.SoundPlayer = (*Player)(nil)

// NewPlayer creates a player at the given volume (0..1).
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		cache:  make(map[core.Sound]floatBuffer),
		volume: core.ClampF(volume, 0, 1),
		logger: logger,
	}
}

// Init opens the speaker. A failure is logged and leaves the player
// silent; it is returned for callers that want to report it.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio unavailable, running silent", "err", err)
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every sound and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.loop = nil
	p.loopCue = ""
	speaker.Close()
	p.initialized = false
}

// Play starts a one-shot cue. Unknown cues are ignored.
func (p *Player) Play(s core.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	buf := p.buffer(s)
	if buf == nil {
		return
	}
	p.add(newVolume(newBufferStreamer(buf), p.volume))
}

// Loop repeats a cue until StopLoop or another Loop call. Looping the
// cue that is already playing keeps it going without a restart.
func (p *Player) Loop(s core.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loop != nil && p.loopCue == s {
		return
	}
	p.stopLoopLocked()
	if !p.initialized {
		return
	}
	buf := p.buffer(s)
	if buf == nil {
		return
	}

	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, newBufferStreamer(buf)), Paused: p.muted}
	p.loop = ctrl
	p.loopCue = s
	p.add(newVolume(ctrl, p.volume))
}

// StopLoop silences the looping cue, if any.
func (p *Player) StopLoop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLoopLocked()
}

func (p *Player) stopLoopLocked() {
	if p.loop == nil {
		return
	}
	speaker.Lock()
	// A nil streamer ends the Ctrl, so the mixer drops it.
	p.loop.Streamer = nil
	speaker.Unlock()
	p.loop = nil
	p.loopCue = ""
}

// ToggleMute flips the mute state and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.loop != nil {
		speaker.Lock()
		p.loop.Paused = p.muted
		speaker.Unlock()
	}
	return p.muted
}

// Muted reports whether the player is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Volume returns the volume (0..1) applied to new cues.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume changes the volume for cues started from now on. A running
// loop keeps its volume until it is restarted.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = core.ClampF(v, 0, 1)
}

// Enabled reports whether the speaker opened.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// buffer returns the cached samples for a cue, generating them once.
func (p *Player) buffer(s core.Sound) floatBuffer {
	if buf, ok := p.cache[s]; ok {
		return buf
	}
	buf := generate(s)
	p.cache[s] = buf
	return buf
}

func (p *Player) add(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// newVolume wraps s in a volume effect. math.Log2(0) is -Inf, so a zero
// volume is made silent instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
