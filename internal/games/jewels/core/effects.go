package core

import (
	"time"

	"github.com/vovakirdan/tui-jewels/internal/tween"
)

// Label is a floating points readout. X and Y are its center in board
// pixels; Alpha fades from 1 to 0.
type Label struct {
	Text  string
	X, Y  float64
	Alpha float64

	done bool
}

// Labels returns the labels still on screen.
func (b *Board) Labels() []*Label {
	return b.labels
}

// addLabel floats text upward from just below (cx, cy) while fading it out.
func (b *Board) addLabel(cx, cy float64, text string) {
	rise := b.settings.LabelRise
	l := &Label{Text: text, X: cx, Y: cy + rise, Alpha: 1}
	b.labels = append(b.labels, l)

	d := b.settings.LabelDuration
	b.effects.Add(
		tween.New(tween.Options{Duration: d, Easing: tween.InQuad, OnDone: func() { l.done = true }},
			tween.To(tween.Float(&l.Alpha), 0)),
		tween.New(tween.Options{Duration: d, Round: true},
			tween.To(tween.Float(&l.Y), cy-rise)),
	)
}

func (b *Board) pruneLabels() {
	live := b.labels[:0]
	for _, l := range b.labels {
		if !l.done {
			live = append(live, l)
		}
	}
	for i := len(live); i < len(b.labels); i++ {
		b.labels[i] = nil
	}
	b.labels = live
}

const (
	spinFrames    = 60
	idleSpinSpeed = 100 // ms per frame

	spinUpTime   = 350 * time.Millisecond
	spinDownTime = 3500 * time.Millisecond
)

// spinner animates the board's sparkle. speed is milliseconds per frame.
type spinner struct {
	speed int
	index int
	timer time.Duration
}

func (s *spinner) reset() {
	s.speed = idleSpinSpeed
	s.index = 0
	s.timer = 0
}

func (s *spinner) advance(dt time.Duration) {
	frame := time.Duration(max(s.speed, 1)) * time.Millisecond
	s.timer += dt
	for s.timer >= frame {
		s.timer -= frame
		s.index = (s.index + 1) % spinFrames
	}
}

// SpinIndex returns the current sparkle frame in [0, 60).
func (b *Board) SpinIndex() int {
	return b.spin.index
}

// SpinSpeed returns the sparkle speed in milliseconds per frame.
func (b *Board) SpinSpeed() int {
	return b.spin.speed
}

func spinSpeedFor(length int) int {
	switch {
	case length <= 3:
		return 10
	case length == 4:
		return 5
	case length == 5:
		return 2
	default:
		return 1
	}
}

// spinUp speeds the sparkle up for a cleared run, then lets it wind down.
// A new pulse replaces the one in progress.
func (b *Board) spinUp(length int) {
	b.spinFx.Clear()
	b.spinFx.Add(tween.New(
		tween.Options{Duration: spinUpTime, Round: true, OnDone: b.spinDown},
		tween.To(tween.Int(&b.spin.speed), float64(spinSpeedFor(length))),
	))
}

func (b *Board) spinDown() {
	b.spinFx.Add(tween.New(
		tween.Options{Duration: spinDownTime, Round: true},
		tween.To(tween.Int(&b.spin.speed), idleSpinSpeed),
	))
}
