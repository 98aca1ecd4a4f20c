package core

import (
	"fmt"
	"slices"
	"time"

	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/tween"
)

// IntNSource is all the board needs from a random source.
// *rand.Rand from math/rand/v2 satisfies it.
type IntNSource interface {
	IntN(n int) int
}

// Phase is the resolver state of a board.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSettling
	PhaseRefilling
	PhaseChecking
	PhaseClearing
	PhaseStable
	PhaseNoMoves
)

var phaseNames = [...]string{
	PhaseIdle:      "idle",
	PhaseSettling:  "settling",
	PhaseRefilling: "refilling",
	PhaseChecking:  "checking",
	PhaseClearing:  "clearing",
	PhaseStable:    "stable",
	PhaseNoMoves:   "no_moves",
}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Board is a grid of jewels plus everything needed to resolve it: the
// session, the animation groups and the resolver state.
type Board struct {
	settings Settings
	grid     *Grid
	session  *Session
	rng      IntNSource
	sound    platformcore.SoundPlayer

	moving  tween.Group // piece motion; the resolver waits for it
	effects tween.Group // labels and delayed sounds
	spinFx  tween.Group

	phase   Phase
	recheck bool
	hint    Move
	hasHint bool

	labels []*Label
	spin   spinner
	drag   drag
	clear  *bonusClear
}

// NewBoard creates a board with a fresh session and a random layout that
// contains no runs. A nil sound player is replaced by a silent one.
func NewBoard(s Settings, rng IntNSource, sound platformcore.SoundPlayer) (*Board, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	b := newBoard(s, rng, sound)
	b.session = newSession(&b.settings, rng)
	b.Fill()
	return b, nil
}

func newBoard(s Settings, rng IntNSource, sound platformcore.SoundPlayer) *Board {
	if sound == nil {
		sound = platformcore.NopSound{}
	}
	if s.ReseatEasing == nil {
		s.ReseatEasing = tween.OutBounce
	}
	b := &Board{
		settings: s,
		rng:      rng,
		sound:    sound,
		recheck:  true,
	}
	b.grid = NewGrid(s.Geometry)
	b.grid.minMatch = s.MinMatch
	b.spin.reset()
	return b
}

// Grid returns the cell grid.
func (b *Board) Grid() *Grid { return b.grid }

// Session returns the scoring state.
func (b *Board) Session() *Session { return b.session }

// Settings returns the settings the board was built with.
func (b *Board) Settings() Settings { return b.settings }

// Phase returns the resolver state.
func (b *Board) Phase() Phase { return b.phase }

// Stable reports whether the board is at rest with a move available.
func (b *Board) Stable() bool {
	return b.phase == PhaseStable && b.moving.Empty() && !b.recheck && b.clear == nil
}

// NoMoves reports whether the board is at rest and deadlocked.
func (b *Board) NoMoves() bool {
	return b.phase == PhaseNoMoves && b.moving.Empty() && !b.recheck && b.clear == nil
}

// Animating reports whether any piece is in motion.
func (b *Board) Animating() bool { return !b.moving.Empty() }

// EffectsDone reports whether every label and pending sound has finished.
func (b *Board) EffectsDone() bool { return b.effects.Empty() }

// Hint returns a legal move when the board is stable.
func (b *Board) Hint() (Move, bool) {
	return b.hint, b.hasHint && b.phase == PhaseStable
}

// Fill puts a random jewel in every cell, then re-rolls every matched cell
// until no runs remain.
func (b *Board) Fill() {
	for _, c := range b.grid.cells {
		b.grid.Place(c.Coord, b.randomToken())
	}
	for {
		matches := b.grid.FindMatches()
		if len(matches) == 0 {
			break
		}
		for _, m := range matches {
			for _, c := range m {
				b.grid.Place(c, b.randomToken())
			}
		}
	}
	b.resetTransient()
}

// Relayout replaces the board with a fresh random layout drawn from the
// current combo set. Used after a level-up and when no moves remain.
func (b *Board) Relayout() {
	b.moving.Clear()
	b.clear = nil
	b.Fill()
}

func (b *Board) resetTransient() {
	b.phase = PhaseIdle
	b.recheck = true
	b.hasHint = false
	b.drag = drag{}
	if b.session != nil {
		b.session.ResetMultiplier()
	}
}

func (b *Board) randomToken() Token {
	combos := b.session.Combos
	return combos[b.rng.IntN(len(combos))]
}

// Update advances animations by dt and runs the resolver once.
func (b *Board) Update(dt time.Duration) {
	b.session.Elapsed += dt
	b.moving.Update(dt)
	b.effects.Update(dt)
	b.spinFx.Update(dt)
	b.spin.advance(dt)
	b.pruneLabels()

	if b.clear != nil {
		b.clear.update(b, dt)
		return
	}
	b.resolve()
}

// resolve runs one resolver step. Nothing happens while pieces move.
// Gravity and refill come first; matches are only looked for once the
// board has fully settled.
func (b *Board) resolve() {
	if !b.moving.Empty() {
		return
	}

	moved := b.settle()
	spawned := b.refill()
	switch {
	case spawned:
		b.phase = PhaseRefilling
		b.recheck = true
		return
	case moved:
		b.phase = PhaseSettling
		b.recheck = true
		return
	}
	if !b.recheck {
		return
	}

	b.recheck = false
	b.phase = PhaseChecking
	if matches := b.grid.FindMatches(); len(matches) > 0 {
		b.phase = PhaseClearing
		b.clearMatches(matches)
		b.phase = PhaseSettling
		b.recheck = true
		return
	}

	b.hint, b.hasHint = b.grid.FindMoves()
	if b.hasHint {
		b.phase = PhaseStable
	} else {
		b.phase = PhaseNoMoves
	}
}

// settle moves every piece with an empty cell below it down one row,
// scanning each column bottom to top so the whole column drops together.
func (b *Board) settle() bool {
	moved := false
	for col := range b.grid.Cols() {
		cells := b.grid.Column(col)
		for row := b.grid.Rows() - 2; row >= 0; row-- {
			cell, below := cells[row], cells[row+1]
			if cell.Empty() || !below.Empty() {
				continue
			}
			b.grid.SendPiece(cell, below, &b.moving, b.settings.FallSpeed)
			moved = true
		}
	}
	return moved
}

// refill spawns a jewel one cell above every empty top-row cell and drops
// it in.
func (b *Board) refill() bool {
	spawned := false
	for _, cell := range b.grid.Row(0) {
		if !cell.Empty() {
			continue
		}
		p := &Piece{
			Token: b.randomToken(),
			X:     float64(cell.Rect.X),
			Y:     float64(cell.Rect.Y - cell.Rect.H),
		}
		cell.Piece = p
		glide(p, cell.Rect, &b.moving, b.settings.FallSpeed, nil)
		spawned = true
	}
	return spawned
}

// clearMatches scores and removes matches, shortest first. Each match gets
// a staggered sound cue and a floating points label.
func (b *Board) clearMatches(matches []Match) {
	sorted := slices.Clone(matches)
	slices.SortStableFunc(sorted, func(x, y Match) int { return len(x) - len(y) })

	var delay time.Duration
	for _, m := range sorted {
		points := b.session.Award(len(m))

		sound := platformcore.MatchSound(len(m))
		b.effects.Add(tween.NewTask(delay, func() { b.sound.Play(sound) }))
		delay += b.settings.SoundStagger

		cx, cy := b.centroid(m)
		b.addLabel(cx, cy, fmt.Sprint(points))

		for _, c := range m {
			b.grid.Cell(c).Piece = nil
		}
	}
	b.spinUp(len(sorted[len(sorted)-1]))
}

func (b *Board) centroid(m Match) (x, y float64) {
	for _, c := range m {
		cx, cy := b.grid.Cell(c).Rect.Center()
		x += float64(cx)
		y += float64(cy)
	}
	n := float64(len(m))
	return x / n, y / n
}
