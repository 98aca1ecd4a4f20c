package core

import (
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrBadSnapshot is wrapped by every snapshot that cannot be restored.
var ErrBadSnapshot = errors.New("jewels: bad snapshot")

// CellState is one occupied cell in a snapshot.
type CellState struct {
	Coord Coord `json:"coord"`
	Color Color `json:"color"`
	Rank  Rank  `json:"rank"`
}

// Snapshot is the persisted form of a board between tick boundaries.
// Pieces in flight are recorded in the cell that owns them.
type Snapshot struct {
	OriginX     int           `json:"origin_x"`
	OriginY     int           `json:"origin_y"`
	Cols        int           `json:"cols"`
	Rows        int           `json:"rows"`
	ColorScheme int           `json:"color_scheme"`
	Combos      []Token       `json:"jewel_combos"`
	NumCombos   int           `json:"num_combos"`
	Score       int           `json:"score"`
	Elapsed     time.Duration `json:"elapsed"`
	Bonus       float64       `json:"bonus"`
	MaxBonus    float64       `json:"max_bonus"`
	BonusDrain  float64       `json:"bonus_drain"`
	Level       int           `json:"level"`
	Cells       []CellState   `json:"jewel_cells"`
}

// Snapshot captures the board and session.
func (b *Board) Snapshot() Snapshot {
	s := b.session
	g := b.grid.Geometry()
	snap := Snapshot{
		OriginX:     g.OriginX,
		OriginY:     g.OriginY,
		Cols:        g.Cols,
		Rows:        g.Rows,
		ColorScheme: b.settings.ColorScheme,
		Combos:      append([]Token(nil), s.Combos...),
		NumCombos:   s.NumCombos,
		Score:       s.Score,
		Elapsed:     s.Elapsed,
		Bonus:       s.Bonus,
		MaxBonus:    s.MaxBonus,
		BonusDrain:  s.BonusDrain,
		Level:       s.Level,
	}
	for _, c := range b.grid.cells {
		if c.Empty() {
			continue
		}
		t := c.Piece.Token
		snap.Cells = append(snap.Cells, CellState{Coord: c.Coord, Color: t.Color, Rank: t.Rank})
	}
	return snap
}

// Validate checks that the snapshot describes a board that can exist.
func (snap Snapshot) Validate() error {
	switch {
	case snap.Cols <= 0 || snap.Rows <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrBadSnapshot, snap.Cols, snap.Rows)
	case snap.Level < 1:
		return fmt.Errorf("%w: level %d", ErrBadSnapshot, snap.Level)
	case snap.Score < 0:
		return fmt.Errorf("%w: score %d", ErrBadSnapshot, snap.Score)
	case len(snap.Combos) == 0:
		return fmt.Errorf("%w: empty combo set", ErrBadSnapshot)
	case snap.MaxBonus <= 0:
		return fmt.Errorf("%w: max bonus %.2f", ErrBadSnapshot, snap.MaxBonus)
	}
	for _, t := range snap.Combos {
		if t.Empty() || !t.Rank.Valid() {
			return fmt.Errorf("%w: combo %v", ErrBadSnapshot, t)
		}
	}
	seen := make(map[Coord]bool, len(snap.Cells))
	for _, c := range snap.Cells {
		if c.Coord.Col < 0 || c.Coord.Col >= snap.Cols || c.Coord.Row < 0 || c.Coord.Row >= snap.Rows {
			return fmt.Errorf("%w: cell %v out of bounds", ErrBadSnapshot, c.Coord)
		}
		if c.Color == ColorNone || !c.Rank.Valid() {
			return fmt.Errorf("%w: cell %v holds %s/%d", ErrBadSnapshot, c.Coord, c.Color, c.Rank)
		}
		if seen[c.Coord] {
			return fmt.Errorf("%w: cell %v listed twice", ErrBadSnapshot, c.Coord)
		}
		seen[c.Coord] = true
	}
	return nil
}

// RestoreBoard rebuilds a board from a snapshot without re-randomizing.
// Grid size and origin come from the snapshot; everything else from s.
// Cells missing from the snapshot are left empty and refilled by the
// resolver.
func RestoreBoard(s Settings, snap Snapshot, rng IntNSource, sound platformcore.SoundPlayer) (*Board, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	s.Geometry.Cols, s.Geometry.Rows = snap.Cols, snap.Rows
	s.Geometry.OriginX, s.Geometry.OriginY = snap.OriginX, snap.OriginY
	s.ColorScheme = snap.ColorScheme
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := newBoard(s, rng, sound)
	sess := &Session{
		Score:      snap.Score,
		Elapsed:    snap.Elapsed,
		Bonus:      snap.Bonus,
		MaxBonus:   snap.MaxBonus,
		BonusDrain: snap.BonusDrain,
		Level:      snap.Level,
		NumCombos:  snap.NumCombos,
		Combos:     append([]Token(nil), snap.Combos...),
		Multiplier: 1,
		settings:   &b.settings,
	}
	if sess.NumCombos <= 0 {
		sess.NumCombos = len(sess.Combos)
	}
	sess.buildTargets()
	b.session = sess

	for _, c := range snap.Cells {
		b.grid.Place(c.Coord, Token{Color: c.Color, Rank: c.Rank})
	}
	return b, nil
}

// EncodeSnapshot serializes a snapshot as JSON.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("jewels: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses and validates a JSON snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
