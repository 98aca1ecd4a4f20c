package core

import (
	"fmt"
	"time"

	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
)

// bonusClear removes every jewel of one identity, one at a time.
type bonusClear struct {
	queue []*Cell
	timer time.Duration
	count int
}

// StartBonusClear halves the bonus meter and queues every jewel matching t
// for removal. Each removal plays a rising note and scores 10 points per
// level. The resolver is suspended until the queue is empty.
func (b *Board) StartBonusClear(t Token) {
	b.CancelDrag()
	b.session.HalveBonus()

	var queue []*Cell
	for _, c := range b.grid.cells {
		if !c.Empty() && c.Piece.Token == t {
			queue = append(queue, c)
		}
	}
	b.clear = &bonusClear{queue: queue}
	b.hasHint = false
}

// BonusClearing reports whether a bonus clear is still removing jewels.
func (b *Board) BonusClearing() bool {
	return b.clear != nil
}

// BonusClearRemaining returns how many jewels the bonus clear has yet to
// remove.
func (b *Board) BonusClearRemaining() int {
	if b.clear == nil {
		return 0
	}
	return len(b.clear.queue)
}

func (c *bonusClear) update(b *Board, dt time.Duration) {
	interval := b.settings.ClearInterval
	c.timer += dt
	for len(c.queue) > 0 && c.timer >= interval {
		c.timer -= interval
		c.pop(b)
	}
	if len(c.queue) == 0 {
		b.clear = nil
		b.recheck = true
	}
}

// pop removes the last queued jewel, so the clear runs from the bottom-right
// corner upward.
func (c *bonusClear) pop(b *Board) {
	cell := c.queue[len(c.queue)-1]
	c.queue = c.queue[:len(c.queue)-1]
	cell.Piece = nil

	c.count++
	b.sound.Play(platformcore.NoteSound(c.count))

	points := 10 * b.session.Level
	b.session.AddPoints(points)
	cx, cy := cell.Rect.Center()
	b.addLabel(float64(cx), float64(cy), fmt.Sprint(points))
}
