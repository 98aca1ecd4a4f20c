package tween

import "time"

// Group is an insertion-ordered collection of animations advanced together.
// When two members write the same lens, the later-added one wins each tick.
type Group struct {
	items    []*Animation
	pending  []*Animation
	updating bool
	cleared  bool
}

// Add appends animations. Animations added from a callback during Update
// first advance on the following Update.
func (g *Group) Add(anims ...*Animation) {
	if g.updating {
		g.pending = append(g.pending, anims...)
		return
	}
	g.items = append(g.items, anims...)
}

// Update advances every member by dt and removes the finished ones.
func (g *Group) Update(dt time.Duration) {
	g.updating = true
	g.cleared = false
	for _, a := range g.items {
		if g.cleared {
			break
		}
		a.Update(dt)
	}
	g.updating = false

	if g.cleared {
		g.items = append(g.items[:0], g.pending...)
		g.pending = nil
		return
	}

	live := g.items[:0]
	for _, a := range g.items {
		if !a.Done() {
			live = append(live, a)
		}
	}
	for i := len(live); i < len(g.items); i++ {
		g.items[i] = nil
	}
	g.items = append(live, g.pending...)
	g.pending = nil
}

// Len returns the number of live animations.
func (g *Group) Len() int {
	return len(g.items) + len(g.pending)
}

// Empty reports whether the group has nothing left to animate.
func (g *Group) Empty() bool {
	return g.Len() == 0
}

// Clear drops every animation without completing it.
func (g *Group) Clear() {
	g.items = nil
	g.pending = nil
	if g.updating {
		g.cleared = true
	}
}
