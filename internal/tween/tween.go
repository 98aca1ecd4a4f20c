// Package tween drives numeric fields toward target values over time.
//
// An Animation interpolates one or more Lens-bound values from the value
// they hold when the animation starts (after its delay) to fixed targets,
// shaped by an Easing curve. A Task is an Animation without properties:
// a delayed one-shot callback. Animations live in Groups, which advance
// them every tick and drop the finished ones.
package tween

import (
	"math"
	"time"
)

// Lens is a typed accessor pair for a single numeric value.
type Lens struct {
	Get func() float64
	Set func(float64)
}

// Float binds a lens to a float64 field.
func Float(p *float64) Lens {
	return Lens{
		Get: func() float64 { return *p },
		Set: func(v float64) { *p = v },
	}
}

// Int binds a lens to an int field. Written values are rounded.
func Int(p *int) Lens {
	return Lens{
		Get: func() float64 { return float64(*p) },
		Set: func(v float64) { *p = int(math.Round(v)) },
	}
}

// Prop pairs a lens with its target value.
type Prop struct {
	Lens Lens
	To   float64
}

// To is shorthand for Prop{Lens: l, To: v}.
func To(l Lens, v float64) Prop {
	return Prop{Lens: l, To: v}
}

// Options configures an Animation.
type Options struct {
	Duration time.Duration
	Delay    time.Duration
	Easing   Easing // nil means Linear
	Round    bool   // round written values to the nearest integer
	OnDone   func() // called exactly once on completion
}

// Animation is a single tween. Start values are captured when the delay
// has elapsed, not at construction.
type Animation struct {
	props   []Prop
	from    []float64
	opts    Options
	delay   time.Duration
	elapsed time.Duration
	started bool
	done    bool
}

// New creates an animation over props.
func New(opts Options, props ...Prop) *Animation {
	return &Animation{
		props: props,
		opts:  opts,
		delay: opts.Delay,
	}
}

// NewTask creates a delay-only animation that calls fn once delay has passed.
func NewTask(delay time.Duration, fn func()) *Animation {
	return New(Options{Delay: delay, OnDone: fn})
}

// Update advances the animation by dt. Time left over after the delay
// expires counts toward the interpolation in the same call.
func (a *Animation) Update(dt time.Duration) {
	if a.done {
		return
	}

	if a.delay > 0 {
		if dt < a.delay {
			a.delay -= dt
			return
		}
		dt -= a.delay
		a.delay = 0
	}

	if !a.started {
		a.from = make([]float64, len(a.props))
		for i, p := range a.props {
			a.from[i] = p.Lens.Get()
		}
		a.started = true
	}

	a.elapsed += dt
	t := 1.0
	if a.opts.Duration > 0 {
		t = math.Min(float64(a.elapsed)/float64(a.opts.Duration), 1)
	}

	a.apply(t)

	if t >= 1 {
		a.done = true
		if a.opts.OnDone != nil {
			a.opts.OnDone()
		}
	}
}

func (a *Animation) apply(t float64) {
	eased := t
	if a.opts.Easing != nil && t < 1 {
		eased = a.opts.Easing(t)
	}
	for i, p := range a.props {
		v := p.To
		if t < 1 {
			v = a.from[i] + (p.To-a.from[i])*eased
		}
		if a.opts.Round {
			v = math.Round(v)
		}
		p.Lens.Set(v)
	}
}

// Done reports whether the animation has completed.
func (a *Animation) Done() bool {
	return a.done
}
