package tween

import (
	"math"
	"sort"
	"sync"
)

// Easing maps normalized progress t in [0, 1] to an eased fraction.
// Overshooting curves (back, elastic) may leave [0, 1] between the endpoints.
type Easing func(t float64) float64

// backOvershoot is the standard Penner overshoot constant.
const backOvershoot = 1.70158

// Linear is the identity curve.
func Linear(t float64) float64 {
	return t
}

// InQuad accelerates from zero velocity.
func InQuad(t float64) float64 {
	return t * t
}

// OutQuad decelerates to zero velocity.
func OutQuad(t float64) float64 {
	return t * (2 - t)
}

// InOutQuad accelerates until halfway, then decelerates.
func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// OutElastic overshoots and oscillates into place.
func OutElastic(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	const p = 0.3
	s := p / 4
	return math.Pow(2, -10*t)*math.Sin((t-s)*(2*math.Pi)/p) + 1
}

// OutBounce bounces against the end value.
func OutBounce(t float64) float64 {
	switch {
	case t < 1/2.75:
		return 7.5625 * t * t
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return 7.5625*t*t + 0.75
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return 7.5625*t*t + 0.9375
	default:
		t -= 2.625 / 2.75
		return 7.5625*t*t + 0.984375
	}
}

// InBack pulls back before moving toward the end value.
func InBack(t float64) float64 {
	return t * t * ((backOvershoot+1)*t - backOvershoot)
}

// OutBack overshoots the end value and settles back.
func OutBack(t float64) float64 {
	t--
	return t*t*((backOvershoot+1)*t+backOvershoot) + 1
}

// InOutBack combines InBack and OutBack around the midpoint.
func InOutBack(t float64) float64 {
	s := backOvershoot * 1.525
	t *= 2
	if t < 1 {
		return 0.5 * (t * t * ((s+1)*t - s))
	}
	t -= 2
	return 0.5 * (t*t*((s+1)*t+s) + 2)
}

var (
	easingsMu sync.RWMutex
	easings   = map[string]Easing{
		"linear":      Linear,
		"in_quad":     InQuad,
		"out_quad":    OutQuad,
		"in_out_quad": InOutQuad,
		"out_elastic": OutElastic,
		"out_bounce":  OutBounce,
		"in_back":     InBack,
		"out_back":    OutBack,
		"in_out_back": InOutBack,
	}
)

// Register adds or replaces a named easing curve.
func Register(name string, e Easing) {
	easingsMu.Lock()
	defer easingsMu.Unlock()
	easings[name] = e
}

// Lookup returns the easing registered under name.
func Lookup(name string) (Easing, bool) {
	easingsMu.RLock()
	defer easingsMu.RUnlock()
	e, ok := easings[name]
	return e, ok
}

// Names returns all registered easing names, sorted.
func Names() []string {
	easingsMu.RLock()
	defer easingsMu.RUnlock()

	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
