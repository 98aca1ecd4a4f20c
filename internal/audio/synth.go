package audio

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-jewels/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator generates raw waveform samples
func oscillator(wave int, freq float64, d time.Duration) floatBuffer {
	buf := make(floatBuffer, sampleRate.N(d))
	phase := 0.0
	inc := freq / float64(sampleRate)

	for i := range buf {
		switch wave {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1
			} else {
				buf[i] = -1
			}
		case waveSaw:
			buf[i] = 2 * (phase - 0.5)
		case waveNoise:
			buf[i] = rand.Float64()*2 - 1
		}
		phase += inc
		phase -= math.Floor(phase)
	}
	return buf
}

// envelope applies a linear attack/release in place
func envelope(buf floatBuffer, attack, release time.Duration) floatBuffer {
	total := len(buf)
	att := sampleRate.N(attack)
	rel := sampleRate.N(release)
	relStart := max(total-rel, att)

	for i := range buf {
		vol := 1.0
		if i < att && att > 0 {
			vol = float64(i) / float64(att)
		} else if i >= relStart && rel > 0 {
			vol = float64(total-i) / float64(rel)
		}
		buf[i] *= vol
	}
	return buf
}

// mix adds b scaled into a, growing a when b is longer
func mix(a, b floatBuffer, scale float64) floatBuffer {
	if len(b) > len(a) {
		grown := make(floatBuffer, len(b))
		copy(grown, a)
		a = grown
	}
	for i := range b {
		a[i] += b[i] * scale
	}
	return a
}

func concat(parts ...floatBuffer) floatBuffer {
	var out floatBuffer
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func silence(d time.Duration) floatBuffer {
	return make(floatBuffer, sampleRate.N(d))
}

// pitch returns the frequency of the note semitones above A4
func pitch(semitones int) float64 {
	return 440 * math.Pow(2, float64(semitones)/12)
}

// majorScale holds semitone offsets of one octave of a major scale.
var majorScale = [7]int{0, 2, 4, 5, 7, 9, 11}

// scaleStep returns the semitone offset from A4 of the n-th step
// (0-based) of the C major scale starting at C5.
func scaleStep(n int) int {
	const c5 = 3
	return c5 + 12*(n/7) + majorScale[n%7]
}

func pluck(semitones int, d time.Duration) floatBuffer {
	fund := envelope(oscillator(waveSine, pitch(semitones), d), 5*time.Millisecond, d*3/4)
	over := envelope(oscillator(waveSine, pitch(semitones+12), d), 5*time.Millisecond, d/2)
	return mix(fund, over, 0.3)
}

// matchCue is a chord that widens with the run length.
func matchCue(length int) floatBuffer {
	d := 220 * time.Millisecond
	var buf floatBuffer
	for i := range length - 1 {
		buf = mix(buf, pluck(scaleStep(2*i), d), 1/float64(length-1))
	}
	return buf
}

func levelUpCue() floatBuffer {
	var notes []floatBuffer
	for _, step := range []int{0, 2, 4, 7} {
		notes = append(notes, pluck(scaleStep(step), 120*time.Millisecond))
	}
	return concat(notes...)
}

// warningCue is one second of beeps, faster and higher as severity grows.
// It loops while the bonus meter is low.
func warningCue(severity int) floatBuffer {
	beeps := severity
	slot := time.Second / time.Duration(beeps)
	blip := 80 * time.Millisecond
	tone := pitch(-12 + 3*severity)

	var parts []floatBuffer
	for range beeps {
		b := envelope(oscillator(waveSquare, tone, blip), 2*time.Millisecond, 20*time.Millisecond)
		for i := range b {
			b[i] *= 0.4
		}
		parts = append(parts, b, silence(slot-blip))
	}
	return concat(parts...)
}

func noteCue(n int) floatBuffer {
	return pluck(scaleStep(n-1), 150*time.Millisecond)
}

// generate builds the buffer for a cue name, or nil for an unknown cue.
func generate(s core.Sound) floatBuffer {
	name := string(s)
	switch {
	case s == core.SoundLevelUp:
		return levelUpCue()
	case strings.HasPrefix(name, "match"):
		if n, ok := cueIndex(name, "match", 3, 8); ok {
			return matchCue(n)
		}
	case strings.HasPrefix(name, "warning"):
		if n, ok := cueIndex(name, "warning", 1, 4); ok {
			return warningCue(n)
		}
	case strings.HasPrefix(name, "note"):
		if n, ok := cueIndex(name, "note", 1, 21); ok {
			return noteCue(n)
		}
	}
	return nil
}

func cueIndex(name, prefix string, lo, hi int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}

// bufferStreamer plays a floatBuffer on both channels. It implements
// beep.StreamSeeker so it can be looped.
type bufferStreamer struct {
	buf floatBuffer
	pos int
}

func newBufferStreamer(buf floatBuffer) *bufferStreamer {
	return &bufferStreamer{buf: buf}
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	n = copyStereo(samples, s.buf[s.pos:])
	s.pos += n
	return n, true
}

func copyStereo(dst [][2]float64, src floatBuffer) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i][0] = src[i]
		dst[i][1] = src[i]
	}
	return n
}

func (s *bufferStreamer) Err() error    { return nil }
func (s *bufferStreamer) Len() int      { return len(s.buf) }
func (s *bufferStreamer) Position() int { return s.pos }

func (s *bufferStreamer) Seek(p int) error {
	s.pos = max(0, min(p, len(s.buf)))
	return nil
}
