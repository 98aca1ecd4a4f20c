package core

import "fmt"

// Sound identifies a sound cue. Games name cues; the platform decides
// how (and whether) they are played.
type Sound string

const (
	SoundLevelUp Sound = "levelup"
)

// MatchSound returns the cue for clearing a run of the given length.
// Lengths outside 3..8 are clamped.
func MatchSound(length int) Sound {
	return Sound(fmt.Sprintf("match%d", Clamp(length, 3, 8)))
}

// WarningSound returns the bonus warning cue for severity 1..4.
func WarningSound(level int) Sound {
	return Sound(fmt.Sprintf("warning%d", Clamp(level, 1, 4)))
}

// NoteSound returns the n-th ascending note cue, wrapping after 21.
func NoteSound(n int) Sound {
	if n < 1 {
		n = 1
	}
	return Sound(fmt.Sprintf("note%d", (n-1)%21+1))
}

// SoundPlayer is the audio collaborator. Play is fire-and-forget;
// Loop keeps a cue repeating until StopLoop.
type SoundPlayer interface {
	Play(s Sound)
	Loop(s Sound)
	StopLoop()
}

// NopSound discards every cue.
type NopSound struct{}

func (NopSound) Play(Sound) {}
func (NopSound) Loop(Sound) {}
func (NopSound) StopLoop()  {}
