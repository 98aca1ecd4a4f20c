package core

import "testing"

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionSelect)

	if !f.Has(ActionSelect) {
		t.Error("Has(ActionSelect) should be true after Set")
	}
	if f.Has(ActionPause) {
		t.Error("Has(ActionPause) should be false")
	}

	var zero InputFrame
	if zero.Has(ActionSelect) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionLeft)
	if !zero.Has(ActionLeft) {
		t.Error("Set on zero frame should allocate the map")
	}
}

func TestInputFramePointer(t *testing.T) {
	f := NewInputFrame()
	f.AddPointer(PointerDown, 3, 4)
	f.AddPointer(PointerDrag, 5, 4)

	clone := f.Clone()
	f.Clear()

	if len(f.Pointer) != 0 {
		t.Errorf("Clear should drop pointer events, got %d", len(f.Pointer))
	}
	if len(clone.Pointer) != 2 {
		t.Fatalf("Clone should keep pointer events, got %d", len(clone.Pointer))
	}
	if clone.Pointer[1] != (PointerEvent{Kind: PointerDrag, X: 5, Y: 4}) {
		t.Errorf("clone.Pointer[1] = %+v", clone.Pointer[1])
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionSelect, "Select"},
		{ActionMute, "Mute"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}

func TestSoundNames(t *testing.T) {
	tests := []struct {
		got      Sound
		expected Sound
	}{
		{MatchSound(3), "match3"},
		{MatchSound(12), "match8"},
		{MatchSound(1), "match3"},
		{WarningSound(4), "warning4"},
		{NoteSound(1), "note1"},
		{NoteSound(21), "note21"},
		{NoteSound(22), "note1"},
		{NoteSound(0), "note1"},
	}
	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("got %q, expected %q", tc.got, tc.expected)
		}
	}
}
