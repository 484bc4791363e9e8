package grab

import "github.com/tbeaumont/gestured/internal/event"

// EventKind enumerates the raw input events the classifier handles. The set
// is closed: every kind has an explicit branch in HandleEvent, and new kinds
// get a new branch rather than a silent default.
type EventKind int

const (
	Move EventKind = iota
	ButtonPress
	ButtonRelease
	Wheel
	KeyPress
	KeyRelease
)

// RawEvent is one OS-level input event, already translated out of the hook
// backend's representation.
type RawEvent struct {
	Kind   EventKind
	Button event.MouseButton // ButtonPress, ButtonRelease
	Key    event.Key         // KeyPress, KeyRelease
	X, Y   int               // Move
	Wheel  int               // Wheel: positive up, negative down
}
