package event

import (
	"github.com/tbeaumont/gestured/internal/geometry"
)

// MouseButton identifies a physical button or a wheel pseudo-button. The
// values are the names persisted in the config file.
type MouseButton string

const (
	ButtonNone      MouseButton = "None"
	ButtonLeft      MouseButton = "Left"
	ButtonMiddle    MouseButton = "Middle"
	ButtonRight     MouseButton = "Right"
	ButtonBack      MouseButton = "Back"
	ButtonForward   MouseButton = "Forward"
	ButtonWheelUp   MouseButton = "WheelUp"
	ButtonWheelDown MouseButton = "WheelDown"
	ButtonUnknown   MouseButton = "Unknown"
)

// Buttons lists the physical buttons a user can pick as the shape button.
func Buttons() []MouseButton {
	return []MouseButton{ButtonLeft, ButtonMiddle, ButtonRight, ButtonBack, ButtonForward}
}

// Edge names a screen edge a click began near.
type Edge string

const (
	EdgeTop    Edge = "Top"
	EdgeLeft   Edge = "Left"
	EdgeBottom Edge = "Bottom"
	EdgeRight  Edge = "Right"
)

// PressState is the phase of a classified event.
type PressState string

const (
	Press   PressState = "Press"
	Release PressState = "Release"
)

// Modifier names a keyboard modifier held at classification time.
type Modifier string

const (
	ModShiftLeft    Modifier = "ShiftLeft"
	ModShiftRight   Modifier = "ShiftRight"
	ModControlLeft  Modifier = "ControlLeft"
	ModControlRight Modifier = "ControlRight"
	ModMetaLeft     Modifier = "MetaLeft"
	ModAlt          Modifier = "Alt"
	ModAltGr        Modifier = "AltGr"
)

// Key identifies the keyboard keys the tracker cares about. Anything else
// arrives as KeyOther and is ignored.
type Key int

const (
	KeyOther Key = iota
	KeyShiftLeft
	KeyShiftRight
	KeyControlLeft
	KeyControlRight
	KeyMetaLeft
	KeyAlt
	KeyAltGr
)

// KeyboardState tracks one independent flag per modifier key. No debouncing,
// no auto-repeat suppression: the flags mirror the raw press/release stream.
type KeyboardState struct {
	ShiftLeft    bool
	ShiftRight   bool
	ControlLeft  bool
	ControlRight bool
	MetaLeft     bool
	Alt          bool
	AltGr        bool
}

// SetKey mutates the flag for k. Unrelated keys are no-ops.
func (s *KeyboardState) SetKey(k Key, pressed bool) {
	switch k {
	case KeyShiftLeft:
		s.ShiftLeft = pressed
	case KeyShiftRight:
		s.ShiftRight = pressed
	case KeyControlLeft:
		s.ControlLeft = pressed
	case KeyControlRight:
		s.ControlRight = pressed
	case KeyMetaLeft:
		s.MetaLeft = pressed
	case KeyAlt:
		s.Alt = pressed
	case KeyAltGr:
		s.AltGr = pressed
	}
}

// Modifiers returns the active flags in a fixed order.
func (s KeyboardState) Modifiers() []Modifier {
	var mods []Modifier
	if s.ShiftLeft {
		mods = append(mods, ModShiftLeft)
	}
	if s.ShiftRight {
		mods = append(mods, ModShiftRight)
	}
	if s.ControlLeft {
		mods = append(mods, ModControlLeft)
	}
	if s.ControlRight {
		mods = append(mods, ModControlRight)
	}
	if s.MetaLeft {
		mods = append(mods, ModMetaLeft)
	}
	if s.Alt {
		mods = append(mods, ModAlt)
	}
	if s.AltGr {
		mods = append(mods, ModAltGr)
	}
	return mods
}

// ButtonState tracks the single held button. Last press wins: a press while
// another button is held replaces it, and any release returns to idle.
// Overlapping presses are deliberately not modeled as a stack.
type ButtonState struct {
	held   bool
	button MouseButton
}

// Press records b as the held button.
func (s *ButtonState) Press(b MouseButton) {
	s.held = true
	s.button = b
}

// Release returns the state to idle, whichever button was released.
func (s *ButtonState) Release() {
	s.held = false
	s.button = ButtonNone
}

// Held reports the held button, if any.
func (s ButtonState) Held() (MouseButton, bool) {
	if !s.held {
		return ButtonNone, false
	}
	return s.button, true
}

// ClickEvent is the classified description of one completed input action,
// built fresh per raw event and handed to the binding resolver. ShapeAngles
// and ShapeXY are populated only on shape-capable releases.
type ClickEvent struct {
	Button      MouseButton
	Edges       []Edge
	Modifiers   []Modifier
	EventType   PressState
	ShapeAngles []float64
	ShapeXY     []geometry.Point
}
