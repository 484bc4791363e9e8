// Package hook feeds the global OS input stream into the classifier.
package hook

import (
	"context"
	"errors"

	gohook "github.com/robotn/gohook"

	"github.com/tbeaumont/gestured/internal/grab"
)

// Run installs the global input hook and pumps every raw event through
// classify until ctx is cancelled. The classify verdict is the classifier's
// propagate decision; the listener backend surfaces it to callers (trace
// mode) but cannot withhold events from the display server itself.
func Run(ctx context.Context, classify func(grab.RawEvent) bool) error {
	events := gohook.Start()
	if events == nil {
		return errors.New("failed to install global input hook")
	}
	defer gohook.End()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return errors.New("input hook stream closed")
			}
			raw, ok := Translate(ev)
			if !ok {
				continue
			}
			classify(raw)
		}
	}
}

// Translate converts a hook event into the classifier's representation.
// Events the classifier has no branch for (hook lifecycle notices, key
// auto-repeat) report false.
func Translate(ev gohook.Event) (grab.RawEvent, bool) {
	switch ev.Kind {
	case gohook.MouseMove, gohook.MouseDrag:
		return grab.RawEvent{Kind: grab.Move, X: int(ev.X), Y: int(ev.Y)}, true
	case gohook.MouseDown:
		return grab.RawEvent{Kind: grab.ButtonPress, Button: buttonFromCode(ev.Button)}, true
	case gohook.MouseUp:
		return grab.RawEvent{Kind: grab.ButtonRelease, Button: buttonFromCode(ev.Button)}, true
	case gohook.MouseWheel:
		return grab.RawEvent{Kind: grab.Wheel, Wheel: int(ev.Rotation)}, true
	case gohook.KeyDown:
		return grab.RawEvent{Kind: grab.KeyPress, Key: keyFromRawcode(ev.Rawcode)}, true
	case gohook.KeyUp:
		return grab.RawEvent{Kind: grab.KeyRelease, Key: keyFromRawcode(ev.Rawcode)}, true
	}
	return grab.RawEvent{}, false
}
