package grab

import (
	"log"
	"sync"

	"github.com/tbeaumont/gestured/internal/config"
	"github.com/tbeaumont/gestured/internal/event"
	"github.com/tbeaumont/gestured/internal/geometry"
)

// tapThreshold is the history length below which a shape-button press is
// still forwarded as a press-phase event, so a plain tap on the shape button
// acts as a trivial gesture.
const tapThreshold = 10

// Resolver decides whether a classified event triggers a command and whether
// the original OS event may propagate. Command execution is the resolver's
// business; it must not block the caller on it.
type Resolver interface {
	Resolve(cfg *config.Config, ev event.ClickEvent) (propagate bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(cfg *config.Config, ev event.ClickEvent) bool

func (f ResolverFunc) Resolve(cfg *config.Config, ev event.ClickEvent) bool {
	return f(cfg, ev)
}

// EdgeMapper derives the set of screen edges a coordinate is near.
type EdgeMapper interface {
	EdgesFromPos(p geometry.Point) []event.Edge
}

// Context carries the classifier state shared between the hook thread and
// the optional cursor tracker. Each resource has its own lock so the tracker
// writing the pointer position never stalls the hook thread on gesture
// state. No lock is ever held across a geometry computation or a resolver
// call.
type Context struct {
	historyMu sync.Mutex
	history   *event.PointHistory

	buttonMu sync.Mutex
	button   event.ButtonState

	keyboardMu sync.Mutex
	keyboard   event.KeyboardState

	lastMu sync.Mutex
	last   geometry.Point

	store    *config.Store
	resolver Resolver
	edges    EdgeMapper

	// cursorTracked is set when an independent tracker owns the pointer
	// position; the classifier then ignores coordinates on move events.
	cursorTracked bool

	verbose bool
}

// Option configures a Context.
type Option func(*Context)

// WithHistoryCapacity overrides the gesture trace capacity.
func WithHistoryCapacity(capacity int) Option {
	return func(c *Context) { c.history = event.NewPointHistory(capacity) }
}

// WithCursorTracker marks the pointer position as externally maintained.
func WithCursorTracker() Option {
	return func(c *Context) { c.cursorTracked = true }
}

// WithVerbose enables per-event diagnostics.
func WithVerbose() Option {
	return func(c *Context) { c.verbose = true }
}

// NewContext builds the classifier around the shared config store, a
// resolver and an edge mapper.
func NewContext(store *config.Store, resolver Resolver, edges EdgeMapper, opts ...Option) *Context {
	c := &Context{
		history:  event.NewPointHistory(event.DefaultHistoryCapacity),
		store:    store,
		resolver: resolver,
		edges:    edges,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetLastPoint is the cursor tracker's write path.
func (c *Context) SetLastPoint(p geometry.Point) {
	c.lastMu.Lock()
	c.last = p
	c.lastMu.Unlock()
}

func (c *Context) lastPoint() geometry.Point {
	c.lastMu.Lock()
	defer c.lastMu.Unlock()
	return c.last
}

// HandleEvent classifies one raw input event and reports whether the
// original event should propagate to the rest of the system. It runs on the
// hook thread: it never blocks on I/O and never panics out; algorithmic edge
// cases degrade to neutral results.
func (c *Context) HandleEvent(raw RawEvent) bool {
	switch raw.Kind {
	case Move:
		return c.handleMove(raw)
	case ButtonPress:
		return c.handleButtonPress(raw)
	case ButtonRelease:
		return c.handleButtonRelease(raw)
	case Wheel:
		return c.handleWheel(raw)
	case KeyPress:
		c.setKey(raw.Key, true)
		return true
	case KeyRelease:
		c.setKey(raw.Key, false)
		return true
	}
	// Unknown kinds pass through untouched.
	return true
}

func (c *Context) handleMove(raw RawEvent) bool {
	if !c.cursorTracked {
		c.SetLastPoint(geometry.Point{X: raw.X, Y: raw.Y})
	}

	held, ok := c.heldButton()
	if !ok || held != c.store.Get().ShapeButton {
		return true
	}

	c.recordPoint(c.lastPoint())
	return true
}

func (c *Context) handleButtonPress(raw RawEvent) bool {
	c.buttonMu.Lock()
	c.button.Press(raw.Button)
	c.buttonMu.Unlock()

	last := c.lastPoint()
	cfg := c.store.Get()

	click := event.ClickEvent{
		Button:    raw.Button,
		Edges:     c.edges.EdgesFromPos(last),
		Modifiers: c.modifiers(),
		EventType: event.Press,
	}

	if raw.Button == cfg.ShapeButton {
		c.recordPoint(last)
		// A shape-button press is always swallowed: the drag that may follow
		// belongs to the gesture, not to the applications underneath. While
		// the trace is still short the press is forwarded anyway so a tap
		// can match a press binding.
		if c.historyLen() < tapThreshold {
			c.resolver.Resolve(cfg, click)
		}
		return false
	}

	return c.resolver.Resolve(cfg, click)
}

func (c *Context) handleButtonRelease(raw RawEvent) bool {
	c.historyMu.Lock()
	trace := c.history.Snapshot()
	c.history.Clear()
	c.historyMu.Unlock()

	c.buttonMu.Lock()
	c.button.Release()
	c.buttonMu.Unlock()

	angles := geometry.Angles(trace)
	last := c.lastPoint()

	click := event.ClickEvent{
		Button:      raw.Button,
		Edges:       c.edges.EdgesFromPos(last),
		Modifiers:   c.modifiers(),
		EventType:   event.Release,
		ShapeAngles: angles,
		ShapeXY:     trace,
	}

	return c.resolver.Resolve(c.store.Get(), click)
}

func (c *Context) handleWheel(raw RawEvent) bool {
	button := event.ButtonWheelUp
	if raw.Wheel < 0 {
		button = event.ButtonWheelDown
	}

	click := event.ClickEvent{
		Button:    button,
		Edges:     c.edges.EdgesFromPos(c.lastPoint()),
		Modifiers: c.modifiers(),
		EventType: event.Release,
	}

	return c.resolver.Resolve(c.store.Get(), click)
}

func (c *Context) recordPoint(p geometry.Point) {
	c.historyMu.Lock()
	pushed := c.history.Push(p)
	c.historyMu.Unlock()

	if !pushed && c.verbose {
		log.Printf("point history is full, dropping %v", p)
	}
}

func (c *Context) historyLen() int {
	c.historyMu.Lock()
	defer c.historyMu.Unlock()
	return c.history.Len()
}

func (c *Context) heldButton() (event.MouseButton, bool) {
	c.buttonMu.Lock()
	defer c.buttonMu.Unlock()
	return c.button.Held()
}

func (c *Context) setKey(k event.Key, pressed bool) {
	c.keyboardMu.Lock()
	c.keyboard.SetKey(k, pressed)
	c.keyboardMu.Unlock()
}

func (c *Context) modifiers() []event.Modifier {
	c.keyboardMu.Lock()
	defer c.keyboardMu.Unlock()
	return c.keyboard.Modifiers()
}
