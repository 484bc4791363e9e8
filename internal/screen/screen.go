package screen

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/tbeaumont/gestured/internal/event"
	"github.com/tbeaumont/gestured/internal/geometry"
)

// Bounds is one display rectangle.
type Bounds struct {
	X, Y          int
	Width, Height int
}

// BoundsProvider supplies the active display geometry. Implementations must
// be cheap: the edge mapper consults them on every classified event.
type BoundsProvider interface {
	Bounds() Bounds
}

// StaticBounds is a fixed-geometry provider, used in tests and as a fallback
// when no display connection is available.
type StaticBounds Bounds

func (s StaticBounds) Bounds() Bounds {
	return Bounds(s)
}

// X11 connects to the X server for display geometry and pointer queries.
type X11 struct {
	xu *xgbutil.XUtil
}

// NewX11 opens a display connection.
func NewX11() (*X11, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to display: %w", err)
	}
	return &X11{xu: xu}, nil
}

// Bounds returns the root screen geometry.
func (x *X11) Bounds() Bounds {
	screen := x.xu.Screen()
	return Bounds{
		Width:  int(screen.WidthInPixels),
		Height: int(screen.HeightInPixels),
	}
}

// Pointer returns the current root-relative pointer position.
func (x *X11) Pointer() (geometry.Point, error) {
	reply, err := xproto.QueryPointer(x.xu.Conn(), x.xu.RootWin()).Reply()
	if err != nil {
		return geometry.Point{}, fmt.Errorf("failed to query pointer: %w", err)
	}
	return geometry.Point{X: int(reply.RootX), Y: int(reply.RootY)}, nil
}

// EdgeMapper derives the screen edges a coordinate is near, within a
// configurable pixel margin. A corner coordinate yields two edges. The margin
// is guarded because reloads adjust it from a different goroutine than the
// hook thread reading it.
type EdgeMapper struct {
	provider BoundsProvider
	mu       sync.Mutex
	margin   int
}

// NewEdgeMapper builds an edge mapper over a bounds provider.
func NewEdgeMapper(provider BoundsProvider, margin int) *EdgeMapper {
	return &EdgeMapper{provider: provider, margin: margin}
}

// SetMargin adjusts the edge distance threshold, e.g. after a config reload.
func (m *EdgeMapper) SetMargin(margin int) {
	m.mu.Lock()
	m.margin = margin
	m.mu.Unlock()
}

func (m *EdgeMapper) currentMargin() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.margin
}

// EdgesFromPos implements grab.EdgeMapper.
func (m *EdgeMapper) EdgesFromPos(p geometry.Point) []event.Edge {
	b := m.provider.Bounds()
	margin := m.currentMargin()

	var edges []event.Edge
	if p.Y <= b.Y+margin {
		edges = append(edges, event.EdgeTop)
	}
	if p.Y >= b.Y+b.Height-1-margin {
		edges = append(edges, event.EdgeBottom)
	}
	if p.X <= b.X+margin {
		edges = append(edges, event.EdgeLeft)
	}
	if p.X >= b.X+b.Width-1-margin {
		edges = append(edges, event.EdgeRight)
	}
	return edges
}
