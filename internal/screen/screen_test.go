package screen

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/tbeaumont/gestured/internal/event"
	"github.com/tbeaumont/gestured/internal/geometry"
)

func TestEdgesFromPos(t *testing.T) {
	mapper := NewEdgeMapper(StaticBounds{Width: 1920, Height: 1080}, 5)

	cases := []struct {
		name string
		pos  geometry.Point
		want []event.Edge
	}{
		{"center", geometry.Point{X: 960, Y: 540}, nil},
		{"top", geometry.Point{X: 960, Y: 3}, []event.Edge{event.EdgeTop}},
		{"left", geometry.Point{X: 0, Y: 540}, []event.Edge{event.EdgeLeft}},
		{"bottom", geometry.Point{X: 960, Y: 1079}, []event.Edge{event.EdgeBottom}},
		{"right", geometry.Point{X: 1919, Y: 540}, []event.Edge{event.EdgeRight}},
		{"top-left corner", geometry.Point{X: 2, Y: 2}, []event.Edge{event.EdgeTop, event.EdgeLeft}},
		{"bottom-right corner", geometry.Point{X: 1918, Y: 1078}, []event.Edge{event.EdgeBottom, event.EdgeRight}},
		{"just inside margin", geometry.Point{X: 6, Y: 6}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapper.EdgesFromPos(tc.pos); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("EdgesFromPos(%v) = %v, want %v", tc.pos, got, tc.want)
			}
		})
	}
}

func TestEdgeMapperOffsetBounds(t *testing.T) {
	// A display that does not start at the origin.
	mapper := NewEdgeMapper(StaticBounds{X: 100, Y: 50, Width: 800, Height: 600}, 5)

	if got := mapper.EdgesFromPos(geometry.Point{X: 102, Y: 300}); !reflect.DeepEqual(got, []event.Edge{event.EdgeLeft}) {
		t.Errorf("EdgesFromPos near offset left edge = %v, want [Left]", got)
	}
	if got := mapper.EdgesFromPos(geometry.Point{X: 500, Y: 52}); !reflect.DeepEqual(got, []event.Edge{event.EdgeTop}) {
		t.Errorf("EdgesFromPos near offset top edge = %v, want [Top]", got)
	}
}

func TestEdgeMapperSetMargin(t *testing.T) {
	mapper := NewEdgeMapper(StaticBounds{Width: 100, Height: 100}, 0)

	p := geometry.Point{X: 10, Y: 50}
	if got := mapper.EdgesFromPos(p); len(got) != 0 {
		t.Fatalf("EdgesFromPos with margin 0 = %v, want none", got)
	}

	mapper.SetMargin(10)
	if got := mapper.EdgesFromPos(p); !reflect.DeepEqual(got, []event.Edge{event.EdgeLeft}) {
		t.Errorf("EdgesFromPos with margin 10 = %v, want [Left]", got)
	}
}

type fakePointer struct {
	mu  sync.Mutex
	pos geometry.Point
}

func (f *fakePointer) Pointer() (geometry.Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pos, nil
}

func TestCursorTrackerWritesSink(t *testing.T) {
	source := &fakePointer{pos: geometry.Point{X: 7, Y: 9}}

	var mu sync.Mutex
	var last geometry.Point
	tracker := NewCursorTracker(source, func(p geometry.Point) {
		mu.Lock()
		last = p
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tracker.Start(ctx)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		got := last
		mu.Unlock()
		if got == (geometry.Point{X: 7, Y: 9}) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("sink never observed the pointer position")
}
