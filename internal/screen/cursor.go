package screen

import (
	"context"
	"time"

	"github.com/tbeaumont/gestured/internal/geometry"
)

// pollInterval is how often the cursor tracker samples the pointer.
const pollInterval = 20 * time.Millisecond

// PointerSource yields the current pointer position.
type PointerSource interface {
	Pointer() (geometry.Point, error)
}

// CursorTracker polls the pointer position on its own goroutine and pushes
// it into a sink, so the classifier has a fresh coordinate without receiving
// motion events itself. It only ever writes the shared value.
type CursorTracker struct {
	source PointerSource
	sink   func(geometry.Point)
}

// NewCursorTracker builds a tracker writing positions into sink.
func NewCursorTracker(source PointerSource, sink func(geometry.Point)) *CursorTracker {
	return &CursorTracker{source: source, sink: sink}
}

// Start runs the poll loop until ctx is cancelled.
func (t *CursorTracker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if p, err := t.source.Pointer(); err == nil {
					t.sink(p)
				}
			}
		}
	}()
}
