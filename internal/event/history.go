package event

import "github.com/tbeaumont/gestured/internal/geometry"

// DefaultHistoryCapacity bounds how many points a single gesture records.
const DefaultHistoryCapacity = 1024

// PointHistory is a bounded, append-only buffer of the points traced during
// one gesture. Pushes past capacity are dropped rather than wrapping, so a
// very long drag keeps the start of the shape instead of forgetting it.
type PointHistory struct {
	points []geometry.Point
}

// NewPointHistory returns an empty history with the given capacity.
func NewPointHistory(capacity int) *PointHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &PointHistory{points: make([]geometry.Point, 0, capacity)}
}

// Push appends p and reports whether it was recorded. A full history is a
// no-op returning false; existing entries are never disturbed.
func (h *PointHistory) Push(p geometry.Point) bool {
	if h.Full() {
		return false
	}
	h.points = append(h.points, p)
	return true
}

// Full reports whether the capacity is exhausted.
func (h *PointHistory) Full() bool {
	return len(h.points) == cap(h.points)
}

// Len returns the number of recorded points.
func (h *PointHistory) Len() int {
	return len(h.points)
}

// Clear truncates the history between gestures. Capacity is retained.
func (h *PointHistory) Clear() {
	h.points = h.points[:0]
}

// Snapshot returns a copy of the recorded trace in insertion order.
func (h *PointHistory) Snapshot() []geometry.Point {
	out := make([]geometry.Point, len(h.points))
	copy(out, h.points)
	return out
}
