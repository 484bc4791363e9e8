package geometry

import "math"

// Angles converts a trace of N points into the N-1 heading angles of its
// consecutive segments, the unit of shape comparison. Headings are computed
// over the centroid-normalized trace so the signature is invariant to
// position, scale and aspect; a degenerate trace (zero span on an axis)
// falls back to the raw points so the result always has exactly
// max(0, len(points)-1) entries.
func Angles(points []Point) []float64 {
	if len(points) < 2 {
		return nil
	}

	src := Normalize(points, NormalizeAvg)
	if len(src) != len(points) {
		src = points
	}

	angles := make([]float64, 0, len(src)-1)
	for i := 1; i < len(src); i++ {
		dx := float64(src[i].X - src[i-1].X)
		dy := float64(src[i].Y - src[i-1].Y)
		angles = append(angles, math.Atan2(dy, dx))
	}
	return angles
}

// AngleDiff returns the absolute difference between two headings wrapped to
// [0, pi].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
