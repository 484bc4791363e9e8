package geometry

// Point is a 2D screen coordinate. Copied freely, never mutated in place.
type Point struct {
	X int
	Y int
}

// NormalizeMode selects where the origin of a normalized trace lands.
type NormalizeMode int

const (
	// NormalizeMin puts the origin at the bounding-box minimum.
	NormalizeMin NormalizeMode = iota
	// NormalizeAvg puts the origin at the centroid.
	NormalizeAvg
)

// Normalize rescales a trace into a fixed reference frame so shapes compare
// independently of position and size. Each axis is scaled so the bounding-box
// span maps to 0..100. A trace whose bounding box has zero width or zero
// height is not classifiable as a shape and yields an empty result.
func Normalize(points []Point, mode NormalizeMode) []Point {
	if len(points) == 0 {
		return nil
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	width := maxX - minX
	height := maxY - minY
	if width == 0 || height == 0 {
		return nil
	}

	originX, originY := minX, minY
	if mode == NormalizeAvg {
		sumX, sumY := 0, 0
		for _, p := range points {
			sumX += p.X
			sumY += p.Y
		}
		originX = sumX / len(points)
		originY = sumY / len(points)
	}

	out := make([]Point, 0, len(points))
	for _, p := range points {
		out = append(out, Point{
			X: 100 * (p.X - originX) / width,
			Y: 100 * (p.Y - originY) / height,
		})
	}
	return out
}
