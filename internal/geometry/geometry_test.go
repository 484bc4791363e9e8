package geometry

import (
	"math"
	"testing"
)

func TestNormalizeMinCentering(t *testing.T) {
	points := []Point{{X: 10, Y: 20}, {X: 30, Y: 60}, {X: 20, Y: 40}}

	out := Normalize(points, NormalizeMin)
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}

	// Bounding-box minimum maps to 0, maximum to 100, on each axis.
	if out[0] != (Point{X: 0, Y: 0}) {
		t.Errorf("out[0] = %v, want {0 0}", out[0])
	}
	if out[1] != (Point{X: 100, Y: 100}) {
		t.Errorf("out[1] = %v, want {100 100}", out[1])
	}
	if out[2] != (Point{X: 50, Y: 50}) {
		t.Errorf("out[2] = %v, want {50 50}", out[2])
	}
}

func TestNormalizeAvgCentering(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 100, Y: 50}}

	out := Normalize(points, NormalizeAvg)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}

	// Centroid is (50, 25); spans are 100 and 50.
	if out[0] != (Point{X: -50, Y: -50}) {
		t.Errorf("out[0] = %v, want {-50 -50}", out[0])
	}
	if out[1] != (Point{X: 50, Y: 50}) {
		t.Errorf("out[1] = %v, want {50 50}", out[1])
	}
}

func TestNormalizeZeroSpan(t *testing.T) {
	cases := []struct {
		name   string
		points []Point
	}{
		{"empty", nil},
		{"single", []Point{{X: 5, Y: 5}}},
		{"zero width", []Point{{X: 5, Y: 0}, {X: 5, Y: 10}, {X: 5, Y: 20}}},
		{"zero height", []Point{{X: 0, Y: 7}, {X: 10, Y: 7}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if out := Normalize(tc.points, NormalizeMin); len(out) != 0 {
				t.Errorf("Normalize(min) = %v, want empty", out)
			}
			if out := Normalize(tc.points, NormalizeAvg); len(out) != 0 {
				t.Errorf("Normalize(avg) = %v, want empty", out)
			}
		})
	}
}

func TestAnglesLength(t *testing.T) {
	traces := [][]Point{
		nil,
		{{X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 10, Y: 0}},
		{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}},
		// Zero-height trace still produces len-1 angles via the raw fallback.
		{{X: 0, Y: 5}, {X: 10, Y: 5}, {X: 20, Y: 5}, {X: 30, Y: 5}},
	}

	for _, points := range traces {
		want := len(points) - 1
		if want < 0 {
			want = 0
		}
		if got := len(Angles(points)); got != want {
			t.Errorf("len(Angles(%v)) = %d, want %d", points, got, want)
		}
	}
}

func TestAnglesHeadings(t *testing.T) {
	// Horizontal then vertical segment; with centroid normalization both
	// segments keep their cardinal headings.
	points := []Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}}

	angles := Angles(points)
	if len(angles) != 2 {
		t.Fatalf("len(angles) = %d, want 2", len(angles))
	}
	if math.Abs(angles[0]-0) > 1e-9 {
		t.Errorf("angles[0] = %v, want 0", angles[0])
	}
	if math.Abs(angles[1]-math.Pi/2) > 1e-9 {
		t.Errorf("angles[1] = %v, want pi/2", angles[1])
	}
}

func TestAnglesDeterministic(t *testing.T) {
	points := []Point{{X: 3, Y: 1}, {X: 14, Y: 1}, {X: 5, Y: 9}, {X: 26, Y: 5}, {X: 35, Y: 8}}

	first := Angles(points)
	for i := 0; i < 100; i++ {
		again := Angles(points)
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d: angles[%d] = %v, want %v", i, j, again[j], first[j])
			}
		}
	}
}

func TestAngleDiffWraps(t *testing.T) {
	if d := AngleDiff(math.Pi-0.1, -math.Pi+0.1); math.Abs(d-0.2) > 1e-9 {
		t.Errorf("AngleDiff across the wrap = %v, want 0.2", d)
	}
	if d := AngleDiff(0.5, 0.5); d != 0 {
		t.Errorf("AngleDiff(x, x) = %v, want 0", d)
	}
}
