// Package trace renders captured gesture traces to PNG images.
package trace

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tbeaumont/gestured/internal/geometry"
)

// Renderer draws gesture traces onto a grayscale canvas
type Renderer struct {
	width  int
	height int
	margin int
	img    *image.Gray
	face   font.Face
}

// NewRenderer creates a renderer with the given canvas size
func NewRenderer(width, height int) *Renderer {
	r := &Renderer{
		width:  width,
		height: height,
		margin: 20,
		img:    image.NewGray(image.Rect(0, 0, width, height)),
		face:   basicfont.Face7x13,
	}
	r.Clear()
	return r
}

// Clear resets the canvas to black
func (r *Renderer) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Black, image.Point{}, draw.Src)
}

// DrawTrace plots the trace as a polyline, fitted to the canvas with the
// renderer's margin. The first point gets a hollow marker and the last a
// filled one so direction is readable from the image alone.
func (r *Renderer) DrawTrace(points []geometry.Point) {
	fitted := r.fit(points)
	if len(fitted) == 0 {
		return
	}

	for i := 1; i < len(fitted); i++ {
		r.drawLine(fitted[i-1], fitted[i])
	}

	r.drawRect(fitted[0].X-3, fitted[0].Y-3, 7, 7)
	r.fillRect(fitted[len(fitted)-1].X-3, fitted[len(fitted)-1].Y-3, 7, 7)
}

// DrawText draws a single line of text at the specified position
func (r *Renderer) DrawText(x, y int, text string) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// Annotate writes a caption in the top-left corner
func (r *Renderer) Annotate(text string) {
	r.DrawText(4, r.face.Metrics().Height.Ceil(), text)
}

// Encode writes the canvas as PNG
func (r *Renderer) Encode(w io.Writer) error {
	return png.Encode(w, r.img)
}

// WriteFile encodes the canvas as PNG into path
func (r *Renderer) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace image: %w", err)
	}
	defer f.Close()

	if err := r.Encode(f); err != nil {
		return fmt.Errorf("failed to encode trace image: %w", err)
	}
	return nil
}

// Image returns the underlying canvas
func (r *Renderer) Image() *image.Gray {
	return r.img
}

// fit scales the trace into the drawable area, preserving aspect ratio and
// centering the result. A trace with no extent collapses to the canvas center.
func (r *Renderer) fit(points []geometry.Point) []geometry.Point {
	if len(points) == 0 {
		return nil
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
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

	spanX := maxX - minX
	spanY := maxY - minY
	drawW := r.width - 2*r.margin
	drawH := r.height - 2*r.margin

	if spanX == 0 && spanY == 0 {
		center := geometry.Point{X: r.width / 2, Y: r.height / 2}
		out := make([]geometry.Point, len(points))
		for i := range out {
			out[i] = center
		}
		return out
	}

	// One scale for both axes keeps the drawn shape proportional.
	scale := float64(drawW) / float64(max(spanX, 1))
	if s := float64(drawH) / float64(max(spanY, 1)); s < scale {
		scale = s
	}

	offX := (r.width - int(float64(spanX)*scale)) / 2
	offY := (r.height - int(float64(spanY)*scale)) / 2

	out := make([]geometry.Point, len(points))
	for i, p := range points {
		out[i] = geometry.Point{
			X: offX + int(float64(p.X-minX)*scale),
			Y: offY + int(float64(p.Y-minY)*scale),
		}
	}
	return out
}

// drawLine rasterizes a segment with Bresenham's algorithm.
func (r *Renderer) drawLine(a, b geometry.Point) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}

	x, y := a.X, a.Y
	err := dx + dy
	for {
		r.setPixel(x, y)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func (r *Renderer) drawRect(x, y, width, height int) {
	for i := x; i < x+width; i++ {
		r.setPixel(i, y)
		r.setPixel(i, y+height-1)
	}
	for i := y; i < y+height; i++ {
		r.setPixel(x, i)
		r.setPixel(x+width-1, i)
	}
}

func (r *Renderer) fillRect(x, y, width, height int) {
	for py := y; py < y+height; py++ {
		for px := x; px < x+width; px++ {
			r.setPixel(px, py)
		}
	}
}

func (r *Renderer) setPixel(x, y int) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.img.SetGray(x, y, color.Gray{Y: 255})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
