package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// ErrNoContext is returned when a drawing surface cannot be created.
var ErrNoContext = errors.New("2D drawing context not supported")

// Rect is a destination rectangle in surface coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Surface is the drawing capability the renderer needs. Transform calls
// compose onto the current matrix; Push and Pop save and restore it.
type Surface interface {
	Width() int
	Height() int

	// Clear resets every pixel to the background, ignoring the transform.
	Clear()

	Push()
	Pop()
	Translate(x, y float64)
	Rotate(radians float64)
	Scale(x, y float64)

	// DrawImageRect draws the src sub-rectangle of img into dst under the
	// current transform.
	DrawImageRect(img image.Image, src image.Rectangle, dst Rect)

	// Image returns the current pixels.
	Image() image.Image

	// Resize replaces the pixel buffer with a cleared one of the given size.
	Resize(width, height int)
}

// GGSurface is a Surface backed by a fogleman/gg context.
type GGSurface struct {
	dc         *gg.Context
	background color.Color
}

// NewGGSurface returns a surface of the given size cleared to background.
// A nil background means transparent.
func NewGGSurface(width, height int, background color.Color) (*GGSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface %dx%d: %w", width, height, ErrNoContext)
	}
	if background == nil {
		background = color.Transparent
	}
	s := &GGSurface{
		dc:         gg.NewContext(width, height),
		background: background,
	}
	s.Clear()
	return s, nil
}

// Width returns the surface width in pixels.
func (s *GGSurface) Width() int { return s.dc.Width() }

// Height returns the surface height in pixels.
func (s *GGSurface) Height() int { return s.dc.Height() }

// Clear fills the surface with the background colour. The current
// transform does not affect it.
func (s *GGSurface) Clear() {
	s.dc.SetColor(s.background)
	s.dc.Clear()
}

// Push saves the current transform.
func (s *GGSurface) Push() { s.dc.Push() }

// Pop restores the transform saved by the matching Push.
func (s *GGSurface) Pop() { s.dc.Pop() }

// Translate moves the origin by (x, y).
func (s *GGSurface) Translate(x, y float64) { s.dc.Translate(x, y) }

// Rotate turns the coordinate system clockwise by radians.
func (s *GGSurface) Rotate(radians float64) { s.dc.Rotate(radians) }

// Scale multiplies the axes by x and y. Negative values mirror.
func (s *GGSurface) Scale(x, y float64) { s.dc.Scale(x, y) }

// DrawImageRect draws the src region of img into dst under the current
// transform, scaling it to fit.
func (s *GGSurface) DrawImageRect(img image.Image, src image.Rectangle, dst Rect) {
	// imaging.Crop rebases the region to a zero origin, which is what
	// gg's DrawImage transform expects.
	sub := imaging.Crop(img, src)
	w, h := sub.Bounds().Dx(), sub.Bounds().Dy()
	if w == 0 || h == 0 || dst.Width == 0 || dst.Height == 0 {
		return
	}
	s.dc.Push()
	s.dc.Translate(dst.X, dst.Y)
	s.dc.Scale(dst.Width/float64(w), dst.Height/float64(h))
	s.dc.DrawImage(sub, 0, 0)
	s.dc.Pop()
}

// Image returns the live backing image. Later drawing modifies it.
func (s *GGSurface) Image() image.Image {
	return s.dc.Image()
}

// Snapshot returns a copy of the current pixels that later drawing will
// not modify.
func (s *GGSurface) Snapshot() *image.RGBA {
	return clone.AsRGBA(s.dc.Image())
}

// Resize replaces the backing context with a cleared one of the given
// size. Non-positive or unchanged sizes are ignored.
func (s *GGSurface) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == s.dc.Width() && height == s.dc.Height() {
		return
	}
	s.dc = gg.NewContext(width, height)
	s.Clear()
}
