// Package state holds the mutable record of edits applied to a loaded image.
//
// ImageState is deliberately plain data. It is mutated only by commands
// (package command) and by the editor's animation callbacks, and read by the
// renderer. Nothing in this package performs I/O or locking.
package state

import (
	"fmt"
	"math"
)

// Flip records which axes are mirrored. Two flips on the same axis cancel.
type Flip struct {
	Horizontal bool `json:"horizontal"`
	Vertical   bool `json:"vertical"`
}

// Rect is a rectangle in source-image pixel space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Within reports whether r is a non-empty rectangle lying entirely inside
// an image of the given dimensions.
func (r Rect) Within(width, height float64) bool {
	if r.Empty() {
		return false
	}
	return r.X >= 0 && r.Y >= 0 && r.X+r.Width <= width && r.Y+r.Height <= height
}

// Clamp returns r intersected with the image bounds (0,0)-(width,height).
// The result may be empty.
func (r Rect) Clamp(width, height float64) Rect {
	x0 := math.Max(0, r.X)
	y0 := math.Max(0, r.Y)
	x1 := math.Min(width, r.X+r.Width)
	y1 := math.Min(height, r.Y+r.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// String formats r as WxH+X+Y.
func (r Rect) String() string {
	return fmt.Sprintf("%gx%g+%g+%g", r.Width, r.Height, r.X, r.Y)
}

// Size is the output dimensions of the drawing surface.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// String formats s as WxH.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ImageState is the single source of truth for applied edits.
//
// Rotation is in degrees and accumulates without wraparound; use
// NormalizedRotation when a value in [0,360) is needed.
type ImageState struct {
	Flip     Flip    `json:"flip"`
	Rotation float64 `json:"rotation"`
	Crop     Rect    `json:"crop"`
}

// New returns the state for a freshly loaded image of the given dimensions:
// no flip, no rotation, crop covering the full image.
func New(width, height int) ImageState {
	return ImageState{
		Crop: Rect{Width: float64(width), Height: float64(height)},
	}
}

// Reset restores s to the freshly loaded state for an image of the given
// dimensions.
func (s *ImageState) Reset(width, height int) {
	*s = New(width, height)
}

// NormalizedRotation returns Rotation wrapped into [0,360).
func (s ImageState) NormalizedRotation() float64 {
	r := math.Mod(s.Rotation, 360)
	if r < 0 {
		r += 360
	}
	return r
}
