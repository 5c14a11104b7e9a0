package render

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/image-editor/internal/state"
)

// Renderer projects an image and its ImageState onto a Surface.
type Renderer struct {
	surface Surface
}

// NewRenderer returns a renderer drawing on s. It fails with ErrNoContext
// when s is nil.
func NewRenderer(s Surface) (*Renderer, error) {
	if s == nil {
		return nil, fmt.Errorf("renderer: %w", ErrNoContext)
	}
	return &Renderer{surface: s}, nil
}

// Surface returns the surface the renderer draws on.
func (r *Renderer) Surface() Surface {
	return r.surface
}

// Render redraws the surface. It never modifies st. A nil img is a no-op.
//
// Transforms are applied in surface space in this order:
//  1. clear
//  2. rotate about the surface centre
//  3. mirror the flipped axes, translating back into view
//  4. fit the crop rectangle into the surface preserving aspect ratio
//  5. draw the crop rectangle into the fitted destination
func (r *Renderer) Render(img image.Image, st state.ImageState) {
	if img == nil {
		return
	}
	s := r.surface
	w, h := float64(s.Width()), float64(s.Height())

	s.Clear()
	s.Push()
	defer s.Pop()

	if st.Rotation != 0 {
		s.Translate(w/2, h/2)
		s.Rotate(st.Rotation * math.Pi / 180)
		s.Translate(-w/2, -h/2)
	}

	if st.Flip.Horizontal || st.Flip.Vertical {
		tx, ty, sx, sy := 0.0, 0.0, 1.0, 1.0
		if st.Flip.Horizontal {
			tx, sx = w, -1
		}
		if st.Flip.Vertical {
			ty, sy = h, -1
		}
		s.Translate(tx, ty)
		s.Scale(sx, sy)
	}

	b := img.Bounds()
	crop := st.Crop.Clamp(float64(b.Dx()), float64(b.Dy()))
	src := sourceRect(crop, b.Min)
	if src.Empty() {
		return
	}
	dst := Fit(float64(src.Dx()), float64(src.Dy()), w, h)
	s.DrawImageRect(img, src, dst)
}

// Fit returns the largest rectangle with the aspect ratio srcW:srcH that
// fits in dstW x dstH, centred.
func Fit(srcW, srcH, dstW, dstH float64) Rect {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return Rect{}
	}
	srcAspect := srcW / srcH
	dstAspect := dstW / dstH

	var rw, rh float64
	if srcAspect > dstAspect {
		rw = dstW
		rh = dstW / srcAspect
	} else {
		rh = dstH
		rw = dstH * srcAspect
	}
	return Rect{
		X:      (dstW - rw) / 2,
		Y:      (dstH - rh) / 2,
		Width:  rw,
		Height: rh,
	}
}

// sourceRect converts a crop in image-relative pixels to an integer
// rectangle in the image's own coordinate space.
func sourceRect(crop state.Rect, origin image.Point) image.Rectangle {
	x0 := int(math.Round(crop.X))
	y0 := int(math.Round(crop.Y))
	x1 := int(math.Round(crop.X + crop.Width))
	y1 := int(math.Round(crop.Y + crop.Height))
	return image.Rect(x0, y0, x1, y1).Add(origin)
}
