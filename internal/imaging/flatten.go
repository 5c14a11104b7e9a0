package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-editor/internal/state"
)

// Flatten applies st to img at source resolution and returns the result.
//
// The crop is taken first, then the flips, then the rotation, matching the
// order in which the renderer's surface transform maps source pixels.
// Rotation is clockwise in degrees; uncovered corners are transparent.
// When size is valid the result is resized to exactly that size.
func Flatten(img image.Image, st state.ImageState, size state.Size) *image.NRGBA {
	b := img.Bounds()
	crop := st.Crop.Clamp(float64(b.Dx()), float64(b.Dy()))
	rect := image.Rect(
		int(math.Round(crop.X)),
		int(math.Round(crop.Y)),
		int(math.Round(crop.X+crop.Width)),
		int(math.Round(crop.Y+crop.Height)),
	).Add(b.Min)

	out := imaging.Crop(img, rect)
	if out.Bounds().Empty() {
		return out
	}
	if st.Flip.Horizontal {
		out = imaging.FlipH(out)
	}
	if st.Flip.Vertical {
		out = imaging.FlipV(out)
	}

	switch r := st.NormalizedRotation(); r {
	case 0:
	case 90:
		out = imaging.Rotate270(out)
	case 180:
		out = imaging.Rotate180(out)
	case 270:
		out = imaging.Rotate90(out)
	default:
		// imaging rotates counter-clockwise.
		out = imaging.Rotate(out, -r, color.Transparent)
	}

	if size.Valid() {
		out = imaging.Resize(out, size.Width, size.Height, imaging.Lanczos)
	}
	return out
}
