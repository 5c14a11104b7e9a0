package command

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-editor/internal/state"
)

var (
	// ErrCropOutOfBounds is returned for crop rectangles that are empty or
	// extend past the image bounds.
	ErrCropOutOfBounds = errors.New("crop rectangle outside image bounds")

	// ErrInvalidSize is returned for resize targets with a non-positive dimension.
	ErrInvalidSize = errors.New("invalid size")
)

// FlipCommand mirrors the image along one or both axes.
type FlipCommand struct {
	target     *state.Flip
	previous   state.Flip
	horizontal bool
	vertical   bool
}

// NewFlipCommand returns a command toggling the selected axes of target
// relative to its current value.
func NewFlipCommand(target *state.Flip, horizontal, vertical bool) *FlipCommand {
	return &FlipCommand{
		target:     target,
		previous:   *target,
		horizontal: horizontal,
		vertical:   vertical,
	}
}

// Execute toggles the selected axes relative to the captured value.
func (c *FlipCommand) Execute() {
	if c.horizontal {
		c.target.Horizontal = !c.previous.Horizontal
	}
	if c.vertical {
		c.target.Vertical = !c.previous.Vertical
	}
}

// Undo restores the flags captured at construction.
func (c *FlipCommand) Undo() {
	*c.target = c.previous
}

// String describes the command for logs.
func (c *FlipCommand) String() string {
	return fmt.Sprintf("flip(horizontal=%t, vertical=%t)", c.horizontal, c.vertical)
}

// RotateCommand adds degrees to a rotation.
type RotateCommand struct {
	target   *float64
	previous float64
	degrees  float64
}

// NewRotateCommand returns a command adding degrees to *target.
func NewRotateCommand(target *float64, degrees float64) *RotateCommand {
	return &RotateCommand{
		target:   target,
		previous: *target,
		degrees:  degrees,
	}
}

// Execute adds the delta to the target.
func (c *RotateCommand) Execute() {
	*c.target += c.degrees
}

// Undo restores the rotation captured at construction.
func (c *RotateCommand) Undo() {
	*c.target = c.previous
}

// String describes the command for logs.
func (c *RotateCommand) String() string {
	return fmt.Sprintf("rotate(%g)", c.degrees)
}

// CropCommand sets the crop rectangle.
type CropCommand struct {
	target   *state.Rect
	previous state.Rect
	next     state.Rect
}

// NewCropCommand returns a command setting *target to next. It fails with
// ErrCropOutOfBounds unless next lies within an image of the given size.
func NewCropCommand(target *state.Rect, next state.Rect, imageWidth, imageHeight int) (*CropCommand, error) {
	if !next.Within(float64(imageWidth), float64(imageHeight)) {
		return nil, fmt.Errorf("crop %s in %dx%d image: %w", next, imageWidth, imageHeight, ErrCropOutOfBounds)
	}
	return &CropCommand{
		target:   target,
		previous: *target,
		next:     next,
	}, nil
}

// Execute installs the new rectangle.
func (c *CropCommand) Execute() {
	*c.target = c.next
}

// Undo restores the rectangle captured at construction.
func (c *CropCommand) Undo() {
	*c.target = c.previous
}

// String describes the command for logs.
func (c *CropCommand) String() string {
	return fmt.Sprintf("crop(%s)", c.next)
}

// ResizeCommand sets the output dimensions.
type ResizeCommand struct {
	target   *state.Size
	previous state.Size
	next     state.Size
}

// NewResizeCommand returns a command setting *target to next. It fails with
// ErrInvalidSize if either dimension is not positive.
func NewResizeCommand(target *state.Size, next state.Size) (*ResizeCommand, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("resize to %s: %w", next, ErrInvalidSize)
	}
	return &ResizeCommand{
		target:   target,
		previous: *target,
		next:     next,
	}, nil
}

// Execute installs the new size.
func (c *ResizeCommand) Execute() {
	*c.target = c.next
}

// Undo restores the size captured at construction.
func (c *ResizeCommand) Undo() {
	*c.target = c.previous
}

// String describes the command for logs.
func (c *ResizeCommand) String() string {
	return fmt.Sprintf("resize(%s)", c.next)
}
