// Package command implements the reversible edit operations of the image
// editor and the invoker that records them.
//
// # Commands
//
// Each command borrows a pointer to the one slice of state it is allowed to
// change and snapshots that slice at construction time:
//
//   - FlipCommand: *state.Flip, toggled relative to the captured value
//   - RotateCommand: *float64 rotation, adds degrees
//   - CropCommand: *state.Rect, sets an absolute rectangle
//   - ResizeCommand: *state.Size, sets absolute output dimensions
//
// Undo writes the snapshot back, so execute followed by undo restores the
// slice exactly.
//
// # Flip semantics
//
// FlipCommand negates the flags captured when it was built, not the current
// flags. Issuing flip(true, false) twice produces two commands whose captured
// states differ, so the image alternates between mirrored and unmirrored.
//
// # Validation
//
// CropCommand rejects rectangles that do not lie inside the image
// (ErrCropOutOfBounds) and ResizeCommand rejects non-positive sizes
// (ErrInvalidSize). A rejected command is never constructed, so state is
// untouched.
package command
