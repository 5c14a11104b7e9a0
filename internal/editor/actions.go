package editor

import (
	"fmt"

	"github.com/ironsheep/image-editor/internal/state"
)

// Action names a user-facing edit, as bound to a toolbar button or a
// keyboard shortcut.
type Action string

const (
	ActionRotateLeft     Action = "rotate-left"
	ActionRotateRight    Action = "rotate-right"
	ActionFlipHorizontal Action = "flip-horizontal"
	ActionFlipVertical   Action = "flip-vertical"
	ActionCrop           Action = "crop"
	ActionUndo           Action = "undo"
	ActionRedo           Action = "redo"
)

// Actions lists every action Dispatch accepts.
func Actions() []Action {
	return []Action{
		ActionRotateLeft,
		ActionRotateRight,
		ActionFlipHorizontal,
		ActionFlipVertical,
		ActionCrop,
		ActionUndo,
		ActionRedo,
	}
}

// ParseAction returns the Action named s.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions() {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// ActionParams carries the arguments of an action.
type ActionParams struct {
	// Crop is the target rectangle for ActionCrop.
	Crop state.Rect

	// Animate runs rotations and crops through the animation manager.
	Animate bool
}

// Dispatch performs the named action.
func (e *Editor) Dispatch(action Action, params ActionParams) error {
	switch action {
	case ActionRotateLeft:
		e.rotateBy(-90, params.Animate)
	case ActionRotateRight:
		e.rotateBy(90, params.Animate)
	case ActionFlipHorizontal:
		e.FlipHorizontal()
	case ActionFlipVertical:
		e.FlipVertical()
	case ActionCrop:
		if params.Animate {
			return e.AnimateCrop(params.Crop, AnimationOptions{})
		}
		c := params.Crop
		return e.Crop(c.X, c.Y, c.Width, c.Height)
	case ActionUndo:
		e.Undo()
	case ActionRedo:
		e.Redo()
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

func (e *Editor) rotateBy(degrees float64, animate bool) {
	if animate {
		e.AnimateRotate(degrees, AnimationOptions{})
		return
	}
	e.Rotate(degrees)
}
