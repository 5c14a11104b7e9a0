// Package editor ties image loading, edit history, animation and rendering
// together behind one type.
//
// An Editor holds a source image and an ImageState describing how it is
// shown: rotation, flip and crop. Every edit is a command recorded on an
// undo/redo history; the source pixels are never modified. After each
// change the editor redraws its surface.
//
//	ed, err := editor.New(editor.Config{Width: 400, Height: 300})
//	if err != nil {
//		return err
//	}
//	defer ed.Close()
//	if err := ed.Load(ctx, "photo.jpg"); err != nil {
//		return err
//	}
//	ed.RotateRight()
//	ed.FlipHorizontal()
//	ed.Undo()
//	out, err := ed.Export(imaging.PNG, 0)
//
// Edits made while no image is loaded are silently ignored.
//
// Animated edits (AnimateRotate, AnimateCrop) update the state frame by
// frame and are recorded as a single command once they finish. Starting
// any other edit, undo or redo while one is in flight completes it
// immediately; loading a new image discards it.
package editor
