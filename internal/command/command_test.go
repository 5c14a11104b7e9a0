package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-editor/internal/state"
)

// recorder is a command that appends to a shared log.
type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) Execute() { *r.log = append(*r.log, "exec "+r.name) }
func (r *recorder) Undo()    { *r.log = append(*r.log, "undo "+r.name) }

func TestInvoker_EmptyHistoryIsNoop(t *testing.T) {
	inv := NewInvoker()
	assert.False(t, inv.Undo())
	assert.False(t, inv.Redo())
	assert.False(t, inv.CanUndo())
	assert.False(t, inv.CanRedo())
	assert.Nil(t, inv.Peek())
	assert.Zero(t, inv.Len())
}

func TestInvoker_Timeline(t *testing.T) {
	var log []string
	a := &recorder{"a", &log}
	b := &recorder{"b", &log}
	inv := NewInvoker()

	inv.Execute(a)
	inv.Execute(b)
	assert.Equal(t, 2, inv.Len())
	assert.Same(t, b, inv.Peek())

	require.True(t, inv.Undo())
	require.True(t, inv.Undo())
	assert.False(t, inv.Undo())
	require.True(t, inv.Redo())
	require.True(t, inv.Redo())
	assert.False(t, inv.Redo())

	assert.Equal(t, []string{
		"exec a", "exec b",
		"undo b", "undo a",
		"exec a", "exec b",
	}, log)
}

func TestInvoker_ExecuteClearsRedo(t *testing.T) {
	var log []string
	inv := NewInvoker()
	inv.Execute(&recorder{"a", &log})
	inv.Undo()
	require.True(t, inv.CanRedo())

	inv.Execute(&recorder{"b", &log})
	assert.False(t, inv.CanRedo())
	assert.False(t, inv.Redo())
	assert.Equal(t, 1, inv.Len())
}

func TestInvoker_Clear(t *testing.T) {
	var log []string
	inv := NewInvoker()
	inv.Execute(&recorder{"a", &log})
	inv.Execute(&recorder{"b", &log})
	inv.Undo()
	inv.Clear()
	assert.False(t, inv.CanUndo())
	assert.False(t, inv.CanRedo())
	assert.Equal(t, []string{"exec a", "exec b", "undo b"}, log)
}

func TestRotate_RunningSum(t *testing.T) {
	sequences := [][]float64{
		{90},
		{90, 90, 90, 90, 90},
		{-90, 45, 12.5, -720},
		{0.1, 0.2, 0.3},
		{360, 360, -1},
	}
	for _, seq := range sequences {
		var s state.ImageState
		inv := NewInvoker()
		sum := 0.0
		for _, d := range seq {
			inv.Execute(NewRotateCommand(&s.Rotation, d))
			sum += d
			assert.Equal(t, sum, s.Rotation, "sequence %v", seq)
		}

		last := seq[len(seq)-1]
		before := sum - last
		inv.Undo()
		// Undo restores the captured value, not sum-last recomputed.
		assert.InDelta(t, before, s.Rotation, 1e-9, "sequence %v", seq)
	}
}

func TestRotate_UndoRestoresExactly(t *testing.T) {
	s := state.ImageState{Rotation: 0.1 + 0.2}
	prev := s.Rotation
	inv := NewInvoker()
	inv.Execute(NewRotateCommand(&s.Rotation, 1e-17))
	inv.Undo()
	assert.Equal(t, prev, s.Rotation)
}

func TestFlip_UndoRestoresAllCombinations(t *testing.T) {
	for _, start := range []state.Flip{
		{Horizontal: false, Vertical: false},
		{Horizontal: true, Vertical: false},
		{Horizontal: false, Vertical: true},
		{Horizontal: true, Vertical: true},
	} {
		for _, args := range [][2]bool{{true, false}, {false, true}, {true, true}, {false, false}} {
			f := start
			inv := NewInvoker()
			inv.Execute(NewFlipCommand(&f, args[0], args[1]))

			want := start
			if args[0] {
				want.Horizontal = !want.Horizontal
			}
			if args[1] {
				want.Vertical = !want.Vertical
			}
			assert.Equal(t, want, f, "start %+v args %v", start, args)

			inv.Undo()
			assert.Equal(t, start, f, "start %+v args %v", start, args)
		}
	}
}

func TestFlip_RepeatedFlipAlternates(t *testing.T) {
	var f state.Flip
	inv := NewInvoker()

	inv.Execute(NewFlipCommand(&f, true, false))
	assert.True(t, f.Horizontal)

	inv.Execute(NewFlipCommand(&f, true, false))
	assert.False(t, f.Horizontal)
	assert.False(t, f.Vertical)

	inv.Undo()
	assert.True(t, f.Horizontal)
}

func TestFlip_RedoAfterUndo(t *testing.T) {
	var f state.Flip
	inv := NewInvoker()
	inv.Execute(NewFlipCommand(&f, false, true))
	inv.Undo()
	require.True(t, inv.Redo())
	assert.Equal(t, state.Flip{Vertical: true}, f)
}

func TestCrop_ExecuteUndo(t *testing.T) {
	rect := state.Rect{Width: 400, Height: 300}
	inv := NewInvoker()

	for _, next := range []state.Rect{
		{X: 0, Y: 0, Width: 400, Height: 300},
		{X: 10, Y: 20, Width: 100, Height: 50},
		{X: 399, Y: 299, Width: 1, Height: 1},
	} {
		prev := rect
		cmd, err := NewCropCommand(&rect, next, 400, 300)
		require.NoError(t, err)
		inv.Execute(cmd)
		assert.Equal(t, next, rect)
		inv.Undo()
		assert.Equal(t, prev, rect)
	}
}

func TestCrop_RejectsOutOfBounds(t *testing.T) {
	rect := state.Rect{Width: 400, Height: 300}
	original := rect

	for _, next := range []state.Rect{
		{X: -1, Y: 0, Width: 10, Height: 10},
		{X: 0, Y: -1, Width: 10, Height: 10},
		{X: 300, Y: 0, Width: 101, Height: 10},
		{X: 0, Y: 250, Width: 10, Height: 51},
		{X: 0, Y: 0, Width: 0, Height: 10},
		{X: 0, Y: 0, Width: 10, Height: -10},
	} {
		cmd, err := NewCropCommand(&rect, next, 400, 300)
		assert.ErrorIs(t, err, ErrCropOutOfBounds, "rect %v", next)
		assert.Nil(t, cmd)
		assert.Equal(t, original, rect)
	}
}

func TestResize(t *testing.T) {
	size := state.Size{Width: 800, Height: 600}
	inv := NewInvoker()

	cmd, err := NewResizeCommand(&size, state.Size{Width: 320, Height: 240})
	require.NoError(t, err)
	inv.Execute(cmd)
	assert.Equal(t, state.Size{Width: 320, Height: 240}, size)
	inv.Undo()
	assert.Equal(t, state.Size{Width: 800, Height: 600}, size)

	_, err = NewResizeCommand(&size, state.Size{Width: 0, Height: 10})
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestCommandStrings(t *testing.T) {
	var s state.ImageState
	size := state.Size{Width: 1, Height: 1}
	crop, err := NewCropCommand(&s.Crop, state.Rect{Width: 2, Height: 3}, 10, 10)
	require.NoError(t, err)
	resize, err := NewResizeCommand(&size, state.Size{Width: 4, Height: 5})
	require.NoError(t, err)

	assert.Equal(t, "rotate(90)", NewRotateCommand(&s.Rotation, 90).String())
	assert.Equal(t, "flip(horizontal=true, vertical=false)", NewFlipCommand(&s.Flip, true, false).String())
	assert.Equal(t, "crop(2x3+0+0)", crop.String())
	assert.Equal(t, "resize(4x5)", resize.String())
}
