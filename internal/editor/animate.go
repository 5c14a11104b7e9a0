package editor

import (
	"github.com/ironsheep/image-editor/internal/animation"
	"github.com/ironsheep/image-editor/internal/command"
	"github.com/ironsheep/image-editor/internal/state"
)

// AnimateRotate rotates by degrees over time. Intermediate frames update
// the state and surface directly; when the run ends the rotation is
// recorded as a single command. Without an image it does nothing.
func (e *Editor) AnimateRotate(degrees float64, opts AnimationOptions) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.img == nil {
		return
	}
	e.finishAnimationLocked()

	start := e.state.Rotation
	cmd := command.NewRotateCommand(&e.state.Rotation, degrees)
	e.animateLocked(opts, cmd,
		map[string]float64{"rotation": start},
		map[string]float64{"rotation": start + degrees},
		func(v map[string]float64) { e.state.Rotation = v["rotation"] },
	)
}

// AnimateCrop moves the crop rectangle to the target over time and then
// records a single crop command. Invalid targets are rejected up front
// with command.ErrCropOutOfBounds.
func (e *Editor) AnimateCrop(target state.Rect, opts AnimationOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.img == nil {
		return nil
	}
	e.finishAnimationLocked()

	b := e.img.Bounds()
	cmd, err := command.NewCropCommand(&e.state.Crop, target, b.Dx(), b.Dy())
	if err != nil {
		return err
	}
	from := e.state.Crop
	e.animateLocked(opts, cmd, rectValues(from), rectValues(target),
		func(v map[string]float64) {
			e.state.Crop = state.Rect{X: v["x"], Y: v["y"], Width: v["width"], Height: v["height"]}
		},
	)
	return nil
}

// Animating reports whether an animated edit is in flight.
func (e *Editor) Animating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.animFinish != nil
}

// animateLocked starts a run whose frames call apply. cmd must have been
// built from the settled state; on completion it is undone to restore that
// snapshot and then executed through the invoker.
func (e *Editor) animateLocked(opts AnimationOptions, cmd command.Command, from, to map[string]float64, apply func(map[string]float64)) {
	opts = opts.withDefaults(e.defaults)

	e.animRun++
	run := e.animRun
	e.animFinish = func() {
		cmd.Undo()
		e.invoker.Execute(cmd)
		e.debugf("Execute %v (animated)", cmd)
	}

	e.anim.Animate(animation.Options[string, float64]{
		From:     from,
		To:       to,
		Duration: opts.Duration,
		Easing:   opts.Easing,
		OnUpdate: func(v map[string]float64) {
			e.mu.Lock()
			defer e.mu.Unlock()
			if e.animRun != run {
				return
			}
			apply(v)
			e.renderLocked()
		},
		OnComplete: func() {
			e.mu.Lock()
			if e.animRun != run {
				e.mu.Unlock()
				return
			}
			finish := e.animFinish
			e.animFinish = nil
			finish()
			e.renderLocked()
			e.mu.Unlock()

			if opts.OnComplete != nil {
				opts.OnComplete()
			}
		},
	})
}

// finishAnimationLocked cuts a running animation short and records its
// command as if it had completed.
func (e *Editor) finishAnimationLocked() {
	if e.animFinish == nil {
		return
	}
	finish := e.animFinish
	e.animFinish = nil
	e.animRun++
	e.anim.Stop()
	finish()
	e.renderLocked()
}

// discardAnimationLocked cancels a running animation without recording it.
func (e *Editor) discardAnimationLocked() {
	e.animFinish = nil
	e.animRun++
	e.anim.Stop()
}

func rectValues(r state.Rect) map[string]float64 {
	return map[string]float64{"x": r.X, "y": r.Y, "width": r.Width, "height": r.Height}
}
