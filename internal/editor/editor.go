package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/ironsheep/image-editor/internal/animation"
	"github.com/ironsheep/image-editor/internal/command"
	"github.com/ironsheep/image-editor/internal/imaging"
	"github.com/ironsheep/image-editor/internal/render"
	"github.com/ironsheep/image-editor/internal/state"
)

var (
	// ErrNoImage is returned by operations that need pixels when no image
	// has been loaded.
	ErrNoImage = errors.New("no image loaded")

	// ErrLoadSuperseded is returned by a load that finished after a later
	// load had already started.
	ErrLoadSuperseded = errors.New("load superseded by a newer load")
)

// Editor applies reversible edits to one image and keeps a surface showing
// the result.
//
// Editor is safe for concurrent use. Animation frames are delivered by the
// scheduler and take the same lock as the public operations, so callers
// always observe a state before or after an edit, never part of one.
type Editor struct {
	mu sync.Mutex

	surface  render.Surface
	renderer *render.Renderer
	invoker  *command.Invoker
	anim     *animation.Manager[string, float64]
	loader   *imaging.Loader
	owned    *animation.FrameScheduler
	defaults AnimationOptions
	logger   *log.Logger
	debug    bool

	img    image.Image
	info   imaging.ImageInfo
	source string
	state  state.ImageState
	size   state.Size

	loadSeq    uint64
	animRun    uint64
	animFinish func()
}

// New returns an editor with no image loaded. It fails when no drawing
// surface can be created.
func New(cfg Config) (*Editor, error) {
	surface := cfg.Surface
	if surface == nil {
		w, h := cfg.Width, cfg.Height
		if w == 0 {
			w = DefaultWidth
		}
		if h == 0 {
			h = DefaultHeight
		}
		s, err := render.NewGGSurface(w, h, cfg.Background)
		if err != nil {
			return nil, fmt.Errorf("failed to create surface: %w", err)
		}
		surface = s
	} else if cfg.Width != 0 || cfg.Height != 0 {
		if cfg.Width <= 0 || cfg.Height <= 0 {
			return nil, fmt.Errorf("surface %dx%d: %w", cfg.Width, cfg.Height, render.ErrNoContext)
		}
		surface.Resize(cfg.Width, cfg.Height)
	}

	renderer, err := render.NewRenderer(surface)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		surface:  surface,
		renderer: renderer,
		invoker:  command.NewInvoker(),
		loader:   cfg.Loader,
		defaults: cfg.Animation,
		logger:   cfg.Logger,
		debug:    cfg.Debug,
		size:     state.Size{Width: surface.Width(), Height: surface.Height()},
	}

	sched := cfg.Scheduler
	if sched == nil {
		e.owned = animation.NewFrameScheduler(cfg.FPS)
		sched = e.owned
	}
	e.anim = animation.NewManager[string, float64](sched)

	if e.loader == nil {
		e.loader = imaging.NewLoader()
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e, nil
}

// Open creates an editor and loads cfg.Source into it.
func Open(ctx context.Context, cfg Config) (*Editor, error) {
	e, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		if err := e.Load(ctx, cfg.Source); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

// Close cancels any animation and stops the scheduler the editor started.
func (e *Editor) Close() {
	e.mu.Lock()
	e.discardAnimationLocked()
	e.mu.Unlock()
	if e.owned != nil {
		e.owned.Close()
	}
}

// Load fetches and decodes source, then replaces the current image. On
// success ImageState is reset to the full image, history is cleared and the
// surface is redrawn. On failure the editor is left unchanged.
func (e *Editor) Load(ctx context.Context, source string) error {
	e.mu.Lock()
	e.loadSeq++
	seq := e.loadSeq
	e.mu.Unlock()

	d, err := e.loader.Load(ctx, source)
	if err != nil {
		e.logger.Printf("Failed to load image %s: %v", shortSource(source), err)
		return fmt.Errorf("failed to load image: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.loadSeq {
		return ErrLoadSuperseded
	}

	e.discardAnimationLocked()
	e.img = d.Image
	e.info = imaging.Describe(d)
	e.source = source
	b := d.Image.Bounds()
	e.state.Reset(b.Dx(), b.Dy())
	e.invoker.Clear()
	e.renderLocked()
	e.debugf("Loaded %s (%dx%d %s)", shortSource(source), b.Dx(), b.Dy(), d.Format)
	return nil
}

// LoadAsync runs Load on a new goroutine. The returned channel receives
// the result and is then closed.
func (e *Editor) LoadAsync(ctx context.Context, source string) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- e.Load(ctx, source)
		close(ch)
	}()
	return ch
}

// Rotate adds degrees to the rotation. Positive is clockwise.
func (e *Editor) Rotate(degrees float64) {
	e.run(func() (command.Command, error) {
		return command.NewRotateCommand(&e.state.Rotation, degrees), nil
	})
}

// RotateLeft rotates 90 degrees counter-clockwise.
func (e *Editor) RotateLeft() { e.Rotate(-90) }

// RotateRight rotates 90 degrees clockwise.
func (e *Editor) RotateRight() { e.Rotate(90) }

// Flip toggles the selected axes relative to their current values.
func (e *Editor) Flip(horizontal, vertical bool) {
	e.run(func() (command.Command, error) {
		return command.NewFlipCommand(&e.state.Flip, horizontal, vertical), nil
	})
}

// FlipHorizontal mirrors left to right.
func (e *Editor) FlipHorizontal() { e.Flip(true, false) }

// FlipVertical mirrors top to bottom.
func (e *Editor) FlipVertical() { e.Flip(false, true) }

// Crop shows only the given rectangle of the source image. Rectangles that
// are empty or leave the image bounds are rejected with
// command.ErrCropOutOfBounds and change nothing.
func (e *Editor) Crop(x, y, width, height float64) error {
	return e.run(func() (command.Command, error) {
		b := e.img.Bounds()
		rect := state.Rect{X: x, Y: y, Width: width, Height: height}
		return command.NewCropCommand(&e.state.Crop, rect, b.Dx(), b.Dy())
	})
}

// Resize sets the output surface dimensions. Non-positive dimensions are
// rejected with command.ErrInvalidSize.
func (e *Editor) Resize(width, height int) error {
	return e.run(func() (command.Command, error) {
		return command.NewResizeCommand(&e.size, state.Size{Width: width, Height: height})
	})
}

// Undo reverts the most recent edit. It does nothing when there is none.
func (e *Editor) Undo() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.finishAnimationLocked()
	if e.invoker.Undo() {
		e.debugf("Undo")
		e.renderLocked()
	}
}

// Redo re-applies the most recently undone edit. It does nothing when
// there is none.
func (e *Editor) Redo() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.finishAnimationLocked()
	if e.invoker.Redo() {
		e.debugf("Redo")
		e.renderLocked()
	}
}

// Render redraws the surface from the current state.
func (e *Editor) Render() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderLocked()
}

// State returns a copy of the current edit state.
func (e *Editor) State() state.ImageState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Size returns the output surface dimensions.
func (e *Editor) Size() state.Size {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.size
}

// HasImage reports whether an image is loaded.
func (e *Editor) HasImage() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.img != nil
}

// Info describes the loaded image. ok is false when none is loaded.
func (e *Editor) Info() (info imaging.ImageInfo, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.info, e.img != nil
}

// Source returns the source string of the loaded image.
func (e *Editor) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// CanUndo reports whether Undo would change anything.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.invoker.CanUndo() || e.animFinish != nil
}

// CanRedo reports whether Redo would change anything.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.invoker.CanRedo()
}

// Export encodes the current surface contents.
func (e *Editor) Export(format imaging.Format, quality int) (*imaging.Encoded, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return imaging.Encode(e.surface.Image(), format, quality)
}

// ExportFull applies the current edits at source resolution and encodes
// the result. A valid size resizes the output to it.
func (e *Editor) ExportFull(format imaging.Format, quality int, size state.Size) (*imaging.Encoded, error) {
	e.mu.Lock()
	img, st := e.img, e.state
	e.mu.Unlock()

	if img == nil {
		return nil, ErrNoImage
	}
	return imaging.Encode(imaging.Flatten(img, st, size), format, quality)
}

// run builds and executes one command. build is called under the lock
// after any running animation has been committed, so commands always
// capture settled state.
func (e *Editor) run(build func() (command.Command, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.img == nil {
		return nil
	}
	e.finishAnimationLocked()

	cmd, err := build()
	if err != nil {
		return err
	}
	e.invoker.Execute(cmd)
	e.debugf("Execute %v", cmd)
	e.renderLocked()
	return nil
}

func (e *Editor) renderLocked() {
	if e.size.Valid() && (e.surface.Width() != e.size.Width || e.surface.Height() != e.size.Height) {
		e.surface.Resize(e.size.Width, e.size.Height)
	}
	e.renderer.Render(e.img, e.state)
}

func (e *Editor) debugf(format string, args ...interface{}) {
	if e.debug {
		e.logger.Printf(format, args...)
	}
}

// shortSource keeps data URIs out of log lines.
func shortSource(source string) string {
	const max = 64
	if len(source) <= max {
		return source
	}
	return source[:max] + "..."
}
