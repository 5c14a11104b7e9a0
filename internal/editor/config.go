package editor

import (
	"image/color"
	"log"
	"time"

	"github.com/ironsheep/image-editor/internal/animation"
	"github.com/ironsheep/image-editor/internal/imaging"
	"github.com/ironsheep/image-editor/internal/render"
)

// Default surface dimensions used when Config leaves them zero.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Config configures a new Editor. Every field is optional.
type Config struct {
	// Surface is drawn on. When nil a GGSurface of Width x Height is
	// created. When set and Width/Height are non-zero, it is resized to them.
	Surface render.Surface

	// Width and Height of the surface; zero selects the defaults.
	Width  int
	Height int

	// Background fills the surface on every clear. Nil is transparent.
	// Ignored when Surface is set.
	Background color.Color

	// Source is loaded by Open after construction.
	Source string

	// Scheduler steps animations. When nil the editor starts and owns a
	// FrameScheduler running at FPS.
	Scheduler animation.Scheduler
	FPS       int

	// Loader resolves sources. Nil selects imaging.NewLoader().
	Loader *imaging.Loader

	// Animation holds the defaults for animated operations.
	Animation AnimationOptions

	// Logger receives load failures and, with Debug, every edit.
	// Nil selects log.Default().
	Logger *log.Logger
	Debug  bool
}

// AnimationOptions tunes one animated operation. Zero fields fall back to
// the editor's defaults, then to animation.DefaultDuration and linear easing.
type AnimationOptions struct {
	Duration time.Duration
	Easing   animation.EasingFunc

	// OnComplete runs after the animation finishes on its own and its
	// command has been recorded. It does not run when the animation is
	// cut short by another edit.
	OnComplete func()
}

func (o AnimationOptions) withDefaults(d AnimationOptions) AnimationOptions {
	if o.Duration <= 0 {
		o.Duration = d.Duration
	}
	if o.Easing == nil {
		o.Easing = d.Easing
	}
	return o
}
