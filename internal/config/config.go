// Package config loads host settings for the image editor from an optional
// TOML file and IMAGE_EDITOR_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/ironsheep/image-editor/internal/animation"
	"github.com/ironsheep/image-editor/internal/editor"
	"github.com/ironsheep/image-editor/internal/imaging"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "IMAGE_EDITOR_"

// Config holds the host settings.
type Config struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Background is a hex colour such as "#ffffff". Empty is transparent.
	Background string `toml:"background"`

	FPS int `toml:"fps"`

	// CrossOrigin is "anonymous" or "use-credentials".
	CrossOrigin string `toml:"cross_origin"`

	// MaxImageBytes limits the size of a loaded source.
	MaxImageBytes int64 `toml:"max_image_bytes"`

	// AnimationMS is the default animation duration in milliseconds.
	AnimationMS int `toml:"animation_ms"`

	// Easing names the default easing curve.
	Easing string `toml:"easing"`

	// LogLevel enables verbose logging when set to "debug".
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width:         editor.DefaultWidth,
		Height:        editor.DefaultHeight,
		FPS:           60,
		CrossOrigin:   string(imaging.Anonymous),
		MaxImageBytes: imaging.DefaultMaxBytes,
		AnimationMS:   int(animation.DefaultDuration / time.Millisecond),
		Easing:        "linear",
	}
}

// Load returns Default overlaid with the TOML file at path (when path is
// non-empty) and then with environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("failed to parse config: %s", strict.String())
		}
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"WIDTH", &c.Width},
		{"HEIGHT", &c.Height},
		{"FPS", &c.FPS},
		{"ANIMATION_MS", &c.AnimationMS},
	}
	for _, f := range ints {
		v, ok := lookup(EnvPrefix + f.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, f.name, v, err)
		}
		*f.dst = n
	}

	if v, ok := lookup(EnvPrefix + "MAX_IMAGE_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_IMAGE_BYTES %q: %w", EnvPrefix, v, err)
		}
		c.MaxImageBytes = n
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"BACKGROUND", &c.Background},
		{"CROSS_ORIGIN", &c.CrossOrigin},
		{"EASING", &c.Easing},
		{"LOG_LEVEL", &c.LogLevel},
	}
	for _, f := range strs {
		if v, ok := lookup(EnvPrefix + f.name); ok {
			*f.dst = strings.TrimSpace(v)
		}
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", c.FPS)
	}
	if c.AnimationMS < 0 {
		return fmt.Errorf("invalid animation duration %dms", c.AnimationMS)
	}
	if c.MaxImageBytes < 0 {
		return fmt.Errorf("invalid image byte limit %d", c.MaxImageBytes)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if _, err := imaging.ParseCrossOrigin(c.CrossOrigin); err != nil {
		return err
	}
	if _, ok := animation.LookupEasing(c.Easing); !ok {
		return fmt.Errorf("unknown easing %q (want one of %s)", c.Easing, strings.Join(animation.EasingNames(), ", "))
	}
	return nil
}

// BackgroundColor parses Background. An empty value or "transparent"
// returns nil.
func (c Config) BackgroundColor() (color.Color, error) {
	switch strings.ToLower(c.Background) {
	case "", "transparent", "none":
		return nil, nil
	}
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return nil, fmt.Errorf("invalid background %q: %w", c.Background, err)
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// AnimationDuration returns AnimationMS as a duration.
func (c Config) AnimationDuration() time.Duration {
	return time.Duration(c.AnimationMS) * time.Millisecond
}

// EasingFunc returns the named easing curve, falling back to linear.
func (c Config) EasingFunc() animation.EasingFunc {
	if fn, ok := animation.LookupEasing(c.Easing); ok {
		return fn
	}
	return animation.Linear
}

// Debug reports whether verbose logging is on.
func (c Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// Editor converts the settings into an editor configuration. The returned
// config has no Scheduler, so the editor starts its own at FPS.
func (c Config) Editor(logger *log.Logger) (editor.Config, error) {
	if err := c.Validate(); err != nil {
		return editor.Config{}, err
	}
	bg, _ := c.BackgroundColor()
	mode, _ := imaging.ParseCrossOrigin(c.CrossOrigin)

	loader := imaging.NewLoader()
	loader.CrossOrigin = mode
	loader.MaxBytes = c.MaxImageBytes

	return editor.Config{
		Width:      c.Width,
		Height:     c.Height,
		Background: bg,
		FPS:        c.FPS,
		Loader:     loader,
		Animation: editor.AnimationOptions{
			Duration: c.AnimationDuration(),
			Easing:   c.EasingFunc(),
		},
		Logger: logger,
		Debug:  c.Debug(),
	}, nil
}
