package animation

import (
	"sync"
	"time"

	"golang.org/x/exp/constraints"
)

// DefaultDuration is used when Options.Duration is not positive.
const DefaultDuration = 200 * time.Millisecond

// Number is the set of value types a Manager can interpolate.
type Number interface {
	constraints.Integer | constraints.Float
}

// Options describes one animation run.
//
// Every key present in From is interpolated; a key missing from To holds
// its From value. OnUpdate is called once per frame with a fresh map.
// OnComplete, if set, is called once after the final OnUpdate unless the
// run was stopped during that update.
type Options[K comparable, V Number] struct {
	From       map[K]V
	To         map[K]V
	Duration   time.Duration
	Easing     EasingFunc
	OnUpdate   func(values map[K]V)
	OnComplete func()
}

// Manager interpolates a record of numeric values over time. A manager runs
// at most one animation at a time; starting a new one cancels the previous.
type Manager[K comparable, V Number] struct {
	mu        sync.Mutex
	scheduler Scheduler
	handle    Handle
	run       uint64
	active    bool
}

// NewManager returns a manager stepping on s.
func NewManager[K comparable, V Number](s Scheduler) *Manager[K, V] {
	return &Manager[K, V]{scheduler: s}
}

// Running reports whether an animation is in flight.
func (m *Manager[K, V]) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Stop cancels the animation in flight, if any. Once Stop returns no
// OnUpdate or OnComplete of the cancelled run begins; a callback already
// executing on the scheduler's goroutine runs to completion. Stop is
// idempotent and may be called from within a callback.
func (m *Manager[K, V]) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Manager[K, V]) stopLocked() {
	if m.active {
		m.scheduler.Cancel(m.handle)
	}
	m.run++
	m.active = false
	m.handle = 0
}

// current reports whether run is still the latest run.
func (m *Manager[K, V]) current(run uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.run == run
}

// Animate cancels any run in flight and starts a new one from opts.
// The first frame is scheduled, not run synchronously. The cancelled run
// gets the same guarantee as with Stop.
func (m *Manager[K, V]) Animate(opts Options[K, V]) {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Easing == nil {
		opts.Easing = Linear
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()

	run := m.run
	start := m.scheduler.Now()

	var step func(now time.Time)
	step = func(now time.Time) {
		progress := Progress(start, now, opts.Duration)
		done := progress >= 1

		var values map[K]V
		if done {
			values = snap(opts.From, opts.To)
		} else {
			values = interpolate(opts.From, opts.To, opts.Easing(progress))
		}

		// Stop or Animate may have returned while the frame was computed.
		m.mu.Lock()
		if m.run != run || !m.active {
			m.mu.Unlock()
			return
		}
		if done {
			m.active = false
			m.handle = 0
		}
		m.mu.Unlock()

		if opts.OnUpdate != nil {
			opts.OnUpdate(values)
		}

		if done {
			if opts.OnComplete != nil && m.current(run) {
				opts.OnComplete()
			}
			return
		}

		// OnUpdate may have stopped or replaced this run.
		m.mu.Lock()
		if m.run == run && m.active {
			m.handle = m.scheduler.Schedule(step)
		}
		m.mu.Unlock()
	}

	m.active = true
	m.handle = m.scheduler.Schedule(step)
}

// Progress returns elapsed/duration clamped to [0,1].
func Progress(start, now time.Time, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	p := float64(now.Sub(start)) / float64(duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, e float64) float64 {
	return a + (b-a)*e
}

func interpolate[K comparable, V Number](from, to map[K]V, eased float64) map[K]V {
	out := make(map[K]V, len(from))
	for k, a := range from {
		b, ok := to[k]
		if !ok {
			b = a
		}
		out[k] = V(Lerp(float64(a), float64(b), eased))
	}
	return out
}

func snap[K comparable, V Number](from, to map[K]V) map[K]V {
	out := make(map[K]V, len(from))
	for k, a := range from {
		if b, ok := to[k]; ok {
			out[k] = b
		} else {
			out[k] = a
		}
	}
	return out
}
