package animation

import (
	"sync"
	"time"
)

// Handle identifies a scheduled step so it can be cancelled.
type Handle uint64

// Scheduler runs animation steps once per frame.
//
// Schedule queues step to run on the next frame with that frame's
// timestamp. Cancel guarantees a step that has not yet started will never
// run; cancelling an unknown or already-run handle is a no-op.
type Scheduler interface {
	Now() time.Time
	Schedule(step func(now time.Time)) Handle
	Cancel(h Handle)
}

// queue is the pending-step bookkeeping shared by the schedulers.
type queue struct {
	next  Handle
	order []Handle
	steps map[Handle]func(time.Time)
}

func (q *queue) push(step func(time.Time)) Handle {
	if q.steps == nil {
		q.steps = make(map[Handle]func(time.Time))
	}
	q.next++
	q.order = append(q.order, q.next)
	q.steps[q.next] = step
	return q.next
}

func (q *queue) cancel(h Handle) {
	delete(q.steps, h)
}

// frame detaches the handles queued so far. Steps queued while the frame
// runs belong to the next frame.
func (q *queue) frame() []Handle {
	batch := q.order
	q.order = nil
	return batch
}

// take removes and returns the step for h if it is still live.
func (q *queue) take(h Handle) (func(time.Time), bool) {
	step, ok := q.steps[h]
	if ok {
		delete(q.steps, h)
	}
	return step, ok
}

func (q *queue) len() int {
	return len(q.steps)
}

// FrameScheduler is a Scheduler driven by a ticker on a single goroutine.
// Steps run serially in the order they were scheduled, so two steps never
// run concurrently.
type FrameScheduler struct {
	mu       sync.Mutex
	q        queue
	interval time.Duration
	done     chan struct{}
	once     sync.Once
}

// NewFrameScheduler starts a scheduler ticking fps times per second.
// Non-positive fps selects 60. Call Close to stop the loop goroutine.
func NewFrameScheduler(fps int) *FrameScheduler {
	if fps <= 0 {
		fps = 60
	}
	s := &FrameScheduler{
		interval: time.Second / time.Duration(fps),
		done:     make(chan struct{}),
	}
	go s.loop()
	return s
}

// Interval returns the time between frames.
func (s *FrameScheduler) Interval() time.Duration {
	return s.interval
}

// Now returns the wall clock time.
func (s *FrameScheduler) Now() time.Time {
	return time.Now()
}

// Schedule queues step for the next frame.
func (s *FrameScheduler) Schedule(step func(now time.Time)) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.push(step)
}

// Cancel drops h if it has not started.
func (s *FrameScheduler) Cancel(h Handle) {
	s.mu.Lock()
	s.q.cancel(h)
	s.mu.Unlock()
}

// Close stops the loop. Pending steps never run. Close is idempotent.
func (s *FrameScheduler) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *FrameScheduler) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.runFrame(now)
		}
	}
}

func (s *FrameScheduler) runFrame(now time.Time) {
	s.mu.Lock()
	batch := s.q.frame()
	s.mu.Unlock()

	for _, h := range batch {
		// A step earlier in this frame may have cancelled a later one.
		s.mu.Lock()
		step, ok := s.q.take(h)
		s.mu.Unlock()
		if ok {
			step(now)
		}
	}
}

// ManualScheduler is a deterministic Scheduler whose clock only moves when
// told to. Frames run on the caller's goroutine.
type ManualScheduler struct {
	mu  sync.Mutex
	q   queue
	now time.Time
}

// NewManualScheduler returns a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the manual clock time.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Schedule queues step for the next frame.
func (s *ManualScheduler) Schedule(step func(now time.Time)) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.push(step)
}

// Cancel drops h if it has not started.
func (s *ManualScheduler) Cancel(h Handle) {
	s.mu.Lock()
	s.q.cancel(h)
	s.mu.Unlock()
}

// Pending returns the number of steps waiting for a frame.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.len()
}

// Advance moves the clock forward by d and runs one frame.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	s.mu.Unlock()
	s.Frame()
}

// Frame runs every step queued before the call, at the current time.
func (s *ManualScheduler) Frame() {
	s.mu.Lock()
	batch := s.q.frame()
	now := s.now
	s.mu.Unlock()

	for _, h := range batch {
		s.mu.Lock()
		step, ok := s.q.take(h)
		s.mu.Unlock()
		if ok {
			step(now)
		}
	}
}

// Run advances frame by frame in steps of d until nothing is pending or
// maxFrames have run. It returns the number of frames run.
func (s *ManualScheduler) Run(d time.Duration, maxFrames int) int {
	n := 0
	for n < maxFrames && s.Pending() > 0 {
		s.Advance(d)
		n++
	}
	return n
}
