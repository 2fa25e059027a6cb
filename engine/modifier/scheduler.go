package modifier

import (
	"time"

	"github.com/npillmayer/lexilens/engine/loop"
)

// Handle identifies a scheduled step. The zero handle is never returned by
// a scheduler and may be cancelled without effect.
type Handle uint64

// Scheduler decides when the next step of a processing pass runs.
// Schedulers are driven from the goroutine of the document's event loop.
type Scheduler interface {
	Schedule(step func()) Handle
	Cancel(h Handle)
}

// --- Animation frames ------------------------------------------------------

// FrameScheduler runs steps in animation frames of an event loop.
type FrameScheduler struct {
	loop *loop.Loop
}

// NewFrameScheduler creates a scheduler for the frames of l.
func NewFrameScheduler(l *loop.Loop) *FrameScheduler {
	return &FrameScheduler{loop: l}
}

// Schedule requests a frame for step.
func (s *FrameScheduler) Schedule(step func()) Handle {
	id := s.loop.RequestFrame(func(time.Time) {
		step()
	})
	return Handle(id)
}

// Cancel cancels the frame request of h.
func (s *FrameScheduler) Cancel(h Handle) {
	if h != 0 {
		s.loop.CancelFrame(loop.FrameID(h))
	}
}

// --- Tasks -----------------------------------------------------------------

// TaskScheduler runs every step as a separate task of an event loop.
type TaskScheduler struct {
	loop    *loop.Loop
	last    Handle
	pending map[Handle]bool
}

// NewTaskScheduler creates a scheduler posting steps to l.
func NewTaskScheduler(l *loop.Loop) *TaskScheduler {
	return &TaskScheduler{loop: l, pending: make(map[Handle]bool)}
}

// Schedule posts step as a task.
func (s *TaskScheduler) Schedule(step func()) Handle {
	s.last++
	h := s.last
	s.pending[h] = true
	s.loop.Post(func() {
		if !s.pending[h] {
			return
		}
		delete(s.pending, h)
		step()
	})
	return h
}

// Cancel keeps the task of h from running its step.
func (s *TaskScheduler) Cancel(h Handle) {
	delete(s.pending, h)
}

// --- Immediate -------------------------------------------------------------

// ImmediateScheduler runs steps synchronously. Steps scheduled from within
// a step are run after it returns, in order, so that chains of steps do
// not grow the call stack.
type ImmediateScheduler struct {
	last      Handle
	running   bool
	steps     []scheduled
	cancelled map[Handle]bool
}

type scheduled struct {
	h    Handle
	step func()
}

// NewImmediateScheduler creates a synchronous scheduler.
func NewImmediateScheduler() *ImmediateScheduler {
	return &ImmediateScheduler{cancelled: make(map[Handle]bool)}
}

// Schedule runs step, or queues it if called from within a step.
func (s *ImmediateScheduler) Schedule(step func()) Handle {
	s.last++
	h := s.last
	s.steps = append(s.steps, scheduled{h: h, step: step})
	if s.running {
		return h
	}
	s.running = true
	defer func() { s.running = false }()
	for len(s.steps) > 0 {
		next := s.steps[0]
		s.steps = s.steps[1:]
		if s.cancelled[next.h] {
			delete(s.cancelled, next.h)
			continue
		}
		next.step()
	}
	return h
}

// Cancel drops a queued step.
func (s *ImmediateScheduler) Cancel(h Handle) {
	for _, st := range s.steps {
		if st.h == h {
			s.cancelled[h] = true
			return
		}
	}
}

var _ Scheduler = &FrameScheduler{}
var _ Scheduler = &TaskScheduler{}
var _ Scheduler = &ImmediateScheduler{}
