package loop

import (
	"context"
	"sync"
	"time"

	"github.com/npillmayer/lexilens/core"
)

// DefaultFrameInterval is the frame period of Run, approximately 60 fps.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameCallback is called once per requested frame with the frame's
// timestamp.
type FrameCallback func(now time.Time)

// FrameID identifies a requested frame callback. IDs are never reused.
type FrameID uint64

// Loop is a cooperative event loop. The zero value is not usable, create
// loops with New.
type Loop struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	tasks    []func()
	micro    []func()
	frames   map[FrameID]FrameCallback
	order    []FrameID
	nextID   FrameID
	frameno  uint64
	wake     chan struct{}
}

// Option configures a loop.
type Option func(*Loop)

// WithClock sets the time source of a loop.
func WithClock(c Clock) Option {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithFrameInterval sets the frame period used by Run.
func WithFrameInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// New creates an event loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		clock:    SystemClock(),
		interval: DefaultFrameInterval,
		frames:   make(map[FrameID]FrameCallback),
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Clock returns the time source of the loop.
func (l *Loop) Clock() Clock {
	return l.clock
}

// Now reads the loop's clock.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Post enqueues a task. Post may be called from any goroutine.
func (l *Loop) Post(task func()) {
	if task == nil {
		return
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// QueueMicrotask enqueues f to run at the next microtask checkpoint, i.e.
// directly after the currently executing task or frame callback.
func (l *Loop) QueueMicrotask(f func()) {
	if f == nil {
		return
	}
	l.mu.Lock()
	l.micro = append(l.micro, f)
	l.mu.Unlock()
}

// RequestFrame registers cb to be called at the next frame.
func (l *Loop) RequestFrame(cb FrameCallback) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.frames[id] = cb
	l.order = append(l.order, id)
	return id
}

// CancelFrame unregisters a frame callback. Cancelling an unknown or already
// executed frame is a no-op.
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.frames, id)
}

// PendingFrames returns the number of frame callbacks waiting for the next
// frame.
func (l *Loop) PendingFrames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

// PendingTasks returns the number of queued tasks.
func (l *Loop) PendingTasks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Frames returns the number of frames run so far.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frameno
}

// RunTasks runs all tasks which have been queued when RunTasks is called.
// Tasks posted meanwhile are left for the next call. It returns the number
// of tasks run.
func (l *Loop) RunTasks() int {
	l.mu.Lock()
	n := len(l.tasks)
	l.mu.Unlock()
	for i := 0; i < n; i++ {
		l.mu.Lock()
		task := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		l.mu.Unlock()
		l.invoke(task)
	}
	return n
}

// RunFrame runs one frame: every callback requested before the frame
// started, in order of request. Callbacks requested from within the frame
// are deferred to the next frame. It returns the number of callbacks run.
func (l *Loop) RunFrame() int {
	l.mu.Lock()
	ids := l.order
	l.order = nil
	l.frameno++
	frameno := l.frameno
	l.mu.Unlock()
	now := l.clock.Now()
	n := 0
	for _, id := range ids {
		l.mu.Lock()
		cb, ok := l.frames[id]
		delete(l.frames, id)
		l.mu.Unlock()
		if !ok { // cancelled
			continue
		}
		l.invoke(func() { cb(now) })
		n++
	}
	if n > 0 {
		tracer().Debugf("frame #%d ran %d callbacks", frameno, n)
	}
	return n
}

// Drain runs tasks and frames until the loop is idle. If the loop is still
// busy after maxFrames frames, Drain gives up and returns an error; this
// catches runaway work like a self-feeding observer.
func (l *Loop) Drain(maxFrames int) error {
	for frames := 0; ; {
		l.RunTasks()
		if l.PendingFrames() == 0 {
			if l.PendingTasks() == 0 {
				return nil
			}
			continue
		}
		if frames >= maxFrames {
			return core.Error(core.EINTERNAL, "event loop still busy after %d frames", maxFrames)
		}
		l.RunFrame()
		frames++
	}
}

// Run drives the loop in real time until ctx is done. Tasks run as soon as
// they are posted, frames run at the loop's frame interval.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	tracer().Infof("event loop running with frame interval %v", l.interval)
	for {
		l.RunTasks()
		select {
		case <-ctx.Done():
			tracer().Debugf("event loop stopped: %v", ctx.Err())
			return ctx.Err()
		case <-l.wake:
		case <-ticker.C:
			if l.PendingFrames() > 0 {
				l.RunFrame()
			}
		}
	}
}

// invoke runs f followed by a microtask checkpoint.
func (l *Loop) invoke(f func()) {
	f()
	l.checkpoint()
}

// checkpoint runs microtasks until the microtask queue is empty, including
// microtasks queued by microtasks.
func (l *Loop) checkpoint() {
	for {
		l.mu.Lock()
		if len(l.micro) == 0 {
			l.mu.Unlock()
			return
		}
		m := l.micro[0]
		l.micro[0] = nil
		l.micro = l.micro[1:]
		l.mu.Unlock()
		m()
	}
}
