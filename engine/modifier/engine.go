package modifier

import (
	"github.com/npillmayer/lexilens/core"
	"github.com/npillmayer/lexilens/core/parameters"
	"github.com/npillmayer/lexilens/engine/dom"
	"github.com/npillmayer/lexilens/engine/loop"
	"golang.org/x/net/html"
)

// Engine applies a text variant to a live document. An engine is bound to
// a single document; several engines may work on different documents.
// Engines are not safe for concurrent use and have to be driven from the
// goroutine of the document's event loop.
type Engine struct {
	doc       *dom.Document
	variant   Variant
	sched     Scheduler
	clock     loop.Clock
	regs      *parameters.Registers
	ownUI     *dom.Selector
	filter    *Filter
	watcher   *Watcher
	enabled   bool
	requested Config // configuration as passed to Enable
	conf      Config // effective configuration
	pass      *Pass  // initial pass in flight
	handle    Handle // next step of the initial pass
	idle      bool   // initial pass has completed
	onIdle    []func()
	stats     Stats
}

// Option configures an engine.
type Option func(*Engine)

// WithLoop lets the engine schedule processing steps in animation frames of
// l and measure frame budgets with l's clock.
func WithLoop(l *loop.Loop) Option {
	return func(e *Engine) {
		e.sched = NewFrameScheduler(l)
		e.clock = l.Clock()
	}
}

// WithScheduler sets the scheduler for processing steps.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sched = s
		}
	}
}

// WithClock sets the clock for measuring frame budgets.
func WithClock(c loop.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithRegisters sets the registers providing defaults for configurations.
func WithRegisters(regs *parameters.Registers) Option {
	return func(e *Engine) {
		if regs != nil {
			e.regs = regs
		}
	}
}

// WithOwnUI sets the selector for elements of the LexiLens user interface,
// which are never transformed.
func WithOwnUI(sel *dom.Selector) Option {
	return func(e *Engine) {
		e.ownUI = sel
	}
}

// New creates a disabled engine for doc. Without options, processing steps
// run synchronously.
func New(doc *dom.Document, v Variant, opts ...Option) (*Engine, error) {
	if doc == nil || v == nil {
		return nil, core.Error(core.EINVALID, "engine needs a document and a variant")
	}
	e := &Engine{
		doc:     doc,
		variant: v,
		sched:   NewImmediateScheduler(),
		clock:   loop.SystemClock(),
		regs:    parameters.NewRegisters(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ownUI == nil {
		sel, err := dom.CompileSelector(e.regs.S(parameters.P_OWNUI))
		if err != nil {
			return nil, err
		}
		e.ownUI = sel
	}
	e.filter = NewFilter(v.MarkerClass(), e.ownUI)
	e.watcher = NewWatcher(doc, e.filter, e.processBatch, e.IsActive)
	return e, nil
}

// Enable transforms the document and keeps transforming added content
// until Disable is called. Enabling an enabled engine with the same
// configuration does nothing; with a different configuration, the document
// is reverted and transformed again.
func (e *Engine) Enable(conf Config) error {
	if err := conf.Validate(); err != nil {
		return err
	}
	if e.enabled {
		if conf == e.requested {
			return nil
		}
		tracer().Infof("%s: configuration changed, re-applying", e.variant.Name())
		e.Disable()
	}
	body := e.doc.Body()
	if body == nil {
		return core.Error(core.EMISSING, "document has no body")
	}
	e.regs.Begingroup()
	conf.push(e.regs)
	effective := ConfigFromRegisters(e.regs)
	if err := e.variant.Prepare(e.doc, effective); err != nil {
		e.regs.Endgroup()
		return err
	}
	e.enabled = true
	e.idle = false
	e.requested = conf
	e.conf = effective
	nodes := Collect(body, e.filter)
	tracer().Infof("%s: processing %d text nodes", e.variant.Name(), len(nodes))
	e.pass = e.newPass(NewQueue(nodes...))
	e.handle = e.sched.Schedule(e.step)
	return nil
}

// Disable stops observation, cancels processing and reverts all wrapped
// nodes. Disabling a disabled engine does nothing.
func (e *Engine) Disable() {
	if !e.enabled {
		return
	}
	e.enabled = false
	e.watcher.Disarm()
	e.sched.Cancel(e.handle)
	e.handle = 0
	e.pass = nil
	e.idle = false
	n, err := Revert(e.doc, e.variant.MarkerClass())
	e.stats.Reverted += n
	if err != nil {
		tracer().Errorf("%s: revert: %v", e.variant.Name(), err)
	}
	e.variant.Cleanup(e.doc)
	e.regs.Endgroup()
	tracer().Infof("%s: disabled, %d wrapped nodes reverted", e.variant.Name(), n)
}

// IsActive reports whether the engine is enabled.
func (e *Engine) IsActive() bool {
	return e.enabled
}

// Idle reports whether the initial processing pass has completed, i.e. the
// engine is enabled and watching for added content.
func (e *Engine) Idle() bool {
	return e.enabled && e.idle
}

// OnIdle registers f to be called whenever an initial processing pass has
// completed.
func (e *Engine) OnIdle(f func()) {
	if f != nil {
		e.onIdle = append(e.onIdle, f)
	}
}

// Config returns the effective configuration of the current enable-cycle.
func (e *Engine) Config() Config {
	return e.conf
}

// Variant returns the variant the engine applies.
func (e *Engine) Variant() Variant {
	return e.variant
}

// Watcher returns the engine's mutation watcher.
func (e *Engine) Watcher() *Watcher {
	return e.watcher
}

// Stats returns the work counters of the engine.
func (e *Engine) Stats() Stats {
	return e.stats
}

func (e *Engine) newPass(q *Queue) *Pass {
	p := NewPass(e.doc, e.variant, e.filter, e.conf, q)
	p.clock = e.clock
	p.active = e.IsActive
	p.guard = e.watcher.CheckWritable
	p.stats = &e.stats
	e.stats.Passes++
	return p
}

// step runs one time-sliced step of the initial pass.
func (e *Engine) step() {
	e.handle = 0
	p := e.pass
	if p == nil {
		return
	}
	switch p.Step(e.conf.FrameBudget) {
	case More:
		e.handle = e.sched.Schedule(e.step)
	case Done:
		e.pass = nil
		e.idle = true
		tracer().Debugf("%s: initial pass complete after %d steps", e.variant.Name(), e.stats.Steps)
		if err := e.watcher.Arm(); err != nil {
			tracer().Errorf("%s: %v", e.variant.Name(), err)
		}
		for _, f := range e.onIdle {
			f()
		}
	case Cancelled:
		if e.pass == p {
			e.pass = nil
		}
	}
}

// processBatch transforms the text nodes of a mutation batch.
func (e *Engine) processBatch(nodes []*html.Node) error {
	if !e.enabled {
		return nil
	}
	e.stats.Batches++
	return e.newPass(NewQueue(nodes...)).RunAll()
}
