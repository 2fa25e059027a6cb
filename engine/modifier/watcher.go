package modifier

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/lexilens/core"
	"github.com/npillmayer/lexilens/engine/dom"
	"golang.org/x/net/html"
)

// WatcherState is the state of a Watcher.
type WatcherState int

// States of a watcher.
//
//	Disarmed ──Arm──▶ Armed ──batch──▶ Suspended ──done──▶ Armed
//	   ▲                 │                  │
//	   └─────Disarm──────┴──────────────────┘
const (
	Disarmed  WatcherState = iota // not observing
	Armed                         // observing the document body
	Suspended                     // disconnected, processing a batch
)

func (s WatcherState) String() string {
	switch s {
	case Disarmed:
		return "disarmed"
	case Armed:
		return "armed"
	case Suspended:
		return "suspended"
	}
	return "?"
}

// ProcessFunc transforms the text nodes collected from a mutation batch.
type ProcessFunc func(nodes []*html.Node) error

// Watcher observes a document for added content and hands eligible text
// nodes of every mutation batch to a ProcessFunc. It disconnects from the
// document while processing, so it never observes its own writes.
type Watcher struct {
	doc       *dom.Document
	filter    *Filter
	observer  *dom.Observer
	process   ProcessFunc
	keepArmed func() bool
	state     WatcherState
	batches   int
}

// NewWatcher creates a disarmed watcher. After a batch has been processed,
// the watcher re-arms only if keepArmed returns true (nil meaning always).
func NewWatcher(doc *dom.Document, f *Filter, process ProcessFunc, keepArmed func() bool) *Watcher {
	if keepArmed == nil {
		keepArmed = func() bool { return true }
	}
	w := &Watcher{doc: doc, filter: f, process: process, keepArmed: keepArmed}
	w.observer = doc.NewObserver(w.handleBatch)
	return w
}

// State returns the current state.
func (w *Watcher) State() WatcherState {
	return w.state
}

// Batches returns the number of mutation batches handled so far.
func (w *Watcher) Batches() int {
	return w.batches
}

// Arm starts observation of the document body.
func (w *Watcher) Arm() error {
	if w.state == Armed {
		return nil
	}
	if err := w.observe(); err != nil {
		return err
	}
	tracer().Debugf("watcher armed")
	return nil
}

// Disarm stops observation. It may be called in any state.
func (w *Watcher) Disarm() {
	if w.state == Disarmed {
		return
	}
	w.observer.Disconnect()
	w.state = Disarmed
	tracer().Debugf("watcher disarmed")
}

// CheckWritable returns an error if the watcher is observing the document.
// Writers have to call it before modifying the document.
func (w *Watcher) CheckWritable() error {
	if w.state == Armed {
		return core.Error(core.EINTERNAL, "document write while mutation watcher is armed")
	}
	return nil
}

func (w *Watcher) observe() error {
	body := w.doc.Body()
	if body == nil {
		return core.Error(core.EMISSING, "document has no body to observe")
	}
	err := w.observer.Observe(body, dom.ObserveOptions{ChildList: true, Subtree: true})
	if err != nil {
		return err
	}
	w.state = Armed
	return nil
}

func (w *Watcher) handleBatch(records []dom.MutationRecord, o *dom.Observer) {
	if w.state != Armed {
		return
	}
	w.observer.Disconnect()
	w.state = Suspended
	w.batches++
	nodes := w.collect(records)
	tracer().Debugf("mutation batch #%d: %d records, %d text nodes", w.batches, len(records), len(nodes))
	if len(nodes) > 0 {
		if err := w.process(nodes); err != nil {
			tracer().Errorf("processing mutation batch: %v", err)
		}
	}
	if w.state != Suspended { // disarmed while processing
		return
	}
	if !w.keepArmed() {
		w.state = Disarmed
		return
	}
	if err := w.observe(); err != nil {
		tracer().Errorf("cannot re-arm watcher: %v", err)
		w.state = Disarmed
	}
}

// collect gathers eligible text nodes from the added nodes of records, in
// order of discovery and without duplicates.
func (w *Watcher) collect(records []dom.MutationRecord) []*html.Node {
	seen := hashset.New()
	var nodes []*html.Node
	for _, rec := range records {
		for _, added := range rec.Added {
			if !w.doc.IsConnected(added) || IsWrapper(added) {
				continue
			}
			for _, n := range Collect(added, w.filter) {
				if !seen.Contains(n) {
					seen.Add(n)
					nodes = append(nodes, n)
				}
			}
		}
	}
	return nodes
}
