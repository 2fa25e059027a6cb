package dom

import (
	"github.com/npillmayer/lexilens/core"
	"golang.org/x/net/html"
)

// RecordType is the kind of a mutation.
type RecordType uint8

// Kinds of mutation records.
const (
	ChildList RecordType = iota + 1
	CharacterData
	Attributes
)

func (t RecordType) String() string {
	switch t {
	case ChildList:
		return "childList"
	case CharacterData:
		return "characterData"
	case Attributes:
		return "attributes"
	}
	return "<unknown>"
}

// MutationRecord describes a single mutation of a document.
type MutationRecord struct {
	Type            RecordType
	Target          *html.Node   // parent for ChildList, the node itself otherwise
	Added           []*html.Node // ChildList only
	Removed         []*html.Node // ChildList only
	PreviousSibling *html.Node
	NextSibling     *html.Node
	AttributeName   string
	OldValue        string
}

// ObserveOptions select the mutations an observer is interested in.
type ObserveOptions struct {
	ChildList       bool
	CharacterData   bool
	Attributes      bool
	AttributeFilter []string
	Subtree         bool
}

// Callback receives a batch of mutation records, in order of occurrence.
type Callback func(records []MutationRecord, o *Observer)

type observation struct {
	target *html.Node
	opts   ObserveOptions
}

// Observer receives batches of mutation records for the nodes it observes.
// Records are delivered at the microtask checkpoint following the mutation.
type Observer struct {
	doc          *Document
	callback     Callback
	observations []observation
	records      []MutationRecord
	scheduled    bool
	deliveries   int
}

// NewObserver creates an observer for d. It does not observe anything until
// Observe is called.
func (d *Document) NewObserver(cb Callback) *Observer {
	return &Observer{doc: d, callback: cb}
}

// Observe starts observing target. Observing a target a second time replaces
// its options.
func (o *Observer) Observe(target *html.Node, opts ObserveOptions) error {
	if target == nil {
		return core.Error(core.EINVALID, "observer target is nil")
	}
	if !opts.ChildList && !opts.CharacterData && !opts.Attributes {
		return core.Error(core.EINVALID, "observer options select no kind of mutation")
	}
	for i := range o.observations {
		if o.observations[i].target == target {
			o.observations[i].opts = opts
			return nil
		}
	}
	o.observations = append(o.observations, observation{target: target, opts: opts})
	o.doc.register(o)
	return nil
}

// Disconnect stops all observation. Records not yet delivered are dropped.
func (o *Observer) Disconnect() {
	o.observations = nil
	o.records = nil
	o.doc.unregister(o)
}

// Observing reports whether o observes at least one target.
func (o *Observer) Observing() bool {
	return len(o.observations) > 0
}

// TakeRecords returns and clears the records not yet delivered.
func (o *Observer) TakeRecords() []MutationRecord {
	recs := o.records
	o.records = nil
	return recs
}

// Deliveries returns how often the observer's callback has been invoked.
func (o *Observer) Deliveries() int {
	return o.deliveries
}

func (o *Observer) interestedIn(rec *MutationRecord) bool {
	for _, obs := range o.observations {
		if !obs.matches(rec) {
			continue
		}
		if rec.Target == obs.target || (obs.opts.Subtree && isAncestor(obs.target, rec.Target)) {
			return true
		}
	}
	return false
}

func (obs observation) matches(rec *MutationRecord) bool {
	switch rec.Type {
	case ChildList:
		return obs.opts.ChildList
	case CharacterData:
		return obs.opts.CharacterData
	case Attributes:
		if !obs.opts.Attributes {
			return false
		}
		if len(obs.opts.AttributeFilter) == 0 {
			return true
		}
		for _, name := range obs.opts.AttributeFilter {
			if name == rec.AttributeName {
				return true
			}
		}
	}
	return false
}

func (o *Observer) enqueue(rec MutationRecord) {
	o.records = append(o.records, rec)
	if o.scheduled {
		return
	}
	o.scheduled = true
	o.doc.queue.QueueMicrotask(o.deliver)
}

func (o *Observer) deliver() {
	o.scheduled = false
	if len(o.records) == 0 || o.callback == nil {
		o.records = nil
		return
	}
	recs := o.records
	o.records = nil
	o.deliveries++
	tracer().Debugf("delivering %d mutation records", len(recs))
	o.callback(recs, o)
}

// isAncestor reports whether a is an ancestor of n.
func isAncestor(a, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}
