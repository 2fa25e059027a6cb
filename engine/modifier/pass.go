package modifier

import (
	"strings"
	"time"

	"github.com/npillmayer/lexilens/engine/dom"
	"github.com/npillmayer/lexilens/engine/loop"
	"github.com/npillmayer/lexilens/engine/wordsplit"
	"golang.org/x/net/html"
)

// Continuation tells the caller of a processing step how to go on.
type Continuation int

// Continuations of Pass.Step.
const (
	More      Continuation = iota // nodes are waiting, schedule another step
	Done                          // queue exhausted
	Cancelled                     // pass aborted, do not schedule again
)

func (c Continuation) String() string {
	switch c {
	case More:
		return "more"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	}
	return "?"
}

// Stats count the work of an engine.
type Stats struct {
	Passes      int // processing passes started
	Steps       int // time-sliced steps run
	Transformed int // text nodes replaced by wrapped nodes
	Wrapped     int // wrapped nodes created
	Plain       int // eligible text nodes left as plain text
	Skipped     int // text nodes which became ineligible after collection
	Stale       int // text nodes detached before processing
	Batches     int // mutation batches handled by the watcher
	Reverted    int // wrapped nodes restored
}

// Pass is a resumable processing pass over a queue of text nodes.
type Pass struct {
	doc     *dom.Document
	variant Variant
	filter  *Filter
	conf    Config
	queue   *Queue
	clock   loop.Clock
	active  func() bool  // checked at the start of every step
	guard   func() error // checked before every write
	stats   *Stats
}

// NewPass creates a processing pass for the text nodes in queue.
func NewPass(doc *dom.Document, v Variant, f *Filter, conf Config, queue *Queue) *Pass {
	return &Pass{
		doc:     doc,
		variant: v,
		filter:  f,
		conf:    conf,
		queue:   queue,
		clock:   loop.SystemClock(),
		active:  func() bool { return true },
		guard:   func() error { return nil },
		stats:   &Stats{},
	}
}

// Remaining returns the number of text nodes not yet processed.
func (p *Pass) Remaining() int {
	return p.queue.Len()
}

// Step processes queued text nodes as long as the elapsed time is below
// budget. At least one node is processed per step.
func (p *Pass) Step(budget time.Duration) Continuation {
	if !p.active() {
		tracer().Debugf("pass cancelled with %d nodes waiting", p.queue.Len())
		p.queue.Clear()
		return Cancelled
	}
	p.stats.Steps++
	start := p.clock.Now()
	for first := true; !p.queue.Empty(); first = false {
		if !first && p.clock.Now().Sub(start) >= budget {
			break
		}
		if err := p.process(p.queue.Pop()); err != nil {
			tracer().Errorf("pass aborted: %v", err)
			p.queue.Clear()
			return Cancelled
		}
	}
	if p.queue.Empty() {
		return Done
	}
	return More
}

// RunAll processes the whole queue in one go.
func (p *Pass) RunAll() error {
	p.stats.Steps++
	for !p.queue.Empty() {
		if err := p.process(p.queue.Pop()); err != nil {
			p.queue.Clear()
			return err
		}
	}
	return nil
}

func (p *Pass) process(n *html.Node) error {
	if !p.doc.IsConnected(n) {
		tracer().Debugf("skipping detached text node %q", abbrev(n.Data))
		p.stats.Stale++
		return nil
	}
	if !p.filter.Eligible(n) {
		p.stats.Skipped++
		return nil
	}
	nodes, wrapped := Transform(p.doc, n.Data, p.variant, p.conf)
	if wrapped == 0 {
		p.stats.Plain++
		return nil
	}
	if err := p.guard(); err != nil {
		return err
	}
	if err := p.doc.ReplaceWith(n, nodes...); err != nil {
		return err
	}
	p.stats.Transformed++
	p.stats.Wrapped += wrapped
	return nil
}

// Transform splits text into transform units and lets v wrap the words.
// Whitespace and words without letters are kept as text, merged into as few
// text nodes as possible. It returns the replacement nodes for text and the
// number of wrapped nodes among them. If nothing is wrapped, nodes is nil.
func Transform(doc *dom.Document, text string, v Variant, conf Config) (nodes []*html.Node, wrapped int) {
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			nodes = append(nodes, doc.CreateText(plain.String()))
			plain.Reset()
		}
	}
	for _, token := range wordsplit.Tokens(text) {
		if token.Space || !wordsplit.HasLetter(token.Text) {
			plain.WriteString(token.Text)
			continue
		}
		w := v.Wrap(doc, token.Text, conf)
		if w == nil {
			plain.WriteString(token.Text)
			continue
		}
		flush()
		nodes = append(nodes, w)
		wrapped++
	}
	if wrapped == 0 {
		return nil, 0
	}
	flush()
	return nodes, wrapped
}

func abbrev(s string) string {
	if r := []rune(s); len(r) > 24 {
		return string(r[:24]) + "…"
	}
	return s
}
