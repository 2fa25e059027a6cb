package dom

import (
	"github.com/npillmayer/lexilens/core"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MicrotaskQueue is where a document schedules the delivery of mutation
// records. loop.Loop implements it.
type MicrotaskQueue interface {
	QueueMicrotask(func())
}

// Document is a live HTML document.
type Document struct {
	root      *html.Node
	queue     MicrotaskQueue
	observers []*Observer
	mutations uint64
}

// NewDocument wraps a parsed HTML tree. root has to be a document node.
func NewDocument(root *html.Node, queue MicrotaskQueue) (*Document, error) {
	if root == nil || root.Type != html.DocumentNode {
		return nil, core.Error(core.EINVALID, "document root has to be a document node")
	}
	if queue == nil {
		return nil, core.Error(core.EINVALID, "document needs a microtask queue for mutation delivery")
	}
	return &Document{root: root, queue: queue}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *html.Node {
	return findElement(d.root, atom.Body)
}

// Head returns the <head> element, or nil.
func (d *Document) Head() *html.Node {
	return findElement(d.root, atom.Head)
}

// Mutations returns the number of mutations applied to the document so far.
func (d *Document) Mutations() uint64 {
	return d.mutations
}

// IsConnected reports whether n is part of the document tree.
func (d *Document) IsConnected(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

// CreateElement creates a detached element node.
func (d *Document) CreateElement(tag string, attrs ...html.Attribute) *html.Node {
	a := atom.Lookup([]byte(tag))
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: a,
	}
	if len(attrs) > 0 {
		n.Attr = append([]html.Attribute(nil), attrs...)
	}
	return n
}

// CreateText creates a detached text node.
func (d *Document) CreateText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// --- Mutations -------------------------------------------------------------

// AppendChild appends child as last child of parent. If child is attached
// somewhere, it is removed from there first.
func (d *Document) AppendChild(parent, child *html.Node) error {
	return d.InsertBefore(parent, child, nil)
}

// InsertBefore inserts child into parent, in front of ref. If ref is nil,
// child is appended.
func (d *Document) InsertBefore(parent, child, ref *html.Node) error {
	if err := checkHierarchy(parent, child); err != nil {
		return err
	}
	if ref != nil && ref.Parent != parent {
		return core.Error(core.EMISSING, "reference node is not a child of <%s>", parent.Data)
	}
	if ref == child {
		return nil
	}
	d.detach(child)
	prev := parent.LastChild
	if ref != nil {
		prev = ref.PrevSibling
	}
	parent.InsertBefore(child, ref)
	d.notify(MutationRecord{
		Type:            ChildList,
		Target:          parent,
		Added:           []*html.Node{child},
		PreviousSibling: prev,
		NextSibling:     ref,
	})
	return nil
}

// RemoveChild removes child from parent.
func (d *Document) RemoveChild(parent, child *html.Node) error {
	if parent == nil || child == nil || child.Parent != parent {
		return core.Error(core.EMISSING, "node to remove is not a child of its designated parent")
	}
	d.detach(child)
	return nil
}

// Remove removes n from its parent. A detached n is left untouched.
func (d *Document) Remove(n *html.Node) {
	if n != nil {
		d.detach(n)
	}
}

// ReplaceWith replaces old by nodes, in order, producing a single mutation
// record. Without nodes, old is simply removed.
func (d *Document) ReplaceWith(old *html.Node, nodes ...*html.Node) error {
	if old == nil || old.Parent == nil {
		return core.Error(core.EDETACHED, "cannot replace a node without parent")
	}
	parent := old.Parent
	for _, n := range nodes {
		if err := checkHierarchy(parent, n); err != nil {
			return err
		}
		if n == old {
			return core.Error(core.EINVALID, "node cannot replace itself")
		}
	}
	for _, n := range nodes {
		d.detach(n)
	}
	prev, next := old.PrevSibling, old.NextSibling
	for _, n := range nodes {
		parent.InsertBefore(n, old)
	}
	parent.RemoveChild(old)
	d.notify(MutationRecord{
		Type:            ChildList,
		Target:          parent,
		Added:           append([]*html.Node(nil), nodes...),
		Removed:         []*html.Node{old},
		PreviousSibling: prev,
		NextSibling:     next,
	})
	return nil
}

// SetText changes the character data of a text or comment node.
func (d *Document) SetText(n *html.Node, data string) error {
	if n == nil || (n.Type != html.TextNode && n.Type != html.CommentNode) {
		return core.Error(core.EINVALID, "character data can only be set on text or comment nodes")
	}
	old := n.Data
	if old == data {
		return nil
	}
	n.Data = data
	d.notify(MutationRecord{Type: CharacterData, Target: n, OldValue: old})
	return nil
}

// SetAttr sets an attribute of an element.
func (d *Document) SetAttr(n *html.Node, key, val string) error {
	if n == nil || n.Type != html.ElementNode {
		return core.Error(core.EINVALID, "attributes can only be set on elements")
	}
	old, found := Attr(n, key)
	if found {
		for i := range n.Attr {
			if n.Attr[i].Key == key && n.Attr[i].Namespace == "" {
				n.Attr[i].Val = val
				break
			}
		}
	} else {
		n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	}
	d.notify(MutationRecord{Type: Attributes, Target: n, AttributeName: key, OldValue: old})
	return nil
}

// RemoveAttr removes an attribute from an element, if present.
func (d *Document) RemoveAttr(n *html.Node, key string) {
	if n == nil || n.Type != html.ElementNode {
		return
	}
	for i, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			d.notify(MutationRecord{Type: Attributes, Target: n, AttributeName: key, OldValue: a.Val})
			return
		}
	}
}

// Normalize puts the subtree below n into normal form: no empty text nodes
// and no adjacent text nodes. It returns the number of text nodes removed.
func (d *Document) Normalize(n *html.Node) int {
	if n == nil {
		return 0
	}
	removed := 0
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type != html.TextNode {
			removed += d.Normalize(c)
			c = next
			continue
		}
		if c.Data == "" {
			d.detach(c)
			removed++
			c = next
			continue
		}
		merged := c.Data
		for next != nil && next.Type == html.TextNode {
			merged += next.Data
			following := next.NextSibling
			d.detach(next)
			removed++
			next = following
		}
		if merged != c.Data {
			d.SetText(c, merged)
		}
		c = next
	}
	return removed
}

// detach unlinks n from its parent and records the removal.
func (d *Document) detach(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	prev, next := n.PrevSibling, n.NextSibling
	parent.RemoveChild(n)
	d.notify(MutationRecord{
		Type:            ChildList,
		Target:          parent,
		Removed:         []*html.Node{n},
		PreviousSibling: prev,
		NextSibling:     next,
	})
}

func (d *Document) notify(rec MutationRecord) {
	d.mutations++
	for _, o := range d.observers {
		if o.interestedIn(&rec) {
			o.enqueue(rec)
		}
	}
}

func (d *Document) register(o *Observer) {
	for _, x := range d.observers {
		if x == o {
			return
		}
	}
	d.observers = append(d.observers, o)
}

func (d *Document) unregister(o *Observer) {
	for i, x := range d.observers {
		if x == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

// ---------------------------------------------------------------------------

func checkHierarchy(parent, child *html.Node) error {
	if parent == nil || child == nil {
		return core.Error(core.EINVALID, "illegal nil node in mutation")
	}
	if parent.Type != html.ElementNode && parent.Type != html.DocumentNode {
		return core.Error(core.EINVALID, "node of type %d cannot have children", parent.Type)
	}
	if child.Type == html.DocumentNode {
		return core.Error(core.EINVALID, "document node cannot be inserted")
	}
	for p := parent; p != nil; p = p.Parent {
		if p == child {
			return core.Error(core.EINVALID, "cannot insert a node into its own subtree")
		}
	}
	return nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
