package dom

import (
	"golang.org/x/net/html"
)

// Verdict is the result of a walker filter for a node.
type Verdict int

// Filter verdicts. Skip excludes a node but descends into its children,
// Reject excludes a node together with its subtree.
const (
	Accept Verdict = iota
	Skip
	Reject
)

// Show selects the node types a walker yields.
type Show uint8

// Node type masks.
const (
	ShowElement Show = 1 << iota
	ShowText
	ShowComment
	ShowAll = ShowElement | ShowText | ShowComment
)

func (s Show) includes(t html.NodeType) bool {
	switch t {
	case html.ElementNode:
		return s&ShowElement != 0
	case html.TextNode:
		return s&ShowText != 0
	case html.CommentNode:
		return s&ShowComment != 0
	}
	return false
}

// NodeFilter decides on nodes during a walk. It is called for every node
// reached, regardless of the walker's Show mask, so that filters may reject
// element subtrees from a text-only walk.
type NodeFilter func(n *html.Node) Verdict

// Walker iterates a subtree in document order (depth-first, pre-order),
// including the root itself. The subtree must not be mutated while walking.
type Walker struct {
	root   *html.Node
	next   *html.Node
	show   Show
	filter NodeFilter
}

// NewWalker creates a walker for the subtree at root. A nil filter accepts
// every node.
func NewWalker(root *html.Node, show Show, filter NodeFilter) *Walker {
	return &Walker{root: root, next: root, show: show, filter: filter}
}

// Next returns the next node yielded by the walk, or nil at the end.
func (w *Walker) Next() *html.Node {
	for w.next != nil {
		n := w.next
		verdict := Accept
		if w.filter != nil {
			verdict = w.filter(n)
		}
		if verdict != Reject && n.FirstChild != nil {
			w.next = n.FirstChild
		} else {
			w.next = w.following(n)
		}
		if verdict == Accept && w.show.includes(n.Type) {
			return n
		}
	}
	return nil
}

// Reset restarts the walk at the root.
func (w *Walker) Reset() {
	w.next = w.root
}

// following finds the node after n's subtree, staying below root.
func (w *Walker) following(n *html.Node) *html.Node {
	for n != nil && n != w.root {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

// CollectNodes returns all nodes a walk over root would yield.
func CollectNodes(root *html.Node, show Show, filter NodeFilter) []*html.Node {
	var nodes []*html.Node
	w := NewWalker(root, show, filter)
	for n := w.Next(); n != nil; n = w.Next() {
		nodes = append(nodes, n)
	}
	return nodes
}
