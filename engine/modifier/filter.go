package modifier

import (
	"strings"

	"github.com/npillmayer/lexilens/core/parameters"
	"github.com/npillmayer/lexilens/engine/dom"
	"github.com/npillmayer/lexilens/engine/wordsplit"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blocked lists the elements whose content is never transformed.
var blocked = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Code:     true,
	atom.Pre:      true,
	atom.Kbd:      true,
	atom.Samp:     true,
	atom.Textarea: true,
	atom.Input:    true,
	atom.Select:   true,
	atom.Option:   true,
	atom.Button:   true,
	atom.Img:      true,
	atom.Svg:      true,
	atom.Canvas:   true,
	atom.Video:    true,
	atom.Audio:    true,
	atom.Iframe:   true,
	atom.Object:   true,
	atom.Embed:    true,
	atom.Math:     true,
	atom.Template: true,
}

// Filter decides whether nodes may be transformed. It has no side effects.
type Filter struct {
	marker string        // marker class of the active variant
	ownUI  *dom.Selector // elements of our own user interface
}

// NewFilter creates a filter rejecting nodes wrapped with markerClass and
// nodes matched by ownUI. If ownUI is nil, the default selector for the
// LexiLens widgets is used.
func NewFilter(markerClass string, ownUI *dom.Selector) *Filter {
	if ownUI == nil {
		ownUI = defaultOwnUI
	}
	return &Filter{marker: markerClass, ownUI: ownUI}
}

var defaultOwnUI = dom.MustCompileSelector(parameters.NewRegisters().S(parameters.P_OWNUI))

// Accept is a dom.NodeFilter. Elements are rejected together with their
// subtree if they must not be transformed, and skipped otherwise. Text nodes
// are accepted if they contain a letter.
func (f *Filter) Accept(n *html.Node) dom.Verdict {
	switch n.Type {
	case html.ElementNode:
		if !f.admits(n) {
			return dom.Reject
		}
		return dom.Skip
	case html.TextNode:
		if wordsplit.HasLetter(n.Data) {
			return dom.Accept
		}
		return dom.Skip
	case html.CommentNode, html.DoctypeNode, html.RawNode:
		return dom.Reject
	}
	return dom.Skip
}

// Eligible checks a single text node, including all of its ancestors.
func (f *Filter) Eligible(n *html.Node) bool {
	if n == nil || n.Type != html.TextNode || !wordsplit.HasLetter(n.Data) {
		return false
	}
	return f.AdmitsAncestors(n)
}

// AdmitsAncestors reports whether no ancestor of n rejects its subtree.
func (f *Filter) AdmitsAncestors(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && !f.admits(p) {
			return false
		}
	}
	return true
}

// admits applies the element rules in order: blocked tags, editable
// content, own user interface, processed marker.
func (f *Filter) admits(el *html.Node) bool {
	if blocked[el.DataAtom] || blocked[atom.Lookup([]byte(dom.TagName(el)))] {
		return false
	}
	if v, ok := dom.Attr(el, "contenteditable"); ok && !strings.EqualFold(strings.TrimSpace(v), "false") {
		return false
	}
	if f.ownUI.Matches(el) {
		return false
	}
	if IsWrapper(el) || (f.marker != "" && dom.HasClass(el, f.marker)) {
		return false
	}
	return true
}
