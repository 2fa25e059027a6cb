package dom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/lexilens/core"
	"golang.org/x/net/html"
)

// Selector is a compiled CSS selector.
type Selector struct {
	source string
	sel    cascadia.Selector
}

// CompileSelector compiles a CSS selector (group) like "[data-x], .y".
func CompileSelector(source string) (*Selector, error) {
	sel, err := cascadia.Compile(source)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot compile selector %q", source)
	}
	return &Selector{source: source, sel: sel}, nil
}

// MustCompileSelector is like CompileSelector, but panics on error.
func MustCompileSelector(source string) *Selector {
	s, err := CompileSelector(source)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Selector) String() string {
	return s.source
}

// Matches reports whether element n matches s. Non-element nodes never match.
func (s *Selector) Matches(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && s.sel.Match(n)
}

// Closest returns the nearest inclusive ancestor element of n matching s,
// or nil. For a text node the search starts at its parent.
func (s *Selector) Closest(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if s.Matches(n) {
			return n
		}
	}
	return nil
}

// QueryAll returns all elements in the subtree at root (including root)
// matching s, in document order.
func (s *Selector) QueryAll(root *html.Node) []*html.Node {
	if root == nil {
		return nil
	}
	return s.sel.MatchAll(root)
}

// --- Node helpers ----------------------------------------------------------

// Attr returns the value of attribute key of n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether element n carries class cls.
func HasClass(n *html.Node, cls string) bool {
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == cls {
			return true
		}
	}
	return false
}

// ParentElement returns the nearest ancestor of n which is an element.
func ParentElement(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

// TagName returns the lower-case tag of an element, or "" for other nodes.
func TagName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}
