package modifier

import (
	"github.com/npillmayer/lexilens/engine/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// OriginalAttr is the attribute of a wrapped node holding the original text
// of the word it replaces.
const OriginalAttr = "data-lexilens-original"

// Attributes of the superseded syllable modifier, which marked the parent
// element instead of wrapping words. Revert removes them.
const (
	legacyProcessedAttr = "data-lexilens-syllable"
	legacyOriginalAttr  = "data-lexilens-syllable-original"
)

// Variant is a concrete text transformation.
type Variant interface {
	Name() string
	// MarkerClass is the class identifying wrapped nodes of the variant.
	MarkerClass() string
	// Prepare is called on enable, before any text is transformed.
	Prepare(doc *dom.Document, conf Config) error
	// Wrap transforms a single word. It returns a detached wrapped node, or
	// nil if the word is to be kept as plain text.
	Wrap(doc *dom.Document, word string, conf Config) *html.Node
	// Cleanup is called on disable, after all wrapped nodes are reverted.
	Cleanup(doc *dom.Document)
}

// NewWrapper creates a detached <span> carrying the marker class and the
// original text of a word. Variants fill in the transformed markup.
func NewWrapper(doc *dom.Document, class, original string, attrs ...html.Attribute) *html.Node {
	a := make([]html.Attribute, 0, len(attrs)+2)
	a = append(a, html.Attribute{Key: "class", Val: class})
	a = append(a, attrs...)
	a = append(a, html.Attribute{Key: OriginalAttr, Val: original})
	return doc.CreateElement(atom.Span.String(), a...)
}

// IsWrapper reports whether n is a wrapped node, of any variant.
func IsWrapper(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	_, ok := dom.Attr(n, OriginalAttr)
	return ok
}
