package modifier

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/lexilens/core"
	"github.com/npillmayer/lexilens/engine/dom"
	"golang.org/x/net/html"
)

// wrapperQuery selects wrapped nodes of any variant.
var wrapperQuery = dom.MustCompileXPath("//*[@" + OriginalAttr + "]")

// legacyQuery selects parents marked by the superseded syllable modifier.
var legacyQuery = dom.MustCompileXPath("//*[@" + legacyOriginalAttr + " or @" + legacyProcessedAttr + "]")

// markerQuery compiles an XPath selecting elements with class cls.
func markerQuery(cls string) (*dom.XPath, error) {
	if cls == "" || strings.ContainsAny(cls, " '\"") {
		return nil, core.Error(core.EINVALID, "illegal marker class %q", cls)
	}
	q := fmt.Sprintf("//*[contains(concat(' ', normalize-space(@class), ' '), ' %s ')]", cls)
	return dom.CompileXPath(q)
}

// Revert replaces every wrapped node of doc by a text node holding its
// original text and merges the text nodes of the affected parents. Wrapped
// nodes are found by OriginalAttr and by the given marker classes. Revert
// returns the number of wrapped nodes restored; it is a no-op for a
// document without wrapped nodes.
func Revert(doc *dom.Document, markerClasses ...string) (int, error) {
	root := doc.Root()
	restoreLegacy(doc, legacyQuery.Select(root))
	wrappers := wrapperQuery.Select(root)
	for _, cls := range markerClasses {
		q, err := markerQuery(cls)
		if err != nil {
			return 0, err
		}
		wrappers = append(wrappers, q.Select(root)...)
	}
	parents := arraylist.New()
	seen := hashset.New()
	count := 0
	for _, w := range wrappers {
		if seen.Contains(w) {
			continue
		}
		seen.Add(w)
		if w.Parent == nil || !doc.IsConnected(w) {
			tracer().Debugf("skipping detached wrapped node")
			continue
		}
		parent := w.Parent
		original, ok := dom.Attr(w, OriginalAttr)
		if !ok {
			original = dom.TextContent(w)
		}
		if err := doc.ReplaceWith(w, doc.CreateText(original)); err != nil {
			return count, err
		}
		count++
		if !seen.Contains(parent) {
			seen.Add(parent)
			parents.Add(parent)
		}
	}
	parents.Each(func(_ int, p interface{}) {
		doc.Normalize(p.(*html.Node))
	})
	if count > 0 {
		tracer().Debugf("reverted %d wrapped nodes in %d parents", count, parents.Size())
	}
	return count, nil
}

// restoreLegacy restores the inner HTML snapshots the superseded syllable
// modifier stored on processed parents.
func restoreLegacy(doc *dom.Document, elements []*html.Node) {
	for _, el := range elements {
		if !doc.IsConnected(el) {
			continue
		}
		if snapshot, ok := dom.Attr(el, legacyOriginalAttr); ok {
			children, err := html.ParseFragment(strings.NewReader(snapshot), el)
			if err != nil {
				tracer().Errorf("cannot restore legacy snapshot: %v", err)
				continue
			}
			for c := el.FirstChild; c != nil; c = el.FirstChild {
				doc.Remove(c)
			}
			for _, c := range children {
				doc.AppendChild(el, c)
			}
		}
		doc.RemoveAttr(el, legacyOriginalAttr)
		doc.RemoveAttr(el, legacyProcessedAttr)
	}
}
