/*
Package html reads HTML input into live documents and writes documents back
as HTML.

Parsing is done by golang.org/x/net/html, which follows the HTML5 parsing
algorithm. A parsed tree always has <html>, <head> and <body> elements.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"bytes"
	"io"
	"strings"

	"github.com/npillmayer/lexilens/core"
	"github.com/npillmayer/lexilens/engine/dom"
	"github.com/npillmayer/schuko/tracing"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'lexilens.html'.
func tracer() tracing.Trace {
	return tracing.Select("lexilens.html")
}

// Parse reads an HTML document from r. Mutation records of the document are
// delivered through queue.
func Parse(r io.Reader, queue dom.MicrotaskQueue) (*dom.Document, error) {
	root, err := nethtml.Parse(r)
	if err != nil {
		tracer().Errorf("unable to parse HTML input: %v", err)
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML input")
	}
	return dom.NewDocument(root, queue)
}

// ParseString reads an HTML document from a string.
func ParseString(s string, queue dom.MicrotaskQueue) (*dom.Document, error) {
	return Parse(strings.NewReader(s), queue)
}

// ParseFragment parses an HTML fragment in the context of element ctx of
// doc, which defaults to the document body. The returned nodes are detached
// and may be inserted with the mutation methods of doc.
func ParseFragment(doc *dom.Document, ctx *nethtml.Node, fragment string) ([]*nethtml.Node, error) {
	if ctx == nil {
		ctx = doc.Body()
	}
	if ctx == nil {
		ctx = &nethtml.Node{Type: nethtml.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	nodes, err := nethtml.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML fragment")
	}
	return nodes, nil
}

// Render writes doc as HTML to w.
func Render(w io.Writer, doc *dom.Document) error {
	return RenderNode(w, doc.Root())
}

// RenderNode writes the subtree at n as HTML to w.
func RenderNode(w io.Writer, n *nethtml.Node) error {
	if n == nil {
		return core.Error(core.EMISSING, "no node to render")
	}
	return nethtml.Render(w, n)
}

// OuterHTML returns the HTML of n including n itself.
func OuterHTML(n *nethtml.Node) string {
	var b bytes.Buffer
	if err := RenderNode(&b, n); err != nil {
		return ""
	}
	return b.String()
}

// InnerHTML returns the HTML of the children of n.
func InnerHTML(n *nethtml.Node) string {
	if n == nil {
		return ""
	}
	var b bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := nethtml.Render(&b, c); err != nil {
			return b.String()
		}
	}
	return b.String()
}
