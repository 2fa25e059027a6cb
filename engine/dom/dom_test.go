package dom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/lexilens/core"
	"github.com/npillmayer/lexilens/engine/loop"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, src string) (*Document, *loop.Loop) {
	root, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	l := loop.New()
	doc, err := NewDocument(root, l)
	require.NoError(t, err)
	return doc, l
}

func render(t *testing.T, n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		require.NoError(t, html.Render(&buf, c))
	}
	return buf.String()
}

func TestNewDocumentRejectsNonDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.dom")
	defer teardown()
	//
	_, err := NewDocument(&html.Node{Type: html.ElementNode, Data: "p"}, loop.New())
	assert.Equal(t, core.EINVALID, core.Code(err))
	root, _ := html.Parse(strings.NewReader("<p>x</p>"))
	_, err = NewDocument(root, nil)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestBodyAndConnected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.dom")
	defer teardown()
	//
	doc, _ := parse(t, "<html><head></head><body><p>Hello</p></body></html>")
	require.NotNil(t, doc.Body())
	require.NotNil(t, doc.Head())
	p := doc.Body().FirstChild
	assert.True(t, doc.IsConnected(p))
	assert.True(t, doc.IsConnected(p.FirstChild))
	doc.Remove(p)
	assert.False(t, doc.IsConnected(p))
	assert.False(t, doc.IsConnected(p.FirstChild))
}

func TestObserverBatchesRecords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.dom")
	defer teardown()
	//
	doc, l := parse(t, "<body><div id='a'></div></body>")
	var batches [][]MutationRecord
	obs := doc.NewObserver(func(recs []MutationRecord, o *Observer) {
		batches = append(batches, recs)
	})
	require.NoError(t, obs.Observe(doc.Body(), ObserveOptions{ChildList: true, Subtree: true}))
	div := doc.Body().FirstChild
	l.Post(func() {
		for i := 0; i < 3; i++ {
			p := doc.CreateElement("p")
			require.NoError(t, doc.AppendChild(div, p))
			require.NoError(t, doc.AppendChild(p, doc.CreateText("text")))
		}
	})
	l.RunTasks()
	require.Len(t, batches, 1, "records of one task are delivered as one batch")
	assert.Len(t, batches[0], 6)
	assert.Equal(t, ChildList, batches[0][0].Type)
	assert.Equal(t, div, batches[0][0].Target)
	assert.Equal(t, 1, obs.Deliveries())
}

func TestObserverIgnoresUnobservedKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.dom")
	defer teardown()
	//
	doc, l := parse(t, "<body><p>Hello</p></body>")
	calls := 0
	obs := doc.NewObserver(func(recs []MutationRecord, o *Observer) { calls++ })
	require.NoError(t, obs.Observe(doc.Body(), ObserveOptions{ChildList: true, Subtree: true}))
	text := doc.Body().FirstChild.FirstChild
	l.Post(func() {
		require.NoError(t, doc.SetText(text, "World"))
		require.NoError(t, doc.SetAttr(doc.Body().FirstChild, "class", "x"))
	})
	l.RunTasks()
	assert.Equal(t, 0, calls)
	assert.Equal(t, uint64(2), doc.Mutations())
}

func TestDisconnectDropsPendingRecords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.dom")
	defer teardown()
	//
	doc, l := parse(t, "<body></body>")
	calls := 0
	obs := doc.NewObserver(func(recs []MutationRecord, o *Observer) { calls++ })
	require.NoError(t, obs.Observe(doc.Body(), ObserveOptions{ChildList: true}))
	l.Post(func() {
		require.NoError(t, doc.AppendChild(doc.Body(), doc.CreateText("a")))
		obs.Disconnect()
		require.NoError(t, doc.AppendChild(doc.Body(), doc.CreateText("b")))
	})
	l.RunTasks()
	assert.Equal(t, 0, calls)
	assert.False(t, obs.Observing())
}

func TestReplaceWithAndNormalize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.dom")
	defer teardown()
	//
	doc, _ := parse(t, "<body><p>elephant beautiful</p></body>")
	p := doc.Body().FirstChild
	text := p.FirstChild
	span := doc.CreateElement("span", html.Attribute{Key: "class", Val: "w"})
	require.NoError(t, doc.AppendChild(span, doc.CreateText("elephant")))
	require.NoError(t, doc.ReplaceWith(text, span, doc.CreateText(" "), doc.CreateText("beautiful")))
	assert.Equal(t, `<span class="w">elephant</span> beautiful`, render(t, p))
	assert.False(t, doc.IsConnected(text))
	//
	require.NoError(t, doc.ReplaceWith(span, doc.CreateText("elephant")))
	removed := doc.Normalize(p)
	assert.Equal(t, 2, removed)
	require.NotNil(t, p.FirstChild)
	assert.Nil(t, p.FirstChild.NextSibling)
	assert.Equal(t, "elephant beautiful", p.FirstChild.Data)
}

func TestHierarchyErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.dom")
	defer teardown()
	//
	doc, _ := parse(t, "<body><div><p>x</p></div></body>")
	div := doc.Body().FirstChild
	p := div.FirstChild
	assert.Equal(t, core.EINVALID, core.Code(doc.AppendChild(p, div)))
	assert.Equal(t, core.EINVALID, core.Code(doc.AppendChild(p.FirstChild, doc.CreateText("y"))))
	assert.Equal(t, core.EMISSING, core.Code(doc.RemoveChild(doc.Body(), p)))
	detached := doc.CreateText("z")
	assert.Equal(t, core.EDETACHED, core.Code(doc.ReplaceWith(detached, doc.CreateText("w"))))
}

func TestWalkerRejectsSubtrees(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.dom")
	defer teardown()
	//
	doc, _ := parse(t, "<body><p>one</p><svg><text>icon</text></svg><div>two<b>three</b></div></body>")
	visited := 0
	filter := func(n *html.Node) Verdict {
		visited++
		if TagName(n) == "svg" {
			return Reject
		}
		return Accept
	}
	var texts []string
	for _, n := range CollectNodes(doc.Body(), ShowText, filter) {
		texts = append(texts, n.Data)
	}
	assert.Equal(t, []string{"one", "two", "three"}, texts)
	// body, p, "one", svg, div, "two", b, "three"
	assert.Equal(t, 8, visited, "rejected subtree must not be descended")
}

func TestWalkerSkipAndReset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.dom")
	defer teardown()
	//
	doc, _ := parse(t, "<body><div><p>a</p></div></body>")
	skipDiv := func(n *html.Node) Verdict {
		if TagName(n) == "div" {
			return Skip
		}
		return Accept
	}
	w := NewWalker(doc.Body(), ShowElement, skipDiv)
	assert.Equal(t, "body", TagName(w.Next()))
	assert.Equal(t, "p", TagName(w.Next()))
	assert.Nil(t, w.Next())
	w.Reset()
	assert.Equal(t, "body", TagName(w.Next()))
}

func TestSelectorClosest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.dom")
	defer teardown()
	//
	doc, _ := parse(t, `<body><div class="lexilens-widget"><p>ui</p></div><p>page</p></body>`)
	sel := MustCompileSelector("[data-lexilens], .lexilens-widget")
	ui := doc.Body().FirstChild.FirstChild.FirstChild
	page := doc.Body().LastChild.FirstChild
	assert.NotNil(t, sel.Closest(ui))
	assert.Nil(t, sel.Closest(page))
	assert.Len(t, sel.QueryAll(doc.Root()), 1)
	_, err := CompileSelector("[[")
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestXPathSelect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.dom")
	defer teardown()
	//
	doc, _ := parse(t, `<!DOCTYPE html><html><body><p><span class="m x">a</span> <span>b</span></p>`+
		`<div><span data-orig="c" class="y">c</span></div></body></html>`)
	x := MustCompileXPath(`//span[contains(concat(' ', normalize-space(@class), ' '), ' m ')] | //span[@data-orig]`)
	nodes := x.Select(doc.Root())
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", TextContent(nodes[0]))
	assert.Equal(t, "c", TextContent(nodes[1]))
	//
	inner := MustCompileXPath(`//span`).Select(doc.Body().LastChild)
	assert.Len(t, inner, 1, "navigation must stay below the navigator's root")
}

func TestTextContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.dom")
	defer teardown()
	//
	doc, _ := parse(t, "<body><p>Hello <b>bold</b> world<!-- no --></p><p></p></body>")
	assert.Equal(t, "Hello bold world", TextContent(doc.Body().FirstChild))
	assert.Equal(t, "", TextContent(doc.Body().LastChild))
	assert.True(t, HasClass(doc.CreateElement("span", html.Attribute{Key: "class", Val: "a b"}), "b"))
}
