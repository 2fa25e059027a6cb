package dom

import (
	"github.com/npillmayer/cords"
	"golang.org/x/net/html"
)

// TextContent returns the concatenated character data of all text nodes in
// the subtree at n, in document order. It resembles
//
//	node.textContent
//
// in JavaScript: comments are ignored and no styling is respected.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	cord, leafs := TextCord(n)
	if leafs == 0 {
		return ""
	}
	return cord.String()
}

// TextCord builds a text cord for the subtree at n. The leaf organization of
// the cord reflects the text nodes of the subtree, one leaf per non-empty
// text node. It returns the cord together with its number of leafs.
func TextCord(n *html.Node) (cords.Cord, int) {
	b := cords.NewBuilder()
	leafs := 0
	w := NewWalker(n, ShowText, nil)
	for t := w.Next(); t != nil; t = w.Next() {
		if t.Data == "" {
			continue
		}
		b.Append(textLeaf{content: t.Data})
		leafs++
	}
	return b.Cord(), leafs
}

// textLeaf is the leaf type for cords from text nodes.
type textLeaf struct {
	content string
}

// Weight is part of interface cords.Leaf.
func (l textLeaf) Weight() uint64 {
	return uint64(len(l.content))
}

// String is part of interface cords.Leaf.
func (l textLeaf) String() string {
	return l.content
}

// Split is part of interface cords.Leaf.
func (l textLeaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return textLeaf{content: l.content[:i]}, textLeaf{content: l.content[i:]}
}

// Substring is part of interface cords.Leaf.
func (l textLeaf) Substring(i, j uint64) []byte {
	return []byte(l.content)[i:j]
}

var _ cords.Leaf = textLeaf{}
