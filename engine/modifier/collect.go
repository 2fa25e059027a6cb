package modifier

import (
	"github.com/npillmayer/lexilens/engine/dom"
	"golang.org/x/net/html"
)

// Collect returns the eligible text nodes of the subtree at root, in
// document order. Subtrees rejected by f are not descended. If root is
// inside a rejected subtree, nothing is collected.
func Collect(root *html.Node, f *Filter) []*html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.TextNode {
		if f.Eligible(root) {
			return []*html.Node{root}
		}
		return nil
	}
	if !f.AdmitsAncestors(root) {
		return nil
	}
	return dom.CollectNodes(root, dom.ShowText, f.Accept)
}
