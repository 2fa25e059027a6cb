/*
Package dom implements a live HTML document with mutation observation.

A Document wraps a tree of golang.org/x/net/html nodes. Clients which need
their changes to be observable do not touch the html.Node links directly but
go through the mutation methods of Document (AppendChild, InsertBefore,
RemoveChild, ReplaceWith, SetText, SetAttr, Normalize). Each mutation produces
a MutationRecord, which is queued for every Observer interested in the
mutation's target. Records are delivered in batches at the next microtask
checkpoint of the document's event loop, in the spirit of the W3C
MutationObserver.

Besides mutation, the package offers the read-side tools an engine needs to
operate on a foreign document: a pre-order tree walker with subtree
rejection, CSS selector matching (github.com/andybalholm/cascadia), XPath
queries (github.com/antchfx/xpath) and text content extraction.

Documents are not safe for concurrent use. All access has to happen on the
goroutine driving the document's event loop.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexilens.dom'.
func tracer() tracing.Trace {
	return tracing.Select("lexilens.dom")
}
