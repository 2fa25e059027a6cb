/*
Package modifier implements the text-node transformation engine of LexiLens.

An Engine transforms the text of a live document for a reading aid. The
concrete transformation is supplied by a Variant (see sub-packages bionic
and syllable). The engine works in phases:

Enable collects all eligible text nodes below the document body (Collect,
guarded by a Filter) and hands them to a processing Pass. The pass replaces
text nodes by wrapped nodes in time-sliced steps, each step bounded by a
frame budget and scheduled through a Scheduler, usually an animation frame
of the document's event loop. When the pass has finished, a Watcher is armed
which observes the document body for added content and transforms new nodes
batch by batch. The watcher disconnects from the document before it writes,
so it never sees its own mutations.

Disable disarms the watcher, cancels the in-flight pass and reverts every
wrapped node to its original text (Revert).

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package modifier

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexilens.modifier'.
func tracer() tracing.Trace {
	return tracing.Select("lexilens.modifier")
}
