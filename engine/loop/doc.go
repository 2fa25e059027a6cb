/*
Package loop implements a single-threaded cooperative event loop.

The loop stands in for the main thread of a browser page. It runs three kinds
of work, all of them on the goroutine which drives the loop:

	tasks         posted with Post, safe to call from any goroutine
	microtasks    queued with QueueMicrotask, run after every task and callback
	frames        requested with RequestFrame, run once per frame tick

Clients drive the loop either deterministically (RunTasks, RunFrame, Drain),
which is what tests do, or in real time with Run, which ticks frames at a
fixed interval until its context is cancelled.

The loop itself never runs work in parallel. Code executed from the loop may
therefore touch shared structures, e.g. a live document, without locking.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package loop

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexilens.loop'.
func tracer() tracing.Trace {
	return tracing.Select("lexilens.loop")
}
