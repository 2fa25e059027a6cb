/*
Package wordsplit splits text runs into transform units and transforms units
for reading aids.

Tokens splits a run of text at whitespace boundaries, using the simple word
breaker of github.com/npillmayer/uax/segment. A Bionic splitter divides a
word into a bold prefix and the rest, a SyllableSplitter divides a word into
syllables with a vowel/consonant heuristic for western languages.

All functions in this package are pure and lossless: concatenating the
output always yields the input. Where a heuristic cannot decide, the word
is kept as a single unit.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package wordsplit

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexilens.wordsplit'.
func tracer() tracing.Trace {
	return tracing.Select("lexilens.wordsplit")
}
