/*
Package syllable implements the syllable-splitting text variant.

Words of more than one syllable are wrapped into

	<span class="lexilens-syllable" data-lexilens-syllables="el·e·phant"
	      data-lexilens-original="elephant">el·e·phant</span>

with the syllables joined by a configurable separator. Short words and
words of a single syllable remain plain text.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package syllable

import (
	"strings"

	"github.com/npillmayer/lexilens/engine/dom"
	"github.com/npillmayer/lexilens/engine/modifier"
	"github.com/npillmayer/lexilens/engine/wordsplit"
	"golang.org/x/net/html"
)

// MarkerClass is the class of wrapped nodes.
const MarkerClass = "lexilens-syllable"

// SyllablesAttr holds the separated syllables of a wrapped word.
const SyllablesAttr = "data-lexilens-syllables"

// DefaultSeparator is used when no separator is configured.
const DefaultSeparator = "·"

// Variant is the syllable-splitting variant.
type Variant struct{}

// New creates a syllable-splitting variant.
func New() *Variant {
	return &Variant{}
}

// Name is "syllable".
func (v *Variant) Name() string {
	return "syllable"
}

// MarkerClass returns the class of wrapped nodes.
func (v *Variant) MarkerClass() string {
	return MarkerClass
}

// Prepare has nothing to prepare.
func (v *Variant) Prepare(doc *dom.Document, conf modifier.Config) error {
	return nil
}

// Wrap splits word into syllables. Words with a single syllable are not
// wrapped.
func (v *Variant) Wrap(doc *dom.Document, word string, conf modifier.Config) *html.Node {
	splitter := wordsplit.NewSyllableSplitter()
	if conf.MinSplitLength > 0 {
		splitter.MinLength = conf.MinSplitLength
	}
	syllables := splitter.Split(word)
	if len(syllables) < 2 {
		return nil
	}
	sep := conf.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	joined := strings.Join(syllables, sep)
	span := modifier.NewWrapper(doc, MarkerClass, word,
		html.Attribute{Key: SyllablesAttr, Val: joined})
	span.AppendChild(doc.CreateText(joined))
	return span
}

// Cleanup has nothing to clean up.
func (v *Variant) Cleanup(doc *dom.Document) {}

var _ modifier.Variant = &Variant{}
