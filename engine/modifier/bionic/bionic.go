/*
Package bionic implements the bionic-reading text variant.

Bionic reading emphasizes the first part of every word, letting the eye
skim along fixation points. Every word containing a letter is wrapped into

	<span class="lexilens-bionic-processed" data-lexilens-original="reading"><b>read</b>ing</span>

While the variant is enabled, a style sheet with id "lexilens-bionic-styles"
is present in the document head.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bionic

import (
	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/lexilens/core"
	"github.com/npillmayer/lexilens/engine/dom"
	"github.com/npillmayer/lexilens/engine/modifier"
	"github.com/npillmayer/lexilens/engine/wordsplit"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'lexilens.modifier'.
func tracer() tracing.Trace {
	return tracing.Select("lexilens.modifier")
}

// Marker class and style sheet id of the variant.
const (
	MarkerClass = "lexilens-bionic-processed"
	StyleID     = "lexilens-bionic-styles"
)

var styleSelector = dom.MustCompileSelector("style#" + StyleID)

// Variant is the bionic-reading variant.
type Variant struct{}

// New creates a bionic-reading variant.
func New() *Variant {
	return &Variant{}
}

// Name is "bionic".
func (v *Variant) Name() string {
	return "bionic"
}

// MarkerClass returns the class of wrapped nodes.
func (v *Variant) MarkerClass() string {
	return MarkerClass
}

// Prepare injects the style sheet into the document head, or refreshes it
// if it is already present.
func (v *Variant) Prepare(doc *dom.Document, conf modifier.Config) error {
	sheet := StyleSheet().String()
	if style := findStyle(doc); style != nil {
		if style.FirstChild != nil && style.FirstChild.Type == html.TextNode {
			return doc.SetText(style.FirstChild, sheet)
		}
		return doc.AppendChild(style, doc.CreateText(sheet))
	}
	head := doc.Head()
	if head == nil {
		return core.Error(core.EMISSING, "document has no head for the bionic style sheet")
	}
	style := doc.CreateElement(atom.Style.String(), html.Attribute{Key: "id", Val: StyleID})
	style.AppendChild(doc.CreateText(sheet))
	tracer().Debugf("injecting style sheet %q", StyleID)
	return doc.AppendChild(head, style)
}

// Wrap wraps word into a span with a bold prefix.
func (v *Variant) Wrap(doc *dom.Document, word string, conf modifier.Config) *html.Node {
	b := wordsplit.NewBionic(conf.BoldPercent)
	if conf.LongWord > 0 {
		b.LongWord = conf.LongWord
	}
	if conf.LongWordCap > 0 {
		b.LongWordCap = conf.LongWordCap
	}
	bold, rest := b.Split(word)
	if bold == "" {
		return nil
	}
	span := modifier.NewWrapper(doc, MarkerClass, word)
	strong := doc.CreateElement(atom.B.String())
	strong.AppendChild(doc.CreateText(bold))
	span.AppendChild(strong)
	if rest != "" {
		span.AppendChild(doc.CreateText(rest))
	}
	return span
}

// Cleanup removes the style sheet.
func (v *Variant) Cleanup(doc *dom.Document) {
	if style := findStyle(doc); style != nil {
		tracer().Debugf("removing style sheet %q", StyleID)
		doc.Remove(style)
	}
}

func findStyle(doc *dom.Document) *html.Node {
	if found := styleSelector.QueryAll(doc.Root()); len(found) > 0 {
		return found[0]
	}
	return nil
}

// StyleSheet returns the style sheet for wrapped nodes.
func StyleSheet() *css.Stylesheet {
	sheet := css.NewStylesheet()
	sheet.Rules = append(sheet.Rules,
		&css.Rule{
			Kind:      css.QualifiedRule,
			Prelude:   "." + MarkerClass,
			Selectors: []string{"." + MarkerClass},
			Declarations: []*css.Declaration{
				{Property: "position", Value: "relative"},
			},
		},
		&css.Rule{
			Kind:      css.QualifiedRule,
			Prelude:   "." + MarkerClass + " b",
			Selectors: []string{"." + MarkerClass + " b"},
			Declarations: []*css.Declaration{
				{Property: "font-weight", Value: "800", Important: true},
				{Property: "color", Value: "inherit", Important: true},
				{Property: "background", Value: "transparent", Important: true},
			},
		},
	)
	return sheet
}

var _ modifier.Variant = &Variant{}
