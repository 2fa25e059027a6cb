package wordsplit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/segment"
)

// Token is a transform unit of a text run: either a word, i.e. a maximal
// run of non-whitespace, or a span of whitespace.
type Token struct {
	Text  string
	Space bool
}

// Tokens splits text at whitespace boundaries. Concatenating the tokens
// yields text. Tokens alternate between words and whitespace.
func Tokens(text string) []Token {
	if text == "" {
		return nil
	}
	seg := segment.NewSegmenter(segment.NewSimpleWordBreaker())
	seg.Init(strings.NewReader(text))
	var tokens []Token
	var b strings.Builder
	for seg.Next() {
		fragment := seg.Text()
		b.WriteString(fragment)
		tokens = appendRuns(tokens, fragment)
	}
	if b.String() != text { // segmenter lost input, e.g. on invalid UTF-8
		tracer().Debugf("segmenter output differs from input, falling back to rune scan")
		return appendRuns(nil, text)
	}
	return tokens
}

// appendRuns splits fragment into runs of equal whitespace-ness and appends
// them to tokens, merging with the last token if it is of the same kind.
func appendRuns(tokens []Token, fragment string) []Token {
	for len(fragment) > 0 {
		r, _ := utf8.DecodeRuneInString(fragment)
		space := unicode.IsSpace(r)
		end := strings.IndexFunc(fragment, func(r rune) bool {
			return unicode.IsSpace(r) != space
		})
		if end < 0 {
			end = len(fragment)
		}
		run := fragment[:end]
		fragment = fragment[end:]
		if n := len(tokens); n > 0 && tokens[n-1].Space == space {
			tokens[n-1].Text += run
			continue
		}
		tokens = append(tokens, Token{Text: run, Space: space})
	}
	return tokens
}

// HasLetter reports whether s contains at least one letter, in any script.
func HasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}
