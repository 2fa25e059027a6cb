package wordsplit

import (
	"unicode/utf8"

	"github.com/npillmayer/lexilens/core/percent"
)

// Defaults for capping the bold prefix of long words.
const (
	DefaultLongWord    = 15
	DefaultLongWordCap = percent.Percent(40)
)

// Bionic splits words into a bold prefix and the rest.
//
// The prefix length is ⌈L·Percent/100⌉ runes for a word of L runes, at least
// 1. Words longer than LongWord runes are capped at ⌈L·LongWordCap/100⌉, so
// that long words are not over-bolded.
type Bionic struct {
	Percent     percent.Percent
	LongWord    int
	LongWordCap percent.Percent
}

// NewBionic creates a bionic splitter with default long-word capping.
func NewBionic(p percent.Percent) Bionic {
	return Bionic{Percent: p, LongWord: DefaultLongWord, LongWordCap: DefaultLongWordCap}
}

// PrefixLength returns the number of runes to bold for a word of n runes.
func (b Bionic) PrefixLength(n int) int {
	if n < 1 {
		return 0
	}
	k := b.Percent.CeilOf(n)
	if k < 1 {
		k = 1
	}
	if b.LongWord > 0 && n > b.LongWord {
		if capped := b.LongWordCap.CeilOf(n); capped >= 1 && capped < k {
			k = capped
		}
	}
	if k > n {
		k = n
	}
	return k
}

// Split divides word into the prefix to bold and the rest.
func (b Bionic) Split(word string) (bold, rest string) {
	if !utf8.ValidString(word) {
		return word, ""
	}
	runes := []rune(word)
	k := b.PrefixLength(len(runes))
	return string(runes[:k]), string(runes[k:])
}
