package wordsplit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/derekparker/trie"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinSplitLength is the minimum number of runes of a word to be
// considered for syllable splitting.
const DefaultMinSplitLength = 4

// SyllableSplitter splits words into syllables.
//
// The heuristic works on letter runs of a word. Vowels (after folding
// diacritics) form the nuclei of syllables, adjacent vowels forming a single
// nucleus. Consonant graphemes like "ch" or "ph" count as a single
// consonant. For a cluster of consonants between two nuclei:
//
//	one consonant     split before it (V|CV), but a lone word-initial
//	                  vowel keeps it (VC|V); "x" and "ck" stay left
//	two consonants    split between them (VC|CV)
//	more              split after the first one (VC|CCV)
//
// A final "e" after a consonant is silent, except in a final consonant+"le",
// where the split goes before that consonant (ta|ble).
type SyllableSplitter struct {
	MinLength int // words shorter than this stay a single unit
}

// NewSyllableSplitter creates a splitter which leaves words of up to 3
// runes alone.
func NewSyllableSplitter() SyllableSplitter {
	return SyllableSplitter{MinLength: DefaultMinSplitLength}
}

// Syllables splits word with the default splitter.
func Syllables(word string) []string {
	return NewSyllableSplitter().Split(word)
}

// Split splits word into syllables. Concatenating the result yields word.
// Short words and words the heuristic cannot handle are returned as a
// single syllable.
func (s SyllableSplitter) Split(word string) []string {
	minlen := s.MinLength
	if minlen < 1 {
		minlen = DefaultMinSplitLength
	}
	if !utf8.ValidString(word) {
		return []string{word}
	}
	runes := []rune(word)
	if len(runes) < minlen {
		return []string{word}
	}
	var cuts []int
	for start := 0; start < len(runes); {
		if !unicode.IsLetter(runes[start]) {
			start++
			continue
		}
		end := start
		for end < len(runes) && unicode.IsLetter(runes[end]) {
			end++
		}
		if end-start >= minlen {
			for _, c := range letterRunCuts(runes[start:end]) {
				cuts = append(cuts, start+c)
			}
		}
		start = end
	}
	if len(cuts) == 0 {
		return []string{word}
	}
	syllables := make([]string, 0, len(cuts)+1)
	prev := 0
	for _, c := range cuts {
		if c <= prev || c >= len(runes) {
			tracer().Debugf("syllable heuristic produced illegal cut %d in %q", c, word)
			return []string{word}
		}
		syllables = append(syllables, string(runes[prev:c]))
		prev = c
	}
	syllables = append(syllables, string(runes[prev:]))
	if strings.Join(syllables, "") != word {
		return []string{word}
	}
	return syllables
}

// --- Heuristic -------------------------------------------------------------

const vowels = "aeiouy"

// graphemes holds consonant combinations which are never split.
var graphemes = func() *trie.Trie {
	t := trie.New()
	for _, g := range []string{"ch", "ck", "gh", "ph", "qu", "sch", "sh", "th", "wh"} {
		t.Add(g, nil)
	}
	return t
}()

// unit is a consonant grapheme or a vowel nucleus, as a rune interval.
type unit struct {
	from, to int
	vowel    bool
}

func (u unit) len() int {
	return u.to - u.from
}

// letterRunCuts returns the rune positions inside run where a new syllable
// starts.
func letterRunCuts(run []rune) []int {
	folded := foldRunes(run)
	units := segmentUnits(folded)
	if n := len(units); n >= 2 && isSilentE(run, folded, units) {
		units[n-1].vowel = false
	}
	var nuclei []int
	for i, u := range units {
		if u.vowel {
			nuclei = append(nuclei, i)
		}
	}
	var cuts []int
	for k := 0; k+1 < len(nuclei); k++ {
		cluster := units[nuclei[k]+1 : nuclei[k+1]]
		if len(cluster) == 0 {
			continue
		}
		last := k+1 == len(nuclei)-1
		var cut int
		switch {
		case last && isFinalLE(folded, units, cluster):
			cut = cluster[len(cluster)-2].from
		case len(cluster) == 1:
			c := cluster[0]
			first := units[nuclei[k]]
			if (nuclei[k] == 0 && first.len() == 1) || keepsLeft(folded, c) {
				cut = c.to
			} else {
				cut = c.from
			}
		case len(cluster) == 2:
			cut = cluster[1].from
		default:
			cut = cluster[0].to
		}
		if cut > 0 && cut < len(run) {
			cuts = append(cuts, cut)
		}
	}
	return cuts
}

// segmentUnits groups folded runes into vowel nuclei and consonant units.
func segmentUnits(folded []rune) []unit {
	var units []unit
	for i := 0; i < len(folded); {
		if isVowelAt(folded, i) {
			j := i + 1
			for j < len(folded) && isVowelAt(folded, j) {
				j++
			}
			units = append(units, unit{from: i, to: j, vowel: true})
			i = j
			continue
		}
		j := i + graphemeLength(folded[i:])
		units = append(units, unit{from: i, to: j})
		i = j
	}
	return units
}

// isVowelAt classifies position i; "y" is a consonant at the start of a word
// and in front of a vowel.
func isVowelAt(folded []rune, i int) bool {
	r := folded[i]
	if !strings.ContainsRune(vowels, r) {
		return false
	}
	if r == 'y' {
		if i == 0 {
			return false
		}
		if i+1 < len(folded) && folded[i+1] != 'y' && strings.ContainsRune(vowels, folded[i+1]) {
			return false
		}
	}
	return true
}

// graphemeLength returns the length of the longest consonant grapheme at
// the start of s, at least 1.
func graphemeLength(s []rune) int {
	length := 1
	var prefix strings.Builder
	for i, r := range s {
		prefix.WriteRune(r)
		key := prefix.String()
		if _, ok := graphemes.Find(key); ok && i > 0 {
			length = i + 1
		}
		if !graphemes.HasKeysWithPrefix(key) {
			break
		}
	}
	return length
}

// keepsLeft is true for consonant units which close the preceding syllable.
func keepsLeft(folded []rune, c unit) bool {
	s := string(folded[c.from:c.to])
	return s == "x" || s == "ck"
}

// isSilentE checks for a final, plain "e" after a consonant, with another
// nucleus in front.
func isSilentE(run, folded []rune, units []unit) bool {
	n := len(units)
	final := units[n-1]
	if !final.vowel || final.len() != 1 || (run[final.from] != 'e' && run[final.from] != 'E') {
		return false
	}
	if units[n-2].vowel {
		return false
	}
	if isFinalLE(folded, units, units[:n-1]) {
		return false
	}
	for _, u := range units[:n-1] {
		if u.vowel {
			return true
		}
	}
	return false
}

// isFinalLE checks whether the word ends in consonant+"le", where cluster
// are the consonant units in front of the final nucleus.
func isFinalLE(folded []rune, units []unit, cluster []unit) bool {
	n := len(units)
	final := units[n-1]
	if !final.vowel || final.len() != 1 || folded[final.from] != 'e' {
		return false
	}
	if len(cluster) < 2 {
		return false
	}
	l := cluster[len(cluster)-1]
	before := cluster[len(cluster)-2]
	return l.len() == 1 && folded[l.from] == 'l' && !before.vowel && l.to == final.from
}

func fold(r rune) rune {
	r = unicode.ToLower(r)
	if r < utf8.RuneSelf {
		return r
	}
	first, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
	return first
}

func foldRunes(run []rune) []rune {
	folded := make([]rune, len(run))
	for i, r := range run {
		folded[i] = fold(r)
	}
	return folded
}
