package wordsplit

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/npillmayer/lexilens/core/percent"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensAlternate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.wordsplit")
	defer teardown()
	//
	text := "  The quick\tbrown  fox!\n"
	tokens := Tokens(text)
	var b strings.Builder
	for i, tok := range tokens {
		b.WriteString(tok.Text)
		if i > 0 {
			assert.NotEqual(t, tokens[i-1].Space, tok.Space, "tokens must alternate")
		}
	}
	assert.Equal(t, text, b.String())
	require.Len(t, tokens, 9)
	assert.True(t, tokens[0].Space)
	assert.Equal(t, "The", tokens[1].Text)
	assert.Equal(t, "fox!", tokens[7].Text)
	assert.Nil(t, Tokens(""))
}

func TestHasLetter(t *testing.T) {
	assert.True(t, HasLetter("Übermut"))
	assert.True(t, HasLetter("42nd"))
	assert.False(t, HasLetter(" 42 – !"))
	assert.False(t, HasLetter(""))
}

func TestBionicReading(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.wordsplit")
	defer teardown()
	//
	bold, rest := NewBionic(percent.FromInt(50)).Split("reading")
	assert.Equal(t, "read", bold)
	assert.Equal(t, "ing", rest)
	bold, rest = NewBionic(percent.FromInt(30)).Split("a")
	assert.Equal(t, "a", bold)
	assert.Equal(t, "", rest)
	bold, _ = NewBionic(percent.FromInt(50)).Split("Größenwahnsinnigkeit") // 20 runes
	assert.Equal(t, "Größenwa", bold, "long words are capped at 40%")
}

func TestBionicBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.wordsplit")
	defer teardown()
	//
	word := "abcdefghijklmnopqrstuvwxyzäöü"
	for p := 30; p <= 70; p++ {
		b := NewBionic(percent.FromInt(p))
		for n := 1; n <= len([]rune(word)); n++ {
			w := string([]rune(word)[:n])
			bold, rest := b.Split(w)
			k := len([]rune(bold))
			assert.True(t, k >= 1 && k <= n, "prefix length %d out of bounds for n=%d, p=%d", k, n, p)
			assert.Equal(t, w, bold+rest)
		}
	}
}

func TestSyllableScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.wordsplit")
	defer teardown()
	//
	assert.Equal(t, []string{"el", "e", "phant"}, Syllables("elephant"))
	assert.Equal(t, []string{"beau", "ti", "ful"}, Syllables("beautiful"))
}

func TestSyllableHeuristics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.wordsplit")
	defer teardown()
	//
	cases := map[string][]string{
		"happy":    {"hap", "py"},
		"table":    {"ta", "ble"},
		"little":   {"lit", "tle"},
		"make":     {"make"},
		"water":    {"wa", "ter"},
		"children": {"chil", "dren"},
		"beyond":   {"be", "yond"},
		"rhythm":   {"rhythm"},
		"syllable": {"syl", "la", "ble"},
		"Elephant": {"El", "e", "phant"},
		"taxi":     {"tax", "i"},
		"cat":      {"cat"},
		"don't":    {"don't"},
	}
	for word, expected := range cases {
		assert.Equal(t, expected, Syllables(word), "syllables of %q", word)
	}
	assert.Equal(t, []string{"beau", "ti", "ful,"}, Syllables("beautiful,"))
}

func TestSyllableConcatenationLaw(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.wordsplit")
	defer teardown()
	//
	alphabet := []rune("abcdefghijklmnopqrstuvwxyzéèäöüßABCDEY")
	rnd := rand.New(rand.NewSource(4711))
	for i := 0; i < 2000; i++ {
		n := 1 + rnd.Intn(16)
		runes := make([]rune, n)
		for j := range runes {
			runes[j] = alphabet[rnd.Intn(len(alphabet))]
		}
		word := string(runes)
		syllables := Syllables(word)
		require.NotEmpty(t, syllables)
		assert.Equal(t, word, strings.Join(syllables, ""))
		if n <= 3 {
			assert.Equal(t, []string{word}, syllables)
		}
		for _, s := range syllables {
			assert.NotEmpty(t, s)
		}
	}
}
