package syllable

import (
	"strings"
	"testing"

	"github.com/npillmayer/lexilens/engine/dom"
	"github.com/npillmayer/lexilens/engine/loop"
	"github.com/npillmayer/lexilens/engine/modifier"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestWrapWord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.modifier")
	defer teardown()
	//
	root, err := html.Parse(strings.NewReader("<p></p>"))
	require.NoError(t, err)
	doc, err := dom.NewDocument(root, loop.New())
	require.NoError(t, err)
	v := New()
	conf := modifier.DefaultConfig()
	span := v.Wrap(doc, "beautiful", conf)
	require.NotNil(t, span)
	assert.Equal(t, "beau·ti·ful", dom.TextContent(span))
	syllables, _ := dom.Attr(span, SyllablesAttr)
	assert.Equal(t, "beau·ti·ful", syllables)
	original, _ := dom.Attr(span, modifier.OriginalAttr)
	assert.Equal(t, "beautiful", original)
	//
	assert.Nil(t, v.Wrap(doc, "cat", conf), "short words stay plain")
	assert.Nil(t, v.Wrap(doc, "make", conf), "single syllables stay plain")
	conf.Separator = "-"
	assert.Equal(t, "hap-py", dom.TextContent(v.Wrap(doc, "happy", conf)))
	conf.Separator = ""
	assert.Equal(t, "hap·py", dom.TextContent(v.Wrap(doc, "happy", conf)))
	conf.MinSplitLength = 6
	assert.Nil(t, v.Wrap(doc, "happy", conf))
}
