package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/lexilens/core"
	"github.com/npillmayer/lexilens/engine/modifier"
	"github.com/npillmayer/lexilens/engine/modifier/syllable"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.cli")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "lexilens.toml")
	toml := `
[bionic]
percent = 60
longword = 12

[syllable]
separator = "-"

[engine]
framebudget = "8ms"
`
	require.NoError(t, os.WriteFile(path, []byte(toml), 0644))
	conf, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "60", conf["bionic.percent"])
	assert.Equal(t, "12", conf["bionic.longword"])
	assert.Equal(t, "-", conf["syllable.separator"])
	assert.Equal(t, "8ms", conf["engine.framebudget"])
	//
	mconf, err := modifier.ConfigFrom(conf)
	require.NoError(t, err)
	assert.Equal(t, 60, int(mconf.BoldPercent))
	assert.Equal(t, "-", mconf.Separator)
	//
	empty, err := loadConfig("")
	require.NoError(t, err)
	assert.Empty(t, empty)
	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestVariantFor(t *testing.T) {
	v, err := variantFor("syllable")
	require.NoError(t, err)
	assert.Equal(t, syllable.MarkerClass, v.MarkerClass())
	v, err = variantFor("bionic")
	require.NoError(t, err)
	assert.Equal(t, "bionic", v.Name())
	_, err = variantFor("comic-sans")
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestConvertJob(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexilens.cli")
	defer teardown()
	//
	dir := t.TempDir()
	input := filepath.Join(dir, "in.html")
	output := filepath.Join(dir, "out.html")
	page := `<html><head></head><body><p>reading is fun</p><code>reading</code></body></html>`
	require.NoError(t, os.WriteFile(input, []byte(page), 0644))
	v, err := variantFor("bionic")
	require.NoError(t, err)
	j := &job{input: input, output: output, variant: v, conf: modifier.Config{}}
	require.NoError(t, j.convert())
	out, err := os.ReadFile(output)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<b>read</b>ing`)
	assert.Contains(t, s, `<code>reading</code>`)
	assert.Equal(t, 1, strings.Count(s, `<style id="lexilens-bionic-styles">`))
	//
	j.input = filepath.Join(dir, "missing.html")
	assert.Equal(t, core.EMISSING, core.Code(j.convert()))
}
