package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/npillmayer/lexilens/core"
	"github.com/npillmayer/lexilens/engine/dom"
	"github.com/npillmayer/lexilens/engine/loop"
	"github.com/npillmayer/lexilens/engine/modifier"
	lxhtml "github.com/npillmayer/lexilens/input/html"
	"github.com/pterm/pterm"
)

// maxFrames bounds the frames a batch conversion may take.
const maxFrames = 1 << 20

// job is a conversion of an input file.
type job struct {
	input   string
	output  string
	variant modifier.Variant
	conf    modifier.Config
}

// load parses the input file into a live document on l.
func (j *job) load(l *loop.Loop) (*dom.Document, error) {
	f, err := os.Open(j.input)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open %s", j.input)
	}
	defer f.Close()
	return lxhtml.Parse(f, l)
}

// convert transforms the input file and writes the result.
func (j *job) convert() error {
	l := loop.New()
	doc, err := j.load(l)
	if err != nil {
		return err
	}
	e, err := modifier.New(doc, j.variant, modifier.WithLoop(l))
	if err != nil {
		return err
	}
	if err := e.Enable(j.conf); err != nil {
		return err
	}
	if err := l.Drain(maxFrames); err != nil {
		return err
	}
	stats := e.Stats()
	tracer().Infof("%d text nodes transformed into %d wrapped nodes in %d steps",
		stats.Transformed, stats.Wrapped, stats.Steps)
	var b bytes.Buffer
	if err := lxhtml.Render(&b, doc); err != nil {
		return err
	}
	if j.output == "" {
		_, err = os.Stdout.Write(b.Bytes())
		return err
	}
	if err := writeFile(j.output, b.String()); err != nil {
		return err
	}
	pterm.Success.Printfln("%s: %d words wrapped, written to %s", j.input, stats.Wrapped, j.output)
	return nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot write %s", path)
	}
	return nil
}

// watchInput converts the input file and converts it again whenever it is
// written, until ctx is done.
func watchInput(ctx context.Context, j *job) error {
	if j.output == "" {
		return core.Error(core.EINVALID, "watch mode needs an output file")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// editors often replace files, so watch the directory
	if err := watcher.Add(filepath.Dir(j.input)); err != nil {
		return core.WrapError(err, core.EMISSING, "cannot watch %s", j.input)
	}
	if err := j.convert(); err != nil {
		pterm.Error.Println(core.UserMessage(err))
	}
	target := filepath.Clean(j.input)
	pterm.Info.Printfln("Watching %s, stop with <ctrl>C", j.input)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				tracer().Debugf("input changed: %v", event)
				if err := j.convert(); err != nil {
					pterm.Error.Println(core.UserMessage(err))
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			tracer().Errorf("watcher error: %v", err)
		}
	}
}
