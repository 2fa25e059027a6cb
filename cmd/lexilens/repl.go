package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lexilens/engine/dom"
	"github.com/npillmayer/lexilens/engine/loop"
	"github.com/npillmayer/lexilens/engine/modifier"
	lxhtml "github.com/npillmayer/lexilens/input/html"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object. It keeps a live document on an event
// loop, which runs in a goroutine of its own. Commands are posted to the
// loop as tasks.
type Intp struct {
	repl   *readline.Instance
	job    *job
	loop   *loop.Loop
	doc    *dom.Document
	engine *modifier.Engine
	cancel context.CancelFunc
	done   chan error
}

func newIntp(j *job) (*Intp, error) {
	l := loop.New()
	doc, err := j.load(l)
	if err != nil {
		return nil, err
	}
	e, err := modifier.New(doc, j.variant, modifier.WithLoop(l))
	if err != nil {
		return nil, err
	}
	repl, err := readline.New(j.variant.Name() + " > ")
	if err != nil {
		return nil, err
	}
	e.OnIdle(func() {
		tracer().Infof("initial pass complete, watching for added content")
	})
	return &Intp{repl: repl, job: j, loop: l, doc: doc, engine: e}, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	ctx, cancel := context.WithCancel(context.Background())
	intp.cancel = cancel
	intp.done = make(chan error, 1)
	go func() { intp.done <- intp.loop.Run(ctx) }()
	defer intp.stop()
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, arg := line, ""
		if i := strings.IndexByte(line, ' '); i > 0 {
			cmd, arg = line[:i], strings.TrimSpace(line[i+1:])
		}
		quit, err := intp.execute(strings.ToLower(cmd), arg)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) stop() {
	intp.cancel()
	<-intp.done
	intp.repl.Close()
}

// run executes f as a task on the event loop and waits until the task and
// the mutation batches it caused have been handled.
func (intp *Intp) run(f func() error) error {
	var err error
	done := make(chan struct{})
	intp.loop.Post(func() { err = f() })
	intp.loop.Post(func() { close(done) })
	<-done
	return err
}

func (intp *Intp) execute(cmd, arg string) (bool, error) {
	tracer().Debugf("command %s %q", cmd, arg)
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "enable":
		return false, intp.run(func() error {
			return intp.engine.Enable(intp.job.conf)
		})
	case "disable":
		return false, intp.run(func() error {
			intp.engine.Disable()
			return nil
		})
	case "inject":
		if arg == "" {
			return false, fmt.Errorf("usage: inject <html>")
		}
		return false, intp.run(func() error {
			nodes, err := lxhtml.ParseFragment(intp.doc, nil, arg)
			if err != nil {
				return err
			}
			for _, n := range nodes {
				if err := intp.doc.AppendChild(intp.doc.Body(), n); err != nil {
					return err
				}
			}
			return nil
		})
	case "remove":
		if arg == "" {
			return false, fmt.Errorf("usage: remove <xpath>")
		}
		xp, err := dom.CompileXPath(arg)
		if err != nil {
			return false, err
		}
		var count int
		err = intp.run(func() error {
			nodes := xp.Select(intp.doc.Body())
			for _, n := range nodes {
				intp.doc.Remove(n)
			}
			count = len(nodes)
			return nil
		})
		pterm.Printfln("%d nodes removed", count)
		return false, err
	case "status":
		return false, intp.run(intp.status)
	case "show":
		var s string
		err := intp.run(func() error {
			s = lxhtml.InnerHTML(intp.doc.Body())
			return nil
		})
		pterm.Println(s)
		return false, err
	case "text":
		var s string
		err := intp.run(func() error {
			s = dom.TextContent(intp.doc.Body())
			return nil
		})
		pterm.Println(s)
		return false, err
	case "write":
		return false, intp.run(intp.write)
	}
	help()
	return false, nil
}

// status prints the engine state. It runs on the event loop.
func (intp *Intp) status() error {
	e := intp.engine
	stats := e.Stats()
	data := pterm.TableData{
		{"Property", "Value"},
		{"variant", e.Variant().Name()},
		{"active", fmt.Sprint(e.IsActive())},
		{"idle", fmt.Sprint(e.Idle())},
		{"watcher", e.Watcher().State().String()},
		{"passes", fmt.Sprint(stats.Passes)},
		{"steps", fmt.Sprint(stats.Steps)},
		{"transformed", fmt.Sprint(stats.Transformed)},
		{"wrapped", fmt.Sprint(stats.Wrapped)},
		{"stale", fmt.Sprint(stats.Stale)},
		{"batches", fmt.Sprint(stats.Batches)},
		{"reverted", fmt.Sprint(stats.Reverted)},
		{"frames", fmt.Sprint(intp.loop.Frames())},
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// write writes the document to the job's output. It runs on the event
// loop.
func (intp *Intp) write() error {
	if intp.job.output == "" {
		return fmt.Errorf("no output file given, use flag -o")
	}
	var b strings.Builder
	if err := lxhtml.Render(&b, intp.doc); err != nil {
		return err
	}
	return writeFile(intp.job.output, b.String())
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	enable          apply the reading aid
	disable         revert the document
	inject <html>   append HTML to the document body
	remove <xpath>  remove the nodes selected by an XPath expression
	status          show the engine state
	show            print the HTML of the document body
	text            print the text of the document body
	write           write the document to the output file
	quit            leave
	`)
}
