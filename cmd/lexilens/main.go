/*
Command lexilens applies LexiLens reading aids to HTML files.

Usage:

	lexilens [flags] input.html

Flags:

	-mode bionic|syllable   reading aid to apply (default bionic)
	-percent n              bold percentage for bionic reading, 30…70
	-sep s                  syllable separator
	-config file.toml       configuration file
	-o out.html             output file (default stdout)
	-watch                  re-convert whenever the input file changes
	-repl                   interactive session on a live document
	-trace level            trace level [Debug|Info|Error]

In interactive mode, the document is kept live on an event loop and content
may be injected while a reading aid is enabled. Type "help" for a list of
commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/npillmayer/lexilens/core"
	"github.com/npillmayer/lexilens/engine/modifier"
	"github.com/npillmayer/lexilens/engine/modifier/bionic"
	"github.com/npillmayer/lexilens/engine/modifier/syllable"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'lexilens.cli'
func tracer() tracing.Trace {
	return tracing.Select("lexilens.cli")
}

var tracingKeys = []string{"cli", "modifier", "dom", "loop", "wordsplit", "html"}

func main() {
	initDisplay()

	// command line flags
	mode := flag.String("mode", "bionic", "Reading aid [bionic|syllable]")
	pct := flag.String("percent", "", "Bold percentage for bionic reading (30…70)")
	sep := flag.String("sep", "", "Syllable separator")
	confpath := flag.String("config", "", "Configuration file (TOML)")
	outpath := flag.String("o", "", "Output file, default stdout")
	watch := flag.Bool("watch", false, "Re-convert when the input changes")
	interactive := flag.Bool("repl", false, "Interactive session")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	traceconf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range tracingKeys {
		traceconf["trace.lexilens."+key] = *tlevel
	}
	if err := trace2go.ConfigureRoot(traceconf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", *tlevel)

	// configuration
	conf, err := loadConfig(*confpath)
	if err != nil {
		fail(err, 2)
	}
	if *pct != "" {
		conf["bionic.percent"] = *pct
	}
	if *sep != "" {
		conf["syllable.separator"] = *sep
	}
	mconf, err := modifier.ConfigFrom(conf)
	if err != nil {
		fail(err, 2)
	}
	variant, err := variantFor(*mode)
	if err != nil {
		fail(err, 2)
	}
	if flag.NArg() != 1 {
		pterm.Error.Println("Expecting exactly one input file")
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)
	job := &job{input: input, output: *outpath, variant: variant, conf: mconf}

	switch {
	case *interactive:
		intp, err := newIntp(job)
		if err != nil {
			fail(err, 3)
		}
		pterm.Info.Printfln("Welcome to LexiLens, document %s", input)
		pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
		intp.REPL()
	case *watch:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := watchInput(ctx, job); err != nil && err != context.Canceled {
			fail(err, 4)
		}
	default:
		if err := job.convert(); err != nil {
			fail(err, 4)
		}
	}
}

func variantFor(mode string) (modifier.Variant, error) {
	switch mode {
	case "bionic":
		return bionic.New(), nil
	case "syllable", "syllables":
		return syllable.New(), nil
	}
	return nil, core.Error(core.EINVALID, "unknown mode %q", mode)
}

func fail(err error, code int) {
	tracer().Errorf("%v", err)
	pterm.Error.Println(core.UserMessage(err))
	os.Exit(code)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
