package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/tinyfont/otgen"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for generating and inspecting single-glyph TrueType fonts.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("generate").
		SetDescription("Generate a font which maps one character to a custom glyph.").
		SetShortDescription("generate a font").
		AddArgument("char", "the character, literally or as U+XXXX", "").
		AddFlag("format,f", "output format: base64|uri|ttf", commando.String, "base64").
		AddFlag("mime,m", "MIME type for format uri", commando.String, otgen.DefaultMIME).
		AddFlag("out,o", "output file (default: stdout)", commando.String, "-").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runGenerateCommand)

	commando.
		Register("inspect").
		SetDescription("Print the table directory and decoded tables of a tiny font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "font file path (binary, base64 or data URI)", "").
		AddArgument("tables...", "optional list of table tags (e.g. cmap,head)", "").
		AddFlag("errors,e", "print parse errors and warnings", commando.Bool, nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runInspectCommand)

	commando.
		Register("codepoint").
		SetDescription("Show how a character is encoded in the cmap table of a tiny font.").
		SetShortDescription("code point encoding").
		AddArgument("chars...", "characters, literally or as U+XXXX", "").
		SetAction(runCodepointCommand)

	commando.Parse(nil)
}

// setupTracing configures schuko tracing for the library packages.
func setupTracing(verbose bool) {
	level := "Error"
	if verbose {
		level = "Info"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.tinyfont.gen":   level,
		"trace.tinyfont.ot":    level,
		"trace.tinyfont.query": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("cannot configure tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func splitCSVSpace(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}
