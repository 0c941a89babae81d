package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/tinyfont/otgen"
	"github.com/thatisuday/commando"
)

func runGenerateCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(mustFlagBool(flags["verbose"], "verbose"))
	char := args["char"].Value
	if strings.TrimSpace(char) == "" {
		fatalf("character is required")
	}
	cp, err := otgen.ParseCodePoint(char)
	if err != nil {
		fatalf("%v", err)
	}
	out, err := renderFont(otgen.NewGenerator(), cp,
		mustFlagString(flags["format"], "format"),
		mustFlagString(flags["mime"], "mime"))
	if err != nil {
		fatalf("%v", err)
	}
	outPath := mustFlagString(flags["out"], "out")
	if outPath == "" || outPath == "-" {
		_, _ = os.Stdout.Write(out)
		return
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		fatalf("cannot write %s: %v", outPath, err)
	}
	fmt.Fprintf(os.Stderr, "wrote font for %s to %s\n", cp, outPath)
}

// renderFont generates the font for cp and encodes it in one of the output
// formats "base64", "uri" or "ttf". Text formats end with a newline.
func renderFont(g *otgen.Generator, cp otgen.CodePoint, format, mime string) ([]byte, error) {
	f, err := g.FontForCodePoint(cp)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "", "base64", "b64":
		return []byte(f.Base64() + "\n"), nil
	case "uri", "datauri":
		return []byte(f.DataURI(mime) + "\n"), nil
	case "ttf", "binary":
		return f.Binary, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}
