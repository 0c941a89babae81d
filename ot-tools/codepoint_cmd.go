package main

import (
	"fmt"

	"github.com/npillmayer/tinyfont/otgen"
	"github.com/thatisuday/commando"
	"golang.org/x/text/unicode/runenames"
)

func runCodepointCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	tokens := splitCSVSpace(args["chars"].Value)
	if len(tokens) == 0 {
		fatalf("at least one character is required")
	}
	failed := false
	for _, token := range tokens {
		line, err := describeCodePoint(token)
		if err != nil {
			fmt.Printf("%s: %v\n", token, err)
			failed = true
			continue
		}
		fmt.Println(line)
	}
	if failed {
		fatalf("some characters cannot be mapped")
	}
}

// describeCodePoint reports the name of a character and the values which
// represent it in the cmap sub-table of its tiny font.
func describeCodePoint(token string) (string, error) {
	cp, err := otgen.ParseCodePoint(token)
	if err != nil {
		return "", err
	}
	pair, err := otgen.HexPair(cp)
	if err != nil {
		return "", err
	}
	delta, err := otgen.IDDelta(cp)
	if err != nil {
		return "", err
	}
	name := runenames.Name(rune(cp))
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%s %-30s cmap code=%s idDelta=%04x", cp, name, pair, delta), nil
}
