// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// StartProduction is the production every Weft file is derived from.
const StartProduction = "SourceFile"

//go:embed weft.ebnf
var reference []byte

// Reference returns the EBNF text of the grammar.
func Reference() []byte {
	return bytes.Clone(reference)
}

// LoadReference parses and verifies the embedded grammar.
func LoadReference() (ebnf.Grammar, error) {
	return LoadGrammar("weft.ebnf", reference)
}

// LoadGrammar parses text as EBNF and verifies that every production is
// defined and reachable from StartProduction.
func LoadGrammar(name string, text []byte) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(name, bytes.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if err := ebnf.Verify(g, StartProduction); err != nil {
		return nil, fmt.Errorf("verify %s: %w", name, err)
	}
	return g, nil
}

// Productions lists the syntactic productions of g, skipping the lexical
// ones, sorted by name.
func Productions(g ebnf.Grammar) []string {
	var out []string
	for name := range g {
		r, _ := utf8.DecodeRuneInString(name)
		if unicode.IsUpper(r) {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}
