// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gopkg.microglot.org/weft.go/internal/grammar"
)

func newGrammarCmd() *cobra.Command {
	var check bool
	var file string
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print or verify the EBNF grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, text := "weft.ebnf", grammar.Reference()
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read grammar: %w", err)
				}
				name, text = file, b
			}
			if !check {
				_, err := cmd.OutOrStdout().Write(text)
				return err
			}
			g, err := grammar.LoadGrammar(name, text)
			if err != nil {
				return err
			}
			productions := grammar.Productions(g)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d productions (%d syntactic)\n", name, len(g), len(productions))
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(productions, " "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Verify the grammar instead of printing it.")
	cmd.Flags().StringVar(&file, "file", "", "Use this EBNF file instead of the built in grammar.")
	return cmd
}
