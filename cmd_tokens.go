// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gopkg.microglot.org/weft.go/internal/compiler"
	"gopkg.microglot.org/weft.go/internal/syntax"
)

func newTokensCmd(op *opts) *cobra.Command {
	var trivia bool
	cmd := &cobra.Command{
		Use:   "tokens <target>",
		Short: "List the tokens of a file with their positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, _, err := op.compile(cmd, args)
			if err != nil {
				return fmt.Errorf("tokens: %w", err)
			}
			for _, f := range resp.Files {
				if err := writeTokens(cmd.Context(), cmd.OutOrStdout(), f, trivia); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&trivia, "trivia", false, "Include whitespace and comments.")
	return cmd
}

// writeTokens prints one line per token. Leaves cover the text without
// gaps so each token starts where the previous one ended.
func writeTokens(ctx context.Context, w io.Writer, f *compiler.ParsedFile, trivia bool) error {
	leaves := syntax.Leaves(f.Root)
	defer leaves.Close(ctx)
	offset := 0
	for tok := leaves.Next(ctx); tok.IsPresent(); tok = leaves.Next(ctx) {
		t := tok.Value()
		start := offset
		offset = offset + t.Len()
		if !trivia && t.Kind().IsTrivia() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-10s%-16s%q\n", f.Lines.Position(start), t.Kind(), t.Text()); err != nil {
			return err
		}
	}
	return nil
}
