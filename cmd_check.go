// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(op *opts) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "check [targets...]",
		Short: "Report diagnostics and exit non-zero if there are any",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, diags, err := op.compile(cmd, args)
			if err != nil {
				return fmt.Errorf("check: %w", err)
			}
			for _, d := range diags {
				fmt.Fprintln(cmd.OutOrStdout(), formatDiagnostic(d, resp))
			}
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d files, %d diagnostics\n", len(resp.Files), len(diags))
			}
			if len(diags) > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the summary line.")
	return cmd
}
