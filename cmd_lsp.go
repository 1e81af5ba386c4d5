// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"gopkg.microglot.org/weft.go/internal/lsp"
	"gopkg.microglot.org/weft.go/internal/pattern"
)

func newLSPCmd() *cobra.Command {
	var tcp string
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, lsp.WithPatternCache(pattern.Default()))
			if tcp != "" {
				return server.RunTCP(tcp)
			}
			return server.RunStdio()
		},
	}
	cmd.Flags().StringVar(&tcp, "tcp", "", "Listen on this address instead of stdio.")
	return cmd
}
