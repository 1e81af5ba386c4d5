// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	op := &opts{}
	rootCmd := &cobra.Command{
		Use:           "weftc",
		Short:         "Parse and check Weft source files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var logPath *string
			if op.Log != "" {
				logPath = &op.Log
			}
			commonlog.Configure(op.Verbose, logPath)
			return op.load(cmd)
		},
	}
	op.bind(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newParseCmd(op))
	rootCmd.AddCommand(newCheckCmd(op))
	rootCmd.AddCommand(newTokensCmd(op))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd())
	return rootCmd
}

// exitError ends the process with code after the command has already
// reported what went wrong.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
