// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"gopkg.microglot.org/weft.go/internal/compiler"
	"gopkg.microglot.org/weft.go/internal/config"
	"gopkg.microglot.org/weft.go/internal/exc"
)

type opts struct {
	Roots          []string
	Config         string
	MaxConcurrency int
	NonFatal       []string
	Verbose        int
	Log            string

	cfg *config.Config
}

func (op *opts) bind(flags *pflag.FlagSet) {
	flags.StringSliceVar(&op.Roots, "root", nil, "Root search paths for targets. Defaults to the config roots or the working directory.")
	flags.StringVar(&op.Config, "config", "", "Project file to load instead of weft.toml or weft.yaml in the working directory.")
	flags.IntVar(&op.MaxConcurrency, "max-concurrency", 0, "Maximum number of files parsed at once.")
	flags.StringSliceVar(&op.NonFatal, "non-fatal", nil, "Diagnostic codes that never stop a compile.")
	flags.CountVarP(&op.Verbose, "verbose", "v", "Increase log verbosity. May be repeated.")
	flags.StringVar(&op.Log, "log", "", "Write logs to this file instead of stderr.")
}

// load merges the project file into any option not given on the command
// line.
func (op *opts) load(cmd *cobra.Command) error {
	var cfg *config.Config
	var err error
	if op.Config != "" {
		cfg, err = config.Load(op.Config)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	op.cfg = cfg
	flags := cmd.Flags()
	if !flags.Changed("root") {
		op.Roots = cfg.ResolveRoots()
		if len(op.Roots) == 0 {
			op.Roots = []string{"."}
		}
	}
	if !flags.Changed("max-concurrency") {
		op.MaxConcurrency = cfg.MaxConcurrency
	}
	for _, code := range cfg.NonFatal {
		if !slices.Contains(op.NonFatal, code) {
			op.NonFatal = append(op.NonFatal, code)
		}
	}
	return nil
}

func (op *opts) newCompiler() (compiler.Compiler, error) {
	roots, err := compiler.NewRootsFS(op.Roots...)
	if err != nil {
		return nil, fmt.Errorf("open roots: %w", err)
	}
	dfs, err := compiler.NewDefaultFS(os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("open default roots: %w", err)
	}
	return compiler.New(
		compiler.OptionWithLookupEnv(os.LookupEnv),
		compiler.OptionWithFS(append(roots, dfs)),
		compiler.OptionWithExcReporter(exc.NewReporter(op.NonFatal)),
		compiler.OptionWithMaxConcurrency(op.MaxConcurrency),
	)
}

// compile parses targets. Diagnostics do not make it fail; they are
// returned alongside the parsed files.
func (op *opts) compile(cmd *cobra.Command, targets []string) (*compiler.CompileResponse, []exc.Exception, error) {
	c, err := op.newCompiler()
	if err != nil {
		return nil, nil, err
	}
	resp, err := c.Compile(cmd.Context(), &compiler.CompileRequest{Files: targets})
	var me compiler.MultiException
	if errors.As(err, &me) {
		return resp, me, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return resp, nil, nil
}

func formatList() string {
	return strings.Join(config.Formats, "|")
}
