// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"gopkg.microglot.org/weft.go/internal/compiler"
	"gopkg.microglot.org/weft.go/internal/config"
	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/fs"
	"gopkg.microglot.org/weft.go/internal/syntax"
	"gopkg.microglot.org/weft.go/internal/treepb"
)

// formatValue is a pflag.Value restricted to the tree output formats.
type formatValue string

func (f *formatValue) String() string {
	return string(*f)
}

func (f *formatValue) Set(v string) error {
	if !slices.Contains(config.Formats, v) {
		return fmt.Errorf("unknown format %q, want one of %s", v, formatList())
	}
	*f = formatValue(v)
	return nil
}

func (f *formatValue) Type() string {
	return "format"
}

var formatExts = map[string]string{
	"tree":      ".tree",
	"json":      ".weftjson",
	"protojson": ".weftjson",
	"proto":     ".weftpb",
}

func newParseCmd(op *opts) *cobra.Command {
	format := formatValue("tree")
	var out string
	cmd := &cobra.Command{
		Use:   "parse [targets...]",
		Short: "Parse files and print their syntax trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") && op.cfg != nil && op.cfg.Format != "" {
				format = formatValue(op.cfg.Format)
			}
			resp, diags, err := op.compile(cmd, args)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			for _, d := range diags {
				fmt.Fprintln(cmd.ErrOrStderr(), formatDiagnostic(d, resp))
			}
			if out != "" {
				dir, err := fs.NewFileSystemLocal(out)
				if err != nil {
					return fmt.Errorf("open output directory: %w", err)
				}
				for _, f := range resp.Files {
					b, err := encodeTree(f, string(format))
					if err != nil {
						return fmt.Errorf("encode %s: %w", f.URI, err)
					}
					name := strings.TrimSuffix(f.URI, ".weft") + formatExts[string(format)]
					if err := dir.Write(cmd.Context(), name, string(b)); err != nil {
						return fmt.Errorf("write %s: %w", name, err)
					}
				}
				return nil
			}
			return writeTrees(cmd.OutOrStdout(), resp.Files, string(format))
		},
	}
	cmd.Flags().VarP(&format, "format", "f", "Output format: "+formatList()+".")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write one tree file per input under this directory instead of printing.")
	return cmd
}

func encodeTree(f *compiler.ParsedFile, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(f.Root, "", "  ")
	case "proto":
		return treepb.Marshal(&treepb.Document{URI: f.URI, Root: f.Root, Diagnostics: f.Diagnostics})
	case "protojson":
		return treepb.MarshalJSON(&treepb.Document{URI: f.URI, Root: f.Root, Diagnostics: f.Diagnostics})
	default:
		return []byte(syntax.Dump(f.Root)), nil
	}
}

func writeTrees(w io.Writer, files []*compiler.ParsedFile, format string) error {
	for _, f := range files {
		b, err := encodeTree(f, format)
		if err != nil {
			return fmt.Errorf("encode %s: %w", f.URI, err)
		}
		if format == "tree" {
			if _, err := fmt.Fprintf(w, "# %s\n", f.URI); err != nil {
				return err
			}
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
		if format == "json" || format == "protojson" {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatDiagnostic renders d with a line and column when the file it points
// into was parsed.
func formatDiagnostic(d exc.Exception, resp *compiler.CompileResponse) string {
	if resp != nil {
		for _, f := range resp.Files {
			if f.URI == d.Location().URI {
				return exc.Format(d, f.Lines)
			}
		}
	}
	return exc.Format(d, nil)
}
