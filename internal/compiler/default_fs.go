// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"os"
	"path/filepath"

	"gopkg.microglot.org/weft.go/internal/fs"
	"gopkg.microglot.org/weft.go/internal/source"
)

// NewDefaultFS searches the shared data directories of the platform. Roots
// that do not exist are left out.
func NewDefaultFS(lookup func(string) (string, bool)) (source.FileSystem, error) {
	return NewRootsFS(existing(getDefaultRoots(lookup))...)
}

// NewRootsFS searches roots in order.
func NewRootsFS(roots ...string) (fs.FileSystemMulti, error) {
	f := make(fs.FileSystemMulti, 0, len(roots))
	for _, root := range roots {
		absRoot, errAbs := filepath.Abs(root)
		if errAbs != nil {
			return nil, errAbs
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			return nil, err
		}
		f = append(f, rf)
	}
	return f, nil
}

func existing(roots []string) []string {
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		if stat, err := os.Stat(root); err == nil && stat.IsDir() {
			out = append(out, root)
		}
	}
	return out
}
