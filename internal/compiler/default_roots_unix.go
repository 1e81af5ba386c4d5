// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

//go:build aix || darwin || dragonfly || freebsd || (js && wasm) || linux || netbsd || openbsd || solaris

package compiler

import (
	"path/filepath"
	"strings"
)

// getDefaultRoots follows the XDG base directory layout: the user data
// directory first and then each shared data directory, all with a weft
// suffix.
func getDefaultRoots(lookup func(string) (string, bool)) []string {
	var dataDirs []string
	if home, ok := lookup("XDG_DATA_HOME"); ok && home != "" {
		dataDirs = append(dataDirs, home)
	} else if home, ok := lookup("HOME"); ok && home != "" {
		dataDirs = append(dataDirs, filepath.Join(home, ".local", "share"))
	}
	xdgDirs, ok := lookup("XDG_DATA_DIRS")
	if !ok || xdgDirs == "" {
		xdgDirs = "/usr/local/share/:/usr/share/"
	}
	for _, dataDir := range strings.Split(xdgDirs, ":") {
		if dataDir == "" {
			continue
		}
		dataDirs = append(dataDirs, dataDir)
	}
	for offset, dataDir := range dataDirs {
		dataDirs[offset] = filepath.Join(dataDir, "weft")
	}
	return dataDirs
}
