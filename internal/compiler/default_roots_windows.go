// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package compiler

import (
	"path/filepath"
)

// getDefaultRoots returns the per user data directory followed by the
// machine wide one.
func getDefaultRoots(lookup func(string) (string, bool)) []string {
	var dataDirs []string
	if local, ok := lookup("LOCALAPPDATA"); ok && local != "" {
		dataDirs = append(dataDirs, filepath.Join(local, "weft"))
	} else if profile, ok := lookup("USERPROFILE"); ok && profile != "" {
		dataDirs = append(dataDirs, filepath.Join(profile, "AppData", "Local", "weft"))
	}
	if shared, ok := lookup("ProgramData"); ok && shared != "" {
		dataDirs = append(dataDirs, filepath.Join(shared, "weft"))
	} else {
		drive, _ := lookup("SystemDrive")
		dataDirs = append(dataDirs, filepath.Join(drive+`\`, "ProgramData", "weft"))
	}
	return dataDirs
}
