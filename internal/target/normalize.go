// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Normalize processes a given compile target and converts it into a
// standard form.
//
// Targets may be any valid URI or file path. File paths and file URIs become
// rooted paths so that they resolve against the roots of a local file system.
// All non-file URIs are left as-is with the expectation that they will be
// handled by some other implementation.
func Normalize(target string) string {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "" && u.Scheme != "file") {
		return target
	}
	if u.Scheme == "file" {
		target = u.Path
	}
	target = filepath.ToSlash(target)
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	return filepath.ToSlash(filepath.Clean(target))
}

// FileURI returns the file URI for an absolute path. Other URIs are
// returned unchanged.
func FileURI(path string) string {
	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		return path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
