// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package parsec implements the parser combinators used by the weft grammar.
//
// A Parser reads from a Cursor. On success it has advanced the cursor past
// the text it consumed. On failure it returns an error and the cursor is left
// wherever the failing parser stopped; callers that need all-or-nothing
// behavior wrap the parser in Optional or Alternation, which snapshot the
// cursor and restore it. Sequencing is not atomic so that a partially matched
// production plus Expected placeholders still yields output for malformed
// input.
//
// Failures are local signals. They become user visible diagnostics only when
// an Expected wrapper converts them, at which point the diagnostic is
// recorded on the cursor and survives as long as the cursor state that
// recorded it.
package parsec
