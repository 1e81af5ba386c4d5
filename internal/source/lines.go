// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position is a 1-based line and column. Column counts characters, not bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineIndex maps byte offsets of one text to line/column positions. Line
// breaks are LF, CRLF or a lone CR.
type LineIndex struct {
	text   string
	starts []int
}

func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i = i + 1 {
		switch text[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

func (idx *LineIndex) LineCount() int {
	return len(idx.starts)
}

// Position converts a byte offset. Offsets past the end clamp to the end of
// the text.
func (idx *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(idx.text) {
		offset = len(idx.text)
	}
	line := sort.Search(len(idx.starts), func(i int) bool {
		return idx.starts[i] > offset
	}) - 1
	start := idx.starts[line]
	return Position{
		Line:   line + 1,
		Column: utf8.RuneCountInString(idx.text[start:offset]) + 1,
	}
}

// Line returns the text of the 1-based line without its terminator.
func (idx *LineIndex) Line(line int) string {
	if line < 1 || line > len(idx.starts) {
		return ""
	}
	start := idx.starts[line-1]
	end := len(idx.text)
	if line < len(idx.starts) {
		end = idx.starts[line]
	}
	for end > start && (idx.text[end-1] == '\n' || idx.text[end-1] == '\r') {
		end = end - 1
	}
	return idx.text[start:end]
}

// LineStart returns the byte offset at which the 1-based line begins. Lines
// past the end return the length of the text.
func (idx *LineIndex) LineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(idx.starts) {
		return len(idx.text)
	}
	return idx.starts[line-1]
}
