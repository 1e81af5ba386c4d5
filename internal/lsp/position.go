// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package lsp

import (
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"gopkg.microglot.org/weft.go/internal/source"
)

// Editors count columns in UTF-16 code units while spans count bytes.

func toPosition(lines *source.LineIndex, text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	line := lines.Position(offset).Line
	units := 0
	for _, r := range text[lines.LineStart(line):offset] {
		units = units + utf16.RuneLen(r)
	}
	return protocol.Position{Line: protocol.UInteger(line - 1), Character: protocol.UInteger(units)}
}

func toRange(lines *source.LineIndex, text string, span source.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(lines, text, span.Start),
		End:   toPosition(lines, text, span.End),
	}
}

func toOffset(lines *source.LineIndex, text string, pos protocol.Position) int {
	line := int(pos.Line) + 1
	if line > lines.LineCount() {
		return len(text)
	}
	start := lines.LineStart(line)
	end := start + len(lines.Line(line))
	units := 0
	for i, r := range text[start:end] {
		if units >= int(pos.Character) {
			return start + i
		}
		units = units + utf16.RuneLen(r)
	}
	return end
}
