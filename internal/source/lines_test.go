// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineIndex(t *testing.T) {
	t.Parallel()

	text := "let a = 1;\r\nlet b = 2;\rfn é() {}\n"
	idx := NewLineIndex(text)
	require.Equal(t, 4, idx.LineCount())

	testCases := []struct {
		name     string
		offset   int
		expected Position
	}{
		{name: "start", offset: 0, expected: Position{Line: 1, Column: 1}},
		{name: "first line", offset: 4, expected: Position{Line: 1, Column: 5}},
		{name: "after crlf", offset: 12, expected: Position{Line: 2, Column: 1}},
		{name: "after lone cr", offset: 23, expected: Position{Line: 3, Column: 1}},
		{name: "multibyte column", offset: 29, expected: Position{Line: 3, Column: 6}},
		{name: "end", offset: len(text), expected: Position{Line: 4, Column: 1}},
		{name: "clamped", offset: len(text) + 10, expected: Position{Line: 4, Column: 1}},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, testCase.expected, idx.Position(testCase.offset))
		})
	}

	require.Equal(t, "let b = 2;", idx.Line(2))
	require.Equal(t, "fn é() {}", idx.Line(3))
	require.Equal(t, "", idx.Line(9))

	require.Equal(t, 0, idx.LineStart(1))
	require.Equal(t, 12, idx.LineStart(2))
	require.Equal(t, 23, idx.LineStart(3))
	require.Equal(t, len(text), idx.LineStart(4))
	require.Equal(t, len(text), idx.LineStart(9))
	require.Equal(t, 0, idx.LineStart(0))
}

func TestSpanMerge(t *testing.T) {
	t.Parallel()

	a := NewSpan(3, 5)
	b := NewSpan(8, 12)
	require.Equal(t, NewSpan(3, 12), a.Merge(b))
	require.Equal(t, NewSpan(3, 12), b.Merge(a))
	require.True(t, NewSpan(4, 4).IsEmpty())
	require.True(t, b.Contains(8))
	require.False(t, b.Contains(12))
}
