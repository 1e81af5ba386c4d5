// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package source

import "fmt"

// Span is a half-open byte range [Start, End) into a source text.
type Span struct {
	Start int
	End   int
}

func NewSpan(start int, end int) Span {
	return Span{Start: start, End: end}
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Merge returns the smallest span covering both s and o.
func (s Span) Merge(o Span) Span {
	out := s
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
