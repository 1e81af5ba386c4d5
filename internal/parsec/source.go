// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parsec

import (
	"gopkg.microglot.org/weft.go/internal/pattern"
)

// Source is the immutable input shared by every cursor of one parse.
type Source struct {
	name     string
	text     string
	patterns *pattern.Cache
	maxDepth int
}

// DefaultMaxDepth bounds how many Lazy parsers may be active at once.
const DefaultMaxDepth = 1000

type SourceOption func(s *Source)

// WithPatternCache installs the cache used by Regex parsers. The default is
// pattern.Default().
func WithPatternCache(c *pattern.Cache) SourceOption {
	return func(s *Source) {
		s.patterns = c
	}
}

// WithMaxDepth limits the nesting of Lazy parsers. Past the limit a Lazy
// parser fails with ErrTooDeep instead of recursing.
func WithMaxDepth(n int) SourceOption {
	return func(s *Source) {
		s.maxDepth = n
	}
}

func NewSource(name string, text string, opts ...SourceOption) *Source {
	s := &Source{
		name: name,
		text: text,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.patterns == nil {
		s.patterns = pattern.Default()
	}
	if s.maxDepth <= 0 {
		s.maxDepth = DefaultMaxDepth
	}
	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Text() string {
	return s.text
}

func (s *Source) Patterns() *pattern.Cache {
	return s.patterns
}
