// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package pattern holds compiled regular expressions shared by every parse
// in the process.
package pattern

import (
	"regexp"
	"sync"
	"sync/atomic"
)

// Cache maps pattern text to a compiled matcher anchored at the start of its
// input. Entries are created on first use and never evicted; grammars use a
// bounded set of literal patterns. A Cache is safe for concurrent use.
type Cache struct {
	entries  sync.Map
	size     atomic.Int64
	compiled atomic.Int64
}

func NewCache() *Cache {
	return &Cache{}
}

var defaultCache = sync.OnceValue(NewCache)

// Default returns the process-wide cache. It lives until the process exits.
func Default() *Cache {
	return defaultCache()
}

// Get returns the matcher for pattern, compiling it on first use. Two callers
// racing on the same new pattern may both compile it but only one result is
// stored and both receive the stored value.
func (c *Cache) Get(pattern string) (*regexp.Regexp, error) {
	if v, ok := c.entries.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	c.compiled.Add(1)
	v, loaded := c.entries.LoadOrStore(pattern, re)
	if !loaded {
		c.size.Add(1)
	}
	return v.(*regexp.Regexp), nil
}

// Compile builds the anchored matcher for pattern without storing it.
func Compile(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + pattern + `)`)
}

// MustGet is Get for patterns known to be valid; it panics otherwise.
func (c *Cache) MustGet(pattern string) *regexp.Regexp {
	re, err := c.Get(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Match returns the length of the match of pattern at the start of text, or
// -1 if there is none.
func (c *Cache) Match(pattern string, text string) (int, error) {
	re, err := c.Get(pattern)
	if err != nil {
		return -1, err
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return -1, nil
	}
	return loc[1], nil
}

// Len is the number of distinct patterns stored.
func (c *Cache) Len() int {
	return int(c.size.Load())
}

// Compilations counts calls to the regexp compiler, including compilations
// that lost a race and were discarded.
func (c *Cache) Compilations() int {
	return int(c.compiled.Load())
}
