// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package compiler drives parsing of many files at once. Each file is parsed
// on its own goroutine and the number of concurrent parses is bounded.
package compiler

import (
	"context"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"gopkg.microglot.org/weft.go/internal/exc"
	"gopkg.microglot.org/weft.go/internal/iter"
	"gopkg.microglot.org/weft.go/internal/pattern"
	"gopkg.microglot.org/weft.go/internal/source"
	"gopkg.microglot.org/weft.go/internal/syntax"
	"gopkg.microglot.org/weft.go/internal/target"
)

var log = commonlog.GetLogger("weft.compiler")

type Compiler interface {
	Compile(ctx context.Context, req *CompileRequest) (*CompileResponse, error)
}

type CompileRequest struct {
	// Files are paths or URIs. Directories expand to the supported files they
	// contain.
	Files []string
}

type CompileResponse struct {
	// Files are sorted by URI.
	Files []*ParsedFile
}

// ParsedFile is the result of parsing one file. Tree files are decoded and
// their text parsed again so Root and Diagnostics always come from a fresh
// parse.
type ParsedFile struct {
	URI         string
	Kind        source.FileKind
	Text        string
	Root        *syntax.Node
	Diagnostics []exc.Exception
	Lines       *source.LineIndex
}

type Option func(c *compiler) error

func OptionWithFS(fs source.FileSystem) Option {
	return func(c *compiler) error {
		c.FS = fs
		return nil
	}
}

func OptionWithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(c *compiler) error {
		c.LookupENV = lookupEnv
		return nil
	}
}

func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(c *compiler) error {
		c.Reporter = reporter
		return nil
	}
}

// OptionWithMaxConcurrency bounds the number of files parsed at once. Zero
// keeps the default of min(GOMAXPROCS, NumCPU).
func OptionWithMaxConcurrency(v int) Option {
	return func(c *compiler) error {
		if v < 0 {
			return exc.Newf(exc.Location{}, exc.CodeInvalidConfig, "max concurrency must not be negative, got %d", v)
		}
		c.MaxConcurrency = v
		return nil
	}
}

// OptionWithPatternCache shares a regex cache between every parse run by
// the compiler.
func OptionWithPatternCache(v *pattern.Cache) Option {
	return func(c *compiler) error {
		c.Patterns = v
		return nil
	}
}

func New(opts ...Option) (Compiler, error) {
	c := &compiler{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.LookupENV == nil {
		c.LookupENV = os.LookupEnv
	}
	if c.FS == nil {
		dfs, err := NewDefaultFS(c.LookupENV)
		if err != nil {
			return nil, err
		}
		c.FS = dfs
	}
	if c.MaxConcurrency == 0 {
		max := runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if max > cpus {
			max = cpus
		}
		c.MaxConcurrency = max
	}
	if c.Semaphore == nil {
		c.Semaphore = newSemaphore(c.MaxConcurrency)
	}
	if c.Reporter == nil {
		c.Reporter = exc.NewReporter(nil)
	}
	if c.Patterns == nil {
		c.Patterns = pattern.Default()
	}
	if c.Parsers == nil {
		c.Parsers = DefaultParsers()
	}
	return c, nil
}

type compiler struct {
	LookupENV      func(string) (string, bool)
	FS             source.FileSystem
	MaxConcurrency int
	Semaphore      *semaphore
	Reporter       exc.Reporter
	Patterns       *pattern.Cache
	Parsers        map[source.FileKind]FileParser
}

func (self *compiler) Compile(ctx context.Context, req *CompileRequest) (*CompileResponse, error) {
	files := make([]source.File, 0, len(req.Files))
	for _, t := range req.Files {
		uri := target.Normalize(t)
		in, err := self.FS.Open(ctx, uri)
		if err != nil {
			e, ok := err.(exc.Exception)
			if !ok {
				e = exc.WrapUnknown(exc.Location{URI: uri}, err)
			}
			if fatal := self.Reporter.Report(e); fatal != nil {
				return nil, fatal
			}
			continue
		}
		supported, err := iter.Collect(ctx, iter.NewIteratorFilter(iter.NewSlice(in), supportedFiles))
		if err != nil {
			return nil, err
		}
		files = append(files, supported...)
	}
	log.Debugf("compiling %d files with concurrency %d", len(files), self.MaxConcurrency)

	loaded := &sync.Map{}
	results := make(chan fileResult, len(files))
	for _, file := range files {
		go func(file source.File) {
			parsed, err := self.compileFile(ctx, file, loaded)
			results <- fileResult{parsed, err}
		}(file)
	}

	parsed := make([]*ParsedFile, 0, len(files))
	for x := 0; x < len(files); x = x + 1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result := <-results:
			if result.err != nil {
				return nil, result.err
			}
			if result.file != nil {
				parsed = append(parsed, result.file)
			}
		}
	}
	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].URI < parsed[j].URI
	})

	resp := &CompileResponse{Files: parsed}
	caught := self.Reporter.Reported()
	if len(caught) > 0 {
		exc.Sort(caught)
		return resp, MultiException(caught)
	}
	return resp, nil
}

func (self *compiler) compileFile(ctx context.Context, file source.File, loaded *sync.Map) (*ParsedFile, error) {
	self.Semaphore.Lock()
	defer self.Semaphore.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	uri := file.Path(ctx)
	if _, ok := loaded.LoadOrStore(uri, true); ok {
		return nil, nil
	}
	fp := self.Parsers[file.Kind(ctx)]
	if fp == nil {
		e := exc.New(exc.Location{URI: uri}, exc.CodeUnsupportedFileFormat, "unsupported file format")
		return nil, self.Reporter.Report(e)
	}
	parsed, err := fp.ParseFile(ctx, self.Patterns, file)
	if err != nil {
		e, ok := err.(exc.Exception)
		if !ok {
			e = exc.WrapUnknown(exc.Location{URI: uri}, err)
		}
		return nil, self.Reporter.Report(e)
	}
	// Parse diagnostics never abort the other files.
	for _, d := range parsed.Diagnostics {
		_ = self.Reporter.Report(d)
	}
	log.Debugf("parsed %s: %d bytes, %d diagnostics", uri, len(parsed.Text), len(parsed.Diagnostics))
	return parsed, nil
}

var supportedFiles = iter.FilterFunc[source.File](func(ctx context.Context, f source.File) bool {
	if f.Kind(ctx) == source.FileKindNone {
		log.Debugf("skipping %s: unsupported file kind", f.Path(ctx))
		return false
	}
	return true
})

type fileResult struct {
	file *ParsedFile
	err  error
}

type MultiException []exc.Exception

func (self MultiException) Error() string {
	var b strings.Builder
	for _, err := range self[:len(self)-1] {
		b.WriteString(err.Error())
		b.WriteString("; ")
	}
	b.WriteString(self[len(self)-1].Error())
	return b.String()
}
