// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/weft.go/internal/source"
)

func TestReporter(t *testing.T) {
	t.Parallel()

	r := NewReporter([]string{CodeExpectedMissing})
	loc := Location{URI: "/a.weft", Span: source.NewSpan(4, 4)}

	require.Nil(t, r.Report(New(loc, CodeExpectedMissing, "expected expression")))
	fatal := r.Report(New(loc, CodeUnexpectedInput, "unexpected input"))
	require.NotNil(t, fatal)
	require.Equal(t, CodeUnexpectedInput, fatal.Code())
	require.Len(t, r.Reported(), 2)
}

func TestReporterConcurrent(t *testing.T) {
	t.Parallel()

	r := NewReporter(nil)
	wg := &sync.WaitGroup{}
	for x := 0; x < 16; x = x + 1 {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			_ = r.Report(New(Location{URI: fmt.Sprintf("/%02d.weft", x)}, CodeUnknownFatal, "boom"))
		}(x)
	}
	wg.Wait()

	reported := r.Reported()
	require.Len(t, reported, 16)
	Sort(reported)
	require.Equal(t, "/00.weft", reported[0].Location().URI)
	require.Equal(t, "/15.weft", reported[15].Location().URI)
}

func TestWrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk on fire")
	e := Wrap(Location{URI: "/x.weft"}, CodeFileNotFound, cause)
	require.ErrorIs(t, e, cause)
	require.Equal(t, "disk on fire", e.Message())
	require.Nil(t, Wrap(Location{}, CodeFileNotFound, nil))

	inner := New(Location{URI: "/y.weft"}, CodeTagMismatch, "expected \"let\"")
	outer := Wrap(Location{URI: "/z.weft"}, CodeExpectedMissing, inner)
	require.Equal(t, "expected \"let\"", outer.Message())
	require.Equal(t, CodeExpectedMissing, outer.Code())
}

func TestFormat(t *testing.T) {
	t.Parallel()

	text := "let x = 1;\nlet y = ;\n"
	e := New(Location{URI: "/m.weft", Span: source.NewSpan(19, 19)}, CodeExpectedMissing, "expected expression")
	require.Equal(t, "/m.weft:2:9: M0104: expected expression", Format(e, source.NewLineIndex(text)))
	require.Equal(t, "/m.weft@19..19 -- M0104: expected expression", Format(e, nil))
}
