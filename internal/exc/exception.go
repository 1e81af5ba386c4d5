// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"fmt"

	"gopkg.microglot.org/weft.go/internal/source"
)

type Exception interface {
	error
	Code() string
	Message() string
	Location() Location
}

// Location identifies a byte range within a file. Converting the span to a
// line and column is left to whoever displays the exception.
type Location struct {
	source.Span
	URI string
}

func (l Location) String() string {
	return fmt.Sprintf("%s@%s", l.URI, l.Span)
}

type exc struct {
	code     string
	message  string
	location Location
}

func (e *exc) Error() string {
	return fmt.Sprintf("%s -- %s: %s", e.location, e.code, e.message)
}

func (e *exc) Code() string {
	return e.code
}

func (e *exc) Message() string {
	return e.message
}

func (e *exc) Location() Location {
	return e.location
}

type excUnwrap struct {
	Exception
	cause error
}

func (e *excUnwrap) Unwrap() error {
	return e.cause
}

func New(location Location, code string, message string) Exception {
	return &exc{
		location: location,
		message:  message,
		code:     code,
	}
}

func Newf(location Location, code string, format string, args ...any) Exception {
	return New(location, code, fmt.Sprintf(format, args...))
}

func Wrap(location Location, code string, err error) Exception {
	if err == nil {
		return nil
	}
	if e, ok := err.(Exception); ok {
		return &excUnwrap{
			Exception: New(location, code, e.Message()),
			cause:     e,
		}
	}
	return &excUnwrap{
		cause:     err,
		Exception: New(location, code, err.Error()),
	}
}

func WrapUnknown(location Location, err error) Exception {
	return Wrap(location, CodeUnknownFatal, err)
}

// Format renders e with a line and column computed from lines. It is the
// display form used by command line tools.
func Format(e Exception, lines *source.LineIndex) string {
	loc := e.Location()
	if lines == nil {
		return e.Error()
	}
	pos := lines.Position(loc.Start)
	return fmt.Sprintf("%s:%d:%d: %s: %s", loc.URI, pos.Line, pos.Column, e.Code(), e.Message())
}
