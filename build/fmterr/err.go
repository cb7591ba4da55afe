// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fmterr provides errors positioned in einsum subscripts
// and in the host source code declaring the expression.
package fmterr

import (
	"fmt"
	"go/token"
	"runtime/debug"

	"github.com/pkg/errors"
)

type (
	// Span is a range of bytes [Start, End) in the subscript text.
	Span struct {
		Start, End int
	}

	// Diagnostic is an error attached to a span in einsum subscripts.
	Diagnostic interface {
		Kinded
		// Src returns the subscript text in which the error occurred.
		Src() string
		// Span returns the location of the error in Src.
		Span() Span
		// Pos returns the position of the expression in the host source code.
		// The position is invalid if unknown.
		Pos() token.Position
		// Err returns the error without position.
		Err() error
	}

	diagnostic struct {
		kind Kind
		src  string
		span Span
		pos  token.Position
		err  error
	}
)

var _ Diagnostic = (*diagnostic)(nil)

// At returns a span of n bytes starting at start.
func At(start, n int) Span {
	return Span{Start: start, End: start + n}
}

// String representation of a span.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

// Errorf returns a formatted compiler error for the user.
func Errorf(kind Kind, src string, span Span, format string, a ...any) error {
	return &diagnostic{
		kind: kind,
		src:  src,
		span: span,
		err:  errors.Errorf(format, a...),
	}
}

// Internalf returns an internal error, that is a bug in the compiler.
func Internalf(src string, format string, a ...any) error {
	return &diagnostic{
		kind: GenerationError,
		src:  src,
		span: Span{End: len(src)},
		err:  errors.Errorf("einsum internal error. This is a bug in the einsum compiler. Please report it. Error:\n"+format, a...),
	}
}

// AtPos attaches the position of an expression in the host source code to the diagnostics
// in err. Errors which are not a diagnostic are returned unchanged.
func AtPos(pos token.Position, err error) error {
	var diag *diagnostic
	if !errors.As(err, &diag) {
		return err
	}
	withPos := *diag
	withPos.pos = pos
	return &withPos
}

// Error returns a string description of the error.
func (err *diagnostic) Error() (s string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s = fmt.Sprintf("recovered from panic when building error message: %T:\n%v", err.err, string(debug.Stack()))
	}()
	prefix := ""
	if err.pos.IsValid() {
		prefix = err.pos.String() + ": "
	}
	return fmt.Sprintf("%s%q[%s]: %s: %s", prefix, err.src, err.span, err.kind, err.err.Error())
}

// Unwrap the error.
func (err *diagnostic) Unwrap() error {
	return err.err
}

// Kind of the error.
func (err *diagnostic) Kind() Kind {
	return err.kind
}

// Src returns the subscripts in which the error has been found.
func (err *diagnostic) Src() string {
	return err.src
}

// Span returns the location of the error in the subscripts.
func (err *diagnostic) Span() Span {
	return err.span
}

// Pos returns the position of the expression in the host source code.
func (err *diagnostic) Pos() token.Position {
	return err.pos
}

// Err returns the error without any position.
func (err *diagnostic) Err() error {
	return err.err
}
