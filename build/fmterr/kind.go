// Copyright 2025 Google LLC
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

package fmterr

import "github.com/pkg/errors"

// Kind of an einsum error.
type Kind int

// Kinds of errors reported while compiling or running an einsum expression.
const (
	// Unknown is the kind of errors not created by this package.
	Unknown Kind = iota
	// MalformedSubscripts is reported when the notation does not follow the grammar.
	MalformedSubscripts
	// UnsupportedFeature is reported for valid but unimplemented notation (ellipsis).
	UnsupportedFeature
	// ArityMismatch is reported when the number of operands differs from the number of input groups.
	ArityMismatch
	// DuplicateOutputIndex is reported when a label appears more than once in the output.
	DuplicateOutputIndex
	// ShapeMismatch is reported at run time when two axes bound to the same label have different sizes.
	ShapeMismatch
	// GenerationError is an internal error of the compiler.
	GenerationError
)

// String returns a string representation of a kind.
func (k Kind) String() string {
	switch k {
	case MalformedSubscripts:
		return "malformed subscripts"
	case UnsupportedFeature:
		return "unsupported feature"
	case ArityMismatch:
		return "arity mismatch"
	case DuplicateOutputIndex:
		return "duplicate output index"
	case ShapeMismatch:
		return "shape mismatch"
	case GenerationError:
		return "generation error"
	}
	return "unknown"
}

// CompileTime returns true if the error is detected while compiling an expression.
// ShapeMismatch is the only error detected when the generated code runs.
func (k Kind) CompileTime() bool {
	return k != Unknown && k != ShapeMismatch
}

// Kinded is an error with a kind.
type Kinded interface {
	error
	Kind() Kind
}

// KindOf returns the kind of the first error in the chain of err with a kind.
// It returns Unknown if there is none.
func KindOf(err error) Kind {
	var kinded Kinded
	if !errors.As(err, &kinded) {
		return Unknown
	}
	return kinded.Kind()
}
