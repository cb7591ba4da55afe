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

// Package builder compiles einsum expressions into programs.
//
// Compiling an expression goes through the following passes:
//  1. the subscripts are parsed,
//  2. the subscripts are validated against the number of operands,
//  3. the order in which operands are contracted is planned,
//  4. the program is generated for each contraction step.
//
// A builder keeps a cache of generated bodies shared by all the
// expressions it compiles.
package builder

import (
	"go/token"

	"github.com/gx-org/einsum/build/cache"
	"github.com/gx-org/einsum/build/codegen"
	"github.com/gx-org/einsum/build/fmterr"
	"github.com/gx-org/einsum/build/ir"
	"github.com/gx-org/einsum/build/planner"
	"github.com/gx-org/einsum/build/subscripts"
	"github.com/gx-org/einsum/build/validate"
	"go.uber.org/multierr"
)

// InferOperands is used in an expression to take the number of operands from its subscripts.
const InferOperands = -1

type (
	// Expr is an einsum expression to compile.
	Expr struct {
		// Pos is the position of the expression in the host source. Can be invalid.
		Pos token.Position
		// Name of the expression. Can be empty.
		Name string
		// Subscripts of the expression, e.g. "ij,jk->ik".
		Subscripts string
		// NumOperands is the number of operands given to the expression.
		NumOperands int
	}

	// Builder represents a compilation session from einsum subscripts
	// to programs.
	Builder struct {
		patterns *cache.Patterns
		opts     []codegen.Option
	}
)

// New returns a new compilation session.
func New(opts ...codegen.Option) *Builder {
	return &Builder{
		patterns: cache.New(),
		opts:     opts,
	}
}

// Patterns returns the cache of bodies of the session.
func (b *Builder) Patterns() *cache.Patterns {
	return b.patterns
}

// Reset the builder to start an independent compilation.
func (b *Builder) Reset() {
	b.patterns.Reset()
}

// Compile an expression.
func (b *Builder) Compile(expr Expr) (*ir.Program, error) {
	prog, err := b.compile(expr)
	if err != nil {
		return nil, fmterr.AtPos(expr.Pos, err)
	}
	prog.Name = expr.Name
	return prog, nil
}

func (b *Builder) compile(expr Expr) (*ir.Program, error) {
	ss, err := subscripts.Parse(expr.Subscripts)
	if err != nil {
		return nil, err
	}
	numOperands := expr.NumOperands
	if numOperands == InferOperands {
		numOperands = len(ss.Inputs)
	}
	if err := validate.Validate(ss, numOperands); err != nil {
		return nil, err
	}
	return codegen.Generate(ss, planner.Plan(ss), b.patterns, b.opts...)
}

// CompileAll compiles a list of expressions.
// The i-th program is the result of the i-th expression and is nil if
// the expression could not be compiled.
// The errors of all the expressions are combined in the returned error.
func (b *Builder) CompileAll(exprs []Expr) ([]*ir.Program, error) {
	progs := make([]*ir.Program, len(exprs))
	var errs error
	for i, expr := range exprs {
		prog, err := b.Compile(expr)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		progs[i] = prog
	}
	return progs, errs
}
