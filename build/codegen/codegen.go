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

// Package codegen lowers a contraction path into a program of elementary operations.
package codegen

import (
	"github.com/gx-org/einsum/build/cache"
	"github.com/gx-org/einsum/build/fmterr"
	"github.com/gx-org/einsum/build/ir"
	"github.com/gx-org/einsum/build/ir/irkind"
	"github.com/gx-org/einsum/build/planner"
	"github.com/gx-org/einsum/build/subscripts"
)

type (
	// Option of the generator.
	Option func(*generator)

	generator struct {
		ss       *subscripts.Subscripts
		patterns *cache.Patterns
		special  bool
	}
)

// WithoutSpecialCases lowers all contractions into general reductions.
func WithoutSpecialCases() Option {
	return func(g *generator) {
		g.special = false
	}
}

// Generate the program computing the subscripts following a contraction path.
// Bodies of general reductions and matrix products are loaded from, or stored into, patterns.
// Generators with different options can share patterns.
func Generate(ss *subscripts.Subscripts, path *planner.Path, patterns *cache.Patterns, opts ...Option) (*ir.Program, error) {
	g := &generator{ss: ss, patterns: patterns, special: true}
	for _, opt := range opts {
		opt(g)
	}
	if err := checkPath(ss, path); err != nil {
		return nil, err
	}
	prog := &ir.Program{Subscripts: ss}
	if len(path.Steps) == 0 {
		op, err := g.contraction(ss, []ir.Ref{ir.Arg(0)}, ir.Output())
		if err != nil {
			return nil, err
		}
		prog.Ops = append(prog.Ops, op)
		return prog, nil
	}
	perm := path.Permutation()
	for i, step := range path.Steps {
		dest := step.Result
		if i == len(path.Steps)-1 && perm == nil {
			dest = ir.Output()
		}
		op, err := g.contraction(step.Subscripts(), []ir.Ref{step.Left.Ref, step.Right.Ref}, dest)
		if err != nil {
			return nil, err
		}
		prog.Ops = append(prog.Ops, op)
	}
	if perm != nil {
		last := path.Terminal()
		prog.Ops = append(prog.Ops, &ir.Permute{
			Operand: last.Result,
			Dest:    ir.Output(),
			From:    last.Residual,
			To:      ss.Output,
			Axes:    perm,
		})
	}
	return prog, nil
}

func (g *generator) contraction(stepSS *subscripts.Subscripts, args []ir.Ref, dest ir.Ref) (*ir.Contraction, error) {
	canonical, origin := stepSS.Canonical()
	kind := g.classify(canonical)
	var body *ir.Body
	if kind.Cacheable() && g.patterns != nil {
		body, _ = g.patterns.LoadOrStore(cache.Key(kind, canonical), func() *ir.Body {
			return newBody(kind, canonical)
		})
		if body.Kind != kind {
			return nil, fmterr.Internalf(g.ss.Src(), "body %s stored in the cache is a %s but a %s is required", body.Name(), body.Kind, kind)
		}
	} else {
		body = newBody(kind, canonical)
	}
	return &ir.Contraction{
		Body:     body,
		Operands: args,
		Dest:     dest,
		Labels:   origin,
	}, nil
}

func (g *generator) classify(ss *subscripts.Subscripts) irkind.Kind {
	if !g.special {
		return irkind.General
	}
	switch len(ss.Inputs) {
	case 1:
		in := ss.Inputs[0]
		if !in.HasRepeated() {
			return irkind.General
		}
		for _, l := range in {
			if !ss.Output.Contains(l) {
				return irkind.Trace
			}
		}
		return irkind.Diagonal
	case 2:
		if isMatMul(ss) {
			return irkind.MatMul
		}
	}
	return irkind.General
}

func isMatMul(ss *subscripts.Subscripts) bool {
	left, right := ss.Inputs[0], ss.Inputs[1]
	if len(left) != 2 || len(right) != 2 || left.HasRepeated() || right.HasRepeated() {
		return false
	}
	var shared, unshared subscripts.Group
	for _, l := range left {
		if right.Contains(l) {
			shared = append(shared, l)
		} else {
			unshared = append(unshared, l)
		}
	}
	for _, l := range right {
		if !left.Contains(l) {
			unshared = append(unshared, l)
		}
	}
	if len(shared) != 1 || ss.Output.Contains(shared[0]) {
		return false
	}
	return len(ss.Output) == 2 && ss.Output.SameSet(unshared)
}

// newBody builds the body of a contraction from its canonical subscripts.
// The size of each label is bound to the first axis on which the label is observed.
// Every other observation of the label is asserted to have the same size.
func newBody(kind irkind.Kind, ss *subscripts.Subscripts) *ir.Body {
	body := &ir.Body{Kind: kind, Subscripts: ss}
	for arg, in := range ss.Inputs {
		for axis, l := range in {
			at := ir.Axis{Arg: arg, Axis: axis}
			bound, ok := body.Bound(l)
			if !ok {
				body.Binds = append(body.Binds, ir.Bind{Label: l, At: at})
				continue
			}
			body.Asserts = append(body.Asserts, ir.Assert{Label: l, Bound: bound, At: at})
		}
	}
	for _, l := range ss.Labels() {
		if !ss.Output.Contains(l) {
			body.Reduce = append(body.Reduce, l)
		}
	}
	return body
}

// checkPath checks that a path computes the subscripts.
func checkPath(ss *subscripts.Subscripts, path *planner.Path) error {
	if len(ss.Inputs) == 0 {
		return fmterr.Internalf(ss.Src(), "no input")
	}
	if got, want := len(path.Steps), len(ss.Inputs)-1; got != want {
		return fmterr.Internalf(ss.Src(), "path of %d step(s) for %d input(s)", got, len(ss.Inputs))
	}
	groups := make(map[ir.Ref]subscripts.Group)
	for i, in := range ss.Inputs {
		groups[ir.Arg(i)] = in
	}
	for _, step := range path.Steps {
		for _, op := range []planner.Operand{step.Left, step.Right} {
			group, ok := groups[op.Ref]
			if !ok {
				return fmterr.Internalf(ss.Src(), "step %s reads %s which is not available", step.String(), op.Ref)
			}
			if !group.Equal(op.Group) {
				return fmterr.Internalf(ss.Src(), "step %s reads %s with group %s but %s has group %s", step.String(), op.Ref, op.Group, op.Ref, group)
			}
			delete(groups, op.Ref)
		}
		if step.Result.Kind != ir.TempRef {
			return fmterr.Internalf(ss.Src(), "step %s does not write an intermediate", step.String())
		}
		groups[step.Result] = step.Residual
	}
	if last := path.Terminal(); last != nil {
		if last.Residual.HasRepeated() || len(last.Residual) != len(ss.Output) || !last.Residual.SameSet(ss.Output) {
			return fmterr.Internalf(ss.Src(), "last step computes %s but the output is %s", last.Residual, ss.Output)
		}
	}
	return nil
}
