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

package planner_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gx-org/einsum/build/ir"
	"github.com/gx-org/einsum/build/planner"
	"github.com/gx-org/einsum/build/subscripts"
)

type g = subscripts.Group

func op(ref ir.Ref, group string) planner.Operand {
	return planner.Operand{Ref: ref, Group: g(group)}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		src   string
		steps []planner.Step
		perm  []int
	}{
		{
			src: "ij,jk->ik",
			steps: []planner.Step{
				{Left: op(ir.Arg(0), "ij"), Right: op(ir.Arg(1), "jk"), Summed: g("j"), Residual: g("ik"), Result: ir.Temp(0)},
			},
		},
		{
			src: "ij,jk->ki",
			steps: []planner.Step{
				{Left: op(ir.Arg(0), "ij"), Right: op(ir.Arg(1), "jk"), Summed: g("j"), Residual: g("ik"), Result: ir.Temp(0)},
			},
			perm: []int{1, 0},
		},
		{
			src: "ij,jk,kl->il",
			steps: []planner.Step{
				{Left: op(ir.Arg(0), "ij"), Right: op(ir.Arg(1), "jk"), Summed: g("j"), Residual: g("ik"), Result: ir.Temp(0)},
				{Left: op(ir.Temp(0), "ik"), Right: op(ir.Arg(2), "kl"), Summed: g("k"), Residual: g("il"), Result: ir.Temp(1)},
			},
		},
		{
			// Pairs tie on one shared label: the pair with fewer axes is selected.
			src: "ij,jkl,jm->iklm",
			steps: []planner.Step{
				{Left: op(ir.Arg(0), "ij"), Right: op(ir.Arg(2), "jm"), Residual: g("ijm"), Result: ir.Temp(0)},
				{Left: op(ir.Temp(0), "ijm"), Right: op(ir.Arg(1), "jkl"), Summed: g("j"), Residual: g("imkl"), Result: ir.Temp(1)},
			},
			perm: []int{0, 2, 3, 1},
		},
		{
			src: "ab,cd,abd->c",
			steps: []planner.Step{
				{Left: op(ir.Arg(0), "ab"), Right: op(ir.Arg(2), "abd"), Summed: g("ab"), Residual: g("d"), Result: ir.Temp(0)},
				{Left: op(ir.Temp(0), "d"), Right: op(ir.Arg(1), "cd"), Summed: g("d"), Residual: g("c"), Result: ir.Temp(1)},
			},
		},
		{
			// Labels private to one operand and absent from the output are summed.
			src: "ij,jk->i",
			steps: []planner.Step{
				{Left: op(ir.Arg(0), "ij"), Right: op(ir.Arg(1), "jk"), Summed: g("jk"), Residual: g("i"), Result: ir.Temp(0)},
			},
		},
		{
			src: "ij,kl->ijkl",
			steps: []planner.Step{
				{Left: op(ir.Arg(0), "ij"), Right: op(ir.Arg(1), "kl"), Residual: g("ijkl"), Result: ir.Temp(0)},
			},
		},
		{
			// The intermediate is contracted first at the next step.
			src: "ab,bc,cd,de->ae",
			steps: []planner.Step{
				{Left: op(ir.Arg(0), "ab"), Right: op(ir.Arg(1), "bc"), Summed: g("b"), Residual: g("ac"), Result: ir.Temp(0)},
				{Left: op(ir.Temp(0), "ac"), Right: op(ir.Arg(2), "cd"), Summed: g("c"), Residual: g("ad"), Result: ir.Temp(1)},
				{Left: op(ir.Temp(1), "ad"), Right: op(ir.Arg(3), "de"), Summed: g("d"), Residual: g("ae"), Result: ir.Temp(2)},
			},
		},
		{
			src: "ij->ji",
		},
	}
	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			ss := subscripts.MustParse(test.src)
			path := planner.Plan(ss)
			if diff := cmp.Diff(test.steps, path.Steps, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("unexpected steps (-want +got):\n%s\npath:\n%s", diff, path)
			}
			if diff := cmp.Diff(test.perm, path.Permutation(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("unexpected permutation (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPathProperties(t *testing.T) {
	for _, src := range []string{
		"ij,jk,kl->il",
		"ab,bc,cd,de->ae",
		"ijk,jl,lk,im->m",
		"a,b,c,d->abcd",
		"ij,ij,ij->",
	} {
		ss := subscripts.MustParse(src)
		path := planner.Plan(ss)
		if got, want := len(path.Steps), len(ss.Inputs)-1; got != want {
			t.Errorf("%q: got %d steps but want %d", src, got, want)
		}
		last := path.Terminal()
		if !last.Residual.SameSet(ss.Output) || len(last.Residual) != len(ss.Output) {
			t.Errorf("%q: terminal residual %s does not match output %s", src, last.Residual, ss.Output)
		}
		again := planner.Plan(ss)
		if diff := cmp.Diff(path.Steps, again.Steps); diff != "" {
			t.Errorf("%q: planning is not deterministic (-first +second):\n%s", src, diff)
		}
	}
}
