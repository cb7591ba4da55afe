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

package interp_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/einsum/build/builder"
	"github.com/gx-org/einsum/build/codegen"
	"github.com/gx-org/einsum/build/fmterr"
	"github.com/gx-org/einsum/build/ir"
	"github.com/gx-org/einsum/build/ir/irkind"
	"github.com/gx-org/einsum/interp"
	"github.com/gx-org/einsum/interp/interptest"
	"github.com/gx-org/einsum/runtime/arrays"
	"github.com/pkg/errors"
)

func compile(t *testing.T, src string, opts ...codegen.Option) *ir.Program {
	t.Helper()
	prog, err := builder.New(opts...).Compile(builder.Expr{Subscripts: src, NumOperands: builder.InferOperands})
	if err != nil {
		t.Fatalf("cannot compile %q: %+v", src, err)
	}
	return prog
}

var square = []float64{1, 2, 3, 4}

func TestMatMul(t *testing.T) {
	prog := compile(t, "ij,jk->ik")
	if got := prog.Ops[0].Kind(); got != irkind.MatMul {
		t.Errorf("got operation kind %s but want %s", got, irkind.MatMul)
	}
	a := arrays.MustFromFlat(square, 2, 2)
	got, err := interp.Run[float64](prog, a, a)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if diff := cmp.Diff([]float64{7, 10, 15, 22}, got.Flat()); diff != "" {
		t.Errorf("unexpected product (-want +got):\n%s", diff)
	}
}

func TestDiagonal(t *testing.T) {
	prog := compile(t, "ii->i")
	if got := prog.Ops[0].Kind(); got != irkind.Diagonal {
		t.Errorf("got operation kind %s but want %s", got, irkind.Diagonal)
	}
	got, err := interp.Run[float64](prog, arrays.MustFromFlat(square, 2, 2))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if diff := cmp.Diff([]float64{1, 4}, got.Flat()); diff != "" {
		t.Errorf("unexpected diagonal (-want +got):\n%s", diff)
	}
}

func TestTrace(t *testing.T) {
	prog := compile(t, "ii")
	if got := prog.Ops[0].Kind(); got != irkind.Trace {
		t.Errorf("got operation kind %s but want %s", got, irkind.Trace)
	}
	got, err := interp.Run[int32](prog, arrays.MustFromFlat([]int32{1, 2, 3, 4}, 2, 2))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if got.Rank() != 0 || got.At() != 5 {
		t.Errorf("got trace %s but want 5", got)
	}
}

func TestAgainstDefinition(t *testing.T) {
	srcs := []string{
		"ij,jk->ik",
		"ij,jk->ki",
		"ij,jk",
		"ji,jk->ik",
		"ij,ij->ij",
		"ij,ij->",
		"ij->ji",
		"ij->",
		"ii->i",
		"ii",
		"iij->j",
		"iij,jk->ik",
		"ij,jk,kl->il",
		"ij,jk,kl->li",
		"ijk,kji->",
		"ijk,jl,lk,im->m",
		"ab,cd,abd->c",
		"i,j->ij",
		"i,i,i->i",
		"abc,cba->abc",
	}
	for _, opts := range [][]codegen.Option{nil, {codegen.WithoutSpecialCases()}} {
		for _, src := range srcs {
			prog := compile(t, src, opts...)
			ops := interptest.Operands(prog.Subscripts)
			got, err := interp.Run(prog, interptest.Args(ops)...)
			if err != nil {
				t.Errorf("%q: %+v", src, err)
				continue
			}
			want := interptest.Definition(prog.Subscripts, ops)
			if diff := cmp.Diff(want.Shape().AxisLengths, got.Shape().AxisLengths); diff != "" {
				t.Errorf("%q: unexpected shape (-want +got):\n%s", src, diff)
				continue
			}
			if diff := cmp.Diff(want.Flat(), got.Flat()); diff != "" {
				t.Errorf("%q: unexpected result (-definition +interp):\n%s\nprogram:\n%s", src, diff, prog)
			}
		}
	}
}

func TestShapeMismatch(t *testing.T) {
	tests := []struct {
		src  string
		ops  []arrays.Operand[float64]
		want *arrays.ShapeMismatchError
	}{
		{
			src:  "ij,jk->ik",
			ops:  []arrays.Operand[float64]{arrays.Zeros[float64](2, 3), arrays.Zeros[float64](2, 2)},
			want: &arrays.ShapeMismatchError{Label: "j", Sizes: [2]int{3, 2}},
		},
		{
			src:  "ii->i",
			ops:  []arrays.Operand[float64]{arrays.Zeros[float64](2, 3)},
			want: &arrays.ShapeMismatchError{Label: "i", Sizes: [2]int{2, 3}},
		},
		{
			src:  "ij,jk,kl->il",
			ops:  []arrays.Operand[float64]{arrays.Zeros[float64](2, 3), arrays.Zeros[float64](3, 4), arrays.Zeros[float64](5, 2)},
			want: &arrays.ShapeMismatchError{Label: "k", Sizes: [2]int{4, 5}},
		},
	}
	for _, test := range tests {
		_, err := interp.Run(compile(t, test.src), test.ops...)
		if got := fmterr.KindOf(err); got != fmterr.ShapeMismatch {
			t.Errorf("%q: got error kind %s but want %s: %v", test.src, got, fmterr.ShapeMismatch, err)
			continue
		}
		var mismatch *arrays.ShapeMismatchError
		if !errors.As(err, &mismatch) {
			t.Errorf("%q: error %T is not a shape mismatch", test.src, err)
			continue
		}
		if diff := cmp.Diff(test.want, mismatch); diff != "" {
			t.Errorf("%q: unexpected error (-want +got):\n%s", test.src, diff)
		}
	}
}

func TestRunErrors(t *testing.T) {
	prog := compile(t, "ij,jk->ik")
	_, err := interp.Run[float64](prog, arrays.Zeros[float64](2, 2))
	if got := fmterr.KindOf(err); got != fmterr.ArityMismatch {
		t.Errorf("got error kind %s but want %s: %v", got, fmterr.ArityMismatch, err)
	}
	_, err = interp.Run[float64](prog, arrays.Zeros[float64](2, 2), arrays.Zeros[float64](2))
	if got := fmterr.KindOf(err); got != fmterr.ShapeMismatch {
		t.Errorf("got error kind %s but want %s: %v", got, fmterr.ShapeMismatch, err)
	}
}
