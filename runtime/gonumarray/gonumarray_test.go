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

package gonumarray_test

import (
	"testing"

	"github.com/gx-org/einsum/build/builder"
	"github.com/gx-org/einsum/interp"
	"github.com/gx-org/einsum/runtime/arrays"
	"github.com/gx-org/einsum/runtime/gonumarray"
	"gonum.org/v1/gonum/mat"
)

func run(t *testing.T, src string, ops ...arrays.Operand[float64]) *arrays.ArrayT[float64] {
	t.Helper()
	prog, err := builder.New().Compile(builder.Expr{Subscripts: src, NumOperands: len(ops)})
	if err != nil {
		t.Fatalf("cannot compile %q: %+v", src, err)
	}
	out, err := interp.Run(prog, ops...)
	if err != nil {
		t.Fatalf("cannot run %q: %+v", src, err)
	}
	return out
}

func TestMatMul(t *testing.T) {
	a := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := mat.NewDense(3, 2, []float64{7, 8, 9, 10, 11, 12})
	out := run(t, "ij,jk->ik", gonumarray.FromMatrix(a), gonumarray.FromMatrix(b))
	got, err := gonumarray.ToDense(out)
	if err != nil {
		t.Fatal(err)
	}
	var want mat.Dense
	want.Mul(a, b)
	if !mat.Equal(got, &want) {
		t.Errorf("got\n%v\nwant\n%v", mat.Formatted(got), mat.Formatted(&want))
	}
}

func TestTransposedMatrix(t *testing.T) {
	a := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	out := run(t, "ij->ji", gonumarray.FromMatrix(a.T()))
	got, err := gonumarray.ToDense(out)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(got, a) {
		t.Errorf("got\n%v\nwant\n%v", mat.Formatted(got), mat.Formatted(a))
	}
}

func TestMatVec(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	x := mat.NewVecDense(2, []float64{1, -1})
	out := run(t, "ij,j->i", gonumarray.FromMatrix(a), gonumarray.FromVector(x))
	got, err := gonumarray.ToVecDense(out)
	if err != nil {
		t.Fatal(err)
	}
	var want mat.VecDense
	want.MulVec(a, x)
	if !mat.Equal(got, &want) {
		t.Errorf("got\n%v\nwant\n%v", mat.Formatted(got), mat.Formatted(&want))
	}
	if _, err := gonumarray.ToDense(out); err == nil {
		t.Errorf("converting a vector into a matrix did not fail")
	}
}

func TestTrace(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	out := run(t, "ii->", gonumarray.FromMatrix(a))
	if got, want := out.At(), mat.Trace(a); got != want {
		t.Errorf("got trace %v but want %v", got, want)
	}
}
