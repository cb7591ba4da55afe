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

// Package gonumarray uses gonum matrices and vectors as einsum operands.
package gonumarray

import (
	"github.com/gx-org/einsum/runtime/arrays"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

type (
	// Matrix is an operand of rank 2 reading a gonum matrix.
	Matrix struct {
		m mat.Matrix
	}

	// Vector is an operand of rank 1 reading a gonum vector.
	Vector struct {
		v mat.Vector
	}
)

var (
	_ arrays.Operand[float64] = Matrix{}
	_ arrays.Operand[float64] = Vector{}
)

// FromMatrix returns an operand reading a matrix.
func FromMatrix(m mat.Matrix) Matrix {
	return Matrix{m: m}
}

// Rank of a matrix.
func (Matrix) Rank() int {
	return 2
}

// Dim returns the number of rows for axis 0 and the number of columns for axis 1.
func (m Matrix) Dim(axis int) int {
	r, c := m.m.Dims()
	if axis == 0 {
		return r
	}
	return c
}

// At returns the element of the matrix at [row, column].
func (m Matrix) At(index ...int) float64 {
	return m.m.At(index[0], index[1])
}

// FromVector returns an operand reading a vector.
func FromVector(v mat.Vector) Vector {
	return Vector{v: v}
}

// Rank of a vector.
func (Vector) Rank() int {
	return 1
}

// Dim returns the length of the vector.
func (v Vector) Dim(int) int {
	return v.v.Len()
}

// At returns an element of the vector.
func (v Vector) At(index ...int) float64 {
	return v.v.AtVec(index[0])
}

// ToDense copies an operand of rank 2 into a gonum dense matrix.
func ToDense(op arrays.Operand[float64]) (*mat.Dense, error) {
	if op.Rank() != 2 {
		return nil, errors.Errorf("cannot convert an operand of rank %d into a matrix", op.Rank())
	}
	r, c := op.Dim(0), op.Dim(1)
	if r == 0 || c == 0 {
		return nil, errors.Errorf("cannot convert an empty operand of shape [%d][%d] into a matrix", r, c)
	}
	dense := mat.NewDense(r, c, nil)
	for i := range r {
		for j := range c {
			dense.Set(i, j, op.At(i, j))
		}
	}
	return dense, nil
}

// ToVecDense copies an operand of rank 1 into a gonum dense vector.
func ToVecDense(op arrays.Operand[float64]) (*mat.VecDense, error) {
	if op.Rank() != 1 {
		return nil, errors.Errorf("cannot convert an operand of rank %d into a vector", op.Rank())
	}
	n := op.Dim(0)
	if n == 0 {
		return nil, errors.Errorf("cannot convert an empty operand into a vector")
	}
	vec := mat.NewVecDense(n, nil)
	for i := range n {
		vec.SetVec(i, op.At(i))
	}
	return vec, nil
}
