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

// Package arrays provides the multi-dimensional arrays read and written
// by compiled einsum expressions.
package arrays

import (
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/einsum/fmt/fmtarray"
	"github.com/pkg/errors"
)

type (
	// Algebra is the set of element types supported by einsum expressions.
	Algebra interface {
		dtype.Float | dtype.IntegerType
	}

	// Operand is a multi-dimensional array read by an einsum expression.
	Operand[T any] interface {
		// Rank returns the number of axes.
		Rank() int
		// Dim returns the length of an axis.
		Dim(axis int) int
		// At returns the element at a given index.
		At(index ...int) T
	}

	// ArrayT is a dense multi-dimensional array.
	// Arrays returned by Transpose share their elements with the original array.
	ArrayT[T Algebra] struct {
		shape   shape.Shape
		strides []int
		offset  int
		values  []T
	}
)

var _ Operand[float32] = (*ArrayT[float32])(nil)

func rowMajorStrides(dims []int) []int {
	strides := make([]int, len(dims))
	stride := 1
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= dims[i]
	}
	return strides
}

func newArray[T Algebra](values []T, dims []int) *ArrayT[T] {
	return &ArrayT[T]{
		shape: shape.Shape{
			DType:       dtype.Generic[T](),
			AxisLengths: dims,
		},
		strides: rowMajorStrides(dims),
		values:  values,
	}
}

// Zeros returns an array of zeros given the length of its axes.
func Zeros[T Algebra](dims ...int) *ArrayT[T] {
	dims = append([]int{}, dims...)
	size := 1
	for _, d := range dims {
		size *= d
	}
	return newArray(make([]T, size), dims)
}

// Scalar returns an array of rank 0.
func Scalar[T Algebra](val T) *ArrayT[T] {
	return newArray([]T{val}, nil)
}

// FromFlat returns an array given its elements in row-major order.
// The array uses values as its storage.
func FromFlat[T Algebra](values []T, dims ...int) (*ArrayT[T], error) {
	arr := newArray(values, append([]int{}, dims...))
	if len(values) != arr.shape.Size() {
		return nil, errors.Errorf("mismatch between the number of values (=%d) and the number of elements (=%d) in shape %s", len(values), arr.shape.Size(), arr.shape.String())
	}
	return arr, nil
}

// MustFromFlat returns an array given its elements in row-major order.
// It panics if the number of elements does not match the shape.
func MustFromFlat[T Algebra](values []T, dims ...int) *ArrayT[T] {
	arr, err := FromFlat(values, dims...)
	if err != nil {
		panic(err)
	}
	return arr
}

// Shape of the array.
func (a *ArrayT[T]) Shape() *shape.Shape {
	return &a.shape
}

// Rank returns the number of axes of the array.
func (a *ArrayT[T]) Rank() int {
	return len(a.shape.AxisLengths)
}

// Dim returns the length of an axis.
func (a *ArrayT[T]) Dim(axis int) int {
	return a.shape.AxisLengths[axis]
}

func (a *ArrayT[T]) flatIndex(index []int) int {
	if len(index) != len(a.strides) {
		panic(errors.Errorf("index %v of rank %d used for an array of rank %d", index, len(index), len(a.strides)))
	}
	flat := a.offset
	for i, v := range index {
		flat += v * a.strides[i]
	}
	return flat
}

// At returns the element at an index.
func (a *ArrayT[T]) At(index ...int) T {
	return a.values[a.flatIndex(index)]
}

// Set the element at an index.
func (a *ArrayT[T]) Set(val T, index ...int) {
	a.values[a.flatIndex(index)] = val
}

// Add a value to the element at an index.
func (a *ArrayT[T]) Add(val T, index ...int) {
	a.values[a.flatIndex(index)] += val
}

// Transpose returns a view of the array with its axes reordered:
// axis i of the view is axis axes[i] of the array.
// The view shares the elements of the array.
func (a *ArrayT[T]) Transpose(axes ...int) (*ArrayT[T], error) {
	if len(axes) != a.Rank() {
		return nil, errors.Errorf("cannot transpose an array of rank %d with %d axes", a.Rank(), len(axes))
	}
	view := &ArrayT[T]{
		shape: shape.Shape{
			DType:       a.shape.DType,
			AxisLengths: make([]int, len(axes)),
		},
		strides: make([]int, len(axes)),
		offset:  a.offset,
		values:  a.values,
	}
	seen := make([]bool, len(axes))
	for i, axis := range axes {
		if axis < 0 || axis >= len(axes) || seen[axis] {
			return nil, errors.Errorf("%v is not a permutation of the axes of an array of rank %d", axes, a.Rank())
		}
		seen[axis] = true
		view.shape.AxisLengths[i] = a.shape.AxisLengths[axis]
		view.strides[i] = a.strides[axis]
	}
	return view, nil
}

func (a *ArrayT[T]) contiguous() bool {
	if a.offset != 0 || len(a.values) != a.shape.Size() {
		return false
	}
	for i, stride := range rowMajorStrides(a.shape.AxisLengths) {
		if a.shape.AxisLengths[i] > 1 && a.strides[i] != stride {
			return false
		}
	}
	return true
}

// Flat returns the elements of the array in row-major order.
// The returned slice is the storage of the array if the array is not a view.
func (a *ArrayT[T]) Flat() []T {
	if a.contiguous() {
		return a.values
	}
	flat := make([]T, 0, a.shape.Size())
	ForEach(a.shape.AxisLengths, func(index []int) {
		flat = append(flat, a.At(index...))
	})
	return flat
}

// String representation of the array.
func (a *ArrayT[T]) String() string {
	return fmtarray.Sprint(a.shape.AxisLengths, func(index []int) T {
		return a.At(index...)
	})
}

// ForEach calls f for every index of an array given the length of its axes, in row-major order.
// The index slice is reused between calls.
func ForEach(dims []int, f func(index []int)) {
	for _, d := range dims {
		if d == 0 {
			return
		}
	}
	index := make([]int, len(dims))
	for {
		f(index)
		axis := len(dims) - 1
		for ; axis >= 0; axis-- {
			index[axis]++
			if index[axis] < dims[axis] {
				break
			}
			index[axis] = 0
		}
		if axis < 0 {
			return
		}
	}
}

// Dims returns the length of all the axes of an operand.
func Dims[T any](op Operand[T]) []int {
	dims := make([]int, op.Rank())
	for i := range dims {
		dims[i] = op.Dim(i)
	}
	return dims
}

// ToArray copies an operand into a new array.
func ToArray[T Algebra](op Operand[T]) *ArrayT[T] {
	arr := Zeros[T](Dims(op)...)
	ForEach(arr.shape.AxisLengths, func(index []int) {
		arr.Set(op.At(index...), index...)
	})
	return arr
}
