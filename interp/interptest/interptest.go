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

// Package interptest computes einsum expressions from their definition
// to check the results of compiled programs.
package interptest

import (
	"github.com/gx-org/einsum/build/subscripts"
	"github.com/gx-org/einsum/runtime/arrays"
)

// Lengths are the lengths of the axes of the arrays returned by Operands.
var Lengths = map[subscripts.Label]int{
	'a': 2, 'b': 3, 'c': 1,
	'i': 2, 'j': 3, 'k': 4, 'l': 2, 'm': 3,
}

// Operands returns arrays matching the input groups of subscripts.
// The axis of a label has the length given by Lengths.
// Elements are small integers different from one array to the next.
func Operands(ss *subscripts.Subscripts) []*arrays.ArrayT[float64] {
	ops := make([]*arrays.ArrayT[float64], len(ss.Inputs))
	for i, in := range ss.Inputs {
		dims := make([]int, len(in))
		for axis, l := range in {
			dims[axis] = Lengths[l]
		}
		arr := arrays.Zeros[float64](dims...)
		n := i
		arrays.ForEach(dims, func(index []int) {
			arr.Set(float64(n%7-3), index...)
			n++
		})
		ops[i] = arr
	}
	return ops
}

// Args returns arrays as operands.
func Args[T arrays.Algebra](arrs []*arrays.ArrayT[T]) []arrays.Operand[T] {
	args := make([]arrays.Operand[T], len(arrs))
	for i, arr := range arrs {
		args[i] = arr
	}
	return args
}

// Definition computes an einsum expression by iterating over all the labels.
// The operands are assumed to have consistent shapes.
func Definition[T arrays.Algebra](ss *subscripts.Subscripts, ops []*arrays.ArrayT[T]) *arrays.ArrayT[T] {
	lengths := make(map[subscripts.Label]int)
	for i, in := range ss.Inputs {
		for axis, l := range in {
			lengths[l] = ops[i].Dim(axis)
		}
	}
	labels := ss.Labels()
	dims := make([]int, len(labels))
	for i, l := range labels {
		dims[i] = lengths[l]
	}
	outDims := make([]int, len(ss.Output))
	for i, l := range ss.Output {
		outDims[i] = lengths[l]
	}
	out := arrays.Zeros[T](outDims...)
	vals := make(map[subscripts.Label]int)
	indexOf := func(g subscripts.Group) []int {
		index := make([]int, len(g))
		for i, l := range g {
			index[i] = vals[l]
		}
		return index
	}
	arrays.ForEach(dims, func(index []int) {
		for i, l := range labels {
			vals[l] = index[i]
		}
		prod := T(1)
		for i, in := range ss.Inputs {
			prod *= ops[i].At(indexOf(in)...)
		}
		out.Add(prod, indexOf(ss.Output)...)
	})
	return out
}
