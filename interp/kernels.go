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

package interp

import (
	"github.com/gx-org/einsum/build/ir"
	"github.com/gx-org/einsum/build/ir/irkind"
	"github.com/gx-org/einsum/build/subscripts"
	"github.com/gx-org/einsum/runtime/arrays"
	"github.com/pkg/errors"
)

// loopNest maps the loops of a body to the axes of its arguments and of its result.
// Canonical labels are contiguous from a: the value of label l is vals[l-'a'].
type loopNest struct {
	body  *ir.Body
	sizes []int
	vals  []int
}

func bindSizes[T arrays.Algebra](c *ir.Contraction, args []arrays.Operand[T]) (*loopNest, error) {
	body := c.Body
	for i, in := range body.Subscripts.Inputs {
		if err := arrays.CheckRank(i, args[i], len(in)); err != nil {
			return nil, errors.WithMessagef(err, "cannot evaluate %s", c)
		}
	}
	numLabels := len(body.Subscripts.Labels())
	nest := &loopNest{
		body:  body,
		sizes: make([]int, numLabels),
		vals:  make([]int, numLabels),
	}
	for _, bind := range body.Binds {
		nest.sizes[bind.Label-'a'] = args[bind.At.Arg].Dim(bind.At.Axis)
	}
	for _, assert := range body.Asserts {
		size := args[assert.At.Arg].Dim(assert.At.Axis)
		if err := arrays.CheckDim(c.UserLabel(assert.Label).String(), nest.sizes[assert.Label-'a'], size); err != nil {
			return nil, err
		}
	}
	return nest, nil
}

func (n *loopNest) dims(g subscripts.Group) []int {
	dims := make([]int, len(g))
	for i, l := range g {
		dims[i] = n.sizes[l-'a']
	}
	return dims
}

func (n *loopNest) index(g subscripts.Group, index []int) []int {
	for i, l := range g {
		index[i] = n.vals[l-'a']
	}
	return index
}

func (n *loopNest) set(g subscripts.Group, index []int) {
	for i, l := range g {
		n.vals[l-'a'] = index[i]
	}
}

func contract[T arrays.Algebra](c *ir.Contraction, args []arrays.Operand[T]) (*arrays.ArrayT[T], error) {
	nest, err := bindSizes(c, args)
	if err != nil {
		return nil, err
	}
	result := arrays.Zeros[T](nest.dims(c.Body.Subscripts.Output)...)
	switch c.Kind() {
	case irkind.MatMul:
		matmul(nest, args, result)
	case irkind.Diagonal:
		diagonal(nest, args[0], result)
	case irkind.General, irkind.Trace:
		reduce(nest, args, result)
	default:
		return nil, errors.Errorf("cannot evaluate %s: operation kind %s not supported", c, c.Kind())
	}
	return result, nil
}

// reduce multiplies the arguments for every value of the loop labels
// and accumulates the product into the result.
func reduce[T arrays.Algebra](nest *loopNest, args []arrays.Operand[T], result *arrays.ArrayT[T]) {
	ss := nest.body.Subscripts
	loops := nest.body.Loops()
	argIndices := make([][]int, len(args))
	for i, in := range ss.Inputs {
		argIndices[i] = make([]int, len(in))
	}
	outIndex := make([]int, len(ss.Output))
	arrays.ForEach(nest.dims(loops), func(index []int) {
		nest.set(loops, index)
		prod := T(1)
		for i, arg := range args {
			prod *= arg.At(nest.index(ss.Inputs[i], argIndices[i])...)
		}
		result.Add(prod, nest.index(ss.Output, outIndex)...)
	})
}

// matmul computes the product of two matrices. The sum of each element
// of the result is accumulated into a local before being stored.
func matmul[T arrays.Algebra](nest *loopNest, args []arrays.Operand[T], result *arrays.ArrayT[T]) {
	ss := nest.body.Subscripts
	left, right := ss.Inputs[0], ss.Inputs[1]
	row, col, inner := ss.Output[0]-'a', ss.Output[1]-'a', nest.body.Reduce[0]-'a'
	leftIndex, rightIndex := make([]int, 2), make([]int, 2)
	for i := range nest.sizes[row] {
		nest.vals[row] = i
		for j := range nest.sizes[col] {
			nest.vals[col] = j
			var sum T
			for k := range nest.sizes[inner] {
				nest.vals[inner] = k
				sum += args[0].At(nest.index(left, leftIndex)...) * args[1].At(nest.index(right, rightIndex)...)
			}
			result.Set(sum, i, j)
		}
	}
}

// diagonal copies the elements of the argument indexed by the output labels.
func diagonal[T arrays.Algebra](nest *loopNest, arg arrays.Operand[T], result *arrays.ArrayT[T]) {
	ss := nest.body.Subscripts
	argIndex := make([]int, len(ss.Inputs[0]))
	arrays.ForEach(nest.dims(ss.Output), func(index []int) {
		nest.set(ss.Output, index)
		result.Set(arg.At(nest.index(ss.Inputs[0], argIndex)...), index...)
	})
}
