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

package arrays

import (
	"fmt"

	"github.com/gx-org/einsum/build/fmterr"
)

type (
	// ShapeMismatchError is returned when two axes with the same label have different lengths.
	ShapeMismatchError struct {
		// Label shared by the two axes.
		Label string
		// Sizes are the length bound to the label and the length of the mismatching axis.
		Sizes [2]int
	}

	// RankError is returned when an operand does not have the rank declared by its subscripts.
	RankError struct {
		Arg  int
		Rank int
		Want int
	}
)

var (
	_ fmterr.Kinded = (*ShapeMismatchError)(nil)
	_ fmterr.Kinded = (*RankError)(nil)
)

// Error returns a string description of the error.
func (err *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: label %s bound to length %d but found an axis of length %d", err.Kind(), err.Label, err.Sizes[0], err.Sizes[1])
}

// Kind of the error.
func (*ShapeMismatchError) Kind() fmterr.Kind {
	return fmterr.ShapeMismatch
}

// Error returns a string description of the error.
func (err *RankError) Error() string {
	return fmt.Sprintf("%s: operand %d has %d axes but its subscripts declare %d axes", err.Kind(), err.Arg, err.Rank, err.Want)
}

// Kind of the error.
func (*RankError) Kind() fmterr.Kind {
	return fmterr.ShapeMismatch
}

// CheckRank returns an error if the i-th operand does not have the given rank.
func CheckRank[T any](arg int, op Operand[T], rank int) error {
	if op.Rank() == rank {
		return nil
	}
	return &RankError{Arg: arg, Rank: op.Rank(), Want: rank}
}

// CheckDim returns an error if the length of an axis differs from the length bound to its label.
func CheckDim(label string, bound, size int) error {
	if bound == size {
		return nil
	}
	return &ShapeMismatchError{Label: label, Sizes: [2]int{bound, size}}
}
