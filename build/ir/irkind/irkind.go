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

// Package irkind defines kinds of the operations generated for einsum expressions.
package irkind

// Kind of an operation.
type Kind uint

// Kinds of operations.
const (
	Invalid Kind = iota

	// General is a loop nest over the output labels and the summed labels,
	// multiplying the operands and accumulating into the result.
	General
	// MatMul is a matrix product of two matrices sharing exactly one summed label.
	MatMul
	// Diagonal copies the diagonal of an operand with a repeated label.
	Diagonal
	// Trace accumulates the diagonal of an operand with a repeated label.
	Trace
	// Permute relabels the axes of an array without moving its data.
	Permute

	// Max value for a Kind constant.
	Max
)

// String returns a string representation of a kind.
func (k Kind) String() string {
	switch k {
	case General:
		return "general"
	case MatMul:
		return "matmul"
	case Diagonal:
		return "diagonal"
	case Trace:
		return "trace"
	case Permute:
		return "permute"
	}
	return "invalid"
}

// Cacheable returns true if the body of an operation of that kind is
// shared across structurally identical subscripts.
func (k Kind) Cacheable() bool {
	return k == General || k == MatMul
}
