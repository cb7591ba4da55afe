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

// Package validate checks subscripts against the operands of an einsum expression.
//
// Sizes of operands are only known when the generated code runs.
// Checking that axes sharing a label have the same size is done by
// assertions emitted by the code generator.
package validate

import (
	"github.com/gx-org/einsum/build/fmterr"
	"github.com/gx-org/einsum/build/subscripts"
)

// Validate subscripts given the number of operands of the expression.
func Validate(ss *subscripts.Subscripts, numOperands int) error {
	if numOperands != len(ss.Inputs) {
		return fmterr.Errorf(fmterr.ArityMismatch, ss.Src(), fmterr.Span{End: len(ss.Src())},
			"subscripts declare %d operand(s) but %d operand(s) have been given", len(ss.Inputs), numOperands)
	}
	seen := make(map[subscripts.Label]bool, len(ss.Output))
	for i, l := range ss.Output {
		if seen[l] {
			return fmterr.Errorf(fmterr.DuplicateOutputIndex, ss.Src(), ss.OutputSpan(i),
				"label %s appears more than once in the output %s", l, ss.Output)
		}
		seen[l] = true
	}
	return nil
}
