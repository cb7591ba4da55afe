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

// Package interp runs compiled einsum programs on Go arrays.
//
// Each operation of a program is evaluated by a kernel selected from
// the kind of the operation. Intermediate arrays are allocated by the
// interpreter. The arrays of the caller are never written.
package interp

import (
	"github.com/gx-org/einsum/build/fmterr"
	"github.com/gx-org/einsum/build/ir"
	"github.com/gx-org/einsum/runtime/arrays"
	"github.com/pkg/errors"
)

type frame[T arrays.Algebra] struct {
	prog   *ir.Program
	values map[ir.Ref]arrays.Operand[T]
}

// Run a program given its operands.
func Run[T arrays.Algebra](prog *ir.Program, operands ...arrays.Operand[T]) (*arrays.ArrayT[T], error) {
	src := prog.Subscripts.Src()
	if len(operands) != prog.NumArgs() {
		return nil, fmterr.Errorf(fmterr.ArityMismatch, src, fmterr.Span{End: len(src)},
			"subscripts declare %d operand(s) but %d operand(s) have been given", prog.NumArgs(), len(operands))
	}
	fr := &frame[T]{
		prog:   prog,
		values: make(map[ir.Ref]arrays.Operand[T]),
	}
	for i, op := range operands {
		fr.values[ir.Arg(i)] = op
	}
	for _, op := range prog.Ops {
		if err := fr.eval(op); err != nil {
			return nil, err
		}
	}
	out, ok := fr.values[ir.Output()]
	if !ok {
		return nil, fmterr.Internalf(src, "program does not compute its output")
	}
	return out.(*arrays.ArrayT[T]), nil
}

func (fr *frame[T]) load(ref ir.Ref) (arrays.Operand[T], error) {
	val, ok := fr.values[ref]
	if !ok {
		return nil, fmterr.Internalf(fr.prog.Subscripts.Src(), "%s read before being written", ref)
	}
	return val, nil
}

func (fr *frame[T]) eval(op ir.Operation) error {
	args := make([]arrays.Operand[T], len(op.Args()))
	for i, ref := range op.Args() {
		var err error
		if args[i], err = fr.load(ref); err != nil {
			return err
		}
	}
	var (
		result *arrays.ArrayT[T]
		err    error
	)
	switch opT := op.(type) {
	case *ir.Contraction:
		result, err = contract(opT, args)
	case *ir.Permute:
		result, err = permute(opT, args[0])
	default:
		err = fmterr.Internalf(fr.prog.Subscripts.Src(), "operation %T not supported", op)
	}
	if err != nil {
		return err
	}
	fr.values[op.Result()] = result
	return nil
}

func permute[T arrays.Algebra](op *ir.Permute, arg arrays.Operand[T]) (*arrays.ArrayT[T], error) {
	arr, ok := arg.(*arrays.ArrayT[T])
	if !ok {
		arr = arrays.ToArray(arg)
	}
	view, err := arr.Transpose(op.Axes...)
	if err != nil {
		return nil, errors.WithMessagef(err, "cannot evaluate %s", op)
	}
	return view, nil
}
