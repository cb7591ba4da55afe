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

// Package ir is the intermediate representation of compiled einsum expressions.
//
// A program is a sequence of operations. Each contraction operation references
// a body describing its loop structure on canonical labels (a, b, c, ...).
// Bodies are shared by all the operations with the same canonical subscripts.
package ir

import (
	"fmt"
	"strings"

	"github.com/gx-org/einsum/base/stringseq"
	"github.com/gx-org/einsum/build/ir/irkind"
	"github.com/gx-org/einsum/build/subscripts"
)

type (
	// RefKind is the kind of array a reference points to.
	RefKind int

	// Ref references an array read or written by an operation.
	Ref struct {
		Kind RefKind
		// Index of the operand for ArgRef, index of the intermediate for TempRef.
		Index int
	}

	// Axis of an argument of a body.
	Axis struct {
		Arg  int
		Axis int
	}

	// Bind the size of a label to the size of the first axis on which it is observed.
	Bind struct {
		Label subscripts.Label
		At    Axis
	}

	// Assert checks that an axis has the size bound to its label.
	Assert struct {
		Label subscripts.Label
		Bound Axis
		At    Axis
	}

	// Body is the loop structure of a contraction on canonical labels.
	// A body must not be modified once built.
	Body struct {
		Kind irkind.Kind
		// Subscripts of the body with canonical labels.
		Subscripts *subscripts.Subscripts
		// Binds one axis for each distinct label, in first-occurrence order.
		Binds []Bind
		// Asserts every other axis of the arguments.
		Asserts []Assert
		// Reduce lists the labels summed over, in first-occurrence order.
		Reduce subscripts.Group
	}

	// Operation computes an array.
	Operation interface {
		Kind() irkind.Kind
		// Args returns the arrays read by the operation.
		Args() []Ref
		// Result returns the array written by the operation.
		Result() Ref
		String() string
	}

	// Contraction computes its result by running a body on its arguments.
	Contraction struct {
		Body     *Body
		Operands []Ref
		Dest     Ref
		// Labels maps canonical labels to user labels:
		// Labels[i] is the user label of the canonical label 'a'+i.
		Labels subscripts.Group
	}

	// Permute reorders the axes of an array.
	// Axis i of the result is axis Axes[i] of the operand.
	Permute struct {
		Operand Ref
		Dest    Ref
		From    subscripts.Group
		To      subscripts.Group
		Axes    []int
	}

	// Program computes an einsum expression.
	Program struct {
		// Name of the expression. Can be empty.
		Name       string
		Subscripts *subscripts.Subscripts
		Ops        []Operation
	}
)

// Kinds of references.
const (
	ArgRef RefKind = iota
	TempRef
	OutputRef
)

var (
	_ Operation = (*Contraction)(nil)
	_ Operation = (*Permute)(nil)
)

// Arg returns a reference to the i-th operand given by the caller.
func Arg(i int) Ref {
	return Ref{Kind: ArgRef, Index: i}
}

// Temp returns a reference to the n-th intermediate array.
func Temp(n int) Ref {
	return Ref{Kind: TempRef, Index: n}
}

// Output returns a reference to the result of a program.
func Output() Ref {
	return Ref{Kind: OutputRef}
}

// String representation of the reference.
func (r Ref) String() string {
	switch r.Kind {
	case ArgRef:
		return fmt.Sprintf("arg%d", r.Index)
	case TempRef:
		return fmt.Sprintf("tmp%d", r.Index)
	case OutputRef:
		return "out"
	}
	return fmt.Sprintf("invalid(%d)", r.Index)
}

// String representation of the axis.
func (a Axis) String() string {
	return fmt.Sprintf("arg%d[%d]", a.Arg, a.Axis)
}

// NumArgs returns the number of arguments of the body.
func (b *Body) NumArgs() int {
	return len(b.Subscripts.Inputs)
}

// Name returns an identifier for the body.
func (b *Body) Name() string {
	return b.Kind.String() + "_" + b.Subscripts.EscapedIdent()
}

// Loops returns the labels iterated over by the body:
// first the distinct output labels, then the reduced labels.
func (b *Body) Loops() subscripts.Group {
	loops := append(subscripts.Group{}, b.Subscripts.Output.Distinct()...)
	return append(loops, b.Reduce...)
}

// Bound returns the axis to which the size of a label is bound.
func (b *Body) Bound(l subscripts.Label) (Axis, bool) {
	for _, bind := range b.Binds {
		if bind.Label == l {
			return bind.At, true
		}
	}
	return Axis{}, false
}

// Kind returns the kind of the body.
func (c *Contraction) Kind() irkind.Kind {
	return c.Body.Kind
}

// Args returns the arrays read by the contraction.
func (c *Contraction) Args() []Ref {
	return c.Operands
}

// Result returns the array written by the contraction.
func (c *Contraction) Result() Ref {
	return c.Dest
}

// UserLabel returns the user label of a canonical label.
func (c *Contraction) UserLabel(l subscripts.Label) subscripts.Label {
	return c.Labels[l-'a']
}

func (c *Contraction) userGroup(g subscripts.Group) subscripts.Group {
	user := make(subscripts.Group, len(g))
	for i, l := range g {
		user[i] = c.UserLabel(l)
	}
	return user
}

// Subscripts returns the subscripts of the contraction with user labels.
func (c *Contraction) Subscripts() *subscripts.Subscripts {
	inputs := make([]subscripts.Group, len(c.Body.Subscripts.Inputs))
	for i, in := range c.Body.Subscripts.Inputs {
		inputs[i] = c.userGroup(in)
	}
	return subscripts.New(inputs, c.userGroup(c.Body.Subscripts.Output))
}

// Summed returns the user labels summed over by the contraction.
func (c *Contraction) Summed() subscripts.Group {
	return c.userGroup(c.Body.Reduce)
}

// String representation of the contraction.
func (c *Contraction) String() string {
	return fmt.Sprintf("%s = %s %s(%s)", c.Dest, c.Kind(), c.Subscripts(), stringseq.JoinSlice(c.Operands, ", "))
}

// Kind returns the permute kind.
func (*Permute) Kind() irkind.Kind {
	return irkind.Permute
}

// Args returns the permuted array.
func (p *Permute) Args() []Ref {
	return []Ref{p.Operand}
}

// Result returns the array written by the permutation.
func (p *Permute) Result() Ref {
	return p.Dest
}

// String representation of the permutation.
func (p *Permute) String() string {
	return fmt.Sprintf("%s = %s %s->%s(%s)", p.Dest, p.Kind(), p.From, p.To, p.Operand)
}

// NumArgs returns the number of operands expected by the program.
func (p *Program) NumArgs() int {
	return len(p.Subscripts.Inputs)
}

// NumTemps returns the number of intermediate arrays of the program.
func (p *Program) NumTemps() int {
	n := 0
	for _, op := range p.Ops {
		if op.Result().Kind == TempRef {
			n++
		}
	}
	return n
}

// Bodies returns the distinct bodies used by the program, in order of first use.
func (p *Program) Bodies() []*Body {
	var bodies []*Body
	seen := make(map[*Body]bool)
	for _, op := range p.Ops {
		c, ok := op.(*Contraction)
		if !ok || seen[c.Body] {
			continue
		}
		seen[c.Body] = true
		bodies = append(bodies, c.Body)
	}
	return bodies
}

// String representation of the program.
func (p *Program) String() string {
	var b strings.Builder
	if p.Name != "" {
		b.WriteString(p.Name)
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "%q {\n", p.Subscripts.String())
	for _, op := range p.Ops {
		b.WriteString("  ")
		b.WriteString(op.String())
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
