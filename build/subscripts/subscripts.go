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

// Package subscripts parses einsum subscripts, e.g. "ij,jk->ik".
//
// Subscripts name, for each operand, the label of each of its axes.
// Labels shared across operands are multiplied together and labels
// absent from the output are summed over.
package subscripts

import (
	"slices"
	"strings"

	"github.com/gx-org/einsum/base/stringseq"
	"github.com/gx-org/einsum/build/fmterr"
)

type (
	// Label identifies an axis. It is a lowercase ASCII letter.
	Label byte

	// Group is the list of labels of the axes of an operand, in axis order.
	Group []Label

	// Subscripts of an einsum expression.
	// Subscripts must not be modified once built.
	Subscripts struct {
		// Inputs are the groups of the operands.
		Inputs []Group
		// Output is the group of the result.
		Output Group

		src       string
		explicit  bool
		outputPos []int
	}
)

// String returns the label as a string.
func (l Label) String() string {
	return string(rune(l))
}

// IsLabel returns true if r is a valid label.
func IsLabel(r rune) bool {
	return 'a' <= r && r <= 'z'
}

// String returns the labels of the group concatenated.
func (g Group) String() string {
	return stringseq.JoinSlice(g, "")
}

// Contains returns true if the group contains the label.
func (g Group) Contains(l Label) bool {
	return slices.Contains(g, l)
}

// Count returns the number of times a label appears in the group.
func (g Group) Count(l Label) int {
	n := 0
	for _, gl := range g {
		if gl == l {
			n++
		}
	}
	return n
}

// Distinct returns the labels of the group without duplicates, in first-occurrence order.
func (g Group) Distinct() Group {
	distinct := make(Group, 0, len(g))
	for _, l := range g {
		if !distinct.Contains(l) {
			distinct = append(distinct, l)
		}
	}
	return distinct
}

// HasRepeated returns true if a label appears more than once in the group.
func (g Group) HasRepeated() bool {
	return len(g.Distinct()) != len(g)
}

// Equal returns true if two groups have the same labels in the same order.
func (g Group) Equal(other Group) bool {
	return slices.Equal(g, other)
}

// SameSet returns true if two groups contain the same distinct labels, in any order.
func (g Group) SameSet(other Group) bool {
	a, b := g.Distinct(), other.Distinct()
	if len(a) != len(b) {
		return false
	}
	for _, l := range a {
		if !b.Contains(l) {
			return false
		}
	}
	return true
}

// New returns subscripts from input groups and an output group.
// The groups are not validated.
func New(inputs []Group, output Group) *Subscripts {
	ss := &Subscripts{
		Inputs:   inputs,
		Output:   output,
		explicit: true,
	}
	ss.src = ss.String()
	ss.outputPos = make([]int, len(output))
	offset := len(ss.src) - len(output)
	for i := range output {
		ss.outputPos[i] = offset + i
	}
	return ss
}

// Src returns the source text from which the subscripts have been parsed.
func (ss *Subscripts) Src() string {
	return ss.src
}

// Explicit returns true if the output has been declared in the source with "->".
func (ss *Subscripts) Explicit() bool {
	return ss.explicit
}

// OutputSpan returns the span of the i-th output label in the source.
// The span is empty for inferred outputs.
func (ss *Subscripts) OutputSpan(i int) fmterr.Span {
	if !ss.explicit || i >= len(ss.outputPos) {
		return fmterr.Span{Start: len(ss.src), End: len(ss.src)}
	}
	return fmterr.At(ss.outputPos[i], 1)
}

// String returns the subscripts in explicit form, e.g. "ij,jk->ik".
func (ss *Subscripts) String() string {
	var b strings.Builder
	stringseq.AppendStringer(&b, slices.Values(ss.Inputs), ",")
	b.WriteString("->")
	b.WriteString(ss.Output.String())
	return b.String()
}

// Labels returns all the distinct labels of the inputs in first-occurrence order.
func (ss *Subscripts) Labels() Group {
	var all Group
	for _, in := range ss.Inputs {
		all = append(all, in...)
	}
	return all.Distinct()
}

func (ss *Subscripts) counts() map[Label]int {
	count := make(map[Label]int)
	for _, in := range ss.Inputs {
		for _, l := range in {
			count[l]++
		}
	}
	return count
}

// ContractionLabels returns the labels summed over, in lexicographic order.
// These are the labels appearing more than once across the inputs and not in the output.
func (ss *Subscripts) ContractionLabels() Group {
	var labels Group
	for l, n := range ss.counts() {
		if n > 1 && !ss.Output.Contains(l) {
			labels = append(labels, l)
		}
	}
	slices.Sort(labels)
	return labels
}

// MemoryOrder returns b if the subscripts require O(N^b) memory for the result.
func (ss *Subscripts) MemoryOrder() int {
	return len(ss.Output.Distinct())
}

// ComputeOrder returns a if the subscripts require O(N^a) floating point operations.
func (ss *Subscripts) ComputeOrder() int {
	return ss.MemoryOrder() + len(ss.ContractionLabels())
}

// Canonical returns the subscripts with labels renamed a, b, c, ... in
// first-occurrence order, inputs first and then the output.
// Structurally identical subscripts, like "ij,jk->ik" and "xz,zy->xy",
// have the same canonical form.
// The second value maps canonical labels, ordered from a, to the labels of ss.
func (ss *Subscripts) Canonical() (*Subscripts, Group) {
	remap := make(map[Label]Label)
	var origin Group
	rename := func(g Group) Group {
		out := make(Group, len(g))
		for i, l := range g {
			c, ok := remap[l]
			if !ok {
				c = Label('a' + len(remap))
				remap[l] = c
				origin = append(origin, l)
			}
			out[i] = c
		}
		return out
	}
	inputs := make([]Group, len(ss.Inputs))
	for i, in := range ss.Inputs {
		inputs[i] = rename(in)
	}
	return New(inputs, rename(ss.Output)), origin
}

// Signature returns the canonical form of the subscripts as a string.
func (ss *Subscripts) Signature() string {
	canonical, _ := ss.Canonical()
	return canonical.String()
}

// EscapedIdent returns the subscripts as a string usable in an identifier,
// e.g. "ab_bc__ac" for "ab,bc->ac".
func (ss *Subscripts) EscapedIdent() string {
	var b strings.Builder
	for _, in := range ss.Inputs {
		b.WriteString(in.String())
		b.WriteString("_")
	}
	b.WriteString("_")
	b.WriteString(ss.Output.String())
	return b.String()
}
