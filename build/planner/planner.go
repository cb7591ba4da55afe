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

// Package planner decides in which order the operands of an einsum
// expression are contracted two by two.
//
// The planner is greedy: at each step, it contracts the pair of live
// arrays sharing the most labels. The intermediate array then becomes the
// first live array. The planner does not look for the optimal path.
package planner

import (
	"fmt"
	"strings"

	"github.com/gx-org/einsum/build/ir"
	"github.com/gx-org/einsum/build/subscripts"
)

type (
	// Operand of a contraction step.
	Operand struct {
		Ref   ir.Ref
		Group subscripts.Group
	}

	// Step contracts two arrays into an intermediate array.
	Step struct {
		Left, Right Operand
		// Summed are the labels of the pair not needed after the step.
		Summed subscripts.Group
		// Residual is the group of the result of the step.
		Residual subscripts.Group
		// Result references the intermediate computed by the step.
		Result ir.Ref
	}

	// Path is the sequence of steps computing an expression.
	Path struct {
		Subscripts *subscripts.Subscripts
		Steps      []Step
	}
)

// Subscripts returns the subscripts computed by the step.
func (s *Step) Subscripts() *subscripts.Subscripts {
	return subscripts.New([]subscripts.Group{s.Left.Group, s.Right.Group}, s.Residual)
}

// String representation of the step.
func (s *Step) String() string {
	return fmt.Sprintf("%s = %s[%s] * %s[%s] sum(%s)", s.Result, s.Left.Ref, s.Left.Group, s.Right.Ref, s.Right.Group, s.Summed)
}

// Terminal returns the last step of the path or nil if the path is empty.
func (p *Path) Terminal() *Step {
	if len(p.Steps) == 0 {
		return nil
	}
	return &p.Steps[len(p.Steps)-1]
}

// Permutation returns how to reorder the axes of the result of the last step
// to get the declared output: axis i of the output is axis perm[i] of the last step.
// It returns nil if the path is empty or if no reordering is required.
func (p *Path) Permutation() []int {
	last := p.Terminal()
	if last == nil || last.Residual.Equal(p.Subscripts.Output) {
		return nil
	}
	perm := make([]int, len(p.Subscripts.Output))
	for i, l := range p.Subscripts.Output {
		perm[i] = indexOf(last.Residual, l)
	}
	return perm
}

// String representation of the path.
func (p *Path) String() string {
	var b strings.Builder
	b.WriteString(p.Subscripts.String())
	for _, step := range p.Steps {
		b.WriteString("\n  ")
		b.WriteString(step.String())
	}
	return b.String()
}

func indexOf(g subscripts.Group, l subscripts.Label) int {
	for i, gl := range g {
		if gl == l {
			return i
		}
	}
	return -1
}

type labelSet map[subscripts.Label]bool

func toSet(groups ...subscripts.Group) labelSet {
	set := labelSet{}
	for _, g := range groups {
		for _, l := range g {
			set[l] = true
		}
	}
	return set
}

func numShared(x, y subscripts.Group) int {
	n := 0
	ySet := toSet(y)
	for _, l := range x.Distinct() {
		if ySet[l] {
			n++
		}
	}
	return n
}

// Plan returns the contraction path of subscripts.
// Subscripts with a single input have an empty path.
func Plan(ss *subscripts.Subscripts) *Path {
	path := &Path{Subscripts: ss}
	live := make([]Operand, len(ss.Inputs))
	for i, in := range ss.Inputs {
		live[i] = Operand{Ref: ir.Arg(i), Group: in}
	}
	for len(live) > 1 {
		left, right := selectPair(live)
		var rest []Operand
		for i, op := range live {
			if i != left && i != right {
				rest = append(rest, op)
			}
		}
		step := contract(ss.Output, live[left], live[right], rest, ir.Temp(len(path.Steps)))
		path.Steps = append(path.Steps, step)
		live = append([]Operand{{Ref: step.Result, Group: step.Residual}}, rest...)
	}
	return path
}

// selectPair returns the positions of the pair of live arrays sharing the
// most labels. Ties are broken by the smaller total number of axes,
// then by the leftmost pair.
func selectPair(live []Operand) (int, int) {
	bestLeft, bestRight := 0, 1
	bestShared := numShared(live[0].Group, live[1].Group)
	bestLen := len(live[0].Group) + len(live[1].Group)
	for i := range live {
		for j := i + 1; j < len(live); j++ {
			shared := numShared(live[i].Group, live[j].Group)
			length := len(live[i].Group) + len(live[j].Group)
			if shared < bestShared || (shared == bestShared && length >= bestLen) {
				continue
			}
			bestLeft, bestRight = i, j
			bestShared, bestLen = shared, length
		}
	}
	return bestLeft, bestRight
}

func contract(output subscripts.Group, left, right Operand, rest []Operand, result ir.Ref) Step {
	need := toSet(output)
	for _, op := range rest {
		for _, l := range op.Group {
			need[l] = true
		}
	}
	step := Step{Left: left, Right: right, Result: result}
	for _, l := range append(append(subscripts.Group{}, left.Group...), right.Group...).Distinct() {
		if need[l] {
			step.Residual = append(step.Residual, l)
		} else {
			step.Summed = append(step.Summed, l)
		}
	}
	return step
}
