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

// Package fmtarray formats arrays into string.
package fmtarray

import (
	"fmt"
	"strings"
)

const tab = "\t"

type printer[T any] struct {
	w    strings.Builder
	axes []int
	at   func([]int) T
	pos  []int
}

func toValue[T any](x T) string {
	var fmtstr string
	switch any(x).(type) {
	case float32:
		fmtstr = "%.6f"
	case float64:
		fmtstr = "%.10f"
	default:
		return fmt.Sprint(x)
	}
	result := fmt.Sprintf(fmtstr, x)
	if strings.ContainsRune(result, '.') {
		// Remove trailing zeroes after the decimal point, then the point itself.
		result = strings.TrimRight(result, "0")
		result = strings.TrimSuffix(result, ".")
	}
	return result
}

func (p *printer[T]) printVector() {
	axis := len(p.pos) - 1
	vec := make([]string, p.axes[axis])
	for i := range vec {
		p.pos[axis] = i
		vec[i] = toValue(p.at(p.pos))
	}
	fmt.Fprintf(&p.w, "{%s}", strings.Join(vec, ", "))
}

func (p *printer[T]) printRec(indent string, axis int) {
	if axis == len(p.axes)-1 {
		p.printVector()
		return
	}
	p.w.WriteString("{\n")
	for i := range p.axes[axis] {
		p.pos[axis] = i
		p.w.WriteString(indent + tab)
		p.printRec(indent+tab, axis+1)
		p.w.WriteString(",\n")
	}
	p.w.WriteString(indent + "}")
}

func (p *printer[T]) printType() {
	for _, size := range p.axes {
		fmt.Fprintf(&p.w, "[%d]", size)
	}
	var zero T
	fmt.Fprintf(&p.w, "%T", zero)
}

func (p *printer[T]) printData() {
	if len(p.axes) == 0 {
		fmt.Fprintf(&p.w, "(%s)", toValue(p.at(nil)))
		return
	}
	p.printRec("", 0)
}

// SDataPrint returns a string representation of the content of an array without the type.
// The elements are read with the at function given their index.
func SDataPrint[T any](axes []int, at func(index []int) T) string {
	p := &printer[T]{axes: axes, at: at, pos: make([]int, len(axes))}
	p.printData()
	return p.w.String()
}

// Sprint returns a string representation of an array.
// The elements are read with the at function given their index.
func Sprint[T any](axes []int, at func(index []int) T) string {
	p := &printer[T]{axes: axes, at: at, pos: make([]int, len(axes))}
	p.printType()
	p.printData()
	return p.w.String()
}

// SprintFlat returns a string representation of an array stored in row-major order.
func SprintFlat[T any](data []T, axes []int) string {
	total := 1
	for _, size := range axes {
		total *= size
	}
	if total != len(data) {
		return fmt.Sprintf("len(data)=%d does not match axes %v=%d", len(data), axes, total)
	}
	strides := make([]int, len(axes))
	for i := range strides {
		strides[i] = 1
		for _, d := range axes[i+1:] {
			strides[i] *= d
		}
	}
	return Sprint(axes, func(index []int) T {
		flat := 0
		for i, v := range index {
			flat += strides[i] * v
		}
		return data[flat]
	})
}
