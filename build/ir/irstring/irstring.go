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

// Package irstring builds a string representation of compiled einsum programs.
package irstring

import (
	"fmt"
	"strings"

	"github.com/gx-org/einsum/base/stringseq"
	"github.com/gx-org/einsum/build/ir"
)

// Body returns a multi-line description of a body.
func Body(b *ir.Body) string {
	var s strings.Builder
	fmt.Fprintf(&s, "%s %s {\n", b.Name(), b.Subscripts)
	for _, bind := range b.Binds {
		fmt.Fprintf(&s, "  bind %s: %s\n", bind.Label, bind.At)
	}
	for _, assert := range b.Asserts {
		fmt.Fprintf(&s, "  assert %s: %s == %s\n", assert.Label, assert.At, assert.Bound)
	}
	if out := b.Subscripts.Output.Distinct(); len(out) > 0 {
		fmt.Fprintf(&s, "  loop %s\n", stringseq.JoinSlice(out, ", "))
	}
	if len(b.Reduce) > 0 {
		fmt.Fprintf(&s, "  reduce %s\n", stringseq.JoinSlice(b.Reduce, ", "))
	}
	s.WriteString("}")
	return s.String()
}

// Program returns a multi-line description of a program followed by the bodies it uses.
func Program(p *ir.Program) string {
	var s strings.Builder
	s.WriteString(p.String())
	for _, body := range p.Bodies() {
		s.WriteString("\n")
		s.WriteString(Body(body))
	}
	return s.String()
}
