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

// Package gosrc renders compiled einsum programs as Go source code.
//
// Each program becomes a generic function taking its operands as
// [arrays.Operand] and returning an [arrays.ArrayT]. Each body is
// rendered once as an unexported function called by all the programs using it.
package gosrc

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/gx-org/einsum/base/stringseq"
	"github.com/gx-org/einsum/base/uname"
	"github.com/gx-org/einsum/build/fmterr"
	"github.com/gx-org/einsum/build/ir"
	"github.com/gx-org/einsum/build/ir/irkind"
	"github.com/gx-org/einsum/build/subscripts"
	"github.com/gx-org/einsum/golang/template"
)

const (
	// ArraysImportPath is the import path of the runtime package used by the generated code.
	ArraysImportPath = "github.com/gx-org/einsum/runtime/arrays"
	// arraysName is the name of the imported runtime package.
	arraysName = "arrays"
)

const fileTemplate = `// Code generated by einsumgen. DO NOT EDIT.

package {{.Package}}

import "{{.Import}}"
{{range .Funcs}}
// {{.Name}} computes the einsum expression "{{.Subscripts}}".
func {{.Name}}[T arrays.Algebra]({{.Params}}) (*arrays.ArrayT[T], error) {
{{- range .Stmts}}
	{{.}}
{{- end}}
	return out, nil
}
{{end}}
{{- range .Bodies}}
// {{.Name}} computes "{{.Subscripts}}" given the user labels of a, b, c...
func {{.Name}}[T arrays.Algebra]({{.Params}}) (*arrays.ArrayT[T], error) {
{{- range .Stmts}}
	{{.}}
{{- end}}
	return out, nil
}
{{end}}`

type (
	function struct {
		Name       string
		Subscripts string
		Params     string
		Stmts      []string
	}

	file struct {
		Package string
		Import  string
		Funcs   []function
		Bodies  []function
	}

	emitter struct {
		names  *uname.Unique
		bodies map[*ir.Body]string
		file   file
	}
)

func newFile(pkgName string, progs []*ir.Program) (*file, error) {
	e := &emitter{
		names:  uname.New(),
		bodies: make(map[*ir.Body]string),
		file: file{
			Package: pkgName,
			Import:  ArraysImportPath,
		},
	}
	e.names.Register(arraysName)
	for _, prog := range progs {
		if prog.Name == "" {
			continue
		}
		if !token.IsIdentifier(prog.Name) {
			return nil, fmterr.Internalf(prog.Subscripts.Src(), "%q is not a valid Go identifier", prog.Name)
		}
		if prog.Name == arraysName {
			return nil, fmterr.Internalf(prog.Subscripts.Src(), "%q is the name of the imported package %s", prog.Name, ArraysImportPath)
		}
		if e.names.Taken(prog.Name) {
			return nil, fmterr.Internalf(prog.Subscripts.Src(), "function %s is defined more than once", prog.Name)
		}
		e.names.Register(prog.Name)
	}
	unnamed := e.names.Root("Einsum")
	for _, prog := range progs {
		name := prog.Name
		if name == "" {
			name = unnamed.Next()
		}
		fn, err := e.program(name, prog)
		if err != nil {
			return nil, err
		}
		e.file.Funcs = append(e.file.Funcs, fn)
	}
	return &e.file, nil
}

// Source returns the Go source code of a package computing programs.
// Programs without a name are named Einsum0, Einsum1, ...
func Source(pkgName string, progs []*ir.Program) ([]byte, error) {
	f, err := newFile(pkgName, progs)
	if err != nil {
		return nil, err
	}
	return template.Render(fileTemplate, f)
}

// WriteFile writes the Go source code of a package computing programs into a file.
func WriteFile(target, pkgName string, progs []*ir.Program) error {
	f, err := newFile(pkgName, progs)
	if err != nil {
		return err
	}
	return template.Exec(fileTemplate, target, f)
}

func params(n int, prefix string) string {
	args := make([]string, n)
	for i := range args {
		args[i] = fmt.Sprintf("arg%d", i)
	}
	return prefix + strings.Join(args, ", ") + " arrays.Operand[T]"
}

const returnErr = "if err != nil {\nreturn nil, err\n}"

func (e *emitter) program(name string, prog *ir.Program) (function, error) {
	fn := function{
		Name:       name,
		Subscripts: prog.Subscripts.String(),
		Params:     params(prog.NumArgs(), ""),
	}
	for _, op := range prog.Ops {
		switch opT := op.(type) {
		case *ir.Contraction:
			bodyName := e.body(opT.Body)
			fn.Stmts = append(fn.Stmts, fmt.Sprintf("%s, err := %s[T](%q, %s)", opT.Dest, bodyName, opT.Labels.String(), stringseq.JoinSlice(opT.Operands, ", ")), returnErr)
		case *ir.Permute:
			fn.Stmts = append(fn.Stmts, fmt.Sprintf("%s, err := %s.Transpose(%s)", opT.Dest, opT.Operand, intList(opT.Axes)), returnErr)
		default:
			return function{}, fmterr.Internalf(prog.Subscripts.Src(), "operation %T not supported", op)
		}
	}
	return fn, nil
}

func intList(vals []int) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = fmt.Sprint(v)
	}
	return strings.Join(s, ", ")
}

// body returns the name of the function computing a body.
// The function is rendered the first time the body is used.
func (e *emitter) body(b *ir.Body) string {
	if name, ok := e.bodies[b]; ok {
		return name
	}
	name := e.names.Name(b.Name())
	e.bodies[b] = name
	e.file.Bodies = append(e.file.Bodies, function{
		Name:       name,
		Subscripts: b.Subscripts.String(),
		Params:     params(b.NumArgs(), "labels string, "),
		Stmts:      bodyStmts(b),
	})
	return name
}

func size(l subscripts.Label) string {
	return "n" + l.String()
}

func loopVar(l subscripts.Label) string {
	return l.String()
}

func index(g subscripts.Group) string {
	s := make([]string, len(g))
	for i, l := range g {
		s[i] = loopVar(l)
	}
	return strings.Join(s, ", ")
}

func at(arg int, g subscripts.Group) string {
	return fmt.Sprintf("arg%d.At(%s)", arg, index(g))
}

func product(ss *subscripts.Subscripts) string {
	factors := make([]string, len(ss.Inputs))
	for i, in := range ss.Inputs {
		factors[i] = at(i, in)
	}
	return strings.Join(factors, "*")
}

func loops(labels subscripts.Group, inner string) string {
	var b strings.Builder
	for _, l := range labels {
		fmt.Fprintf(&b, "for %s := range %s {\n", loopVar(l), size(l))
	}
	b.WriteString(inner)
	b.WriteString(strings.Repeat("\n}", len(labels)))
	return b.String()
}

func withIndex(g subscripts.Group) string {
	if len(g) == 0 {
		return ""
	}
	return ", " + index(g)
}

func bodyStmts(b *ir.Body) []string {
	ss := b.Subscripts
	var stmts []string
	for i, in := range ss.Inputs {
		stmts = append(stmts,
			fmt.Sprintf("if err := arrays.CheckRank(%d, arg%d, %d); err != nil {\nreturn nil, err\n}", i, i, len(in)))
	}
	for _, bind := range b.Binds {
		stmts = append(stmts, fmt.Sprintf("%s := arg%d.Dim(%d)", size(bind.Label), bind.At.Arg, bind.At.Axis))
	}
	for _, assert := range b.Asserts {
		pos := int(assert.Label - 'a')
		stmts = append(stmts,
			fmt.Sprintf("if err := arrays.CheckDim(labels[%d:%d], %s, arg%d.Dim(%d)); err != nil {\nreturn nil, err\n}",
				pos, pos+1, size(assert.Label), assert.At.Arg, assert.At.Axis))
	}
	dims := make([]string, len(ss.Output))
	for i, l := range ss.Output {
		dims[i] = size(l)
	}
	stmts = append(stmts, fmt.Sprintf("out := arrays.Zeros[T](%s)", strings.Join(dims, ", ")))
	out := withIndex(ss.Output)
	switch b.Kind {
	case irkind.MatMul:
		inner := fmt.Sprintf("var sum T\n%s\nout.Set(sum%s)",
			loops(b.Reduce, fmt.Sprintf("sum += %s", product(ss))), out)
		stmts = append(stmts, loops(ss.Output, inner))
	case irkind.Diagonal:
		stmts = append(stmts, loops(ss.Output, fmt.Sprintf("out.Set(%s%s)", at(0, ss.Inputs[0]), out)))
	default:
		stmts = append(stmts, loops(b.Loops(), fmt.Sprintf("out.Add(%s%s)", product(ss), out)))
	}
	return stmts
}
