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

// Utility einsumgen generates Go functions computing einsum expressions.
//
// Usage from a Go source file:
//
//	//go:generate go run github.com/gx-org/einsum/golang/einsumgen -einsum MatMul=ij,jk->ik -einsum Trace=ii
package main

import (
	"flag"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gx-org/einsum/build/builder"
	"github.com/gx-org/einsum/build/ir/irstring"
	"github.com/gx-org/einsum/build/module"
	"github.com/gx-org/einsum/golang/gosrc"
	"github.com/gx-org/einsum/tools/einsumflag"
	"go.uber.org/multierr"
)

var (
	modfile = flag.String("modfile", "", "folder containing go.mod (default: the module of the current directory)")
	pkgPath = flag.String("package", "", "import path of the package in which the code is generated (default: the package of the current directory)")
	pkgName = flag.String("name", os.Getenv("GOPACKAGE"), "name of the package in which the code is generated (default: $GOPACKAGE or the name of the folder)")
	out     = flag.String("out", "einsum.gen.go", "name of the generated file in the package folder")
	verbose = flag.Bool("v", false, "print the compiled programs on stderr")
	exprs   = einsumflag.ExprList("einsum", "einsum expression to generate as Name=subscripts. Can be repeated")
)

func exit(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

// hostPos returns the position of the go:generate directive running the tool.
func hostPos() token.Position {
	pos := token.Position{Filename: os.Getenv("GOFILE")}
	pos.Line, _ = strconv.Atoi(os.Getenv("GOLINE"))
	return pos
}

func main() {
	flag.Parse()
	if len(*exprs) == 0 {
		exit("no einsum expression: use -einsum Name=subscripts")
	}
	if dups := einsumflag.Duplicates(*exprs); len(dups) > 0 {
		exit("expression names %v are used more than once", dups)
	}
	wd, err := os.Getwd()
	if err != nil {
		exit("cannot get the current directory: %v", err)
	}
	modDir := *modfile
	if modDir == "" {
		modDir = wd
	}
	mod, err := module.New(modDir)
	if err != nil {
		exit("%+v", err)
	}
	if err := mod.CheckGoVersion(); err != nil {
		exit("%v", err)
	}
	pkgDir := wd
	if *pkgPath != "" {
		if pkgDir, err = mod.OSPath(*pkgPath); err != nil {
			exit("%v", err)
		}
	} else if _, err := mod.ImportPath(pkgDir); err != nil {
		exit("%v", err)
	}
	name := *pkgName
	if name == "" {
		name = filepath.Base(pkgDir)
	}

	pos := hostPos()
	bldExprs := make([]builder.Expr, len(*exprs))
	for i, expr := range *exprs {
		bldExprs[i] = builder.Expr{
			Pos:         pos,
			Name:        expr.Name,
			Subscripts:  expr.Subscripts,
			NumOperands: builder.InferOperands,
		}
	}
	progs, err := builder.New().CompileAll(bldExprs)
	if err != nil {
		for _, err := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
	if *verbose {
		for _, prog := range progs {
			fmt.Fprintln(os.Stderr, irstring.Program(prog))
		}
	}
	if err := os.MkdirAll(pkgDir, 0755); err != nil {
		exit("cannot create target folder %s: %v", pkgDir, err)
	}
	target := filepath.Join(pkgDir, *out)
	if err := gosrc.WriteFile(target, name, progs); err != nil {
		exit("cannot write %s: %+v", target, err)
	}
}
