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

// Package einsumflag provides flag types for einsum tools.
package einsumflag

import (
	"flag"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// Expr is an einsum expression passed from the command line as Name=subscripts.
type Expr struct {
	Name       string
	Subscripts string
}

// String returns the expression as it is given on the command line.
func (e Expr) String() string {
	if e.Name == "" {
		return e.Subscripts
	}
	return e.Name + "=" + e.Subscripts
}

type exprList struct {
	list *[]Expr
}

func (el *exprList) String() string {
	if el.list == nil {
		return ""
	}
	s := make([]string, len(*el.list))
	for i, expr := range *el.list {
		s[i] = expr.String()
	}
	return strings.Join(s, " ")
}

// Set parses an expression. Subscripts contain commas: a flag value is
// always a single expression and the flag is repeated to pass more.
func (el *exprList) Set(value string) error {
	value = strings.TrimSpace(value)
	name, subs, found := strings.Cut(value, "=")
	if !found {
		name, subs = "", value
	}
	name, subs = strings.TrimSpace(name), strings.TrimSpace(subs)
	if subs == "" {
		return errors.Errorf("no subscripts in %q", value)
	}
	*el.list = append(*el.list, Expr{Name: name, Subscripts: subs})
	return nil
}

// ExprListVar defines a flag in a flag set to pass a list of einsum expressions.
func ExprListVar(fs *flag.FlagSet, name, doc string) *[]Expr {
	var list []Expr
	fs.Var(&exprList{&list}, name, doc)
	return &list
}

// ExprList returns a flag to pass a list of einsum expressions from the command line.
func ExprList(name, doc string) *[]Expr {
	return ExprListVar(flag.CommandLine, name, doc)
}

// Duplicates returns the names given to more than one expression, sorted.
func Duplicates(exprs []Expr) []string {
	count := make(map[string]int)
	for _, expr := range exprs {
		if expr.Name != "" {
			count[expr.Name]++
		}
	}
	maps.DeleteFunc(count, func(_ string, n int) bool {
		return n < 2
	})
	names := maps.Keys(count)
	slices.Sort(names)
	return names
}
