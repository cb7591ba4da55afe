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

package fmterr

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Excerpt returns the subscripts of a diagnostic with a line marking its span:
//
//	ij,,jk
//	   ^
//
// A span past the end of the subscripts marks the position following the last byte.
func Excerpt(diag Diagnostic) string {
	src, span := diag.Src(), diag.Span()
	start := min(max(span.Start, 0), len(src))
	end := min(max(span.End, start+1), len(src)+1)
	return src + "\n" + strings.Repeat(" ", start) + strings.Repeat("^", end-start)
}

// Format writes the error into the state of the formatter.
// The verb %+v adds the excerpt of the subscripts and where the error was created.
func (err *diagnostic) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			err.formatVerbose(s)
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, err.Error())
	case 'q':
		fmt.Fprintf(s, "%q", err.Error())
	}
}

func (err *diagnostic) formatVerbose(s fmt.State) {
	fmt.Fprintf(s, "%s\n%s", err.Error(), Excerpt(err))
	var withSt interface {
		StackTrace() errors.StackTrace
	}
	if errors.As(err.err, &withSt) {
		fmt.Fprintf(s, "\ncreated at:%+v", withSt.StackTrace())
	}
}
