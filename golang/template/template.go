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

// Package template runs a template generating Go source code.
package template

import (
	"bytes"
	"go/format"
	"os"
	"text/template"

	"github.com/pkg/errors"
)

// Render parses a template, runs it, and formats the result as Go source code.
// The unformatted source is returned with the error if it cannot be formatted.
func Render(src string, data any) ([]byte, error) {
	tpl, err := template.New("").Parse(src)
	if err != nil {
		return nil, errors.Errorf("cannot parse template source: %v", err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, errors.Errorf("cannot execute template: %v", err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), errors.Errorf("cannot format generated source: %v", err)
	}
	return formatted, nil
}

// Exec renders a template and writes the result into a file.
func Exec(src string, target string, data any) error {
	out, err := Render(src, data)
	if err != nil {
		return errors.WithMessagef(err, "cannot generate %q", target)
	}
	return os.WriteFile(target, out, 0644)
}
