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

package template_test

import (
	"testing"

	"github.com/gx-org/einsum/golang/template"
)

func TestRender(t *testing.T) {
	got, err := template.Render("package {{.}}\nfunc   f( )  {  }\n", "einsums")
	if err != nil {
		t.Fatal(err)
	}
	if want := "package einsums\n\nfunc f() {}\n"; string(got) != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
	src, err := template.Render("package {{.}}\nfunc {\n", "einsums")
	if err == nil {
		t.Fatalf("expected an error when formatting invalid Go code")
	}
	if string(src) != "package einsums\nfunc {\n" {
		t.Errorf("got unformatted source %q", src)
	}
}
