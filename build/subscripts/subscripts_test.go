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

package subscripts_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gx-org/einsum/build/subscripts"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		src       string
		signature string
		origin    string
		escaped   string
	}{
		{
			src:       "ij,jk->ik",
			signature: "ab,bc->ac",
			origin:    "ijk",
			escaped:   "ab_bc__ac",
		},
		{
			src:       "xz,zy->xy",
			signature: "ab,bc->ac",
			origin:    "xzy",
			escaped:   "ab_bc__ac",
		},
		{
			src:       "ji,jk->ki",
			signature: "ab,ac->cb",
			origin:    "jik",
			escaped:   "ab_ac__cb",
		},
		{
			src:       "ii->",
			signature: "aa->",
			origin:    "i",
			escaped:   "aa__",
		},
		{
			src:       "i,i",
			signature: "a,a->",
			origin:    "i",
			escaped:   "a_a__",
		},
	}
	for _, test := range tests {
		ss := subscripts.MustParse(test.src)
		canonical, origin := ss.Canonical()
		if got := canonical.String(); got != test.signature {
			t.Errorf("%q: got canonical form %q but want %q", test.src, got, test.signature)
		}
		if got := ss.Signature(); got != test.signature {
			t.Errorf("%q: got signature %q but want %q", test.src, got, test.signature)
		}
		if got := origin.String(); got != test.origin {
			t.Errorf("%q: got origin labels %q but want %q", test.src, got, test.origin)
		}
		if got := canonical.EscapedIdent(); got != test.escaped {
			t.Errorf("%q: got escaped identifier %q but want %q", test.src, got, test.escaped)
		}
	}
}

func TestContractionLabels(t *testing.T) {
	tests := []struct {
		src          string
		want         subscripts.Group
		computeOrder int
		memoryOrder  int
	}{
		{src: "ab,bc->ac", want: subscripts.Group("b"), computeOrder: 3, memoryOrder: 2},
		{src: "ab,ba->", want: subscripts.Group("ab"), computeOrder: 2, memoryOrder: 0},
		{src: "aa->a", want: nil, computeOrder: 1, memoryOrder: 1},
		{src: "ij,jk,kl->il", want: subscripts.Group("jk"), computeOrder: 4, memoryOrder: 2},
	}
	for _, test := range tests {
		ss := subscripts.MustParse(test.src)
		if diff := cmp.Diff(test.want, ss.ContractionLabels(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%q: unexpected contraction labels (-want +got):\n%s", test.src, diff)
		}
		if got := ss.ComputeOrder(); got != test.computeOrder {
			t.Errorf("%q: got compute order %d but want %d", test.src, got, test.computeOrder)
		}
		if got := ss.MemoryOrder(); got != test.memoryOrder {
			t.Errorf("%q: got memory order %d but want %d", test.src, got, test.memoryOrder)
		}
	}
}

func TestGroup(t *testing.T) {
	g := subscripts.Group("iji")
	if !g.HasRepeated() {
		t.Errorf("%s: HasRepeated returned false", g)
	}
	if got := g.Distinct().String(); got != "ij" {
		t.Errorf("%s: got distinct labels %q but want %q", g, got, "ij")
	}
	if got := g.Count('i'); got != 2 {
		t.Errorf("%s: got count %d for i but want 2", g, got)
	}
	if !g.SameSet(subscripts.Group("ji")) {
		t.Errorf("%s and ji should be the same set", g)
	}
	if g.SameSet(subscripts.Group("jk")) {
		t.Errorf("%s and jk should not be the same set", g)
	}
	if subscripts.Group("ij").HasRepeated() {
		t.Errorf("ij: HasRepeated returned true")
	}
}
