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

package ordered_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/einsum/base/ordered"
)

type entry struct {
	k string
	v int
}

func TestStoreOrder(t *testing.T) {
	tests := []struct {
		entries []entry
		want    []entry
	}{
		{
			entries: []entry{
				{k: "ab,bc->ac", v: 1},
				{k: "ab->ba", v: 2},
				{k: "a,a->", v: 3},
			},
			want: []entry{
				{k: "ab,bc->ac", v: 1},
				{k: "ab->ba", v: 2},
				{k: "a,a->", v: 3},
			},
		},
		{
			entries: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "a", v: 3},
			},
			want: []entry{
				{k: "a", v: 3},
				{k: "b", v: 2},
			},
		},
	}
	for ti, test := range tests {
		m := ordered.NewMap[string, int]()
		for _, e := range test.entries {
			m.Store(e.k, e.v)
		}
		if m.Size() != len(test.want) {
			t.Errorf("test %d: map has %d entries but want %d", ti, m.Size(), len(test.want))
			continue
		}
		var got []entry
		for k, v := range m.Iter() {
			got = append(got, entry{k: k, v: v})
		}
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(entry{})); diff != "" {
			t.Errorf("test %d: unexpected entries (-want +got):\n%s", ti, diff)
		}
		wantKeys := make([]string, len(test.want))
		for i, e := range test.want {
			wantKeys[i] = e.k
		}
		if gotKeys := slices.Collect(m.Keys()); !cmp.Equal(gotKeys, wantKeys) {
			t.Errorf("test %d: got keys %v but want %v", ti, gotKeys, wantKeys)
		}
	}
}

func TestLoadOrStore(t *testing.T) {
	m := ordered.NewMap[string, int]()
	calls := 0
	build := func() int {
		calls++
		return calls * 10
	}
	v, loaded := m.LoadOrStore("x", build)
	if loaded || v != 10 {
		t.Errorf("first LoadOrStore: got (%d, %t) but want (10, false)", v, loaded)
	}
	v, loaded = m.LoadOrStore("x", build)
	if !loaded || v != 10 {
		t.Errorf("second LoadOrStore: got (%d, %t) but want (10, true)", v, loaded)
	}
	if calls != 1 {
		t.Errorf("build function called %d times but want 1", calls)
	}
	m.Clear()
	if m.Size() != 0 {
		t.Errorf("map has %d entries after Clear", m.Size())
	}
	if _, ok := m.Load("x"); ok {
		t.Errorf("key x still present after Clear")
	}
	v, loaded = m.LoadOrStore("x", build)
	if loaded || v != 20 {
		t.Errorf("LoadOrStore after Clear: got (%d, %t) but want (20, false)", v, loaded)
	}
}
