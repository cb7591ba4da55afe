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

// Package uname provides unique names.
package uname

import "fmt"

type (
	// Unique generates unique names.
	Unique struct {
		taken map[string]bool
		next  map[string]int
	}

	// Root generates numbered names sharing a common prefix.
	Root struct {
		unames *Unique
		root   string
		index  int
	}
)

// New name generator.
func New() *Unique {
	return &Unique{
		taken: make(map[string]bool),
		next:  make(map[string]int),
	}
}

// Register marks a name as used.
func (n *Unique) Register(name string) {
	n.taken[name] = true
}

// Taken returns true if a name has already been registered or returned.
func (n *Unique) Taken(name string) bool {
	return n.taken[name]
}

func (n *Unique) unique(name string) string {
	if !n.taken[name] {
		n.taken[name] = true
		return name
	}
	for i := n.next[name] + 1; ; i++ {
		cand := fmt.Sprintf("%s_%d", name, i)
		if n.taken[cand] {
			continue
		}
		n.next[name] = i
		n.taken[cand] = true
		return cand
	}
}

// Name returns a unique name given a desired base name.
// If the base name is available, it is returned directly. Else, a unique suffix is appended.
func (n *Unique) Name(root string) string {
	return n.unique(root)
}

// Root returns a generator of names numbered from 0 and prefixed by root.
func (n *Unique) Root(root string) *Root {
	return &Root{unames: n, root: root}
}

// Root returns the prefix of the names.
func (r *Root) Root() string {
	return r.root
}

// Next returns the next available name.
func (r *Root) Next() string {
	name := fmt.Sprintf("%s%d", r.root, r.index)
	r.index++
	return r.unames.unique(name)
}
