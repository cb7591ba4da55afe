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

// Package cache stores the bodies generated for einsum contractions
// so that contractions with the same structure share a body.
package cache

import (
	"slices"
	"sync"

	"github.com/gx-org/einsum/base/ordered"
	"github.com/gx-org/einsum/build/ir"
	"github.com/gx-org/einsum/build/ir/irkind"
	"github.com/gx-org/einsum/build/subscripts"
)

// Patterns maps keys returned by [Key] to bodies.
// It is safe for concurrent use.
type Patterns struct {
	mut    sync.Mutex
	bodies *ordered.Map[string, *ir.Body]
	hits   int
}

// Key returns the key of a body given its kind and its canonical subscripts.
// The same subscripts lowered as different kinds have different keys.
func Key(kind irkind.Kind, canonical *subscripts.Subscripts) string {
	return kind.String() + " " + canonical.String()
}

// New returns an empty cache.
func New() *Patterns {
	return &Patterns{bodies: ordered.NewMap[string, *ir.Body]()}
}

// LoadOrStore returns the body stored for a key.
// If there is none, the body returned by build is stored and returned.
// The boolean is true if the body was already in the cache.
func (p *Patterns) LoadOrStore(key string, build func() *ir.Body) (*ir.Body, bool) {
	p.mut.Lock()
	defer p.mut.Unlock()
	body, loaded := p.bodies.LoadOrStore(key, build)
	if loaded {
		p.hits++
	}
	return body, loaded
}

// Load returns the body stored for a key.
func (p *Patterns) Load(key string) (*ir.Body, bool) {
	p.mut.Lock()
	defer p.mut.Unlock()
	return p.bodies.Load(key)
}

// Reset removes all the bodies from the cache.
func (p *Patterns) Reset() {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.bodies.Clear()
	p.hits = 0
}

// Size returns the number of bodies in the cache.
func (p *Patterns) Size() int {
	p.mut.Lock()
	defer p.mut.Unlock()
	return p.bodies.Size()
}

// Hits returns the number of times a body has been reused since the last reset.
func (p *Patterns) Hits() int {
	p.mut.Lock()
	defer p.mut.Unlock()
	return p.hits
}

// Bodies returns the bodies in the order in which they have been stored.
func (p *Patterns) Bodies() []*ir.Body {
	p.mut.Lock()
	defer p.mut.Unlock()
	return slices.Collect(p.bodies.Values())
}
