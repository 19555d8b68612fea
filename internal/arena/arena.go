// Copyright 2024 TTGraph Authors
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

package arena

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
)

// slot is either reserved-without-value (Alloc'd but not yet FillBack'd) or
// filled.
type slot[V any] struct {
	value  V
	filled bool
}

// Arena maps handles of type H to values of type V. It is always built
// against a shared [Distributor], which is what lets two arenas built from
// the same distributor be [Arena.Merge]d as a plain union: their handle
// sets never collide.
type Arena[H constraints.Unsigned, V any] struct {
	dist *Distributor[H]
	m    map[H]*slot[V]
}

// New creates an empty arena backed by dist.
func New[H constraints.Unsigned, V any](dist *Distributor[H]) *Arena[H, V] {
	return &Arena[H, V]{dist: dist, m: make(map[H]*slot[V])}
}

// Alloc reserves the next handle from the distributor without attaching a
// value to it yet. The handle must later be completed with [Arena.FillBack]
// before the arena is considered consistent.
func (a *Arena[H, V]) Alloc() H {
	h := a.dist.Next()
	a.m[h] = &slot[V]{}
	return h
}

// FillBack attaches a value to a handle previously reserved by [Arena.Alloc].
// It panics if h is unknown or already filled.
func (a *Arena[H, V]) FillBack(h H, v V) {
	s, ok := a.m[h]
	if !ok {
		panic(fmt.Sprintf("arena: FillBack: handle %v was never allocated", h))
	}
	if s.filled {
		panic(fmt.Sprintf("arena: FillBack: handle %v is already filled", h))
	}
	s.value = v
	s.filled = true
}

// Insert allocates a fresh handle and immediately fills it with v.
func (a *Arena[H, V]) Insert(v V) H {
	h := a.Alloc()
	a.FillBack(h, v)
	return h
}

// Remove deletes h from the arena and returns its value, if present.
func (a *Arena[H, V]) Remove(h H) (V, bool) {
	s, ok := a.m[h]
	if !ok {
		var zero V
		return zero, false
	}
	delete(a.m, h)
	return s.value, s.filled
}

// Get returns the value stored at h, if any and if filled.
func (a *Arena[H, V]) Get(h H) (V, bool) {
	s, ok := a.m[h]
	if !ok || !s.filled {
		var zero V
		return zero, false
	}
	return s.value, true
}

// GetMut returns a pointer to the stored value so the caller can mutate it
// in place. It panics if h is absent or unfilled — callers that have
// already checked [Arena.Contains] are asserting presence.
func (a *Arena[H, V]) GetMut(h H) *V {
	s, ok := a.m[h]
	if !ok || !s.filled {
		panic(fmt.Sprintf("arena: GetMut: handle %v has no value", h))
	}
	return &s.value
}

// UpdateWith moves the value at h out, applies f, and stores the result
// back. It panics if h is absent or unfilled.
func (a *Arena[H, V]) UpdateWith(h H, f func(V) V) {
	s, ok := a.m[h]
	if !ok || !s.filled {
		panic(fmt.Sprintf("arena: UpdateWith: handle %v has no value", h))
	}
	s.value = f(s.value)
}

// Contains reports whether h names a filled value in the arena.
func (a *Arena[H, V]) Contains(h H) bool {
	s, ok := a.m[h]
	return ok && s.filled
}

// Merge absorbs other into a. other must have been built from the same
// distributor as a; passing an arena from a different distributor is a
// programmer error and may silently clobber handles.
func (a *Arena[H, V]) Merge(other *Arena[H, V]) {
	for h, s := range other.m {
		a.m[h] = s
	}
	clear(other.m)
}

// Len returns the number of filled values in the arena.
func (a *Arena[H, V]) Len() int {
	n := 0
	for _, s := range a.m {
		if s.filled {
			n++
		}
	}
	return n
}

// Keys returns every filled handle, in ascending order.
func (a *Arena[H, V]) Keys() []H {
	keys := make([]H, 0, len(a.m))
	for h, s := range a.m {
		if s.filled {
			keys = append(keys, h)
		}
	}
	slices.Sort(keys)
	return keys
}

// All calls f for every (handle, value) pair, in ascending handle order.
// Iteration stops early if f returns false.
func (a *Arena[H, V]) All(f func(H, V) bool) {
	for _, h := range a.Keys() {
		v, _ := a.Get(h)
		if !f(h, v) {
			return
		}
	}
}
