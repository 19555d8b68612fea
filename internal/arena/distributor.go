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

// Package arena holds the low-level handle allocator and handle-keyed map
// that back [github.com/arch-of-shadow/TTGraph]'s Graph and Transaction
// types. It has no notion of node kinds or links; it only knows about
// dense, totally ordered handles and the values stored under them.
package arena

import (
	"sync"

	"golang.org/x/exp/constraints"
)

// Distributor hands out a monotonically increasing sequence of handles
// under exclusive access. A handle is never reissued, even once the value
// it named has been removed from every arena built against this
// distributor. One Distributor is shared by every Graph and Transaction
// that belong to the same context, which is what makes merging two such
// arenas a plain union: their handle sets are disjoint by construction.
type Distributor[H constraints.Unsigned] struct {
	mu   sync.Mutex
	next H
}

// NewDistributor creates a distributor that will hand out handle 1 first
// (0 is reserved by convention for "empty").
func NewDistributor[H constraints.Unsigned]() *Distributor[H] {
	return &Distributor[H]{next: 1}
}

// Next reserves and returns the next handle.
func (d *Distributor[H]) Next() H {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.next
	d.next++
	return h
}
