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

package ttgraph

import (
	"github.com/google/uuid"

	"github.com/arch-of-shadow/TTGraph/internal/arena"
)

// Context pairs an identity token with a shared handle distributor. A
// [Graph] and every [Transaction] meant to commit against it must share a
// Context: [Graph.Commit] rejects a transaction built from a different
// one. There is no hidden default context — one must always be
// constructed explicitly and passed in.
type Context struct {
	id   uuid.UUID
	dist *arena.Distributor[Handle]
}

// NewContext creates a context with a fresh identity and a fresh handle
// distributor.
func NewContext() Context {
	return Context{
		id:   uuid.New(),
		dist: arena.NewDistributor[Handle](),
	}
}

// ID returns the context's identity token. Two contexts created
// independently never compare equal.
func (c Context) ID() uuid.UUID {
	return c.id
}
