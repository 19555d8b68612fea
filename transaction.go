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

type mutEntry[N any] struct {
	h Handle
	f func(N)
}

type updateEntry[N any] struct {
	h Handle
	f func(N) N
}

// Transaction accumulates pending work against a graph: allocations,
// insertions, removals, in-place mutations, functional updates, and bulk
// redirections. None of it takes effect until passed to [Graph.Commit] — a
// Transaction is a staged batch, not a live view of the graph. A
// Transaction is single-use: [Graph.Commit] (or [Transaction.Giveup])
// consumes it.
type Transaction[Src comparable, Link comparable, N Node[Src, Link]] struct {
	ctxID uuid.UUID

	allocNodes  map[Handle]struct{}
	incNodes    *arena.Arena[Handle, N]
	decNodes    []Handle
	mutNodes    []mutEntry[N]
	updateNodes []updateEntry[N]

	redirectLinksVec    [][2]Handle
	redirectAllLinksVec [][2]Handle

	committed bool
}

// NewTransaction creates an empty transaction bound to ctx.
func NewTransaction[Src comparable, Link comparable, N Node[Src, Link]](ctx Context) *Transaction[Src, Link, N] {
	return &Transaction[Src, Link, N]{
		ctxID:      ctx.id,
		allocNodes: make(map[Handle]struct{}),
		incNodes:   arena.New[Handle, N](ctx.dist),
	}
}

// Alloc reserves a handle without attaching a value to it yet. The
// reservation must be completed with [Transaction.FillBack] before this
// transaction can be committed. Alloc is how a node can be made to
// reference its own handle before its value exists — the only way to
// build a cycle without a chicken-and-egg problem.
func (t *Transaction[Src, Link, N]) Alloc() Handle {
	h := t.incNodes.Alloc()
	t.allocNodes[h] = struct{}{}
	return h
}

// FillBack attaches a value to a handle previously reserved by
// [Transaction.Alloc].
func (t *Transaction[Src, Link, N]) FillBack(h Handle, v N) {
	t.incNodes.FillBack(h, v)
	delete(t.allocNodes, h)
}

// Insert allocates a fresh handle and fills it with v in one step.
func (t *Transaction[Src, Link, N]) Insert(v N) Handle {
	return t.incNodes.Insert(v)
}

// Remove queues h for removal. If h was inserted (or alloc'd) within this
// same transaction it is simply dropped from the pending insert set — an
// insert immediately undone by a remove in the same transaction is a
// no-op on the committed graph. Otherwise h is queued into the graph-side
// removal set, applied during the removal phase of commit.
func (t *Transaction[Src, Link, N]) Remove(h Handle) {
	if t.incNodes.Contains(h) {
		t.incNodes.Remove(h)
		return
	}
	if _, ok := t.allocNodes[h]; ok {
		delete(t.allocNodes, h)
		t.incNodes.Remove(h)
		return
	}
	t.decNodes = append(t.decNodes, h)
}

// Mutate queues an in-place mutator for h. If h was inserted within this
// same transaction, f runs immediately against the staged value; otherwise
// it is queued and runs during commit's mutation phase, after the early
// redirections and merged inserts have landed. Queueing a mutator for a
// handle that turns out to be absent from the target graph at commit time
// is not rejected here — it fails fatally at commit.
func (t *Transaction[Src, Link, N]) Mutate(h Handle, f func(N)) {
	if t.incNodes.Contains(h) {
		n, _ := t.incNodes.Get(h)
		f(n)
		return
	}
	t.mutNodes = append(t.mutNodes, mutEntry[N]{h: h, f: f})
}

// Update queues a functional (by-value) updater for h: f receives the
// current value and its return value replaces it. Same immediate-vs-queued
// policy as [Transaction.Mutate], and the same commit-time fatality if h
// turns out to be unknown.
func (t *Transaction[Src, Link, N]) Update(h Handle, f func(N) N) {
	if t.incNodes.Contains(h) {
		t.incNodes.UpdateWith(h, f)
		return
	}
	t.updateNodes = append(t.updateNodes, updateEntry[N]{h: h, f: f})
}

// Redirect queues an early redirection: every node that currently
// references old will be rewritten to reference new instead. Early
// redirections run before inserts, mutations, and updates land, so they
// only ever see edges that existed in the graph before this transaction.
func (t *Transaction[Src, Link, N]) Redirect(old, new Handle) {
	t.redirectLinksVec = append(t.redirectLinksVec, [2]Handle{old, new})
}

// RedirectAll queues a late redirection, run after mutations and updates,
// so edges created by this same transaction's mutators are also
// redirected.
func (t *Transaction[Src, Link, N]) RedirectAll(old, new Handle) {
	t.redirectAllLinksVec = append(t.redirectAllLinksVec, [2]Handle{old, new})
}

// Merge absorbs the queued work of other into t. other must have been
// constructed against the same context; this is typically used together
// with [Graph.SwitchContext] to fuse two graphs built under different
// contexts into one.
func (t *Transaction[Src, Link, N]) Merge(other *Transaction[Src, Link, N]) {
	for h := range other.allocNodes {
		t.allocNodes[h] = struct{}{}
	}
	t.incNodes.Merge(other.incNodes)
	t.decNodes = append(t.decNodes, other.decNodes...)
	t.mutNodes = append(t.mutNodes, other.mutNodes...)
	t.updateNodes = append(t.updateNodes, other.updateNodes...)
	t.redirectLinksVec = append(t.redirectLinksVec, other.redirectLinksVec...)
	t.redirectAllLinksVec = append(t.redirectAllLinksVec, other.redirectAllLinksVec...)
}

// Giveup disarms the transaction: a subsequent [Graph.Commit] becomes a
// silent no-op.
func (t *Transaction[Src, Link, N]) Giveup() {
	t.committed = true
}
