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
	"testing"

	"github.com/go-quicktest/qt"
)

func TestTransactionMutateOnInsertedNodeAppliesImmediately(t *testing.T) {
	ctx := NewContext()
	txn := NewTransaction[srcTag, linkTag, AnyNode](ctx)

	h := txn.Insert(&NodeC{Data: 1})
	txn.Mutate(h, func(n AnyNode) { n.(*NodeC).Data = 2 })

	n, ok := txn.incNodes.Get(h)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(n.(*NodeC).Data, 2))
}

// Insert then remove within the same transaction cancels both.
func TestTransactionInsertThenRemoveCancels(t *testing.T) {
	ctx := NewContext()
	g := NewGraph[srcTag, linkTag, AnyNode](ctx)
	txn := NewTransaction[srcTag, linkTag, AnyNode](ctx)

	h := txn.Insert(&NodeC{Data: 1})
	txn.Remove(h)
	g.Commit(txn)

	qt.Assert(t, qt.Equals(g.Len(), 0))
	_, ok := g.Get(h)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestTransactionAllocThenRemoveForgetsReservation(t *testing.T) {
	ctx := NewContext()
	txn := NewTransaction[srcTag, linkTag, AnyNode](ctx)

	h := txn.Alloc()
	txn.Remove(h)

	_, ok := txn.allocNodes[h]
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.IsFalse(txn.incNodes.Contains(h)))
}

func TestTransactionGiveupMakesCommitNoOp(t *testing.T) {
	ctx := NewContext()
	g := NewGraph[srcTag, linkTag, AnyNode](ctx)
	txn := NewTransaction[srcTag, linkTag, AnyNode](ctx)

	txn.Insert(&NodeC{Data: 1})
	txn.Giveup()
	g.Commit(txn)

	qt.Assert(t, qt.Equals(g.Len(), 0))
}

func TestTransactionMergeAbsorbsQueues(t *testing.T) {
	ctx := NewContext()
	g := NewGraph[srcTag, linkTag, AnyNode](ctx)

	t1 := NewTransaction[srcTag, linkTag, AnyNode](ctx)
	h1 := t1.Insert(&NodeC{Data: 1})

	t2 := NewTransaction[srcTag, linkTag, AnyNode](ctx)
	h2 := t2.Insert(&NodeC{Data: 2})

	t1.Merge(t2)
	g.Commit(t1)

	qt.Assert(t, qt.Equals(g.Len(), 2))
	_, ok := g.Get(h1)
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = g.Get(h2)
	qt.Assert(t, qt.IsTrue(ok))
}

// Committing a transaction twice is a no-op the second time around.
func TestCommitTwiceIsNoOp(t *testing.T) {
	ctx := NewContext()
	g := NewGraph[srcTag, linkTag, AnyNode](ctx)
	txn := NewTransaction[srcTag, linkTag, AnyNode](ctx)
	txn.Insert(&NodeC{Data: 1})

	g.Commit(txn)
	qt.Assert(t, qt.Equals(g.Len(), 1))
	g.Commit(txn)
	qt.Assert(t, qt.Equals(g.Len(), 1))
}
