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

func TestGraphIterAscendingAndLen(t *testing.T) {
	ctx := NewContext()
	g := NewGraph[srcTag, linkTag, AnyNode](ctx)
	txn := NewTransaction[srcTag, linkTag, AnyNode](ctx)
	var want []Handle
	for i := 0; i < 5; i++ {
		want = append(want, txn.Insert(&NodeC{Data: i}))
	}
	g.Commit(txn)

	qt.Assert(t, qt.Equals(g.Len(), 5))
	qt.Assert(t, qt.IsFalse(g.IsEmpty()))

	var got []Handle
	for _, p := range g.Iter() {
		got = append(got, p.Handle)
	}
	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestGraphEmpty(t *testing.T) {
	g := NewGraph[srcTag, linkTag, AnyNode](NewContext())
	qt.Assert(t, qt.IsTrue(g.IsEmpty()))
	qt.Assert(t, qt.Equals(g.Len(), 0))
}

// Switching context twice composes into an isomorphic graph — checked
// here by re-deriving back-links and confirming the structural shape
// (cyclic A/B pair, still referencing each other) survives both hops.
func TestSwitchContextRoundTrip(t *testing.T) {
	ctx1 := NewContext()
	g1 := NewGraph[srcTag, linkTag, AnyNode](ctx1)
	setup := NewTransaction[srcTag, linkTag, AnyNode](ctx1)
	ha := setup.Alloc()
	hb := setup.Alloc()
	setup.FillBack(ha, &NodeA{Link: hb})
	setup.FillBack(hb, &NodeB{Link: ha})
	g1.Commit(setup)

	ctx2 := NewContext()
	g2 := g1.SwitchContext(ctx2)
	ctx3 := NewContext()
	g3 := g2.SwitchContext(ctx3)

	qt.Assert(t, qt.Equals(g3.Len(), 2))
	g3.CheckBacklinks()

	var aHandle, bHandle Handle
	for _, p := range g3.Iter() {
		switch p.Node.(type) {
		case *NodeA:
			aHandle = p.Handle
		case *NodeB:
			bHandle = p.Handle
		}
	}
	a, _ := g3.Get(aHandle)
	qt.Assert(t, qt.Equals(a.(*NodeA).Link, bHandle))
	b, _ := g3.Get(bHandle)
	qt.Assert(t, qt.Equals(b.(*NodeB).Link, aHandle))
}

func TestCheckBacklinksPanicsOnCorruption(t *testing.T) {
	ctx := NewContext()
	g := NewGraph[srcTag, linkTag, AnyNode](ctx)
	txn := NewTransaction[srcTag, linkTag, AnyNode](ctx)
	h := txn.Insert(&NodeC{Data: 1})
	g.Commit(txn)

	delete(g.backLinks, h)

	defer func() {
		qt.Assert(t, qt.IsNotNil(recover()))
	}()
	g.CheckBacklinks()
}
