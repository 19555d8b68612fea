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

package arena_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/arch-of-shadow/TTGraph/internal/arena"
)

func TestInsertGet(t *testing.T) {
	d := arena.NewDistributor[uint64]()
	a := arena.New[uint64, string](d)

	h := a.Insert("hello")
	v, ok := a.Get(h)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v, "hello"))
	qt.Assert(t, qt.Equals(a.Len(), 1))
}

func TestAllocFillBack(t *testing.T) {
	d := arena.NewDistributor[uint64]()
	a := arena.New[uint64, string](d)

	h := a.Alloc()
	qt.Assert(t, qt.IsFalse(a.Contains(h)))
	a.FillBack(h, "world")
	qt.Assert(t, qt.IsTrue(a.Contains(h)))
}

func TestFillBackUnknownPanics(t *testing.T) {
	d := arena.NewDistributor[uint64]()
	a := arena.New[uint64, string](d)

	defer func() {
		qt.Assert(t, qt.IsNotNil(recover()))
	}()
	a.FillBack(99, "oops")
}

func TestFillBackTwicePanics(t *testing.T) {
	d := arena.NewDistributor[uint64]()
	a := arena.New[uint64, string](d)

	h := a.Alloc()
	a.FillBack(h, "first")
	defer func() {
		qt.Assert(t, qt.IsNotNil(recover()))
	}()
	a.FillBack(h, "second")
}

func TestRemove(t *testing.T) {
	d := arena.NewDistributor[uint64]()
	a := arena.New[uint64, string](d)

	h := a.Insert("x")
	v, ok := a.Remove(h)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v, "x"))
	qt.Assert(t, qt.IsFalse(a.Contains(h)))

	_, ok = a.Remove(h)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestGetMut(t *testing.T) {
	d := arena.NewDistributor[uint64]()
	a := arena.New[uint64, int](d)

	h := a.Insert(1)
	*a.GetMut(h) += 41
	v, _ := a.Get(h)
	qt.Assert(t, qt.Equals(v, 42))
}

func TestUpdateWith(t *testing.T) {
	d := arena.NewDistributor[uint64]()
	a := arena.New[uint64, int](d)

	h := a.Insert(1)
	a.UpdateWith(h, func(v int) int { return v + 41 })
	v, _ := a.Get(h)
	qt.Assert(t, qt.Equals(v, 42))
}

func TestKeysAscending(t *testing.T) {
	d := arena.NewDistributor[uint64]()
	a := arena.New[uint64, int](d)

	var hs []uint64
	for i := 0; i < 5; i++ {
		hs = append(hs, a.Insert(i))
	}
	qt.Assert(t, qt.DeepEquals(a.Keys(), hs))
}

func TestMergeDisjoint(t *testing.T) {
	d := arena.NewDistributor[uint64]()
	a := arena.New[uint64, string](d)
	b := arena.New[uint64, string](d)

	ha := a.Insert("a")
	hb := b.Insert("b")
	qt.Assert(t, qt.Not(qt.Equals(ha, hb)))

	a.Merge(b)
	qt.Assert(t, qt.Equals(a.Len(), 2))
	qt.Assert(t, qt.Equals(b.Len(), 0))
	v, ok := a.Get(hb)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v, "b"))
}

func TestAllStopsEarly(t *testing.T) {
	d := arena.NewDistributor[uint64]()
	a := arena.New[uint64, int](d)
	for i := 0; i < 10; i++ {
		a.Insert(i)
	}

	seen := 0
	a.All(func(h uint64, v int) bool {
		seen++
		return seen < 3
	})
	qt.Assert(t, qt.Equals(seen, 3))
}
