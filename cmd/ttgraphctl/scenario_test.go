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

package main

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/arch-of-shadow/TTGraph"
)

func TestReplayCyclicPair(t *testing.T) {
	scn := &Scenario{
		Steps: []Step{
			{
				Inserts: []InsertSpec{
					{ID: "a", Kind: "A", Scalars: map[string]string{"A.link": "b"}},
					{ID: "b", Kind: "B", Scalars: map[string]string{"B.link": "a"}},
				},
			},
		},
	}

	ctx := ttgraph.NewContext()
	g := ttgraph.NewGraph[FieldTag, FieldTag, AnyNode](ctx)
	err := replay(scn, ctx, g)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(g.Len(), 2))
	g.CheckBacklinks()
}

func TestReplayBidirectionalMirror(t *testing.T) {
	scn := &Scenario{
		Steps: []Step{
			{
				Inserts: []InsertSpec{
					{ID: "p", Kind: "P", Scalars: map[string]string{"P.partner": "q"}, Mirrors: map[string]string{"P.partner": "Q.partner"}},
					{ID: "q", Kind: "Q"},
				},
			},
			{
				Mutates: []MutateSpec{
					{ID: "p", SetScalars: map[string]string{"P.partner": ""}},
				},
			},
		},
	}

	ctx := ttgraph.NewContext()
	g := ttgraph.NewGraph[FieldTag, FieldTag, AnyNode](ctx)
	err := replay(scn, ctx, g)
	qt.Assert(t, qt.IsNil(err))
	g.CheckBacklinks()
	g.CheckBidirectional()
}

func TestReplayUnknownIDFails(t *testing.T) {
	scn := &Scenario{
		Steps: []Step{
			{Removes: []string{"nope"}},
		},
	}
	ctx := ttgraph.NewContext()
	g := ttgraph.NewGraph[FieldTag, FieldTag, AnyNode](ctx)
	err := replay(scn, ctx, g)
	qt.Assert(t, qt.IsNotNil(err))
}
