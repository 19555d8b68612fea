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
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/arch-of-shadow/TTGraph/internal/arena"
)

// backEntry is one reverse-link record: node X references the owning
// handle under source tag S.
type backEntry[Src comparable] struct {
	X Handle
	S Src
}

// Graph holds an arena of nodes plus the reverse-link index binding them
// together. It is never mutated directly; the only write
// path is [Graph.Commit]. Src is the graph-wide source-tag enumeration,
// Link the graph-wide link-mirror-tag enumeration, and N the closed node
// kind union — see [Node].
type Graph[Src comparable, Link comparable, N Node[Src, Link]] struct {
	ctxID uuid.UUID
	nodes *arena.Arena[Handle, N]
	// backLinks[y] is the set of (x, s) such that node x has an outgoing
	// edge tagged s pointing at y. A key y is present iff y is in nodes;
	// its value may be an empty set.
	backLinks map[Handle]map[backEntry[Src]]struct{}
}

// NewGraph creates an empty graph bound to ctx.
func NewGraph[Src comparable, Link comparable, N Node[Src, Link]](ctx Context) *Graph[Src, Link, N] {
	return &Graph[Src, Link, N]{
		ctxID:     ctx.id,
		nodes:     arena.New[Handle, N](ctx.dist),
		backLinks: make(map[Handle]map[backEntry[Src]]struct{}),
	}
}

// Pair is one (handle, node) result from [Graph.Iter] or [Graph.IterGroup].
type Pair[N any] struct {
	Handle Handle
	Node   N
}

// Get returns the node at h, if present.
func (g *Graph[Src, Link, N]) Get(h Handle) (N, bool) {
	return g.nodes.Get(h)
}

// Iter returns every (handle, node) pair in the graph, in ascending handle
// order.
func (g *Graph[Src, Link, N]) Iter() []Pair[N] {
	keys := g.nodes.Keys()
	out := make([]Pair[N], 0, len(keys))
	for _, h := range keys {
		n, _ := g.nodes.Get(h)
		out = append(out, Pair[N]{Handle: h, Node: n})
	}
	return out
}

// IterGroup returns every (handle, node) pair whose node kind declares
// membership in the named group, in ascending handle order.
func (g *Graph[Src, Link, N]) IterGroup(name string) []Pair[N] {
	var out []Pair[N]
	for _, p := range g.Iter() {
		if p.Node.InGroup(name) {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of nodes in the graph.
func (g *Graph[Src, Link, N]) Len() int {
	return g.nodes.Len()
}

// IsEmpty reports whether the graph has no nodes.
func (g *Graph[Src, Link, N]) IsEmpty() bool {
	return g.Len() == 0
}

// addBackLink records that x references y under source tag s.
func (g *Graph[Src, Link, N]) addBackLink(y, x Handle, s Src) {
	set, ok := g.backLinks[y]
	if !ok {
		set = make(map[backEntry[Src]]struct{})
		g.backLinks[y] = set
	}
	set[backEntry[Src]{X: x, S: s}] = struct{}{}
}

// removeBackLink erases the record that x references y under source tag s.
func (g *Graph[Src, Link, N]) removeBackLink(y, x Handle, s Src) {
	if set, ok := g.backLinks[y]; ok {
		delete(set, backEntry[Src]{X: x, S: s})
	}
}

// registerBackLinks adds an empty back-link set for x, so every live node
// has an entry even with no inbound edges, and records every outgoing
// edge of n.
func (g *Graph[Src, Link, N]) registerBackLinks(x Handle, n N) {
	if _, ok := g.backLinks[x]; !ok {
		g.backLinks[x] = make(map[backEntry[Src]]struct{})
	}
	for _, src := range n.IterSources() {
		if src.Target.IsEmpty() {
			continue
		}
		g.addBackLink(src.Target, x, src.Tag)
	}
}

// unregisterBackLinks drops every outgoing-edge record for x that
// registerBackLinks would have added.
func (g *Graph[Src, Link, N]) unregisterBackLinks(x Handle, n N) {
	for _, src := range n.IterSources() {
		if src.Target.IsEmpty() {
			continue
		}
		g.removeBackLink(src.Target, x, src.Tag)
	}
}

// SwitchContext relabels every node under a fresh handle set drawn from
// newCtx's distributor and returns the result as a new graph. There must be
// no outstanding transactions against g: every Handle into g (and into the
// returned graph's predecessor state) becomes meaningless once this
// returns.
func (g *Graph[Src, Link, N]) SwitchContext(newCtx Context) *Graph[Src, Link, N] {
	newNodes := arena.New[Handle, N](newCtx.dist)
	idMap := make(map[Handle]Handle, g.nodes.Len())

	for _, h := range g.nodes.Keys() {
		n, _ := g.nodes.Get(h)
		idMap[h] = newNodes.Insert(n)
	}

	// Rewrite every outgoing field using the *old* back-links: node kinds
	// are expected to mutate through a pointer receiver, so calling
	// ModifyLink on the value fetched from newNodes mutates it in place.
	for oldID, newID := range idMap {
		for be := range g.backLinks[oldID] {
			referrer, _ := newNodes.Get(idMap[be.X])
			referrer.ModifyLink(be.S, oldID, newID)
		}
	}

	result := &Graph[Src, Link, N]{
		ctxID:     newCtx.id,
		nodes:     arena.New[Handle, N](newCtx.dist),
		backLinks: make(map[Handle]map[backEntry[Src]]struct{}),
	}

	// Any add/remove side effects ModifyLink reported above are discarded:
	// bidirectional state is re-derived from scratch by mergeNodes below.
	bd := newBidirectionalDelta[Link]()
	result.mergeNodes(newNodes, bd)
	result.applyBidirectionalLinks(bd)
	return result
}

// CheckBacklinks re-derives the back-link index from nodes and panics if
// it disagrees with the stored index. It is a debug-only helper: full
// re-derivation is O(n), not meant for hot paths.
func (g *Graph[Src, Link, N]) CheckBacklinks() {
	derived := make(map[Handle]map[backEntry[Src]]struct{})
	for _, p := range g.Iter() {
		if _, ok := derived[p.Handle]; !ok {
			derived[p.Handle] = make(map[backEntry[Src]]struct{})
		}
		for _, src := range p.Node.IterSources() {
			if src.Target.IsEmpty() {
				continue
			}
			if _, ok := derived[src.Target]; !ok {
				derived[src.Target] = make(map[backEntry[Src]]struct{})
			}
			derived[src.Target][backEntry[Src]{X: p.Handle, S: src.Tag}] = struct{}{}
			if _, ok := g.backLinks[src.Target]; !ok {
				fatalf("Graph.CheckBacklinks", "node %v references %v, which has no backlink entry", p.Handle, src.Target)
			}
		}
	}
	if diff := diffBackLinks(derived, g.backLinks); diff != "" {
		fatalf("Graph.CheckBacklinks", "back_links disagree with derived index:\n%s", diff)
	}
}

// CheckBidirectional verifies, for every node that declares a
// bidirectional pairing, that each non-empty target listed under a mirrored
// field is present in the graph and lists this node back under the
// corresponding mirror field; it panics otherwise.
// CheckBacklinks does not validate this; CheckBidirectional is offered as
// a second, separate debug method rather than a silent change to
// CheckBacklinks' documented scope.
func (g *Graph[Src, Link, N]) CheckBidirectional() {
	for _, p := range g.Iter() {
		for _, grp := range p.Node.BidirectionalLinks() {
			for _, y := range grp.Targets {
				if y.IsEmpty() {
					continue
				}
				partner, ok := g.Get(y)
				if !ok {
					fatalf("Graph.CheckBidirectional", "node %v references missing node %v", p.Handle, y)
				}
				for _, lm := range grp.Mirrors {
					if !containsHandle(partner.IterLink(lm), p.Handle) {
						fatalf("Graph.CheckBidirectional", "node %v does not mirror back to %v", y, p.Handle)
					}
				}
			}
		}
	}
}

func containsHandle(hs []Handle, h Handle) bool {
	for _, x := range hs {
		if x == h {
			return true
		}
	}
	return false
}

func diffBackLinks[Src comparable](derived, actual map[Handle]map[backEntry[Src]]struct{}) string {
	toSets := func(m map[Handle]map[backEntry[Src]]struct{}) map[Handle][]backEntry[Src] {
		out := make(map[Handle][]backEntry[Src], len(m))
		for h, set := range m {
			entries := make([]backEntry[Src], 0, len(set))
			for e := range set {
				entries = append(entries, e)
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].X < entries[j].X })
			out[h] = entries
		}
		return out
	}
	d, a := toSets(derived), toSets(actual)
	cmpOpt := cmp.Comparer(func(a, b backEntry[Src]) bool { return a == b })
	if cmp.Equal(d, a, cmpOpt) {
		return ""
	}
	return cmp.Diff(d, a, cmpOpt)
}
