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

import "github.com/arch-of-shadow/TTGraph/internal/arena"

// Commit applies t to g as a fixed sequence of phases, the only write path
// into a Graph:
//
//	early redirections, merge inserts, in-place mutations,
//	functional updates, late redirections, removals,
//	bidirectional-delta application.
//
// The graph's invariants hold before Commit is called and are only
// re-established at the end of the final phase — they may be violated
// transiently between phases.
//
// Commit panics if t was built from a different context than g or if
// t has unfilled allocated handles still pending. It is a silent no-op if
// t was already [Transaction.Giveup]'d or already committed.
func (g *Graph[Src, Link, N]) Commit(t *Transaction[Src, Link, N]) {
	if t.committed {
		return
	}
	if t.ctxID != g.ctxID {
		fatalf("Graph.Commit", "transaction and graph belong to different contexts")
	}
	if len(t.allocNodes) != 0 {
		fatalf("Graph.Commit", "transaction has %d unfilled allocated handle(s)", len(t.allocNodes))
	}
	t.committed = true

	bd := newBidirectionalDelta[Link]()

	g.redirectLinksVec(t.redirectLinksVec, bd)
	g.mergeNodes(t.incNodes, bd)
	for _, e := range t.mutNodes {
		g.modifyNode(e.h, e.f, bd)
	}
	for _, e := range t.updateNodes {
		g.updateNode(e.h, e.f, bd)
	}
	g.redirectLinksVec(t.redirectAllLinksVec, bd)
	for _, h := range t.decNodes {
		g.removeNode(h, bd)
	}

	g.applyBidirectionalLinks(bd)
}

// redirectLinks retargets every inbound edge of oldNode to newNode: every
// (referrer, srcTag) in back_links[oldNode] is moved to back_links[newNode]
// and the referrer's field is rewritten via ModifyLink. Any add/remove side
// effect ModifyLink reports against a bidirectional-mirror field is folded
// into bd.
func (g *Graph[Src, Link, N]) redirectLinks(oldNode, newNode Handle, bd *bidirectionalDelta[Link]) {
	oldLinks, ok := g.backLinks[oldNode]
	if !ok {
		fatalf("Graph.Commit", "redirect from handle %v not in the graph", oldNode)
	}
	g.backLinks[oldNode] = make(map[backEntry[Src]]struct{})

	newLinks, ok := g.backLinks[newNode]
	if !ok {
		newLinks = make(map[backEntry[Src]]struct{})
		g.backLinks[newNode] = newLinks
	}

	for be := range oldLinks {
		newLinks[be] = struct{}{}
		referrer, ok := g.nodes.Get(be.X)
		if !ok {
			fatalf("Graph.Commit", "back-link from missing node %v", be.X)
		}
		effect := referrer.ModifyLink(be.S, oldNode, newNode)
		if !effect.Add.IsEmpty() {
			bd.addOne(be.X, effect.Add, effect.LinkMirrors)
		}
		if !effect.Remove.IsEmpty() {
			bd.removeOne(be.X, effect.Remove, effect.LinkMirrors)
		}
	}
}

// redirectLinksVec applies a batch of (old, new) redirections, collapsing
// any transitive chains (a to b, b to c) to their ultimate target via
// union-find with path compression before redirecting. A self-redirection
// (a, a) is a no-op and is dropped up front; a cycle among distinct
// replacements (a to b, b to a) is a fatal programmer error.
func (g *Graph[Src, Link, N]) redirectLinksVec(replacements [][2]Handle, bd *bidirectionalDelta[Link]) {
	kept := replacements[:0:0]
	for _, r := range replacements {
		if r[0] != r[1] {
			kept = append(kept, r)
		}
	}
	replacements = kept

	fa := make(map[Handle]Handle)
	for _, r := range replacements {
		old, new := r[0], r[1]
		if _, ok := fa[old]; !ok {
			fa[old] = old
		}
		if _, ok := fa[new]; !ok {
			fa[new] = new
		}
	}

	for _, r := range replacements {
		old, new := r[0], r[1]
		x := new
		for fa[x] != x {
			x = fa[x]
		}
		if x == old {
			fatalf("Graph.Commit", "loop redirection detected at handle %v", old)
		}
		fa[old] = x
	}

	for _, r := range replacements {
		old, new := r[0], r[1]
		x := new
		y := fa[x]
		for x != y {
			x = y
			y = fa[y]
		}

		g.redirectLinks(old, x, bd)

		x = new
		for fa[x] != y {
			z := fa[x]
			fa[x] = y
			x = z
		}
	}
}

// mergeNodes absorbs an arena of newly staged nodes into g: every new node
// gets a back-link entry registered (including an empty set for nodes with
// no inbound edges), and every declared bidirectional-mirror group it
// emits is folded into bd.
func (g *Graph[Src, Link, N]) mergeNodes(nodes *arena.Arena[Handle, N], bd *bidirectionalDelta[Link]) {
	keys := nodes.Keys()
	for _, h := range keys {
		n, _ := nodes.Get(h)
		g.registerBackLinks(h, n)
	}
	for _, h := range keys {
		n, _ := nodes.Get(h)
		for _, grp := range n.BidirectionalLinks() {
			bd.add(h, grp.Targets, grp.Mirrors)
		}
	}
	g.nodes.Merge(nodes)
}

// removeNode strips x's bidirectional declarations and outgoing edges,
// deletes it from the arena, and zeroes every inbound reference to it by
// calling ModifyLink(s, x, Empty) on each referrer.
func (g *Graph[Src, Link, N]) removeNode(x Handle, bd *bidirectionalDelta[Link]) {
	n, ok := g.nodes.Get(x)
	if !ok {
		fatalf("Graph.Commit", "remove a non-existing node %v", x)
	}

	for _, grp := range n.BidirectionalLinks() {
		bd.remove(x, grp.Targets, grp.Mirrors)
	}

	g.nodes.Remove(x)
	g.unregisterBackLinks(x, n)

	inbound := g.backLinks[x]
	delete(g.backLinks, x)
	for be := range inbound {
		referrer, ok := g.nodes.Get(be.X)
		if !ok {
			fatalf("Graph.Commit", "dangling back-link from missing node %v", be.X)
		}
		referrer.ModifyLink(be.S, x, Empty)
	}
}

// modifyNode strips x's current outgoing edges and bidirectional
// declarations, applies f in place, then re-registers both from the
// mutated state, so there is never a need to diff the pre- and post-image
// of an arbitrarily mutated node.
func (g *Graph[Src, Link, N]) modifyNode(x Handle, f func(N), bd *bidirectionalDelta[Link]) {
	n, ok := g.nodes.Get(x)
	if !ok {
		fatalf("Graph.Commit", "mutate a non-existing node %v", x)
	}

	for _, grp := range n.BidirectionalLinks() {
		bd.remove(x, grp.Targets, grp.Mirrors)
	}
	g.unregisterBackLinks(x, n)

	f(n)

	for _, grp := range n.BidirectionalLinks() {
		bd.add(x, grp.Targets, grp.Mirrors)
	}
	g.registerOutgoingOnly(x, n)
}

// updateNode is modifyNode's by-value counterpart: f receives the current
// node and its return value replaces it in the arena.
func (g *Graph[Src, Link, N]) updateNode(x Handle, f func(N) N, bd *bidirectionalDelta[Link]) {
	n, ok := g.nodes.Get(x)
	if !ok {
		fatalf("Graph.Commit", "update a non-existing node %v", x)
	}

	for _, grp := range n.BidirectionalLinks() {
		bd.remove(x, grp.Targets, grp.Mirrors)
	}
	g.unregisterBackLinks(x, n)

	g.nodes.UpdateWith(x, f)

	n2, _ := g.nodes.Get(x)
	for _, grp := range n2.BidirectionalLinks() {
		bd.add(x, grp.Targets, grp.Mirrors)
	}
	g.registerOutgoingOnly(x, n2)
}

// registerOutgoingOnly re-adds x's outgoing-edge back-links without
// touching the (already-present) empty-set entry for x itself.
func (g *Graph[Src, Link, N]) registerOutgoingOnly(x Handle, n N) {
	for _, src := range n.IterSources() {
		if src.Target.IsEmpty() {
			continue
		}
		g.addBackLink(src.Target, x, src.Tag)
	}
}

// applyBidirectionalLinks applies the net (already-cancelled) set of
// pending mirror-field changes: for each (x, y, lm) edge, x declared a
// reference to y, so y's field named lm must add/remove x. Either endpoint
// having been removed in the same commit silently drops the entry (a
// removed node's own mirror fields no longer matter, and a mirror field on
// a live node can't reference a handle that no longer exists).
func (g *Graph[Src, Link, N]) applyBidirectionalLinks(bd *bidirectionalDelta[Link]) {
	for _, e := range sortedEdges(bd.toRemove) {
		if !g.nodes.Contains(e.x) || !g.nodes.Contains(e.y) {
			continue
		}
		partner, _ := g.nodes.Get(e.y)
		if partner.RemoveLink(e.l, e.x) {
			g.removeBackLink(e.x, e.y, partner.ToSource(e.l))
		}
	}
	for _, e := range sortedEdges(bd.toAdd) {
		if !g.nodes.Contains(e.x) || !g.nodes.Contains(e.y) {
			continue
		}
		partner, _ := g.nodes.Get(e.y)
		if partner.AddLink(e.l, e.x) {
			g.addBackLink(e.x, e.y, partner.ToSource(e.l))
		}
	}
}
