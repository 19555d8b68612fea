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

import "sort"

// mirrorEdge is one pending bidirectional-link change: node x declares a
// reference to y, so y's mirror field l must (eventually) reference x back.
type mirrorEdge[Link comparable] struct {
	x, y Handle
	l    Link
}

// bidirectionalDelta is a bag of pending mirror-field add/remove entries
// that cancel pairwise. Accumulating the whole commit's worth of
// bidirectional side effects before applying them at the end of commit is
// what makes a mutation that nets to "no change" in a mirrored field free: an add
// queued while the symmetric remove is still pending cancels it outright,
// so nothing is ever written to the field or the back-link index for it.
type bidirectionalDelta[Link comparable] struct {
	toAdd    map[mirrorEdge[Link]]struct{}
	toRemove map[mirrorEdge[Link]]struct{}
}

func newBidirectionalDelta[Link comparable]() *bidirectionalDelta[Link] {
	return &bidirectionalDelta[Link]{
		toAdd:    make(map[mirrorEdge[Link]]struct{}),
		toRemove: make(map[mirrorEdge[Link]]struct{}),
	}
}

func (bd *bidirectionalDelta[Link]) addOne(x, y Handle, lms []Link) {
	for _, l := range lms {
		e := mirrorEdge[Link]{x, y, l}
		if _, ok := bd.toRemove[e]; ok {
			delete(bd.toRemove, e)
			continue
		}
		bd.toAdd[e] = struct{}{}
	}
}

func (bd *bidirectionalDelta[Link]) add(x Handle, ys []Handle, lms []Link) {
	for _, y := range ys {
		bd.addOne(x, y, lms)
	}
}

func (bd *bidirectionalDelta[Link]) removeOne(x, y Handle, lms []Link) {
	for _, l := range lms {
		e := mirrorEdge[Link]{x, y, l}
		if _, ok := bd.toAdd[e]; ok {
			delete(bd.toAdd, e)
			continue
		}
		bd.toRemove[e] = struct{}{}
	}
}

func (bd *bidirectionalDelta[Link]) remove(x Handle, ys []Handle, lms []Link) {
	for _, y := range ys {
		bd.removeOne(x, y, lms)
	}
}

// sortedEdges returns the edges of m ordered by x, then y. Link need not be
// Ordered, so edges sharing both x and y come back in no defined order.
// This only matters for reproducibility of test output — the graph's
// invariants hold regardless of application order.
func sortedEdges[Link comparable](m map[mirrorEdge[Link]]struct{}) []mirrorEdge[Link] {
	edges := make([]mirrorEdge[Link], 0, len(m))
	for e := range m {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].x != edges[j].x {
			return edges[i].x < edges[j].x
		}
		return edges[i].y < edges[j].y
	})
	return edges
}
