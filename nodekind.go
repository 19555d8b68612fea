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

// Source names one outgoing edge: the handle it targets, tagged with which
// field (of the graph-wide source-tag enumeration) it was found in.
type Source[Src any] struct {
	Target Handle
	Tag    Src
}

// LinkSideEffect reports the net effect of a [Node.ModifyLink] call on any
// field that is also declared as a bidirectional-mirror field. At most one
// handle is added and one removed per call, since ModifyLink only ever
// replaces a single occurrence of old with new; LinkMirrors names which
// mirror tags (on the far side) those add/remove deltas apply to. Add and
// Remove are [Empty] when nothing changed on that side.
type LinkSideEffect[Link any] struct {
	Add         Handle
	Remove      Handle
	LinkMirrors []Link
}

// MirrorGroup is one declared bidirectional-field grouping, as returned by
// [Node.BidirectionalLinks]: Targets are the handles currently referenced
// by the declaring field, and Mirrors are the link-mirror tags on the
// partner side that must, in turn, reference this node.
type MirrorGroup[Link any] struct {
	Targets []Handle
	Mirrors []Link
}

// Node is the capability contract every concrete node kind in a graph's
// closed tagged union must satisfy. It is ordinarily produced by a
// code-generation tool that inspects a record type's field declarations —
// this package only states the contract such a
// generator's output must meet. Src and Link are the whole graph's
// disjoint-union source-tag and link-mirror-tag types, shared by every
// node kind the graph holds.
type Node[Src comparable, Link comparable] interface {
	// IterSources enumerates every outgoing reference-bearing field of the
	// node: one entry per scalar reference field, one entry per element of
	// a set-valued reference field.
	IterSources() []Source[Src]

	// ModifyLink rewrites the edge tagged src from old to new. For a
	// scalar field this is a plain assignment; for a set-valued field it
	// removes old and inserts new (or just removes old, if new is Empty).
	// It reports any resulting net change to a bidirectional-mirror field.
	ModifyLink(src Src, old, new Handle) LinkSideEffect[Link]

	// InGroup reports whether this node kind declared membership in the
	// named group. The set of group names is closed at code-generation
	// time.
	InGroup(name string) bool

	// BidirectionalLinks enumerates this node's declared mirror pairings:
	// for each bidirectional field, the handles it currently references
	// and the link-mirror tags the partner side must maintain in return.
	BidirectionalLinks() []MirrorGroup[Link]

	// AddLink inserts x as an incoming reference under the field named by
	// lm. It reports whether the field actually changed (false if x was
	// already present).
	AddLink(lm Link, x Handle) bool

	// RemoveLink erases x from the field named by lm. It reports whether
	// the field actually changed (false if x was already absent).
	RemoveLink(lm Link, x Handle) bool

	// IterLink enumerates the current contents of the reference field
	// named by lm.
	IterLink(lm Link) []Handle

	// ToSource maps a link-mirror tag to the source tag it corresponds to
	// in the graph-wide disjoint union.
	ToSource(lm Link) Src
}
