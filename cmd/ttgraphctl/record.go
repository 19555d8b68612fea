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

// Package main implements ttgraphctl, a small command that replays a
// declarative YAML scenario against a ttgraph.Graph. It stands in for the
// hand-written or generated node-kind implementations a real embedder would
// write: Record is one generic node kind whose field shape (which fields
// are scalar references, which are sets, which pair up bidirectionally) is
// declared per instance by the scenario file rather than by the Go type
// system, so a single kind can play the part of any of the scenario's
// user-declared kinds.
package main

import "github.com/arch-of-shadow/TTGraph"

// FieldTag names one reference-bearing field of a Record, qualified by
// kind so two kinds can each declare a field called "link" without
// colliding in the graph-wide tag space (e.g. "A.link", "P.partner").
// FieldTag doubles as both the source-tag and link-mirror-tag enumeration:
// Record has no need for two distinct types since every field it declares
// already carries a globally unique name.
type FieldTag string

// AnyNode is the closed node-kind union ttgraphctl's graphs are
// instantiated over.
type AnyNode = ttgraph.Node[FieldTag, FieldTag]

// Record is a schema-free stand-in for a generated node-kind
// implementation. Kind is a display label only; the fields that matter to
// the graph are Scalars and Sets (outgoing references) and Mirrors
// (declared bidirectional pairings).
type Record struct {
	Kind    string
	Groups  []string
	Scalars map[FieldTag]ttgraph.Handle
	Sets    map[FieldTag][]ttgraph.Handle
	// IsSet records, per field, whether it was declared as a set. A field
	// present in neither Scalars nor Sets but named in IsSet is legal (an
	// empty set or an empty/unset scalar).
	IsSet map[FieldTag]bool
	// Mirrors maps a field on this record to the link-mirror tag the
	// partner side must maintain in return.
	Mirrors map[FieldTag]FieldTag
}

func newRecord(kind string) *Record {
	return &Record{
		Kind:    kind,
		Scalars: make(map[FieldTag]ttgraph.Handle),
		Sets:    make(map[FieldTag][]ttgraph.Handle),
		IsSet:   make(map[FieldTag]bool),
		Mirrors: make(map[FieldTag]FieldTag),
	}
}

func (r *Record) IterSources() []ttgraph.Source[FieldTag] {
	var out []ttgraph.Source[FieldTag]
	for f, h := range r.Scalars {
		if !h.IsEmpty() {
			out = append(out, ttgraph.Source[FieldTag]{Target: h, Tag: f})
		}
	}
	for f, hs := range r.Sets {
		for _, h := range hs {
			out = append(out, ttgraph.Source[FieldTag]{Target: h, Tag: f})
		}
	}
	return out
}

func (r *Record) ModifyLink(src FieldTag, old, new ttgraph.Handle) ttgraph.LinkSideEffect[FieldTag] {
	if r.IsSet[src] {
		filtered := r.Sets[src][:0]
		for _, h := range r.Sets[src] {
			if h != old {
				filtered = append(filtered, h)
			}
		}
		if !new.IsEmpty() {
			filtered = append(filtered, new)
		}
		r.Sets[src] = filtered
	} else if r.Scalars[src] == old {
		r.Scalars[src] = new
	}

	mirror, ok := r.Mirrors[src]
	if !ok {
		return ttgraph.LinkSideEffect[FieldTag]{}
	}
	eff := ttgraph.LinkSideEffect[FieldTag]{LinkMirrors: []FieldTag{mirror}}
	if !new.IsEmpty() {
		eff.Add = new
	}
	if !old.IsEmpty() {
		eff.Remove = old
	}
	return eff
}

func (r *Record) InGroup(name string) bool {
	for _, g := range r.Groups {
		if g == name {
			return true
		}
	}
	return false
}

func (r *Record) BidirectionalLinks() []ttgraph.MirrorGroup[FieldTag] {
	var out []ttgraph.MirrorGroup[FieldTag]
	for f, mirror := range r.Mirrors {
		var targets []ttgraph.Handle
		if r.IsSet[f] {
			targets = r.Sets[f]
		} else if h := r.Scalars[f]; !h.IsEmpty() {
			targets = []ttgraph.Handle{h}
		}
		if len(targets) == 0 {
			continue
		}
		out = append(out, ttgraph.MirrorGroup[FieldTag]{Targets: targets, Mirrors: []FieldTag{mirror}})
	}
	return out
}

func (r *Record) AddLink(lm FieldTag, x ttgraph.Handle) bool {
	if r.IsSet[lm] {
		for _, h := range r.Sets[lm] {
			if h == x {
				return false
			}
		}
		r.Sets[lm] = append(r.Sets[lm], x)
		return true
	}
	if r.Scalars[lm] == x {
		return false
	}
	r.Scalars[lm] = x
	return true
}

func (r *Record) RemoveLink(lm FieldTag, x ttgraph.Handle) bool {
	if r.IsSet[lm] {
		for i, h := range r.Sets[lm] {
			if h == x {
				r.Sets[lm] = append(r.Sets[lm][:i], r.Sets[lm][i+1:]...)
				return true
			}
		}
		return false
	}
	if r.Scalars[lm] != x {
		return false
	}
	r.Scalars[lm] = ttgraph.Empty
	return true
}

func (r *Record) IterLink(lm FieldTag) []ttgraph.Handle {
	if r.IsSet[lm] {
		return r.Sets[lm]
	}
	if h := r.Scalars[lm]; !h.IsEmpty() {
		return []ttgraph.Handle{h}
	}
	return nil
}

func (r *Record) ToSource(lm FieldTag) FieldTag {
	return lm
}
