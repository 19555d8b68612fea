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
	"fmt"
	"strings"

	"github.com/kr/pretty"
)

// Dump renders every node in the graph, in ascending handle order, using
// kr/pretty's Go-syntax formatter. It is a debugging aid, not a
// serialization format: no wire format belongs to the core, and this
// output is not meant to be parsed back in.
func (g *Graph[Src, Link, N]) Dump() string {
	var b strings.Builder
	for _, p := range g.Iter() {
		fmt.Fprintf(&b, "%s: %# v\n", p.Handle, pretty.Formatter(p.Node))
	}
	return b.String()
}

// DumpBackLinks renders the reverse-link index the same way, keyed by
// target handle.
func (g *Graph[Src, Link, N]) DumpBackLinks() string {
	var b strings.Builder
	for _, h := range g.nodes.Keys() {
		fmt.Fprintf(&b, "%s <- %# v\n", h, pretty.Formatter(g.backLinks[h]))
	}
	return b.String()
}
