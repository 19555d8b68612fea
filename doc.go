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

// Package ttgraph is an in-memory, typed, directed multigraph.
//
// Nodes are tagged-union values; an edge is an index-valued field embedded
// directly inside a node. The graph is never mutated in place: every write
// goes through a [Transaction], staged and then applied atomically by
// [Graph.Commit]. The container maintains a reverse-link index so that bulk
// redirection of references ([Transaction.Redirect]) and removal can run in
// time proportional to the number of inbound edges rather than a full scan,
// and can optionally keep a pair of fields on two node kinds pointing at
// each other automatically (a "bidirectional link").
//
// A minimal example:
//
//	type nodeA struct{ Link ttgraph.Handle }
//	type nodeB struct{ Link ttgraph.Handle }
//
//	ctx := ttgraph.NewContext()
//	g := ttgraph.NewGraph[mySrc, myLink, myNode](ctx)
//	txn := ttgraph.NewTransaction[mySrc, myLink, myNode](ctx)
//	ha := txn.Alloc()
//	hb := txn.Alloc()
//	txn.FillBack(ha, nodeA{Link: hb})
//	txn.FillBack(hb, nodeB{Link: ha})
//	g.Commit(txn)
//
// See [Node] for the contract a concrete node kind must implement.
package ttgraph
