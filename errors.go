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

import "fmt"

// Error reports a violated invariant or a programmer-error precondition.
// Every condition that produces an Error is fatal: the caller is expected
// to let the panic propagate rather than recover and continue, since the
// graph may be left in a state that no longer satisfies its invariants.
type Error struct {
	// Op names the operation that detected the problem, e.g. "Graph.Commit"
	// or "Graph.CheckBacklinks".
	Op string
	// Msg describes what went wrong.
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ttgraph: %s: %s", e.Op, e.Msg)
}

func fatalf(op, format string, args ...any) {
	panic(&Error{Op: op, Msg: fmt.Sprintf(format, args...)})
}
