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

// Handle is an opaque, copyable reference to a node. The zero value, Empty,
// means "no node". All handles issued by a [Context]'s distributor are
// strictly positive and are never reissued, even after the node they named
// is removed.
type Handle uint64

// Empty is the reserved handle meaning "no node".
const Empty Handle = 0

// IsEmpty reports whether h is the reserved empty handle.
func (h Handle) IsEmpty() bool {
	return h == Empty
}

func (h Handle) String() string {
	if h.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%d", uint64(h))
}
