// Copyright 2024 The lintsql Authors
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

package tree

// Walk traverses the tree rooted at s in depth-first, pre-order: it calls
// before(s) first; if before returns true (or is nil), Walk recurses into
// each child, then calls after(s). Both callbacks may be nil.
//
// This is the same shape as a typed-AST Walk (before/after with a bool
// "descend?" result from before), collapsed to a single node type since
// Segment has no grammar-specific variants to switch on.
func Walk(s *Segment, before func(*Segment) bool, after func(*Segment)) {
	if s == nil {
		return
	}
	if before != nil && !before(s) {
		return
	}
	for _, c := range s.Children {
		Walk(c, before, after)
	}
	if after != nil {
		after(s)
	}
}

// Count returns the number of nodes (s included) in the subtree.
func Count(s *Segment) int {
	n := 0
	Walk(s, func(*Segment) bool { n++; return true }, nil)
	return n
}

// Find returns the first descendant (pre-order, s included) for which
// match returns true, or nil.
func Find(s *Segment, match func(*Segment) bool) *Segment {
	var found *Segment
	Walk(s, func(n *Segment) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	}, nil)
	return found
}

// Parents maps each node in the subtree rooted at s to its parent (s maps
// to nil). Rules commonly need this to reason about context around a
// match; RecursiveCrawl alone loses the ancestry.
func Parents(s *Segment) map[*Segment]*Segment {
	out := map[*Segment]*Segment{s: nil}
	var walk func(*Segment)
	walk = func(n *Segment) {
		for _, c := range n.Children {
			out[c] = n
			walk(c)
		}
	}
	walk(s)
	return out
}
