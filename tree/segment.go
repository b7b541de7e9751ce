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

// Package tree implements the parse-tree data model: a generic Segment
// node carrying raw text, a position Marker, and an ordered list of
// children. Unlike a richly-typed AST with one Go type per grammar
// production, a Segment is a single generic type tagged by Kind/Name —
// the shape a dialect-agnostic linter needs, since the specific grammar
// of any one SQL dialect is out of scope for this module.
package tree

import (
	"strings"

	"github.com/lintsql/lintsql/token"
)

// Kind tags the broad category a Segment belongs to. Rule and dialect
// code may further discriminate by Name; Kind is the handful of
// structural categories the core itself needs to reason about.
type Kind string

const (
	KindLiteral     Kind = "literal"
	KindMeta        Kind = "meta"
	KindPlaceholder Kind = "placeholder"
	KindComment     Kind = "comment"
	KindUnparsable  Kind = "unparsable"
	KindWhitespace  Kind = "whitespace"
	KindNewline     Kind = "newline"

	// KindFile tags the single root branch produced by a successful
	// parse. Distinct from KindUnparsable so a clean parse never matches
	// IterUnparsables on its own root (spec §4.2/§7: unparsable subtrees
	// are a parse failure, not every branch).
	KindFile Kind = "file"

	// KindBranch tags an ordinary structural branch within a parsed tree
	// (a statement, a bracketed group, ...) that parsed successfully.
	// Only a subtree the parser could not make sense of is KindUnparsable.
	KindBranch Kind = "branch"
)

// Segment is a node in the parse tree. Invariant (spec §3): the
// concatenation of descendant leaves' raw text equals the segment's own
// raw text.
type Segment struct {
	Name     string
	Kind     Kind
	Marker   token.Marker
	Children []*Segment

	rawText string // raw text for leaves (Children == nil); see Raw()
	rawSet  bool
	rawCache string
	rawCached bool
}

// NewLeaf creates a leaf segment (no children) carrying raw.
func NewLeaf(name string, kind Kind, marker token.Marker, raw string) *Segment {
	return &Segment{Name: name, Kind: kind, Marker: marker, rawText: raw, rawSet: true}
}

// NewBranch creates a branch segment whose raw text is the concatenation
// of its children's raw text.
func NewBranch(name string, kind Kind, marker token.Marker, children []*Segment) *Segment {
	return &Segment{Name: name, Kind: kind, Marker: marker, Children: children}
}

// IsLeaf reports whether the segment has no children.
func (s *Segment) IsLeaf() bool { return len(s.Children) == 0 }

// Raw returns the concatenation of all descendant leaves' raw text,
// caching the result the same way a real parse tree memoizes it (leaf
// raw text never changes; a branch's raw is computed once on first use).
func (s *Segment) Raw() string {
	if s.rawSet {
		return s.rawText
	}
	if s.rawCached {
		return s.rawCache
	}
	var b strings.Builder
	for _, c := range s.Children {
		b.WriteString(c.Raw())
	}
	s.rawCache = b.String()
	s.rawCached = true
	return s.rawCache
}

// invalidateRaw drops any cached raw text for s. Callers that mutate
// Children directly (rather than via fixapply, which always builds fresh
// nodes) must call this.
func (s *Segment) invalidateRaw() {
	s.rawCached = false
	s.rawCache = ""
}

// Clone returns a shallow copy of s with its own Children slice (but
// shared child pointers), suitable for a node that will have some of its
// children replaced without mutating the original tree.
func (s *Segment) Clone() *Segment {
	children := make([]*Segment, len(s.Children))
	copy(children, s.Children)
	return &Segment{
		Name:     s.Name,
		Kind:     s.Kind,
		Marker:   s.Marker,
		Children: children,
		rawText:  s.rawText,
		rawSet:   s.rawSet,
	}
}

// RecursiveCrawl returns a pre-order list of all descendants (s excluded
// unless it matches) whose Kind is in kinds. The name mirrors the
// Tree Model operation in spec §4.2; it is eager here (a slice) rather
// than a generator, since typical trees are small enough that laziness
// buys nothing and a slice is simpler to consume from rules.
func (s *Segment) RecursiveCrawl(kinds ...Kind) []*Segment {
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	var out []*Segment
	var walk func(*Segment)
	walk = func(n *Segment) {
		if want[n.Kind] {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(s)
	return out
}

// IterUnparsables returns all subtrees marked KindUnparsable.
func (s *Segment) IterUnparsables() []*Segment {
	return s.RecursiveCrawl(KindUnparsable)
}

// Preview renders up to n runes of the segment's raw text, used for the
// 40-char unparsable-subtree message preview (spec §7).
func (s *Segment) Preview(n int) string {
	raw := s.Raw()
	r := []rune(raw)
	if len(r) <= n {
		return raw
	}
	return string(r[:n])
}
