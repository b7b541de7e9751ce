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

// Package fixapply implements the Fix Applier (spec §4.3): given a tree
// and an Edit Set, produce a new tree and any edits whose anchors were
// not found.
//
// The shape mirrors the teacher's own astutil.Apply cursor-based rewrite
// (see tools/fix, which calls astutil.Apply to rewrite a CUE AST in
// place): Apply here never mutates the input tree — it always builds
// fresh nodes top-down, sharing subtrees that saw no change, so that a
// stale anchor from a prior tree version is simply "not found" rather
// than silently mutating the wrong tree.
package fixapply

import (
	"github.com/lintsql/lintsql/tree"
)

// Residual is an edit whose anchor could not be found anywhere in the
// tree being applied — spec §4.3: "Unresolved anchors are returned as
// residual edits; the Fix Loop logs and discards them."
type Residual struct {
	Kind   string // "delete", "edit", or "create"
	Anchor *tree.Segment
	Value  *tree.Segment // nil for delete
}

// Apply applies edits to root and returns a new tree plus any residual
// (unresolved) edits. root is never mutated.
func Apply(root *tree.Segment, edits tree.EditSet) (*tree.Segment, []Residual) {
	a := &applier{edits: edits, found: map[*tree.Segment]bool{}}
	newRoot := a.apply(root)
	return newRoot, a.residuals()
}

type applier struct {
	edits tree.EditSet
	found map[*tree.Segment]bool // anchors (delete/edit/create) that were seen
}

// apply rewrites n and its subtree per the precedence rule in spec §4.3:
// "when a single anchor appears in multiple edit kinds, precedence is
// delete > edit > create." That precedence is about which edit wins for
// a given *child* anchor during the parent's rewrite; create additionally
// inserts a sibling before the anchor regardless of which of delete/edit
// won for it.
func (a *applier) apply(n *tree.Segment) *tree.Segment {
	if len(n.Children) == 0 {
		// Leaves cannot contain further anchors among their own children,
		// but a leaf can itself be an edit/delete/create anchor — that is
		// handled by the parent's rewriteChildren call.
		return n
	}

	children, changed := a.rewriteChildren(n.Children)
	if !changed {
		return n
	}
	clone := n.Clone()
	clone.Children = children
	return clone
}

func (a *applier) rewriteChildren(children []*tree.Segment) ([]*tree.Segment, bool) {
	out := make([]*tree.Segment, 0, len(children))
	changed := false

	for _, c := range children {
		if ins, ok := a.edits.Create[c]; ok {
			a.found[c] = true
			out = append(out, ins)
			changed = true
		}

		switch {
		case a.isDeleted(c):
			a.found[c] = true
			changed = true
			continue
		case a.edits.Edit[c] != nil:
			a.found[c] = true
			out = append(out, a.edits.Edit[c])
			changed = true
			continue
		default:
			rewritten := a.apply(c)
			if rewritten != c {
				changed = true
			}
			out = append(out, rewritten)
		}
	}
	return out, changed
}

func (a *applier) isDeleted(c *tree.Segment) bool {
	for _, d := range a.edits.Delete {
		if d == c {
			return true
		}
	}
	return false
}

func (a *applier) residuals() []Residual {
	var out []Residual
	for _, d := range a.edits.Delete {
		if !a.found[d] {
			out = append(out, Residual{Kind: "delete", Anchor: d})
		}
	}
	for anchor, repl := range a.edits.Edit {
		if !a.found[anchor] {
			out = append(out, Residual{Kind: "edit", Anchor: anchor, Value: repl})
		}
	}
	for anchor, ins := range a.edits.Create {
		if !a.found[anchor] {
			out = append(out, Residual{Kind: "create", Anchor: anchor, Value: ins})
		}
	}
	return out
}
