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

package rules

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/lintsql/lintsql/token"
	"github.com/lintsql/lintsql/tree"
	"github.com/lintsql/lintsql/violation"
)

// renameEverything unconditionally proposes an edit for every leaf it
// sees, literal or not, mimicking a naive rule that doesn't know about
// template boundaries.
type renameEverything struct{}

func (renameEverything) Code() string        { return "L500" }
func (renameEverything) Description() string { return "rename" }
func (renameEverything) Crawl(root *tree.Segment, dialect string, fix bool) (violation.List, tree.EditSet) {
	edits := tree.NewEditSet()
	for _, l := range root.RecursiveCrawl(tree.KindLiteral) {
		if l.IsLeaf() {
			edits.Edit[l] = tree.NewLeaf(l.Name, l.Kind, token.NewBare(), "REPLACED")
		}
	}
	return nil, edits
}

func TestRespectLiteralOnlyDropsNonLiteralEdits(t *testing.T) {
	literalLeaf := tree.NewLeaf("a", tree.KindLiteral, token.NewEnriched(
		token.Range{Start: 0, Stop: 1}, token.Range{Start: 0, Stop: 1}, 1, 1, true, "q.sql",
	), "a")
	templatedLeaf := tree.NewLeaf("b", tree.KindLiteral, token.NewEnriched(
		token.Range{Start: 1, Stop: 2}, token.Range{Start: 1, Stop: 7}, 1, 2, false, "q.sql",
	), "b")
	root := tree.NewBranch("stmt", tree.KindBranch, token.Marker{}, []*tree.Segment{literalLeaf, templatedLeaf})

	wrapped := RespectLiteralOnly(renameEverything{})
	_, edits := wrapped.Crawl(root, "generic", true)

	qt.Assert(t, qt.HasLen(edits.Edit, 1))
	_, literalKept := edits.Edit[literalLeaf]
	qt.Assert(t, qt.IsTrue(literalKept))
	_, templatedKept := edits.Edit[templatedLeaf]
	qt.Assert(t, qt.IsFalse(templatedKept))
}

func TestRespectLiteralOnlyDelegatesCodeAndDescription(t *testing.T) {
	wrapped := RespectLiteralOnly(renameEverything{})
	qt.Assert(t, qt.Equals(wrapped.Code(), "L500"))
	qt.Assert(t, qt.Equals(wrapped.Description(), "rename"))
}
