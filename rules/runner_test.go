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

// doubleSpaceRule flags (and, if fix, rewrites) any leaf containing "  ".
type doubleSpaceRule struct{}

func (doubleSpaceRule) Code() string        { return "L001" }
func (doubleSpaceRule) Description() string { return "no double spaces" }
func (doubleSpaceRule) Crawl(root *tree.Segment, dialect string, fix bool) (violation.List, tree.EditSet) {
	var vs violation.List
	edits := tree.NewEditSet()
	for _, leaf := range root.RecursiveCrawl(tree.KindLiteral) {
		if leaf.IsLeaf() && containsDoubleSpace(leaf.Raw()) {
			vs = append(vs, violation.New("", leaf.Marker.Line, leaf.Marker.Column, true, "multiple spaces"))
			if fix {
				edits.Edit[leaf] = tree.NewLeaf(leaf.Name, leaf.Kind, leaf.Marker, collapseSpaces(leaf.Raw()))
			}
		}
	}
	return vs, edits
}

func containsDoubleSpace(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == ' ' && s[i+1] == ' ' {
			return true
		}
	}
	return false
}

func collapseSpaces(s string) string {
	out := make([]byte, 0, len(s))
	prevSpace := false
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		out = append(out, s[i])
	}
	return string(out)
}

func TestRunnerTagsCode(t *testing.T) {
	f := token.NewFile("q.sql", 0)
	leaf := tree.NewLeaf("x", tree.KindLiteral, token.Marker{Kind: token.Enriched}, "SELECT  1")
	root := tree.NewBranch("stmt", tree.KindLiteral, token.Marker{}, []*tree.Segment{leaf})
	_ = f

	runner := Runner{Dialect: "generic", Fix: true}
	vs, edits := runner.Run(doubleSpaceRule{}, root)

	qt.Assert(t, qt.HasLen(vs, 1))
	qt.Assert(t, qt.Equals(vs[0].Code, "L001"))
	qt.Assert(t, qt.IsFalse(edits.IsEmpty()))
}

func TestRunAllAggregatesAcrossRules(t *testing.T) {
	leaf := tree.NewLeaf("x", tree.KindLiteral, token.Marker{}, "SELECT   1")
	root := tree.NewBranch("stmt", tree.KindLiteral, token.Marker{}, []*tree.Segment{leaf})

	vs, edits := RunAll([]Rule{doubleSpaceRule{}}, root, "generic", true)
	qt.Assert(t, qt.HasLen(vs, 1))
	qt.Assert(t, qt.HasLen(edits, 1))
	qt.Assert(t, qt.Equals(edits[0].Rule.Code(), "L001"))
}
