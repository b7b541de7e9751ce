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

package demosql

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/lintsql/lintsql/tree"
)

func parseString(t *testing.T, source string) *tree.Segment {
	t.Helper()
	toks := lexString(t, source, nil)
	root, vs, err := Parser{Filename: "q.sql"}.Parse(toks, true)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(vs, 0))
	return root
}

func TestParserRawRoundTripsSource(t *testing.T) {
	const src = "select a, (b + 1) from t"
	root := parseString(t, src)
	qt.Assert(t, qt.Equals(root.Raw(), src))
}

func findByName(s *tree.Segment, name string) []*tree.Segment {
	var out []*tree.Segment
	if s.Name == name {
		out = append(out, s)
	}
	for _, c := range s.Children {
		out = append(out, findByName(c, name)...)
	}
	return out
}

func TestParserNestsParenthesizedGroup(t *testing.T) {
	root := parseString(t, "select (a)")
	brackets := findByName(root, "bracketed")
	qt.Assert(t, qt.HasLen(brackets, 1))
	qt.Assert(t, qt.Equals(brackets[0].Raw(), "(a)"))
}

func TestParserReportsUnclosedParen(t *testing.T) {
	toks := lexString(t, "select (a", nil)
	_, vs, err := Parser{Filename: "q.sql"}.Parse(toks, true)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(vs, 1))
	qt.Assert(t, qt.Equals(vs[0].Code, "PRS"))
}

func TestParserReportsUnmatchedCloseParen(t *testing.T) {
	toks := lexString(t, "select a)", nil)
	_, vs, err := Parser{Filename: "q.sql"}.Parse(toks, true)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(vs, 1))
	qt.Assert(t, qt.Equals(vs[0].Code, "PRS"))
}
