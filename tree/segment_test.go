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

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/lintsql/lintsql/token"
)

func leaf(name, raw string) *Segment {
	return NewLeaf(name, KindLiteral, token.Marker{}, raw)
}

func TestSegmentRaw(t *testing.T) {
	a := leaf("a", "SELECT")
	ws := leaf("ws", " ")
	b := leaf("b", "1")
	root := NewBranch("stmt", KindLiteral, token.Marker{}, []*Segment{a, ws, b})

	qt.Assert(t, qt.Equals(root.Raw(), "SELECT 1"))
	// cached: a second call must return the same value
	qt.Assert(t, qt.Equals(root.Raw(), "SELECT 1"))
}

func TestRecursiveCrawl(t *testing.T) {
	c1 := &Segment{Name: "c1", Kind: KindComment, rawText: "-- x", rawSet: true}
	lit := leaf("lit", "1")
	root := NewBranch("stmt", KindLiteral, token.Marker{}, []*Segment{c1, lit})

	comments := root.RecursiveCrawl(KindComment)
	qt.Assert(t, qt.HasLen(comments, 1))
	qt.Assert(t, qt.Equals(comments[0], c1))
}

func TestIterUnparsables(t *testing.T) {
	bad := &Segment{Name: "bad", Kind: KindUnparsable, rawText: "garbage here", rawSet: true}
	root := NewBranch("stmt", KindLiteral, token.Marker{}, []*Segment{bad})
	up := root.IterUnparsables()
	qt.Assert(t, qt.HasLen(up, 1))
	qt.Assert(t, qt.Equals(up[0].Preview(7), "garbage"))
}

func TestWalkOrder(t *testing.T) {
	a := leaf("a", "a")
	b := leaf("b", "b")
	root := NewBranch("root", KindLiteral, token.Marker{}, []*Segment{a, b})

	var order []string
	Walk(root, func(s *Segment) bool {
		order = append(order, s.Name)
		return true
	}, nil)
	qt.Assert(t, qt.DeepEquals(order, []string{"root", "a", "b"}))
}

func TestEditSetEqual(t *testing.T) {
	a := leaf("a", "a")
	b := leaf("b", "b")
	c := leaf("c", "c")

	e1 := NewEditSet()
	e1.Delete = []*Segment{a}
	e1.Edit[b] = c

	e2 := NewEditSet()
	e2.Delete = []*Segment{a}
	e2.Edit[b] = c

	qt.Assert(t, qt.IsTrue(e1.Equal(e2)))

	e3 := NewEditSet()
	e3.Delete = []*Segment{b}
	qt.Assert(t, qt.IsFalse(e1.Equal(e3)))
}

// TestEditSetEqualReplacementContentNotIdentity covers the case a rule
// hits on every run: it allocates a brand new replacement segment each
// time it Crawls, even when proposing the identical fix again.
func TestEditSetEqualReplacementContentNotIdentity(t *testing.T) {
	b := leaf("b", "b")

	e1 := NewEditSet()
	e1.Edit[b] = leaf("c", "SELECT")

	e2 := NewEditSet()
	e2.Edit[b] = leaf("c", "SELECT")

	qt.Assert(t, qt.IsTrue(e1.Equal(e2)))

	e3 := NewEditSet()
	e3.Edit[b] = leaf("c", "INSERT")
	qt.Assert(t, qt.IsFalse(e1.Equal(e3)))
}
