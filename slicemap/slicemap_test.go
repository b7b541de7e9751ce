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

package slicemap

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/lintsql/lintsql/token"
)

// source: SELECT {{col}} FROM t
// templated (col -> id): SELECT id FROM t
func sample() *File {
	source := "SELECT {{col}} FROM t"
	templated := "SELECT id FROM t"
	slices := []FileSlice{
		{Source: token.Range{0, 7}, Templated: token.Range{0, 7}, Kind: Literal},
		{Source: token.Range{7, 14}, Templated: token.Range{7, 9}, Kind: Templated},
		{Source: token.Range{14, 21}, Templated: token.Range{9, 16}, Kind: Literal},
	}
	return NewFile(source, templated, slices)
}

func TestLiteralRoundTrip(t *testing.T) {
	f := sample()
	r, err := f.TemplatedToSource(token.Range{0, 6})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(r, token.Range{0, 6}))
}

func TestTemplatedSnapsToFullSourceRange(t *testing.T) {
	f := sample()
	r, err := f.TemplatedToSource(token.Range{7, 9})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(r, token.Range{7, 14}))
}

func TestMultiSliceSpan(t *testing.T) {
	f := sample()
	r, err := f.TemplatedToSource(token.Range{5, 11})
	qt.Assert(t, qt.IsNil(err))
	// spans the literal tail of slice 1, all of slice 2, and the head of
	// slice 3: min/max over intersecting slices' source ranges.
	qt.Assert(t, qt.Equals(r, token.Range{0, 21}))
}

func TestOutOfBounds(t *testing.T) {
	f := sample()
	_, err := f.TemplatedToSource(token.Range{10, 100})
	qt.Assert(t, qt.IsNotNil(err))
	var sme *Error
	qt.Assert(t, qt.ErrorAs(err, &sme))
}

func TestUntouchableSlicesMergesAndSorts(t *testing.T) {
	slices := []FileSlice{
		{Source: token.Range{20, 25}, Templated: token.Range{5, 5}, Kind: Templated},
		{Source: token.Range{0, 10}, Templated: token.Range{0, 5}, Kind: Block},
		{Source: token.Range{8, 15}, Templated: token.Range{5, 5}, Kind: Block}, // overlaps previous
	}
	f := NewFile("", "", slices)
	u := f.UntouchableSlices()
	qt.Assert(t, qt.DeepEquals(u, []token.Range{{0, 15}, {20, 25}}))
}
