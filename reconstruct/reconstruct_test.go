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

package reconstruct

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-quicktest/qt"

	"github.com/lintsql/lintsql/patch"
	"github.com/lintsql/lintsql/slicemap"
	"github.com/lintsql/lintsql/token"
)

func identitySlices(s string) []slicemap.FileSlice {
	return []slicemap.FileSlice{{
		Source:    token.Range{Start: 0, Stop: len(s)},
		Templated: token.Range{Start: 0, Stop: len(s)},
		Kind:      slicemap.Literal,
	}}
}

func TestReconstructNoPatchesIsIdentity(t *testing.T) {
	src := "SELECT 1"
	sm := slicemap.NewFile(src, src, identitySlices(src))

	out, err := Reconstruct(nil, sm, logr.Discard())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, src))
}

func TestReconstructSingleLiteralPatch(t *testing.T) {
	src := "SELECT  1"
	sm := slicemap.NewFile(src, src, identitySlices(src))

	patches := []patch.Patch{{Templated: token.Range{Start: 0, Stop: 9}, Replacement: "SELECT 1"}}
	out, err := Reconstruct(patches, sm, logr.Discard())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, "SELECT 1"))
}

func TestReconstructInsertionPatch(t *testing.T) {
	src := "SELECT 1 FROM t"
	sm := slicemap.NewFile(src, src, identitySlices(src))

	// Insert "\n" right before "FROM" (offset 9), zero-width templated range.
	patches := []patch.Patch{{Templated: token.Range{Start: 9, Stop: 9}, Replacement: "\n"}}
	out, err := Reconstruct(patches, sm, logr.Discard())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, "SELECT 1 \nFROM t"))
}

func TestReconstructDedupesIdenticalPatches(t *testing.T) {
	src := "a b a b"

	// Two templated patches map to the very same source range via the
	// slice map below, simulating a templated loop repeating one source
	// site; after dedup only one rewrite should apply.
	slices := []slicemap.FileSlice{
		{Source: token.Range{Start: 0, Stop: 1}, Templated: token.Range{Start: 0, Stop: 1}, Kind: slicemap.Literal},
		{Source: token.Range{Start: 1, Stop: 7}, Templated: token.Range{Start: 1, Stop: 3}, Kind: slicemap.Templated},
		{Source: token.Range{Start: 1, Stop: 7}, Templated: token.Range{Start: 3, Stop: 5}, Kind: slicemap.Templated},
		{Source: token.Range{Start: 1, Stop: 7}, Templated: token.Range{Start: 5, Stop: 7}, Kind: slicemap.Templated},
	}
	tfile := slicemap.NewFile(src, "a XX XX XX", slices)

	patches := []patch.Patch{
		{Templated: token.Range{Start: 1, Stop: 3}, Replacement: " c "},
		{Templated: token.Range{Start: 3, Stop: 5}, Replacement: " c "},
	}
	out, err := Reconstruct(patches, tfile, logr.Discard())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, "a c "))
}

func TestReconstructUntouchablePreservedAroundPatch(t *testing.T) {
	src := "SELECT {{col}} FROM t"
	templated := "SELECT id FROM t"
	slices := []slicemap.FileSlice{
		{Source: token.Range{Start: 0, Stop: 7}, Templated: token.Range{Start: 0, Stop: 7}, Kind: slicemap.Literal},
		{Source: token.Range{Start: 7, Stop: 14}, Templated: token.Range{Start: 7, Stop: 9}, Kind: slicemap.Block},
		{Source: token.Range{Start: 14, Stop: 21}, Templated: token.Range{Start: 9, Stop: 16}, Kind: slicemap.Literal},
	}
	sm := slicemap.NewFile(src, templated, slices)

	// A fix touching the literal tail only; the block slice covering
	// "{{col}}" must come through byte-identical (P2).
	patches := []patch.Patch{{Templated: token.Range{Start: 9, Stop: 16}, Replacement: " from t"}}
	out, err := Reconstruct(patches, sm, logr.Discard())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, "SELECT {{col}} from t"))
}

func TestReconstructSkipsOverlappingPatch(t *testing.T) {
	src := "SELECT 1"
	sm := slicemap.NewFile(src, src, identitySlices(src))

	patches := []patch.Patch{
		{Templated: token.Range{Start: 0, Stop: 6}, Replacement: "INSERT"},
		// Overlaps the first patch's committed range; must be skipped,
		// not applied.
		{Templated: token.Range{Start: 3, Stop: 8}, Replacement: "garbage"},
	}
	out, err := Reconstruct(patches, sm, logr.Discard())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, "INSERT 1"))
}
