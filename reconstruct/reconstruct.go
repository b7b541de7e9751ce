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

// Package reconstruct implements the Source Reconstructor (spec §4.7):
// lift templated-space patches into source space, deduplicate, and render
// a new source string that preserves untouchable template regions and
// every unpatched byte exactly.
package reconstruct

import (
	"strings"

	"github.com/go-logr/logr"
	"github.com/mpvl/unique"

	"github.com/lintsql/lintsql/patch"
	"github.com/lintsql/lintsql/slicemap"
	"github.com/lintsql/lintsql/token"
)

// sourcePatch is a lifted (source_range, replacement_text) patch.
type sourcePatch struct {
	Range       token.Range
	Replacement string
}

// sourcePatchList implements unique.Interface so Sort both orders and
// collapses exact (range, text) duplicates in a single pass — these can
// arise when a templated loop maps several templated sites to one source
// site (spec §4.7 step 2).
type sourcePatchList []sourcePatch

func (l sourcePatchList) Len() int { return len(l) }
func (l sourcePatchList) Less(i, j int) bool {
	if l[i].Range.Start != l[j].Range.Start {
		return l[i].Range.Start < l[j].Range.Start
	}
	if l[i].Range.Stop != l[j].Range.Stop {
		return l[i].Range.Stop < l[j].Range.Stop
	}
	return l[i].Replacement < l[j].Replacement
}
func (l sourcePatchList) Swap(i, j int)    { l[i], l[j] = l[j], l[i] }
func (l *sourcePatchList) Truncate(n int)  { *l = (*l)[:n] }

type slotKind int

const (
	slotUnchanged slotKind = iota
	slotPatch
	slotUntouchable
)

type slot struct {
	Range       token.Range
	Kind        slotKind
	Replacement string
}

// Reconstruct lifts patches to source space via sm, dedups them, builds
// the slice buffer (spec §4.7 steps 1-3), and renders the final source
// string (step 4).
func Reconstruct(patches []patch.Patch, sm *slicemap.File, log logr.Logger) (string, error) {
	lifted := make(sourcePatchList, 0, len(patches))
	for _, p := range patches {
		r, err := sm.TemplatedToSource(p.Templated)
		if err != nil {
			return "", err
		}
		lifted = append(lifted, sourcePatch{Range: r, Replacement: p.Replacement})
	}
	unique.Sort(&lifted)

	untouchable := sm.UntouchableSlices()
	source := sm.Source

	var slots []slot
	sourceIdx := 0
	ui := 0

	appendUnchanged := func(stop int) {
		if stop > sourceIdx {
			slots = append(slots, slot{Range: token.Range{Start: sourceIdx, Stop: stop}, Kind: slotUnchanged})
		}
	}

	for _, p := range lifted {
		for ui < len(untouchable) && untouchable[ui].Start < p.Range.Start {
			u := untouchable[ui]
			ui++
			if u.Stop <= sourceIdx {
				continue
			}
			if u.Start > sourceIdx {
				appendUnchanged(u.Start)
			}
			slots = append(slots, slot{Range: u, Kind: slotUntouchable})
			sourceIdx = u.Stop
		}

		if p.Range.Start > sourceIdx {
			appendUnchanged(p.Range.Start)
			sourceIdx = p.Range.Start
		}
		if p.Range.Start < sourceIdx {
			log.V(1).Info("skipping patch: overlaps an earlier decision", "range", p.Range)
			continue
		}
		slots = append(slots, slot{Range: p.Range, Kind: slotPatch, Replacement: p.Replacement})
		sourceIdx = p.Range.Stop
	}

	if sourceIdx < len(source) {
		appendUnchanged(len(source))
		sourceIdx = len(source)
	}

	var b strings.Builder
	for _, s := range slots {
		if s.Kind == slotPatch {
			b.WriteString(s.Replacement)
		} else {
			b.WriteString(source[s.Range.Start:s.Range.Stop])
		}
	}
	return b.String(), nil
}
