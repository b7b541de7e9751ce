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

// Package noqa implements the Ignore Mask & Violation Filter (spec §4.8):
// parsing "-- noqa[: codes]" inline comments into ignore entries, and
// filtering violation lists by rule code/type/fixability/ignore mask.
package noqa

import (
	"strings"

	"github.com/lintsql/lintsql/violation"
)

// Entry is one parsed ignore directive: line_no plus either every rule
// code (Codes == nil, the ALL sentinel matching violation.IgnoreIfIn)
// or an explicit set.
type Entry struct {
	Line  int
	Codes map[string]bool // nil means ALL
}

// ParseComment parses the trimmed body of a single inline SQL comment
// (without the leading comment marker) on the given line. It returns
// ok == false when the comment is not a noqa directive at all. When the
// comment starts with "noqa" but is malformed (anything after "noqa"
// that isn't a ": codes" clause), it returns a parse violation instead of an
// entry (spec §4.8, §7 "Malformed noqa").
func ParseComment(line int, body string) (Entry, violation.Violation, bool, bool) {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "noqa") {
		return Entry{}, violation.Violation{}, false, false
	}
	rest := strings.TrimSpace(trimmed[len("noqa"):])
	if rest == "" {
		return Entry{Line: line, Codes: nil}, violation.Violation{}, true, false
	}
	if !strings.HasPrefix(rest, ":") {
		return Entry{}, violation.New("PRS", line, 1, false, "malformed noqa comment: %q", body), false, true
	}
	codesPart := strings.TrimSpace(rest[1:])
	codes := map[string]bool{}
	for _, c := range strings.Split(codesPart, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			codes[c] = true
		}
	}
	return Entry{Line: line, Codes: codes}, violation.Violation{}, true, false
}

// Mask indexes Entry values by line for fast lookup during filtering.
type Mask struct {
	byLine map[int][]Entry
}

// NewMask builds a Mask from parsed entries.
func NewMask(entries []Entry) Mask {
	m := Mask{byLine: make(map[int][]Entry, len(entries))}
	for _, e := range entries {
		m.byLine[e.Line] = append(m.byLine[e.Line], e)
	}
	return m
}

// Suppresses reports whether v is ignored by any entry on its line.
func (m Mask) Suppresses(v violation.Violation) bool {
	for _, e := range m.byLine[v.Line] {
		if v.IgnoreIfIn(e.Codes) {
			return true
		}
	}
	return false
}

// Apply drops every violation in vs that the mask suppresses.
func (m Mask) Apply(vs violation.List) violation.List {
	return vs.Filter(func(v violation.Violation) bool { return !m.Suppresses(v) })
}

// Filter is the general violation-list filter (spec §4.8): accepts a set
// of rule codes, a set of kinds (matched against the leading letter(s) of
// a rule code, e.g. "L" in "L001" — this module's demo rules use a flat
// code space so "type" and "code prefix" coincide), a fixable tri-state
// (nil = don't filter on it), and whether to additionally apply an
// ignore Mask.
type Filter struct {
	Codes      map[string]bool // nil = no restriction
	Types      map[string]bool // nil = no restriction
	Fixable    *bool           // nil = don't filter
	IgnoreMask *Mask           // nil = don't apply
}

// Apply runs the configured filter over vs.
func (f Filter) Apply(vs violation.List) violation.List {
	out := vs.Filter(func(v violation.Violation) bool {
		if f.Codes != nil && !f.Codes[v.Code] {
			return false
		}
		if f.Types != nil && !f.Types[codeType(v.Code)] {
			return false
		}
		if f.Fixable != nil && v.Fixable != *f.Fixable {
			return false
		}
		return true
	})
	if f.IgnoreMask != nil {
		out = f.IgnoreMask.Apply(out)
	}
	return out
}

// codeType extracts the leading run of letters from a rule code, e.g.
// "L001" -> "L".
func codeType(code string) string {
	i := 0
	for i < len(code) && (code[i] < '0' || code[i] > '9') {
		i++
	}
	return code[:i]
}
