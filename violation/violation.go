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

// Package violation defines the structured diagnostic record produced by
// rules (and by the templating/lexing/parsing/noqa error kinds of §7) plus
// the sortable list and filtering operations spec §4.8 and §6 describe.
//
// The shape follows the teacher's own cue/errors package — a Position,
// a Msg() accessor for deferred/localizable formatting, and a List that
// knows how to flatten and sort itself — adapted from a generic Error
// interface to the single concrete Violation record this domain needs.
package violation

import (
	"fmt"

	"github.com/lintsql/lintsql/token"
)

// Violation is a structured record emitted by a rule or by one of the
// non-fatal error kinds in spec §7 (malformed noqa, unparsable subtree).
//
// Line/Col are plain ints rather than a token.Pos: a violation only ever
// needs to report where it is, never to compare identity with a segment's
// marker, so spec §3's "line number, line position" is taken literally
// instead of threading a *token.File through every rule.
type Violation struct {
	Code    string // rule code, e.g. "L001"
	Line    int
	Col     int
	Fixable bool
	Ignore  bool
	format  string
	args    []any
}

// New builds a Violation for rule code at (line, col).
func New(code string, line, col int, fixable bool, format string, args ...any) Violation {
	return Violation{Code: code, Line: line, Col: col, Fixable: fixable, format: format, args: args}
}

// NewAt builds a Violation positioned at pos.
func NewAt(code string, pos token.Pos, fixable bool, format string, args ...any) Violation {
	p := pos.Position()
	return New(code, p.Line, p.Column, fixable, format, args...)
}

// Msg returns the unformatted message and its arguments, mirroring the
// teacher's deferred-formatting convention (useful for localization or
// for machine-readable output that wants format+args separately).
func (v Violation) Msg() (string, []any) { return v.format, v.args }

// Error renders the violation message (without position) for human
// consumption; Violation satisfies the error interface so it can be
// returned from fatal-error paths (templating, lexing) as well as
// collected as a diagnostic.
func (v Violation) Error() string {
	if len(v.args) == 0 {
		return v.format
	}
	return fmt.Sprintf(v.format, v.args...)
}

// LineNo returns the 1-based line number.
func (v Violation) LineNo() int { return v.Line }

// LinePos returns the 1-based column.
func (v Violation) LinePos() int { return v.Col }

// CheckTuple projects the violation to (code, line, pos) for the
// comparisons spec §3 and §8/P7 call for.
type CheckTuple struct {
	Code string
	Line int
	Pos  int
}

func (v Violation) CheckTuple() CheckTuple {
	return CheckTuple{Code: v.Code, Line: v.LineNo(), Pos: v.LinePos()}
}

// InfoDict is the serialization shape named in spec §6 ("Result records").
type InfoDict struct {
	Code     string `json:"code"`
	LineNo   int    `json:"line_no"`
	LinePos  int    `json:"line_pos"`
	Message  string `json:"description"`
	Fixable  bool   `json:"fixable"`
}

func (v Violation) GetInfoDict() InfoDict {
	return InfoDict{
		Code:    v.Code,
		LineNo:  v.LineNo(),
		LinePos: v.LinePos(),
		Message: v.Error(),
		Fixable: v.Fixable,
	}
}

// IgnoreIfIn reports whether codes (spec's "ALL" sentinel is the nil set)
// should suppress this violation: nil means "all codes", otherwise the
// violation's code must be a member.
func (v Violation) IgnoreIfIn(codes map[string]bool) bool {
	if codes == nil {
		return true
	}
	return codes[v.Code]
}
