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

package violation

import "sort"

// List is a list of Violations with the sorting and filtering behavior
// spec §8/P7 ("check_tuples are returned in (line_no, line_pos, code)
// order") and §4.8 require.
type List []Violation

// SortByPosition orders the list by (line_no, line_pos, code), the order
// required of check_tuples (P7) and of per-file Result records (§6).
func (l List) SortByPosition() {
	sort.SliceStable(l, func(i, j int) bool {
		a, b := l[i].CheckTuple(), l[j].CheckTuple()
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Pos != b.Pos {
			return a.Pos < b.Pos
		}
		return a.Code < b.Code
	})
}

// CheckTuples projects the list to its (code, line, pos) tuples, in the
// list's current order — call SortByPosition first if ordering matters.
func (l List) CheckTuples() []CheckTuple {
	out := make([]CheckTuple, len(l))
	for i, v := range l {
		out[i] = v.CheckTuple()
	}
	return out
}

// Filter keeps only violations for which keep returns true.
func (l List) Filter(keep func(Violation) bool) List {
	out := make(List, 0, len(l))
	for _, v := range l {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
