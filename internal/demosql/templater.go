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
	"regexp"
	"strings"

	"github.com/lintsql/lintsql/slicemap"
	"github.com/lintsql/lintsql/token"
	"github.com/lintsql/lintsql/violation"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Templater expands "{{ name }}" placeholders against a context map,
// Jinja-style value substitution with none of Jinja's control-flow
// syntax — enough to exercise the Slice Map's Literal/Templated slice
// kinds without defining a real templating language (a Non-goal).
type Templater struct{}

// Process implements linter.Templater.
func (Templater) Process(source, filename string, context map[string]string) (*slicemap.File, violation.List) {
	var vs violation.List
	var slices []slicemap.FileSlice
	var out strings.Builder

	pos := 0
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(source, -1) {
		start, stop := m[0], m[1]
		name := source[m[2]:m[3]]

		if start > pos {
			lit := source[pos:start]
			slices = append(slices, slicemap.FileSlice{
				Source:    token.Range{Start: pos, Stop: start},
				Templated: token.Range{Start: out.Len(), Stop: out.Len() + len(lit)},
				Kind:      slicemap.Literal,
			})
			out.WriteString(lit)
		}

		value, ok := context[name]
		if !ok {
			line, col := lineCol(source, start)
			vs = append(vs, violation.New("TMP", line, col, false, "undefined template variable %q", name))
			slices = append(slices, slicemap.FileSlice{
				Source:    token.Range{Start: start, Stop: stop},
				Templated: token.Range{Start: out.Len(), Stop: out.Len()},
				Kind:      slicemap.Templated,
			})
			pos = stop
			continue
		}

		vstart := out.Len()
		out.WriteString(value)
		slices = append(slices, slicemap.FileSlice{
			Source:    token.Range{Start: start, Stop: stop},
			Templated: token.Range{Start: vstart, Stop: out.Len()},
			Kind:      slicemap.Templated,
		})
		pos = stop
	}

	if pos < len(source) {
		slices = append(slices, slicemap.FileSlice{
			Source:    token.Range{Start: pos, Stop: len(source)},
			Templated: token.Range{Start: out.Len(), Stop: out.Len() + len(source) - pos},
			Kind:      slicemap.Literal,
		})
		out.WriteString(source[pos:])
	}

	return slicemap.NewFile(source, out.String(), slices), vs
}

// lineCol returns the 1-based (line, column) of offset within s.
func lineCol(s string, offset int) (int, int) {
	line, col := 1, 1
	for i := 0; i < offset && i < len(s); i++ {
		if s[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
