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
	"strings"

	"github.com/lintsql/lintsql/slicemap"
	"github.com/lintsql/lintsql/token"
	"github.com/lintsql/lintsql/violation"
)

// Lexer scans a templated file into []Token: identifiers, the fixed
// keyword set, numbers, single-quoted strings, "--" line comments,
// whitespace/newline trivia, and single-character operators/punctuation.
// Small enough to read in one sitting, in the spirit of the teacher's own
// hand-rolled scanner rather than a generated one.
type Lexer struct{}

// Lex implements linter.Lexer.
func (Lexer) Lex(tf *slicemap.File) (any, violation.List, error) {
	s := tf.Templated
	var toks []Token

	line, col, i := 1, 1, 0
	advance := func(n int) {
		for k := 0; k < n; k++ {
			if s[i+k] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
	}

	for i < len(s) {
		start, startLine, startCol := i, line, col
		ch := s[i]

		switch {
		case ch == '\n':
			toks = append(toks, newToken(TokNewline, s, start, i+1, startLine, startCol, tf))
			advance(1)
			i++
		case ch == ' ' || ch == '\t' || ch == '\r':
			j := i
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\r') {
				j++
			}
			toks = append(toks, newToken(TokWhitespace, s, start, j, startLine, startCol, tf))
			advance(j - i)
			i = j
		case strings.HasPrefix(s[i:], "--"):
			j := i
			for j < len(s) && s[j] != '\n' {
				j++
			}
			toks = append(toks, newToken(TokComment, s, start, j, startLine, startCol, tf))
			advance(j - i)
			i = j
		case ch == '\'':
			j := i + 1
			for j < len(s) && s[j] != '\'' {
				j++
			}
			if j < len(s) {
				j++
			}
			toks = append(toks, newToken(TokString, s, start, j, startLine, startCol, tf))
			advance(j - i)
			i = j
		case isDigit(ch):
			j := i
			for j < len(s) && (isDigit(s[j]) || s[j] == '.') {
				j++
			}
			toks = append(toks, newToken(TokNumber, s, start, j, startLine, startCol, tf))
			advance(j - i)
			i = j
		case isIdentStart(ch):
			j := i
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			kind := TokIdent
			if keywords[strings.ToUpper(s[start:j])] {
				kind = TokKeyword
			}
			toks = append(toks, newToken(kind, s, start, j, startLine, startCol, tf))
			advance(j - i)
			i = j
		default:
			toks = append(toks, newToken(TokOperator, s, start, i+1, startLine, startCol, tf))
			advance(1)
			i++
		}
	}

	return toks, nil, nil
}

func isDigit(ch byte) bool      { return ch >= '0' && ch <= '9' }
func isIdentStart(ch byte) bool { return ch == '_' || (ch|0x20 >= 'a' && ch|0x20 <= 'z') }
func isIdentPart(ch byte) bool  { return isIdentStart(ch) || isDigit(ch) }

// newToken builds a Token for templated range [start, stop), lifting its
// source coordinates through tf and determining whether it lies wholly
// within literal source (untouched by templating).
func newToken(kind TokenKind, s string, start, stop, line, col int, tf *slicemap.File) Token {
	tr := token.Range{Start: start, Stop: stop}
	src, err := tf.TemplatedToSource(tr)
	if err != nil {
		src = token.Range{}
	}
	return Token{
		Kind:      kind,
		Text:      s[start:stop],
		Templated: tr,
		Source:    src,
		Line:      line,
		Column:    col,
		IsLiteral: isLiteralRange(tf, tr),
	}
}

// isLiteralRange reports whether every file slice overlapping r is a
// Literal slice, i.e. r's templated text is a verbatim copy of source.
func isLiteralRange(tf *slicemap.File, r token.Range) bool {
	for _, sl := range tf.Slices() {
		touches := sl.Templated.Overlaps(r)
		if r.Empty() {
			touches = sl.Templated.Start == r.Start || sl.Templated.Stop == r.Start || sl.Templated.Contains(r.Start)
		}
		if touches && sl.Kind != slicemap.Literal {
			return false
		}
	}
	return true
}
