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
)

func lexString(t *testing.T, source string, context map[string]string) []Token {
	t.Helper()
	tf, vs := Templater{}.Process(source, "q.sql", context)
	qt.Assert(t, qt.HasLen(vs, 0))
	toksAny, lexVs, err := Lexer{}.Lex(tf)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(lexVs, 0))
	return toksAny.([]Token)
}

func TestLexerClassifiesKeywordsAndIdents(t *testing.T) {
	toks := lexString(t, "select a", nil)
	qt.Assert(t, qt.Equals(toks[0].Kind, TokKeyword))
	qt.Assert(t, qt.Equals(toks[0].Text, "select"))
	qt.Assert(t, qt.Equals(toks[1].Kind, TokWhitespace))
	qt.Assert(t, qt.Equals(toks[2].Kind, TokIdent))
	qt.Assert(t, qt.Equals(toks[2].Text, "a"))
}

func TestLexerTokensTileTheTemplatedString(t *testing.T) {
	toks := lexString(t, "select a, 'x', 1.5 -- note\n", nil)
	cursor := 0
	for _, tok := range toks {
		qt.Assert(t, qt.Equals(tok.Templated.Start, cursor))
		cursor = tok.Templated.Stop
	}
}

func TestLexerMarksTemplatedTokensAsNonLiteral(t *testing.T) {
	toks := lexString(t, "select {{ col }}", map[string]string{"col": "x"})
	var found bool
	for _, tok := range toks {
		if tok.Kind == TokIdent && tok.Text == "x" {
			found = true
			qt.Assert(t, qt.IsFalse(tok.IsLiteral))
		}
	}
	qt.Assert(t, qt.IsTrue(found))
}
