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
	"fmt"

	"github.com/lintsql/lintsql/token"
	"github.com/lintsql/lintsql/tree"
	"github.com/lintsql/lintsql/violation"
)

// Parser nests parenthesized groups into "bracketed" branches and leaves
// every other token as a flat leaf under a single "file" root — enough
// tree structure to exercise fixes/patches that target a subtree rather
// than only top-level leaves, without committing to any SQL grammar. The
// "(" and ")" tokens themselves are kept as leaf children of the branch
// they delimit, so a branch's children always tile its templated span
// exactly (the Patch Deriver's tiling invariant).
type Parser struct{ Filename string }

// Parse implements linter.Parser. recurse is accepted for contract
// symmetry but unused: this grammar is small enough that there is no
// unparsable-subtree boundary to stop descending at.
func (p Parser) Parse(tokensAny any, recurse bool) (*tree.Segment, violation.List, error) {
	toks, ok := tokensAny.([]Token)
	if !ok {
		return nil, nil, fmt.Errorf("demosql: parser requires []Token, got %T", tokensAny)
	}

	var vs violation.List
	children, _, _ := p.parseUntil(toks, 0, "", &vs)
	root := token.NewEnriched(token.Range{}, token.Range{}, 1, 1, true, p.Filename)
	if len(toks) > 0 {
		root = p.spanMarker(toks)
	}
	return tree.NewBranch("file", tree.KindFile, root, children), vs, nil
}

// parseUntil consumes toks[i:], stopping when it sees an operator token
// equal to closing (consumed into the caller's group) or when tokens run
// out (closed == false, an "unclosed" violation already recorded).
func (p Parser) parseUntil(toks []Token, i int, closing string, vs *violation.List) (children []*tree.Segment, next int, closed bool) {
	for i < len(toks) {
		t := toks[i]

		if closing != "" && t.Kind == TokOperator && t.Text == closing {
			return children, i + 1, true
		}

		if t.Kind == TokOperator && t.Text == "(" {
			inner, nxt, wasClosed := p.parseUntil(toks, i+1, ")", vs)
			group := append([]*tree.Segment{p.leaf(t)}, inner...)
			last := t
			if wasClosed {
				last = toks[nxt-1]
				group = append(group, p.leaf(last))
			} else if nxt > i+1 {
				last = toks[nxt-1]
			}
			children = append(children, tree.NewBranch("bracketed", tree.KindBranch, p.spanMarker(toks[i:nxt]), group))
			i = nxt
			continue
		}

		if t.Kind == TokOperator && t.Text == ")" {
			*vs = append(*vs, violation.New("PRS", t.Line, t.Column, false, "unmatched %q", ")"))
			i++
			continue
		}

		children = append(children, p.leaf(t))
		i++
	}
	if closing != "" {
		*vs = append(*vs, violation.New("PRS", 0, 0, false, "unclosed %q", closing))
	}
	return children, i, false
}

func (p Parser) leaf(t Token) *tree.Segment {
	return tree.NewLeaf(string(t.Kind), treeKind(t.Kind), p.tokenMarker(t), t.Text)
}

func (p Parser) tokenMarker(t Token) token.Marker {
	return token.NewEnriched(t.Templated, t.Source, t.Line, t.Column, t.IsLiteral, p.Filename)
}

// spanMarker builds the Enriched marker for a branch covering toks, its
// first through last token. The branch is literal only when every token
// in it is literal and its templated and source spans have equal length
// (so a placeholder that expands to nothing inside it also counts).
func (p Parser) spanMarker(toks []Token) token.Marker {
	first, last := toks[0], toks[len(toks)-1]
	templated := token.Range{Start: first.Templated.Start, Stop: last.Templated.Stop}
	source := token.Range{Start: first.Source.Start, Stop: last.Source.Stop}
	literal := templated.Len() == source.Len()
	for _, t := range toks {
		literal = literal && t.IsLiteral
	}
	return token.NewEnriched(templated, source, first.Line, first.Column, literal, p.Filename)
}

func treeKind(k TokenKind) tree.Kind {
	switch k {
	case TokWhitespace:
		return tree.KindWhitespace
	case TokNewline:
		return tree.KindNewline
	case TokComment:
		return tree.KindComment
	default:
		return tree.KindLiteral
	}
}
