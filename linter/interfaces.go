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

// Package linter wires the Slice Map, Rule Runner, Fix Loop, Patch
// Deriver, Source Reconstructor, and Ignore Mask into one per-file and
// per-batch pipeline (spec §2's data flow), and defines the Templater,
// Lexer, and Parser contracts (spec §6) those external collaborators
// implement.
package linter

import (
	"github.com/lintsql/lintsql/slicemap"
	"github.com/lintsql/lintsql/tree"
	"github.com/lintsql/lintsql/violation"
)

// Templater turns raw source into a templated string plus the slice map
// connecting the two coordinate spaces (spec §6). A nil *slicemap.File
// is catastrophic — the caller aborts the rest of the pipeline for that
// file, reporting only the returned violations.
type Templater interface {
	Process(source, filename string, context map[string]string) (*slicemap.File, violation.List)
}

// Lexer turns a templated file into an opaque token stream a matching
// Parser understands (spec §6). tokens is any because the core places no
// requirement on token representation — only the cooperating Parser
// needs to know its shape.
type Lexer interface {
	Lex(tf *slicemap.File) (tokens any, violations violation.List, err error)
}

// Parser turns tokens into a parse tree (spec §6). recurse mirrors the
// contract's own recursion flag (a parser may stop descending into
// unparsable regions rather than erroring the whole file).
type Parser interface {
	Parse(tokens any, recurse bool) (root *tree.Segment, violations violation.List, err error)
}
