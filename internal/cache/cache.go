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

// Package cache memoizes the templating/lexing/parsing stages of the
// lint pipeline across runs, keyed by file content rather than file
// identity: a batch re-run over an unchanged tree should not re-parse
// every file from scratch.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
	digest "github.com/opencontainers/go-digest"

	"github.com/lintsql/lintsql/slicemap"
	"github.com/lintsql/lintsql/tree"
	"github.com/lintsql/lintsql/violation"
)

// Entry is one cached templater/lexer/parser result: the slice map, the
// parsed tree before any fix-loop pass touches it, and the violations
// those three stages reported the first time they ran.
type Entry struct {
	File       *slicemap.File
	Root       *tree.Segment
	Violations violation.List
}

// Cache is a bounded LRU of Entry values.
type Cache struct {
	lru *lru.Cache[string, Entry]
}

// New builds a Cache holding at most size entries.
func New(size int) (*Cache, error) {
	l, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// Key derives the cache key for a file's name and source text. Source
// content, not just the name, determines the key: two calls with the
// same filename but edited content must miss.
func Key(filename, source string) string {
	return filename + "@" + digest.FromString(source).String()
}

// Get returns a copy of the cached entry for key safe for a caller to
// mutate or hand to a fix-loop pass without racing another LintBatch
// worker over the same cache hit. The slicemap.File is immutable after
// construction so it is returned as-is; Root is deep-cloned because the
// fix loop builds replacement nodes as it walks and Segment.Raw() lazily
// memoizes text on branch nodes it visits, both of which would otherwise
// be shared, unsynchronized state across goroutines.
func (c *Cache) Get(key string) (Entry, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		return Entry{}, false
	}
	return Entry{File: e.File, Root: deepClone(e.Root), Violations: append(violation.List(nil), e.Violations...)}, true
}

// Put stores entry under key, evicting the least recently used entry if
// the cache is full.
func (c *Cache) Put(key string, entry Entry) {
	c.lru.Add(key, entry)
}

func deepClone(s *tree.Segment) *tree.Segment {
	if s.IsLeaf() {
		return tree.NewLeaf(s.Name, s.Kind, s.Marker, s.Raw())
	}
	children := make([]*tree.Segment, len(s.Children))
	for i, c := range s.Children {
		children[i] = deepClone(c)
	}
	return tree.NewBranch(s.Name, s.Kind, s.Marker, children)
}
