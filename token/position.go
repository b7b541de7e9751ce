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

// Package token defines source positions, half-open ranges, and the
// position marker that every parsed or synthesized segment carries.
package token

import (
	"fmt"
	"sort"
	"sync"
)

// Range is a half-open [Start, Stop) interval over either source or
// templated string offsets. Which coordinate space it lives in is
// determined by context (a Marker carries one of each).
type Range struct {
	Start int
	Stop  int
}

// Len reports the length of the range. A zero-length range is valid and
// denotes an insertion point or a removed region.
func (r Range) Len() int { return r.Stop - r.Start }

// Empty reports whether the range has zero length.
func (r Range) Empty() bool { return r.Stop <= r.Start }

// Contains reports whether offset lies within the range.
func (r Range) Contains(offset int) bool { return r.Start <= offset && offset < r.Stop }

// Overlaps reports whether r and o share any offset.
func (r Range) Overlaps(o Range) bool { return r.Start < o.Stop && o.Start < r.Stop }

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.Stop) }

// Position is a printable, human-facing source position.
type Position struct {
	Filename string
	Offset   int
	Line     int // 1-based
	Column   int // 1-based, counted in bytes
}

// IsValid reports whether the position carries useful line information.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		if p.Filename == "" {
			return "-"
		}
		return p.Filename
	}
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// File tracks the line-offset table for one source text so that byte
// offsets can be translated into line/column positions without rescanning
// the text on every lookup.
type File struct {
	mu    sync.RWMutex
	name  string
	size  int
	lines []int // offset of the first byte of each line; lines[0] == 0
}

// NewFile creates a File for content of the given size. Call SetContent to
// populate the line table before calling Position.
func NewFile(name string, size int) *File {
	return &File{name: name, size: size, lines: []int{0}}
}

// SetContent scans content for newlines and (re)builds the line table.
func (f *File) SetContent(content []byte) {
	lines := []int{0}
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			lines = append(lines, i+1)
		}
	}
	f.mu.Lock()
	f.lines = lines
	f.size = len(content)
	f.mu.Unlock()
}

// Name returns the file name as passed to NewFile.
func (f *File) Name() string { return f.name }

// Size returns the content length used to build the line table.
func (f *File) Size() int { return f.size }

// Position translates a byte offset into a human-facing Position. Offsets
// outside [0, Size()] are clamped.
func (f *File) Position(offset int) Position {
	f.mu.RLock()
	defer f.mu.RUnlock()
	switch {
	case offset < 0:
		offset = 0
	case offset > f.size:
		offset = f.size
	}
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	return Position{
		Filename: f.name,
		Offset:   offset,
		Line:     i + 1,
		Column:   offset - f.lines[i] + 1,
	}
}

// Pos is a lightweight reference to an offset within a File. Two Pos
// values compare equal iff they reference the same file and offset.
type Pos struct {
	file   *File
	Offset int
}

// NoPos is the zero value: no file, no offset, never valid.
var NoPos = Pos{}

// NewPos builds a Pos referencing offset within f.
func NewPos(f *File, offset int) Pos { return Pos{file: f, Offset: offset} }

// IsValid reports whether p references a file.
func (p Pos) IsValid() bool { return p.file != nil }

// File returns the file p refers to, or nil for NoPos.
func (p Pos) File() *File { return p.file }

// Position resolves p to a human-facing Position.
func (p Pos) Position() Position {
	if p.file == nil {
		return Position{}
	}
	return p.file.Position(p.Offset)
}

func (p Pos) String() string { return p.Position().String() }

// Compare orders positions by filename then offset; NoPos sorts last.
func (p Pos) Compare(q Pos) int {
	switch {
	case p == q:
		return 0
	case p == NoPos:
		return 1
	case q == NoPos:
		return -1
	}
	pn, qn := p.file.Name(), q.file.Name()
	switch {
	case pn < qn:
		return -1
	case pn > qn:
		return 1
	case p.Offset < q.Offset:
		return -1
	case p.Offset > q.Offset:
		return 1
	default:
		return 0
	}
}
