package cxxast

import (
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"
)

// SourceFile is a handle to one parsed input. Files obtained through a
// FileCache are interned by path, so two such pointers are equal iff they
// name the same path; a purely in-memory parse (ParseSource) gets its own
// anonymous file with an empty path.
type SourceFile struct {
	Path string

	mu    sync.Mutex
	bytes []byte
	lines []int // byte offset of the start of each line, 0-based
}

func newSourceFile(path string, content []byte) *SourceFile {
	f := &SourceFile{Path: path}
	f.setContent(content)
	return f
}

func (f *SourceFile) setContent(content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bytes = content
	lines := make([]int, 1, 64)
	lines[0] = 0
	for i, b := range content {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	f.lines = lines
}

// Content returns the raw source buffer. Tokens hold substrings of this
// slice; the SourceFile must outlive every token and node derived from it.
func (f *SourceFile) Content() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bytes
}

// PositionAt converts a 0-based byte offset into a 1-based line/column
// SourcePosition, binary searching the cached line-start table.
func (f *SourceFile) PositionAt(offset int) SourcePosition {
	f.mu.Lock()
	defer f.mu.Unlock()

	if offset < 0 {
		offset = 0
	}
	if offset > len(f.bytes) {
		offset = len(f.bytes)
	}

	lineIdx := sort.Search(len(f.lines), func(i int) bool {
		return f.lines[i] > offset
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	lineStart := f.lines[lineIdx]
	col := utf8.RuneCount(f.bytes[lineStart:offset]) + 1

	return SourcePosition{
		File:   f,
		Line:   lineIdx + 1,
		Column: col,
		Offset: offset,
	}
}

// SourcePosition is a file handle plus a (line, column) pair, 1-based, and
// the 0-based byte offset used for text slicing.
type SourcePosition struct {
	File   *SourceFile
	Line   int
	Column int
	Offset int
}

func (p SourcePosition) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SourceRange is two positions sharing the same file, half-open at the end.
type SourceRange struct {
	Start SourcePosition
	End   SourcePosition
}

func NewSourceRange(start, end SourcePosition) SourceRange {
	return SourceRange{Start: start, End: end}
}

func (r SourceRange) String() string {
	return fmt.Sprintf("<%d:%d>--<%d:%d>", r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}

// Contains reports whether other lies within r, which is the containment
// invariant every CST node must satisfy with respect to its parent.
func (r SourceRange) Contains(other SourceRange) bool {
	if r.Start.File != other.Start.File {
		return false
	}
	return other.Start.Offset >= r.Start.Offset && other.End.Offset <= r.End.Offset
}

func (r SourceRange) Text() string {
	if r.Start.File == nil {
		return ""
	}
	content := r.Start.File.Content()
	if r.Start.Offset < 0 || r.End.Offset > len(content) || r.Start.Offset > r.End.Offset {
		return ""
	}
	return string(content[r.Start.Offset:r.End.Offset])
}
