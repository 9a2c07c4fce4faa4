// Package buffer implements the mutable text container the refactoring
// operations edit: offset-based reads and writes, line-wise regexp
// search, Ruby-aware re-indentation, and grouped undo.
//
// Offsets are byte offsets. Out-of-range offsets are clamped to the
// buffer bounds rather than rejected, matching editor point semantics.
package buffer

import (
	"regexp"
	"strings"

	"rubyfactor/pkg/types"
)

// Buffer is a mutable text container. It is not safe for concurrent
// use; callers serialize operations per buffer.
type Buffer struct {
	text    string
	cursor  int
	history *history
}

// New creates a buffer holding text, with the cursor at offset 0.
func New(text string) *Buffer {
	return &Buffer{text: text, history: newHistory()}
}

// String returns the full buffer contents.
func (b *Buffer) String() string { return b.text }

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int { return len(b.text) }

// Cursor returns the current cursor offset.
func (b *Buffer) Cursor() int { return b.cursor }

// SetCursor moves the cursor, clamping to the buffer bounds.
func (b *Buffer) SetCursor(offset int) {
	b.cursor = b.clamp(offset)
}

func (b *Buffer) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(b.text) {
		return len(b.text)
	}
	return offset
}

// Slice returns the text covered by [start, end), clamped.
func (b *Buffer) Slice(start, end int) string {
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// Insert places s at offset and records the edit for undo. The cursor
// moves to the end of the inserted text.
func (b *Buffer) Insert(offset int, s string) {
	if s == "" {
		return
	}
	offset = b.clamp(offset)
	b.text = b.text[:offset] + s + b.text[offset:]
	b.history.record(edit{start: offset, inserted: s})
	b.cursor = offset + len(s)
}

// DeleteRange removes [start, end) and returns the deleted text. The
// cursor moves to start.
func (b *Buffer) DeleteRange(start, end int) string {
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return ""
	}
	deleted := b.text[start:end]
	b.text = b.text[:start] + b.text[end:]
	b.history.record(edit{start: start, deleted: deleted})
	b.cursor = start
	return deleted
}

// Lines returns the buffer split into lines, without terminators.
func (b *Buffer) Lines() []string {
	return strings.Split(b.text, "\n")
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int {
	return strings.Count(b.text, "\n") + 1
}

// lineStarts returns the offset of the first byte of every line.
func (b *Buffer) lineStarts() []int {
	starts := []int{0}
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// LineNumber returns the 1-based line number containing offset.
func (b *Buffer) LineNumber(offset int) int {
	offset = b.clamp(offset)
	return strings.Count(b.text[:offset], "\n") + 1
}

// LineOffset returns the offset of the start of the 1-based line.
// Lines past the end of the buffer yield the buffer length.
func (b *Buffer) LineOffset(line int) int {
	starts := b.lineStarts()
	if line < 1 {
		line = 1
	}
	if line > len(starts) {
		return len(b.text)
	}
	return starts[line-1]
}

// LineSpan returns the span of the line containing offset, excluding
// the trailing newline.
func (b *Buffer) LineSpan(offset int) types.Span {
	offset = b.clamp(offset)
	start := strings.LastIndexByte(b.text[:offset], '\n') + 1
	end := strings.IndexByte(b.text[offset:], '\n')
	if end < 0 {
		end = len(b.text)
	} else {
		end += offset
	}
	return types.Span{Start: start, End: end}
}

// LineText returns the text of the line containing offset, without the
// trailing newline.
func (b *Buffer) LineText(offset int) string {
	span := b.LineSpan(offset)
	return b.text[span.Start:span.End]
}

// NextLineOffset returns the offset just past the newline ending the
// line containing offset, or the buffer length on the last line.
func (b *Buffer) NextLineOffset(offset int) int {
	span := b.LineSpan(offset)
	if span.End < len(b.text) {
		return span.End + 1
	}
	return len(b.text)
}

// IsBlankLine reports whether the line containing offset has no
// non-whitespace characters.
func (b *Buffer) IsBlankLine(offset int) bool {
	return strings.TrimSpace(b.LineText(offset)) == ""
}

// FindLineForward scans line by line from the line containing offset
// toward the buffer end and returns the offset of the start of the
// first line matching re, or -1 when no line matches.
func (b *Buffer) FindLineForward(re *regexp.Regexp, offset int) int {
	offset = b.clamp(offset)
	starts := b.lineStarts()
	fromLine := b.LineNumber(offset)
	lines := b.Lines()
	for i := fromLine - 1; i < len(lines); i++ {
		if re.MatchString(lines[i]) {
			return starts[i]
		}
	}
	return -1
}

// FindLineBackward scans line by line from the line containing offset
// toward the buffer start and returns the offset of the start of the
// nearest matching line, or -1 when no line matches. The line
// containing offset itself is included in the scan.
func (b *Buffer) FindLineBackward(re *regexp.Regexp, offset int) int {
	offset = b.clamp(offset)
	starts := b.lineStarts()
	fromLine := b.LineNumber(offset)
	lines := b.Lines()
	for i := fromLine - 1; i >= 0; i-- {
		if re.MatchString(lines[i]) {
			return starts[i]
		}
	}
	return -1
}

// CollapseBlankLines reduces every run of two or more blank lines to a
// single blank line, across the whole buffer. Kept blank lines are
// rewritten to truly empty even when they stand alone, so re-indent
// residue (a lone line of spaces) never survives the cleanup pass. The
// edit is recorded for undo as a delete-and-insert pair when anything
// changes.
func (b *Buffer) CollapseBlankLines() {
	collapsed := collapseBlankRuns(b.text)
	if collapsed == b.text {
		return
	}
	old := b.text
	b.text = collapsed
	b.history.record(edit{start: 0, deleted: old, inserted: collapsed})
	b.cursor = b.clamp(b.cursor)
}

func collapseBlankRuns(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 1 {
				continue
			}
			// Normalize the kept blank line to truly empty.
			out = append(out, "")
			continue
		}
		blanks = 0
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
