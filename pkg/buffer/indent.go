package buffer

import (
	"regexp"
	"strings"
)

// IndentUnit is the indentation step applied per Ruby block level.
const IndentUnit = "  "

var blockOpenerRe = regexp.MustCompile(`^\s*(def|class|module|describe|context|it|if|unless|case|while|until|for|begin)\b`)

// opensBlock reports whether a line increases the indentation of the
// line that follows it. This is a line-wise heuristic, not a parse: a
// trailing `do` or a leading block keyword counts, a one-line braced
// block does not.
func opensBlock(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if trimmed == "do" || strings.HasSuffix(trimmed, " do") {
		return true
	}
	if strings.HasSuffix(trimmed, "{") {
		return true
	}
	if blockOpenerRe.MatchString(trimmed) {
		// The keyword must lead the line, so post-conditionals
		// (`x if y`) never reach here. One-line forms closed on the
		// same line do not indent what follows.
		return !strings.HasSuffix(trimmed, "end") && !strings.HasSuffix(trimmed, "}")
	}
	return false
}

// closesBlock reports whether a line should dedent relative to the
// previous line.
func closesBlock(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "end") || strings.HasPrefix(trimmed, "}")
}

// IndentOfLine returns the leading whitespace of the line containing
// offset.
func (b *Buffer) IndentOfLine(offset int) string {
	line := b.LineText(offset)
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// targetIndent computes the indentation the 1-based line should carry,
// derived from the nearest preceding non-blank line.
func (b *Buffer) targetIndent(line int) string {
	lines := b.Lines()
	if line < 1 || line > len(lines) {
		return ""
	}
	current := lines[line-1]
	prev := ""
	for i := line - 2; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			prev = lines[i]
			break
		}
	}
	if prev == "" {
		return ""
	}
	indent := prev[:len(prev)-len(strings.TrimLeft(prev, " \t"))]
	if opensBlock(prev) {
		indent += IndentUnit
	}
	if closesBlock(current) {
		indent = strings.TrimSuffix(indent, IndentUnit)
	}
	return indent
}

// ReindentLine rewrites the leading whitespace of the line containing
// offset according to the surrounding code, and returns the offset of
// the start of that line's content after the edit. The cursor is left
// where it was, clamped.
func (b *Buffer) ReindentLine(offset int) int {
	saved := b.cursor
	span := b.LineSpan(offset)
	lineNum := b.LineNumber(offset)
	existing := b.IndentOfLine(offset)
	target := b.targetIndent(lineNum)
	if existing != target {
		b.DeleteRange(span.Start, span.Start+len(existing))
		b.Insert(span.Start, target)
	}
	b.cursor = b.clamp(saved)
	return span.Start + len(target)
}

// ReindentRange re-indents every line touched by [start, end) as a
// unit, top to bottom, so nested block lines settle on the indentation
// of the lines re-indented before them.
func (b *Buffer) ReindentRange(start, end int) {
	firstLine := b.LineNumber(b.clamp(start))
	lastLine := b.LineNumber(b.clamp(end))
	if end > start && b.clamp(end) == b.LineOffset(lastLine) {
		// The range ends exactly at a line start; that line is not part
		// of the inserted text.
		lastLine--
	}
	for line := firstLine; line <= lastLine; line++ {
		b.ReindentLine(b.LineOffset(line))
	}
}

// NewlineAndIndent inserts a line break at offset and indents the new
// line to match its surroundings. It returns the offset of the start of
// the new line's content.
func (b *Buffer) NewlineAndIndent(offset int) int {
	offset = b.clamp(offset)
	b.Insert(offset, "\n")
	return b.ReindentLine(offset + 1)
}
