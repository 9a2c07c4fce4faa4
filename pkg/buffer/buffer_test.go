package buffer

import (
	"regexp"
	"testing"
)

func TestInsertAndDelete(t *testing.T) {
	b := New("hello world")

	b.Insert(5, ",")
	if b.String() != "hello, world" {
		t.Errorf("Expected 'hello, world', got %q", b.String())
	}
	if b.Cursor() != 6 {
		t.Errorf("Expected cursor at 6, got %d", b.Cursor())
	}

	deleted := b.DeleteRange(5, 6)
	if deleted != "," {
		t.Errorf("Expected deleted text ',', got %q", deleted)
	}
	if b.String() != "hello world" {
		t.Errorf("Expected 'hello world', got %q", b.String())
	}
	if b.Cursor() != 5 {
		t.Errorf("Expected cursor at 5, got %d", b.Cursor())
	}
}

func TestSlice_Clamped(t *testing.T) {
	b := New("abc")
	if got := b.Slice(-4, 2); got != "ab" {
		t.Errorf("Expected 'ab', got %q", got)
	}
	if got := b.Slice(1, 99); got != "bc" {
		t.Errorf("Expected 'bc', got %q", got)
	}
	if got := b.Slice(2, 1); got != "" {
		t.Errorf("Expected empty slice, got %q", got)
	}
}

func TestLineHelpers(t *testing.T) {
	b := New("one\ntwo\nthree")

	if got := b.LineNumber(0); got != 1 {
		t.Errorf("Expected line 1, got %d", got)
	}
	if got := b.LineNumber(5); got != 2 {
		t.Errorf("Expected line 2, got %d", got)
	}
	if got := b.LineOffset(3); got != 8 {
		t.Errorf("Expected offset 8 for line 3, got %d", got)
	}
	if got := b.LineText(5); got != "two" {
		t.Errorf("Expected 'two', got %q", got)
	}

	span := b.LineSpan(5)
	if span.Start != 4 || span.End != 7 {
		t.Errorf("Expected span 4-7, got %d-%d", span.Start, span.End)
	}

	if got := b.NextLineOffset(0); got != 4 {
		t.Errorf("Expected next line offset 4, got %d", got)
	}
	if got := b.NextLineOffset(9); got != b.Len() {
		t.Errorf("Expected next line offset at buffer end, got %d", got)
	}
}

func TestIsBlankLine(t *testing.T) {
	b := New("code\n   \n\nmore")
	if b.IsBlankLine(0) {
		t.Error("Expected 'code' line to be non-blank")
	}
	if !b.IsBlankLine(5) {
		t.Error("Expected whitespace-only line to be blank")
	}
	if !b.IsBlankLine(9) {
		t.Error("Expected empty line to be blank")
	}
}

func TestFindLineForward(t *testing.T) {
	b := New("intro\ndescribe Foo do\n  body\ncontext 'bar' do\n  more\nend")
	re := regexp.MustCompile(`^\s*(describe|context)`)

	if got := b.FindLineForward(re, 0); got != 6 {
		t.Errorf("Expected first match at 6, got %d", got)
	}
	// Starting past the first match finds the second.
	if got := b.FindLineForward(re, 25); got != 29 {
		t.Errorf("Expected second match at 29, got %d", got)
	}
	if got := b.FindLineForward(regexp.MustCompile(`nowhere`), 0); got != -1 {
		t.Errorf("Expected no match, got %d", got)
	}
}

func TestFindLineBackward(t *testing.T) {
	b := New("describe Foo do\n  a\ncontext 'x' do\n    b\nend")
	re := regexp.MustCompile(`^\s*(describe|context)`)

	// From inside the context block, the context line is nearest.
	if got := b.FindLineBackward(re, 38); got != 20 {
		t.Errorf("Expected backward match at 20, got %d", got)
	}
	// The line containing the start offset participates in the scan.
	if got := b.FindLineBackward(re, 22); got != 20 {
		t.Errorf("Expected same-line match at 20, got %d", got)
	}
	if got := b.FindLineBackward(re, 17); got != 0 {
		t.Errorf("Expected match at 0, got %d", got)
	}
	if got := b.FindLineBackward(regexp.MustCompile(`nowhere`), 40); got != -1 {
		t.Errorf("Expected no match, got %d", got)
	}
}

func TestCollapseBlankLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "run of three",
			input:    "a\n\n\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "single blank preserved",
			input:    "a\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "whitespace-only lines count as blank",
			input:    "a\n  \n\t\nb",
			expected: "a\n\nb",
		},
		{
			name:     "single whitespace-only line normalized to empty",
			input:    "a\n  \nb",
			expected: "a\n\nb",
		},
		{
			name:     "no blanks",
			input:    "a\nb",
			expected: "a\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.input)
			b.CollapseBlankLines()
			if b.String() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, b.String())
			}
		})
	}
}

func TestUndoGroup(t *testing.T) {
	b := New("describe Foo do\n  a = 1\nend")
	original := b.String()

	id := b.BeginGroup("extract")
	b.DeleteRange(18, 23)
	b.Insert(18, "let(:a){ 1 }")
	b.EndGroup()

	if b.String() == original {
		t.Fatal("Expected buffer to change")
	}

	undone, err := b.Undo()
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if undone != id {
		t.Errorf("Expected undone group %v, got %v", id, undone)
	}
	if b.String() != original {
		t.Errorf("Expected buffer restored to %q, got %q", original, b.String())
	}
}

func TestUndo_Empty(t *testing.T) {
	b := New("text")
	if _, err := b.Undo(); err == nil {
		t.Error("Expected error undoing with empty history")
	}
}

func TestUndo_EmptyGroupDiscarded(t *testing.T) {
	b := New("text")
	b.BeginGroup("noop")
	b.EndGroup()
	if len(b.Groups()) != 0 {
		t.Errorf("Expected empty group to be discarded, have %d groups", len(b.Groups()))
	}
}

func TestReindentLine(t *testing.T) {
	b := New("describe Foo do\nlet(:a){ 1 }\nend")

	b.ReindentLine(16)
	expected := "describe Foo do\n  let(:a){ 1 }\nend"
	if b.String() != expected {
		t.Errorf("Expected %q, got %q", expected, b.String())
	}

	// Re-indenting an already correct line changes nothing.
	before := b.String()
	b.ReindentLine(16)
	if b.String() != before {
		t.Errorf("Expected idempotent reindent, got %q", b.String())
	}
}

func TestReindentLine_End(t *testing.T) {
	b := New("describe Foo do\n  a = 1\n    end")
	b.ReindentLine(26)
	expected := "describe Foo do\n  a = 1\nend"
	if b.String() != expected {
		t.Errorf("Expected %q, got %q", expected, b.String())
	}
}

func TestReindentRange_Block(t *testing.T) {
	b := New("describe Foo do\nlet :a do\n_a = 1\n_a\nend\nend")
	// Re-indent the inserted let block (lines 2-5).
	b.ReindentRange(16, 40)

	expected := "describe Foo do\n  let :a do\n    _a = 1\n    _a\n  end\nend"
	if b.String() != expected {
		t.Errorf("Expected %q, got %q", expected, b.String())
	}
}

func TestNewlineAndIndent(t *testing.T) {
	b := New("describe Foo do\n  let(:a){ 1 }rest\nend")
	content := b.NewlineAndIndent(30)
	expected := "describe Foo do\n  let(:a){ 1 }\n  rest\nend"
	if b.String() != expected {
		t.Errorf("Expected %q, got %q", expected, b.String())
	}
	if got := b.Slice(content, content+4); got != "rest" {
		t.Errorf("Expected content offset at 'rest', got %q", got)
	}
}
