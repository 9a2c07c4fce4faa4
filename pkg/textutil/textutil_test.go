package textutil

import (
	"regexp"
	"testing"
)

func TestTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain whitespace", "  foo  ", "foo"},
		{"parens", "(foo)", "foo"},
		{"mixed whitespace and parens", "  ( foo ) ", "foo"},
		{"interior untouched", "foo (bar) baz", "foo (bar) baz"},
		{"already trimmed", "foo", "foo"},
		{"empty", "", ""},
		{"only trimmable", " () ", ""},
		{"tabs and newlines", "\t\nfoo\n", "foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trim(tt.input, nil)
			if got != tt.expected {
				t.Errorf("Trim(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTrim_Idempotent(t *testing.T) {
	inputs := []string{"  foo  ", "(bar)", " ( a = b ) ", "", "plain", "((x))"}
	for _, in := range inputs {
		once := Trim(in, nil)
		twice := Trim(once, nil)
		if once != twice {
			t.Errorf("Trim not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestTrim_CustomPattern(t *testing.T) {
	pattern := regexp.MustCompile(`-+`)
	if got := Trim("--foo--", pattern); got != "foo" {
		t.Errorf("Trim with custom pattern = %q, want %q", got, "foo")
	}
	// Whitespace is not covered by the custom pattern.
	if got := Trim(" foo ", pattern); got != " foo " {
		t.Errorf("Trim with custom pattern = %q, want %q", got, " foo ")
	}
}

func TestTrimAll(t *testing.T) {
	input := []string{"  a = 1  ", "(b)", "", "  "}
	got := TrimAll(input, nil)

	if len(got) != len(input) {
		t.Fatalf("TrimAll changed length: got %d, want %d", len(got), len(input))
	}
	expected := []string{"a = 1", "b", "", ""}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("TrimAll[%d] = %q, want %q", i, got[i], expected[i])
		}
	}
}
