package refactor

import (
	"regexp"
	"strings"

	"rubyfactor/pkg/config"
	"rubyfactor/pkg/textutil"
	"rubyfactor/pkg/types"
)

// assignmentSeparator splits a Ruby assignment line into variable and
// expression. Only the first occurrence counts.
const assignmentSeparator = " = "

// internalPrefix derives the block-local name from the let variable
// name in the multi-line form.
const internalPrefix = "_"

// BindingResult is the synthesized replacement for an extracted
// assignment. It is produced once per invocation, written into the
// buffer, and discarded.
type BindingResult struct {
	VariableName string
	Lines        []string
}

// Text returns the replacement as a single string, lines joined by
// newlines and carrying no indentation.
func (r *BindingResult) Text() string {
	return strings.Join(r.Lines, "\n")
}

// splitAssignment splits line on the first " = ". The configured trim
// pattern applies to the variable name only; the expression is trimmed
// of whitespace alone, so parentheses that belong to it survive.
func splitAssignment(line string, cfg *config.Config) (name, expr string, err error) {
	idx := strings.Index(line, assignmentSeparator)
	if idx < 0 {
		return "", "", &types.RefactorError{
			Type:    types.MalformedAssignment,
			Message: "extracted line has no ' = ' separator: " + line,
		}
	}
	name = textutil.Trim(line[:idx], cfg.TrimPattern)
	expr = strings.TrimSpace(line[idx+len(assignmentSeparator):])
	return name, expr, nil
}

// SynthesizeBinding turns extracted assignment lines into a let
// binding. Single-line input produces the one-expression form
// `let(:name){ expr }`. Multi-line input produces the block form: the
// variable is renamed to an underscore-prefixed internal name in every
// body line and returned as the block's value.
//
// The rename is naive: it anchors only the left edge of each match, so
// a variable name that begins an unrelated longer identifier is
// rewritten too. That imprecision is part of the contract, not a bug
// to fix.
func SynthesizeBinding(lines []string, multiLine bool, cfg *config.Config) (*BindingResult, error) {
	if len(lines) == 0 {
		return nil, &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: "no lines to synthesize a binding from",
		}
	}

	if !multiLine {
		name, expr, err := splitAssignment(lines[0], cfg)
		if err != nil {
			return nil, err
		}
		return &BindingResult{
			VariableName: name,
			Lines:        []string{"let(:" + name + "){ " + expr + " }"},
		}, nil
	}

	name, _, err := splitAssignment(lines[0], cfg)
	if err != nil {
		return nil, err
	}
	internal := internalPrefix + name
	rename := regexp.MustCompile(`(^|\W)` + regexp.QuoteMeta(name))

	out := make([]string, 0, len(lines)+3)
	out = append(out, "let :"+name+" do")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, rename.ReplaceAllString(line, "${1}"+internal))
	}
	out = append(out, internal, "end")

	return &BindingResult{VariableName: name, Lines: out}, nil
}
