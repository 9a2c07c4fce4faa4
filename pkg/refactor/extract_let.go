package refactor

import (
	"fmt"
	"strings"

	"rubyfactor/pkg/buffer"
	"rubyfactor/pkg/config"
	"rubyfactor/pkg/types"
)

// ExtractLetOperation rewrites an assignment, taken from the current
// line or an explicit region, into a let binding placed after the
// configured anchor line.
//
// All failure modes (missing anchor, malformed assignment) are detected
// in Validate before the buffer is touched, so a failed operation never
// deletes text it cannot replace.
type ExtractLetOperation struct {
	Request types.ExtractLetRequest
	Config  *config.Config
}

func (op *ExtractLetOperation) Type() types.OperationType {
	return types.ExtractLetOp
}

func (op *ExtractLetOperation) Description() string {
	mode := effectiveMode(op.Config, op.Request.Invert)
	if op.Request.HasRegion {
		return fmt.Sprintf("Extract region %d-%d to let binding (%s placement)",
			op.Request.Span.Start, op.Request.Span.End, mode)
	}
	return fmt.Sprintf("Extract current line to let binding (%s placement)", mode)
}

// span returns the text range the operation consumes: the explicit
// region, or the whole current line including its newline.
func (op *ExtractLetOperation) span(buf *buffer.Buffer) types.Span {
	if op.Request.HasRegion {
		return op.Request.Span
	}
	line := buf.LineSpan(op.Request.Point)
	return types.Span{Start: line.Start, End: buf.NextLineOffset(op.Request.Point)}
}

// capturedLines returns the span's text as whitespace-trimmed,
// non-empty lines. The configured trim pattern is not applied here; it
// belongs to the assignment split, where stripping parentheses cannot
// break a balanced pair inside a line.
func (op *ExtractLetOperation) capturedLines(buf *buffer.Buffer) []string {
	raw := strings.Split(buf.Slice(op.span(buf).Start, op.span(buf).End), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func (op *ExtractLetOperation) Validate(buf *buffer.Buffer) error {
	if op.Request.HasRegion && op.Request.Span.Start > op.Request.Span.End {
		return &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: fmt.Sprintf("invalid span: start %d after end %d", op.Request.Span.Start, op.Request.Span.End),
		}
	}
	mode := effectiveMode(op.Config, op.Request.Invert)
	if !mode.Valid() {
		return &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: fmt.Sprintf("invalid placement mode %q", mode),
		}
	}

	lines := op.capturedLines(buf)
	if len(lines) == 0 {
		// Empty selection is a no-op, not a failure.
		return nil
	}
	if !strings.Contains(lines[0], assignmentSeparator) {
		return &types.RefactorError{
			Type:    types.MalformedAssignment,
			Message: "extracted line has no ' = ' separator: " + lines[0],
		}
	}

	return ValidateAnchor(buf, op.Config, mode, op.span(buf).Start)
}

// Apply runs the transformation: delete the captured span, resolve the
// placement, insert the synthesized binding, re-indent it as a unit,
// and normalize blank lines. The whole edit is a single undo group
// when the caller wraps it in one.
func (op *ExtractLetOperation) Apply(buf *buffer.Buffer) (*types.Result, error) {
	if err := op.Validate(buf); err != nil {
		return nil, err
	}

	lines := op.capturedLines(buf)
	if len(lines) == 0 {
		return &types.Result{Description: "empty selection, nothing extracted", NoOp: true}, nil
	}

	binding, err := SynthesizeBinding(lines, op.Request.HasRegion, op.Config)
	if err != nil {
		return nil, err
	}

	span := op.span(buf)
	buf.DeleteRange(span.Start, span.End)

	mode := effectiveMode(op.Config, op.Request.Invert)
	insertAt, err := ResolvePlacement(buf, op.Config, mode, span.Start)
	if err != nil {
		return nil, err
	}
	buf.SetCursor(insertAt)

	buf.Insert(insertAt, binding.Text())

	// Re-indent the inserted construct line by line; each line settles
	// on the indentation established by the one above it.
	firstLine := buf.LineNumber(insertAt)
	lastLine := firstLine + len(binding.Lines) - 1
	var boundary int
	for line := firstLine; line <= lastLine; line++ {
		content := buf.ReindentLine(buf.LineOffset(line))
		if line == firstLine {
			insertAt = content
		}
		if line == lastLine {
			boundary = content + len(binding.Lines[len(binding.Lines)-1])
		}
	}

	// Split the displaced rest of the target line onto its own line.
	after := buf.NewlineAndIndent(boundary)
	buf.SetCursor(after)

	// Keep one blank line between the binding block and what follows.
	if !buf.IsBlankLine(after) {
		buf.Insert(buf.LineSpan(after).Start, "\n")
	}
	buf.CollapseBlankLines()

	return &types.Result{
		Description:  op.Description(),
		VariableName: binding.VariableName,
		Inserted:     types.Span{Start: insertAt, End: boundary},
	}, nil
}
