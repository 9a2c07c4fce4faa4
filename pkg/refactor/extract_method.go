package refactor

import (
	"fmt"
	"regexp"
	"strings"

	"rubyfactor/pkg/buffer"
	"rubyfactor/pkg/config"
	"rubyfactor/pkg/types"
)

// defLineRe matches a Ruby method definition line.
var defLineRe = regexp.MustCompile(`^\s*def\b`)

// methodNameRe accepts plain Ruby method names, including the trailing
// ? and ! forms.
var methodNameRe = regexp.MustCompile(`^[a-z_][A-Za-z0-9_]*[?!]?$`)

// ExtractMethodOperation replaces a line range with a call to a new
// method and inserts that method above the enclosing def. This is a
// plain cut-and-insert; parameters are whatever the caller names, no
// inference is attempted.
type ExtractMethodOperation struct {
	Request types.ExtractMethodRequest
	Config  *config.Config
}

func (op *ExtractMethodOperation) Type() types.OperationType {
	return types.ExtractMethodOp
}

func (op *ExtractMethodOperation) Description() string {
	return fmt.Sprintf("Extract method '%s' from lines %d-%d",
		op.Request.NewMethodName, op.Request.StartLine, op.Request.EndLine)
}

func (op *ExtractMethodOperation) Validate(buf *buffer.Buffer) error {
	r := op.Request
	if r.NewMethodName == "" {
		return &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: "method name cannot be empty",
		}
	}
	if !methodNameRe.MatchString(r.NewMethodName) {
		return &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: fmt.Sprintf("invalid method name: %s", r.NewMethodName),
		}
	}
	if r.StartLine < 1 || r.EndLine < 1 {
		return &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: "line numbers must be positive",
		}
	}
	if r.StartLine > r.EndLine {
		return &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: "start line must be before or equal to end line",
		}
	}
	if r.EndLine > buf.LineCount() {
		return &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: fmt.Sprintf("invalid line range: %d-%d (buffer has %d lines)", r.StartLine, r.EndLine, buf.LineCount()),
		}
	}
	if buf.FindLineBackward(defLineRe, buf.LineOffset(r.StartLine)) < 0 {
		return &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: "no enclosing method definition found",
		}
	}
	return nil
}

// signature renders a method head or call per the AddParens setting.
func signature(name, args string, addParens bool) string {
	if args == "" {
		return name
	}
	if addParens {
		return name + "(" + args + ")"
	}
	return name + " " + args
}

func (op *ExtractMethodOperation) Apply(buf *buffer.Buffer) (*types.Result, error) {
	if err := op.Validate(buf); err != nil {
		return nil, err
	}
	r := op.Request

	regionStart := buf.LineOffset(r.StartLine)
	regionEnd := buf.NextLineOffset(buf.LineOffset(r.EndLine))
	raw := strings.Split(strings.TrimSuffix(buf.Slice(regionStart, regionEnd), "\n"), "\n")
	body := make([]string, 0, len(raw))
	for _, line := range raw {
		body = append(body, strings.TrimSpace(line))
	}

	defAt := buf.FindLineBackward(defLineRe, regionStart)
	indent := buf.IndentOfLine(regionStart)

	// Replace the region with the call. The definition above is not
	// shifted by this edit.
	buf.DeleteRange(regionStart, regionEnd)
	buf.Insert(regionStart, indent+signature(r.NewMethodName, r.Arguments, op.Config.AddParens)+"\n")

	// Insert the new method above the enclosing def.
	head := "def " + signature(r.NewMethodName, r.Arguments, op.Config.AddParens)
	method := make([]string, 0, len(body)+2)
	method = append(method, head)
	for _, line := range body {
		if line != "" {
			method = append(method, line)
		}
	}
	method = append(method, "end", "", "")

	buf.Insert(defAt, strings.Join(method, "\n"))
	firstLine := buf.LineNumber(defAt)
	for line := firstLine; line < firstLine+len(method); line++ {
		off := buf.LineOffset(line)
		if !buf.IsBlankLine(off) {
			buf.ReindentLine(off)
		}
	}
	buf.CollapseBlankLines()
	buf.SetCursor(defAt)

	return &types.Result{
		Description: op.Description(),
		Inserted:    types.Span{Start: defAt, End: defAt},
	}, nil
}
