package refactor

import (
	"fmt"
	"regexp"
	"strings"

	"rubyfactor/pkg/buffer"
	"rubyfactor/pkg/config"
	"rubyfactor/pkg/types"
)

// defHeadRe captures a definition line: indentation and def keyword,
// method name (self.-qualified allowed), and the raw remainder.
var defHeadRe = regexp.MustCompile(`^(\s*def\s+(?:self\.)?[A-Za-z0-9_]+[?!=]?)(.*)$`)

// AddParameterOperation appends a parameter to the method enclosing a
// given line. Whether the argument list is wrapped in parentheses
// follows the AddParens setting; an existing list keeps its style.
type AddParameterOperation struct {
	Request types.AddParameterRequest
	Config  *config.Config
}

func (op *AddParameterOperation) Type() types.OperationType {
	return types.AddParameterOp
}

func (op *AddParameterOperation) Description() string {
	return fmt.Sprintf("Add parameter '%s' to the method enclosing line %d",
		op.Request.Parameter, op.Request.Line)
}

func (op *AddParameterOperation) Validate(buf *buffer.Buffer) error {
	if strings.TrimSpace(op.Request.Parameter) == "" {
		return &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: "parameter name cannot be empty",
		}
	}
	if op.Request.Line < 1 || op.Request.Line > buf.LineCount() {
		return &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: fmt.Sprintf("line %d outside buffer (%d lines)", op.Request.Line, buf.LineCount()),
		}
	}
	defAt := buf.FindLineBackward(defLineRe, buf.LineOffset(op.Request.Line))
	if defAt < 0 {
		return &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: "no enclosing method definition found",
			Line:    op.Request.Line,
		}
	}
	if !defHeadRe.MatchString(buf.LineText(defAt)) {
		return &types.RefactorError{
			Type:    types.InvalidOperation,
			Message: "cannot parse method definition: " + strings.TrimSpace(buf.LineText(defAt)),
		}
	}
	return nil
}

func (op *AddParameterOperation) Apply(buf *buffer.Buffer) (*types.Result, error) {
	if err := op.Validate(buf); err != nil {
		return nil, err
	}

	param := strings.TrimSpace(op.Request.Parameter)
	defAt := buf.FindLineBackward(defLineRe, buf.LineOffset(op.Request.Line))
	line := buf.LineText(defAt)
	m := defHeadRe.FindStringSubmatch(line)
	head, rest := m[1], strings.TrimSpace(m[2])

	var args string
	parens := op.Config.AddParens
	switch {
	case rest == "":
		args = param
	case strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")"):
		args = strings.TrimSpace(rest[1 : len(rest)-1])
		parens = true
	default:
		args = rest
		parens = false
	}

	if args != param {
		for _, existing := range strings.Split(args, ",") {
			if strings.TrimSpace(existing) == param {
				return &types.Result{
					Description: fmt.Sprintf("parameter '%s' already present", param),
					NoOp:        true,
				}, nil
			}
		}
		if args != "" {
			args += ", " + param
		} else {
			args = param
		}
	}

	newLine := head
	if parens {
		newLine += "(" + args + ")"
	} else {
		newLine += " " + args
	}

	span := buf.LineSpan(defAt)
	buf.DeleteRange(span.Start, span.End)
	buf.Insert(span.Start, newLine)

	return &types.Result{
		Description:  op.Description(),
		VariableName: param,
		Inserted:     types.Span{Start: span.Start, End: span.Start + len(newLine)},
	}, nil
}
