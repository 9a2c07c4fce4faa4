package types

import "fmt"

// RefactorError represents errors in refactoring operations
type RefactorError struct {
	Type    ErrorType
	Message string
	File    string
	Line    int
	Cause   error
}

func (e *RefactorError) Error() string {
	if e.File != "" {
		if e.Line > 0 {
			return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
		}
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

func (e *RefactorError) Unwrap() error {
	return e.Cause
}

type ErrorType int

const (
	AnchorNotFound ErrorType = iota
	MalformedAssignment
	InvalidOperation
	FileSystemError
)

// String returns the string representation of ErrorType
func (t ErrorType) String() string {
	switch t {
	case AnchorNotFound:
		return "AnchorNotFound"
	case MalformedAssignment:
		return "MalformedAssignment"
	case InvalidOperation:
		return "InvalidOperation"
	case FileSystemError:
		return "FileSystemError"
	default:
		return "Unknown"
	}
}
