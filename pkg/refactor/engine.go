package refactor

import (
	"fmt"
	"io/fs"
	"os"

	"rubyfactor/pkg/buffer"
	"rubyfactor/pkg/config"
	"rubyfactor/pkg/types"
)

// Operation is a single refactoring transform against one buffer.
// Validate must detect every failure mode before Apply mutates
// anything; Apply runs the transform to completion synchronously.
type Operation interface {
	Type() types.OperationType
	Validate(buf *buffer.Buffer) error
	Apply(buf *buffer.Buffer) (*types.Result, error)
	Description() string
}

// Document is a file loaded into a buffer for editing.
type Document struct {
	Path   string
	Buffer *buffer.Buffer
	mode   fs.FileMode
}

// Engine runs refactoring operations against documents. It holds the
// immutable configuration shared by every operation it creates.
type Engine struct {
	config *config.Config
}

// NewEngine creates an engine with the default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(config.Default())
}

// NewEngineWithConfig creates an engine with the given configuration.
func NewEngineWithConfig(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{config: cfg}
}

// Config returns the engine's configuration.
func (e *Engine) Config() *config.Config { return e.config }

// Open loads a file into a document.
func (e *Engine) Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.RefactorError{
			Type:    types.FileSystemError,
			Message: "cannot read file",
			File:    path,
			Cause:   err,
		}
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return &Document{Path: path, Buffer: buffer.New(string(data)), mode: mode}, nil
}

// NewDocument wraps in-memory text in a document with no backing file.
func NewDocument(text string) *Document {
	return &Document{Buffer: buffer.New(text), mode: 0o644}
}

// Save writes the document's buffer back to its file.
func (e *Engine) Save(doc *Document) error {
	if doc.Path == "" {
		return &types.RefactorError{
			Type:    types.FileSystemError,
			Message: "document has no backing file",
		}
	}
	if err := os.WriteFile(doc.Path, []byte(doc.Buffer.String()), doc.mode); err != nil {
		return &types.RefactorError{
			Type:    types.FileSystemError,
			Message: "cannot write file",
			File:    doc.Path,
			Cause:   err,
		}
	}
	return nil
}

// ExtractLet extracts an assignment into a let binding.
func (e *Engine) ExtractLet(doc *Document, req types.ExtractLetRequest) (*types.Result, error) {
	return e.run(doc, &ExtractLetOperation{Request: req, Config: e.config})
}

// ExtractMethod extracts a line range into a new method.
func (e *Engine) ExtractMethod(doc *Document, req types.ExtractMethodRequest) (*types.Result, error) {
	return e.run(doc, &ExtractMethodOperation{Request: req, Config: e.config})
}

// AddParameter adds a parameter to the enclosing method.
func (e *Engine) AddParameter(doc *Document, req types.AddParameterRequest) (*types.Result, error) {
	return e.run(doc, &AddParameterOperation{Request: req, Config: e.config})
}

// run validates and applies op inside one undo group, so the whole
// transform reverts as a single edit. A failure after edits started
// rolls those edits back before returning.
func (e *Engine) run(doc *Document, op Operation) (*types.Result, error) {
	buf := doc.Buffer
	if err := op.Validate(buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op.Description(), err)
	}

	id := buf.BeginGroup(op.Description())
	result, err := op.Apply(buf)
	buf.EndGroup()
	if err != nil {
		groups := buf.Groups()
		if len(groups) > 0 && groups[len(groups)-1].ID == id {
			_, _ = buf.Undo()
		}
		return nil, fmt.Errorf("%s: %w", op.Description(), err)
	}
	return result, nil
}
