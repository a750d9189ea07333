package artifact

import (
	"fmt"

	"github.com/goliatone/go-fileform/pkg/schema"
)

// WriteErrorKind classifies artifact write failures.
type WriteErrorKind string

const (
	IOFailure     WriteErrorKind = "io failure"
	RenameFailure WriteErrorKind = "rename failure"
)

// WriteError reports a failed artifact write. The target is left untouched
// when a WriteError is returned.
type WriteError struct {
	Kind WriteErrorKind
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("artifact: write %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ReadError reports an artifact that exists but cannot be read or does not
// match its declared syntax. Line and Col are 1-based and zero when unknown.
type ReadError struct {
	Path   string
	Syntax schema.Syntax
	Line   int
	Col    int
	Err    error
}

func (e *ReadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("artifact: read %s (%s): line %d col %d: %v", e.Path, e.Syntax, e.Line, e.Col, e.Err)
	}
	return fmt.Sprintf("artifact: read %s (%s): %v", e.Path, e.Syntax, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// syntaxError is a positional grammar error produced by the lexer and the
// syntax parsers.
type syntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("line %d col %d: %s", e.Line, e.Col, e.Msg)
}

func errorAt(tok token, format string, args ...any) *syntaxError {
	return &syntaxError{Line: tok.line, Col: tok.col, Msg: fmt.Sprintf(format, args...)}
}
