package schema

import "fmt"

// ParseErrorKind classifies structural problems in a schema document.
type ParseErrorKind string

const (
	Malformed        ParseErrorKind = "malformed"
	MissingFilename  ParseErrorKind = "missing filename"
	MissingSyntax    ParseErrorKind = "missing filetype"
	MissingFieldName ParseErrorKind = "missing field name"
	MissingLabel     ParseErrorKind = "missing label"
	InvalidFieldName ParseErrorKind = "invalid field name"
)

// ParseError reports why a schema document was rejected. Field is the
// 1-based position of the offending field element, or 0 for form-level
// problems.
type ParseError struct {
	Kind    ParseErrorKind
	Element string
	Field   int
	Name    string
	Err     error
}

func (e *ParseError) Error() string {
	msg := "schema: " + string(e.Kind)
	switch {
	case e.Field > 0 && e.Name != "":
		msg += fmt.Sprintf(" (field %d %q)", e.Field, e.Name)
	case e.Field > 0:
		msg += fmt.Sprintf(" (field %d)", e.Field)
	}
	if e.Element != "" {
		msg += fmt.Sprintf(": element <%s>", e.Element)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches another *ParseError by kind, so callers can write
// errors.Is(err, &schema.ParseError{Kind: schema.MissingLabel}).
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// SourceError reports that a schema file could not be fetched from the
// package source.
type SourceError struct {
	Name     string
	Location string
	Err      error
}

func (e *SourceError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("schema: file %q not found in %q: %v", e.Name, e.Location, e.Err)
	}
	return fmt.Sprintf("schema: file %q not available: %v", e.Name, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
