package schema

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-fileform/pkg/i18n"
)

// Syntax selects the shape of the generated artifact.
type Syntax int

const (
	// SyntaxConstants emits guarded constant definitions.
	SyntaxConstants Syntax = 0
	// SyntaxVariables emits variable assignments.
	SyntaxVariables Syntax = 1
	// SyntaxAssocArray emits a returned key/value mapping.
	SyntaxAssocArray Syntax = 2
)

// String returns the canonical name of the syntax.
func (s Syntax) String() string {
	switch s {
	case SyntaxConstants:
		return "constants"
	case SyntaxVariables:
		return "variables"
	case SyntaxAssocArray:
		return "array"
	default:
		return "syntax(" + strconv.Itoa(int(s)) + ")"
	}
}

// Key returns the identifier field is stored under in an artifact of this
// syntax: upper case for constants, first rune lowered for variables, the
// name itself for arrays.
func (s Syntax) Key(field string) string {
	switch s {
	case SyntaxConstants:
		return strings.ToUpper(field)
	case SyntaxVariables:
		r, size := utf8.DecodeRuneInString(field)
		if r == utf8.RuneError {
			return field
		}
		return string(unicode.ToLower(r)) + field[size:]
	default:
		return field
	}
}

// Valid reports whether s is one of the known syntaxes.
func (s Syntax) Valid() bool {
	return s >= SyntaxConstants && s <= SyntaxAssocArray
}

// ParseSyntax accepts the numeric codes used by schema documents as well as
// the canonical names.
func ParseSyntax(raw string) (Syntax, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "constants", "constant":
		return SyntaxConstants, nil
	case "1", "variables", "variable":
		return SyntaxVariables, nil
	case "2", "array", "assoc", "assoc_array":
		return SyntaxAssocArray, nil
	}
	return 0, fmt.Errorf("schema: unknown output syntax %q", raw)
}

// Kind identifies the widget and value shape of a field.
type Kind string

const (
	KindText         Kind = "text"
	KindPassword     Kind = "password"
	KindSingleChoice Kind = "radio"
	KindMultiChoice  Kind = "checkbox"
)

// ParseKind maps a fieldtype element value to a Kind. Unknown or empty
// values are text fields.
func ParseKind(raw string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindPassword:
		return KindPassword
	case KindSingleChoice:
		return KindSingleChoice
	case KindMultiChoice:
		return KindMultiChoice
	default:
		return KindText
	}
}

// IsChoice reports whether the kind selects from Options.
func (k Kind) IsChoice() bool {
	return k == KindSingleChoice || k == KindMultiChoice
}

// Element names with special meaning inside a field.
const (
	ElementLabel       = "label"
	ElementDescription = "description"
	ElementFieldType   = "fieldtype"
	ElementOptions     = "options"
)

// FormSchema is the parsed representation of a file form document.
type FormSchema struct {
	Name     string
	FileName string
	Syntax   Syntax
	Fields   []FieldDef
}

// FieldNames returns the field names in declaration order.
func (s FormSchema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Field looks up a field by name.
func (s FormSchema) Field(name string) (FieldDef, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// FieldDef describes one form field.
type FieldDef struct {
	Name        string
	Kind        Kind
	Label       i18n.Text
	Description i18n.Text
	// Attributes holds every attribute declared on the field element.
	Attributes map[string]string
	// Elements holds scalar child elements other than label and description,
	// last occurrence winning.
	Elements map[string]string
	// Value is the text content of a field declared without child elements.
	Value string
	// Options lists the choices for radio and checkbox fields.
	Options []string
	// DefaultValue is only set on update, from the previous artifact.
	DefaultValue *string
}

// HasDescription reports whether any description text was declared.
func (f FieldDef) HasDescription() bool {
	return !f.Description.Empty()
}

// WithDefault returns a copy of f carrying value as its default.
func (f FieldDef) WithDefault(value string) FieldDef {
	f.DefaultValue = &value
	return f
}

// ApplyDefaults returns a copy of s whose fields carry the supplied prior
// values. Fields without a prior value keep a nil DefaultValue.
func (s FormSchema) ApplyDefaults(prior map[string]string) FormSchema {
	out := s
	out.Fields = make([]FieldDef, len(s.Fields))
	for i, f := range s.Fields {
		if value, ok := prior[f.Name]; ok {
			f = f.WithDefault(value)
		}
		out.Fields[i] = f
	}
	return out
}

// ValidFieldName reports whether name only holds letters, digits, and
// underscores.
func ValidFieldName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
