package form

import (
	"strings"

	"github.com/goliatone/go-fileform/pkg/schema"
)

// IDPrefix prefixes every form descriptor identifier.
const IDPrefix = "fileForm_"

// MultiValueSeparator joins the selections of a multi-choice field into one
// collected value.
const MultiValueSeparator = ","

// ID returns the descriptor identifier for a schema name.
func ID(schemaName string) string {
	return IDPrefix + schemaName
}

// Widget is one input of a form, in schema field order.
type Widget struct {
	Name        string
	Kind        schema.Kind
	Label       string
	Description string
	Default     string
	HasDefault  bool
	Options     []string
}

// Selected reports which options are part of the widget default. Single
// choice widgets match the whole default, multi choice widgets split it on
// MultiValueSeparator.
func (w Widget) Selected() map[string]bool {
	out := make(map[string]bool)
	if !w.HasDefault {
		return out
	}
	if w.Kind == schema.KindMultiChoice {
		for _, v := range SplitMulti(w.Default) {
			out[v] = true
		}
		return out
	}
	out[w.Default] = true
	return out
}

// Descriptor is the renderer-neutral description of a form.
type Descriptor struct {
	ID       string
	Name     string
	Language string
	Fields   []Widget
}

// Field looks up a widget by name.
func (d Descriptor) Field(name string) (Widget, bool) {
	for _, w := range d.Fields {
		if w.Name == name {
			return w, true
		}
	}
	return Widget{}, false
}

// JoinMulti joins multi-choice selections into a collected value.
func JoinMulti(values []string) string {
	return strings.Join(values, MultiValueSeparator)
}

// SplitMulti splits a collected multi-choice value. An empty value has no
// selections.
func SplitMulti(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, MultiValueSeparator)
}
