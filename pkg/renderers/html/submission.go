package html

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-fileform/pkg/form"
	"github.com/goliatone/go-fileform/pkg/schema"
)

// InvalidChoiceError reports a submitted value that is not one of the
// field options.
type InvalidChoiceError struct {
	Field string
	Value string
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("html: field %s: %q is not a valid option", e.Field, e.Value)
}

// ParseSubmission maps posted form values onto the descriptor fields.
// Absent fields collect as "". An empty password keeps the widget default.
// Checkbox selections are joined in option order.
func ParseSubmission(desc form.Descriptor, posted url.Values) (map[string]string, error) {
	out := make(map[string]string, len(desc.Fields))
	for _, w := range desc.Fields {
		raw := posted[w.Name]
		switch w.Kind {
		case schema.KindMultiChoice:
			chosen := make(map[string]bool, len(raw))
			for _, v := range raw {
				if !contains(w.Options, v) {
					return nil, &InvalidChoiceError{Field: w.Name, Value: v}
				}
				chosen[v] = true
			}
			var picked []string
			for _, option := range w.Options {
				if chosen[option] {
					picked = append(picked, option)
				}
			}
			out[w.Name] = form.JoinMulti(picked)
		case schema.KindSingleChoice:
			value := first(raw)
			if value != "" && !contains(w.Options, value) {
				return nil, &InvalidChoiceError{Field: w.Name, Value: value}
			}
			out[w.Name] = value
		case schema.KindPassword:
			value := first(raw)
			if value == "" && w.HasDefault {
				value = w.Default
			}
			out[w.Name] = value
		default:
			out[w.Name] = first(raw)
		}
	}
	return out, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.ReplaceAll(values[0], "\r\n", "\n")
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
