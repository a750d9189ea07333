package html

import (
	"io/fs"
	"strings"
)

// HiddenField is an extra hidden input emitted with the form, such as a
// CSRF token.
type HiddenField struct {
	Name  string
	Value string
}

// Option configures the HTML renderer.
type Option func(*config)

type config struct {
	templates   fs.FS
	template    string
	action      string
	submitLabel string
	hidden      []HiddenField
}

// WithTemplatesFS loads templates from files instead of the built-in set.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplate selects the template file rendered for a form.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.template = trimmed
		}
	}
}

// WithAction sets the form action URL.
func WithAction(action string) Option {
	return func(cfg *config) {
		cfg.action = strings.TrimSpace(action)
	}
}

// WithSubmitLabel sets the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// WithHiddenFields appends hidden inputs. Fields with empty names are
// ignored.
func WithHiddenFields(fields ...HiddenField) Option {
	return func(cfg *config) {
		for _, f := range fields {
			if name := strings.TrimSpace(f.Name); name != "" {
				cfg.hidden = append(cfg.hidden, HiddenField{Name: name, Value: f.Value})
			}
		}
	}
}
