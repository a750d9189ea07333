// Package answers collects form values from a YAML answers file so installs
// can run without a terminal.
//
// The file maps a form, by descriptor ID or schema name, to its field
// values:
//
//	api:
//	  apiKey: "abc'123"
//	  enabled: yes
//	  features: [a, c]
//
// Scalars are taken verbatim (yes stays "yes"); sequences are joined with
// form.MultiValueSeparator.
package answers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fileform/pkg/form"
)

// ErrMissingForm is returned when the answers file has no entry for a form.
var ErrMissingForm = errors.New("answers: no answers for form")

// File holds the answers for one or more forms.
type File struct {
	forms  map[string]map[string]string
	strict bool
}

var _ form.Collector = (*File)(nil)

// Option configures a File.
type Option func(*File)

// WithStrict rejects answers for fields the form does not declare.
func WithStrict(strict bool) Option {
	return func(f *File) {
		f.strict = strict
	}
}

// Load reads an answers file from disk.
func Load(path string, options ...Option) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("answers: read %s: %w", path, err)
	}
	return Parse(data, options...)
}

// Read parses an answers document from r.
func Read(r io.Reader, options ...Option) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("answers: read: %w", err)
	}
	return Parse(data, options...)
}

// Parse decodes an answers document.
func Parse(data []byte, options ...Option) (*File, error) {
	var raw map[string]map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("answers: decode: %w", err)
	}

	f := &File{forms: make(map[string]map[string]string, len(raw))}
	for formName, fields := range raw {
		values := make(map[string]string, len(fields))
		for field, node := range fields {
			value, err := scalarValue(&node)
			if err != nil {
				return nil, fmt.Errorf("answers: %s.%s: %w", formName, field, err)
			}
			values[field] = value
		}
		f.forms[formName] = values
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f, nil
}

func scalarValue(node *yaml.Node) (string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return "", nil
		}
		return node.Value, nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return "", fmt.Errorf("line %d: list items must be scalars", item.Line)
			}
			items = append(items, item.Value)
		}
		return form.JoinMulti(items), nil
	case yaml.AliasNode:
		if node.Alias != nil {
			return scalarValue(node.Alias)
		}
	}
	return "", fmt.Errorf("line %d: expected a scalar or a list", node.Line)
}

// Forms lists the form keys present in the file, sorted.
func (f *File) Forms() []string {
	out := make([]string, 0, len(f.forms))
	for name := range f.forms {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Collect returns the answers for desc, looked up by descriptor ID and then
// by schema name. Fields without an answer keep the widget default when it
// has one.
func (f *File) Collect(ctx context.Context, desc form.Descriptor) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	answers, ok := f.forms[desc.ID]
	if !ok {
		answers, ok = f.forms[desc.Name]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingForm, desc.Name)
	}

	if f.strict {
		for name := range answers {
			if _, declared := desc.Field(name); !declared {
				return nil, fmt.Errorf("answers: form %s has no field %q", desc.Name, name)
			}
		}
	}

	out := make(map[string]string, len(desc.Fields))
	for _, w := range desc.Fields {
		if value, ok := answers[w.Name]; ok {
			out[w.Name] = value
			continue
		}
		if w.HasDefault {
			out[w.Name] = w.Default
		}
	}
	return out, nil
}
