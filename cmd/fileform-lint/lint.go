package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-fileform"
	"github.com/goliatone/go-fileform/pkg/i18n"
	"github.com/goliatone/go-fileform/pkg/schema"
)

type violation struct {
	file     string
	location string
	message  string
}

func (v violation) String() string {
	return fmt.Sprintf("%s: %s -> %s", v.file, v.location, v.message)
}

type linter struct {
	languages []string
}

// lintPath accepts a schema document, a package directory, or a package
// archive.
func (l linter) lintPath(ctx context.Context, path string) ([]violation, error) {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return l.lintDocument(path, raw), nil
	}

	src, err := fileform.OpenSource(path)
	if err != nil {
		return nil, err
	}
	raw, err := src.Open(ctx, schema.DefaultInstruction)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNoSchema, err)
	}
	return l.lintDocument(filepath.Join(path, schema.DefaultInstruction), raw), nil
}

func (l linter) lintDocument(file string, raw []byte) []violation {
	s, err := schema.Parse(raw)
	if err != nil {
		location := "form"
		var perr *schema.ParseError
		if errors.As(err, &perr) && perr.Field > 0 {
			location = fmt.Sprintf("field %d", perr.Field)
		}
		return []violation{{file: file, location: location, message: err.Error()}}
	}

	var result []violation
	if !filepath.IsLocal(filepath.FromSlash(s.FileName)) {
		result = append(result, violation{file, "form", fmt.Sprintf("filename %q leaves the installation root", s.FileName)})
	}

	for _, field := range s.Fields {
		result = append(result, l.lintField(file, "field "+field.Name, field)...)
	}
	return result
}

func (l linter) lintField(file, location string, field schema.FieldDef) []violation {
	var result []violation
	switch {
	case field.Kind.IsChoice() && len(field.Options) == 0:
		result = append(result, violation{file, location, fmt.Sprintf("%s field declares no options", field.Kind)})
	case !field.Kind.IsChoice() && len(field.Options) > 0:
		result = append(result, violation{file, location, fmt.Sprintf("options are ignored on %s fields", field.Kind)})
	}

	options := make(map[string]bool, len(field.Options))
	for _, opt := range field.Options {
		if options[opt] {
			result = append(result, violation{file, location, fmt.Sprintf("duplicate option %q", opt)})
		}
		options[opt] = true
	}

	for _, lang := range l.languages {
		if !covers(field.Label, lang) {
			result = append(result, violation{file, location, fmt.Sprintf("no label for language %q", lang)})
		}
	}
	return result
}

func covers(t i18n.Text, lang string) bool {
	if t.Has(lang) {
		return true
	}
	return lang == i18n.English && t.Has(i18n.Neutral)
}
