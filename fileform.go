// Package fileform generates settings files from declarative XML form
// schemas shipped inside packages. The root package offers convenience
// constructors over the packages in pkg/.
package fileform

import (
	"bytes"
	"context"
	"time"

	"github.com/goliatone/go-fileform/pkg/artifact"
	"github.com/goliatone/go-fileform/pkg/form"
	"github.com/goliatone/go-fileform/pkg/i18n"
	"github.com/goliatone/go-fileform/pkg/installer"
	"github.com/goliatone/go-fileform/pkg/schema"
)

// Controller aliases installer.Controller.
type Controller = installer.Controller

// Result aliases installer.Result.
type Result = installer.Result

// Descriptor aliases form.Descriptor.
type Descriptor = form.Descriptor

// NewController exposes the installer constructor from the top-level module.
func NewController(ctx context.Context, options ...installer.Option) (*installer.Controller, error) {
	return installer.New(ctx, options...)
}

// LoadForm reads the schema instruction from src and lays out its form for
// language without prior values.
func LoadForm(ctx context.Context, src schema.Source, instruction string, catalog i18n.LanguageCatalog, language string) (schema.FormSchema, form.Descriptor, error) {
	if instruction == "" {
		instruction = schema.DefaultInstruction
	}
	s, err := schema.Load(ctx, src, instruction)
	if err != nil {
		return schema.FormSchema{}, form.Descriptor{}, err
	}
	desc := form.NewBuilder(i18n.NewResolver(catalog)).Build(s, nil, language)
	return s, desc, nil
}

// PreviewArtifact returns the artifact values would produce for s without
// touching the filesystem.
func PreviewArtifact(s schema.FormSchema, values map[string]string, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := artifact.Encode(&buf, s.Syntax, artifact.OrderedValues(s.FieldNames(), values), generatedAt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
