package form

import (
	"github.com/goliatone/go-fileform/pkg/i18n"
	"github.com/goliatone/go-fileform/pkg/schema"
)

// Builder produces descriptors from schemas.
type Builder struct {
	Resolver *i18n.Resolver
}

// NewBuilder returns a Builder resolving text through resolver.
func NewBuilder(resolver *i18n.Resolver) *Builder {
	return &Builder{Resolver: resolver}
}

// Build lays out one widget per schema field, in order. A prior value
// becomes the widget default; without one, the legacy field value is used
// when non-empty. An empty language selects the catalog default. The schema
// is not modified.
func (b *Builder) Build(s schema.FormSchema, prior map[string]string, language string) Descriptor {
	resolver := b.Resolver
	if resolver == nil {
		resolver = i18n.NewResolver(nil)
	}
	if language == "" && resolver.Catalog != nil {
		language = resolver.Catalog.DefaultLanguageCode()
	}

	desc := Descriptor{
		ID:       ID(s.Name),
		Name:     s.Name,
		Language: language,
		Fields:   make([]Widget, 0, len(s.Fields)),
	}
	for _, field := range s.ApplyDefaults(prior).Fields {
		w := Widget{
			Name:  field.Name,
			Kind:  field.Kind,
			Label: resolver.ResolveSingle(field.Label, language),
		}
		if field.HasDescription() {
			w.Description = resolver.ResolveSingle(field.Description, language)
		}
		switch {
		case field.DefaultValue != nil:
			w.Default, w.HasDefault = *field.DefaultValue, true
		case field.Value != "":
			w.Default, w.HasDefault = field.Value, true
		}
		if len(field.Options) > 0 {
			w.Options = append([]string(nil), field.Options...)
		}
		desc.Fields = append(desc.Fields, w)
	}
	return desc
}
