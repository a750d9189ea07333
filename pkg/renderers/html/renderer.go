package html

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-fileform/pkg/form"
	"github.com/goliatone/go-fileform/pkg/schema"
)

// DefaultTemplate is the built-in form template.
const DefaultTemplate = "form.tpl"

// Renderer renders form descriptors as HTML forms using pongo2 templates.
// Labels and descriptions are sanitised; every other value is escaped by the
// template engine.
type Renderer struct {
	cfg config
	set *pongo2.TemplateSet

	mu        sync.Mutex
	templates map[string]*pongo2.Template
}

// New constructs a Renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templates:   Templates(),
		template:    DefaultTemplate,
		submitLabel: "Save",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templates == nil {
		return nil, errors.New("html: templates are required")
	}
	return &Renderer{
		cfg:       cfg,
		set:       pongo2.NewSet("fileform", pongo2.NewFSLoader(cfg.templates)),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the media type produced by Render.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type optionView struct {
	Value   string
	Checked bool
}

type fieldView struct {
	Name        string
	InputID     string
	Kind        string
	Label       *pongo2.Value
	Description *pongo2.Value
	Value       string
	ShowValue   bool
	Choice      bool
	Options     []optionView
}

// Render produces the HTML form for desc. Defaults are pre-filled except
// for password fields, whose values never leave the server.
func (r *Renderer) Render(ctx context.Context, desc form.Descriptor) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tpl, err := r.template(r.cfg.template)
	if err != nil {
		return nil, err
	}

	fields := make([]fieldView, 0, len(desc.Fields))
	for _, w := range desc.Fields {
		fields = append(fields, buildFieldView(desc.ID, w))
	}

	data := pongo2.Context{
		"form_id":       desc.ID,
		"title":         desc.Name,
		"action":        r.cfg.action,
		"submit_label":  r.cfg.submitLabel,
		"hidden_fields": r.cfg.hidden,
		"fields":        fields,
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(data, &buf); err != nil {
		return nil, fmt.Errorf("html: execute template %q: %w", r.cfg.template, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) template(name string) (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.templates[name]; ok {
		return tpl, nil
	}
	tpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("html: load template %q: %w", name, err)
	}
	r.templates[name] = tpl
	return tpl, nil
}

func buildFieldView(formID string, w form.Widget) fieldView {
	view := fieldView{
		Name:        w.Name,
		InputID:     formID + "_" + w.Name,
		Kind:        string(w.Kind),
		Label:       pongo2.AsSafeValue(sanitizeText(w.Label)),
		Description: pongo2.AsSafeValue(sanitizeText(w.Description)),
		Choice:      w.Kind.IsChoice(),
	}
	if view.Choice {
		selected := w.Selected()
		for _, option := range w.Options {
			view.Options = append(view.Options, optionView{Value: option, Checked: selected[option]})
		}
		return view
	}
	if w.Kind != schema.KindPassword && w.HasDefault {
		view.Value = w.Default
		view.ShowValue = true
	}
	return view
}
