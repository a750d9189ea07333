package html

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-fileform/pkg/form"
	"github.com/goliatone/go-fileform/pkg/schema"
)

func sampleDescriptor() form.Descriptor {
	return form.Descriptor{
		ID:   "fileForm_api",
		Name: "api",
		Fields: []form.Widget{
			{Name: "host", Kind: schema.KindText, Label: "Host <b>name</b>", Description: `See <a href="https://example.org">docs</a><script>alert(1)</script>`, Default: `"quoted" & <tag>`, HasDefault: true},
			{Name: "apiKey", Kind: schema.KindPassword, Label: "API key", Default: "abc'123", HasDefault: true},
			{Name: "mode", Kind: schema.KindSingleChoice, Label: "Mode", Options: []string{"live", "sandbox"}, Default: "sandbox", HasDefault: true},
			{Name: "features", Kind: schema.KindMultiChoice, Label: "Features", Options: []string{"a", "b"}, Default: "a,b", HasDefault: true},
		},
	}
}

func TestRender_Form(t *testing.T) {
	r, err := New(WithAction("/install"), WithHiddenFields(HiddenField{Name: "_csrf", Value: "tok"}, HiddenField{Name: " "}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), sampleDescriptor())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	mustContain := []string{
		`<form id="fileForm_api" class="fileform" method="post" action="/install"`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`Host <b>name</b>`,
		`href="https://example.org"`,
		`rel="nofollow"`,
		`value="&quot;quoted&quot; &amp; &lt;tag&gt;"`,
		`<input type="password" id="fileForm_api_apiKey" name="apiKey">`,
		`<input type="radio" name="mode" value="sandbox" checked>`,
		`<input type="radio" name="mode" value="live">`,
		`<input type="checkbox" name="features" value="a" checked>`,
		`<input type="checkbox" name="features" value="b" checked>`,
		`<button type="submit">Save</button>`,
	}
	for _, want := range mustContain {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}

	mustNotContain := []string{"<script>", "abc'123", "abc&#39;123"}
	for _, bad := range mustNotContain {
		if strings.Contains(html, bad) {
			t.Fatalf("output must not contain %q\n%s", bad, html)
		}
	}

	if i, j := strings.Index(html, `name="host"`), strings.Index(html, `name="features"`); i < 0 || j < i {
		t.Fatalf("fields not rendered in descriptor order")
	}
}

func TestRender_CustomTemplate(t *testing.T) {
	files := fstest.MapFS{
		"compact.tpl": {Data: []byte(`{{ form_id }}:{% for field in fields %}{{ field.Name }};{% endfor %}`)},
	}
	r, err := New(WithTemplatesFS(files), WithTemplate("compact.tpl"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), sampleDescriptor())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "fileForm_api:host;apiKey;mode;features;" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRender_MissingTemplate(t *testing.T) {
	r, err := New(WithTemplate("absent.tpl"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), sampleDescriptor()); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestSanitizeText(t *testing.T) {
	tests := map[string]string{
		"  ":                              "",
		"plain":                           "plain",
		`<em>x</em><img src=x onerror=y>`: "<em>x</em>",
		`<em onclick="evil()">label</em>`: "<em>label</em>",
	}
	for in, want := range tests {
		if got := sanitizeText(in); got != want {
			t.Fatalf("sanitizeText(%q) = %q, want %q", in, got, want)
		}
	}
}
