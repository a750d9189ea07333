package answers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fileform/pkg/form"
	"github.com/goliatone/go-fileform/pkg/schema"
)

const sample = `
api:
  apiKey: "abc'123"
  enabled: yes
  port: 8080
  features: [a, c]
  empty: ~
fileForm_other:
  x: "1"
`

func descriptor() form.Descriptor {
	return form.Descriptor{
		ID:   "fileForm_api",
		Name: "api",
		Fields: []form.Widget{
			{Name: "apiKey", Kind: schema.KindPassword},
			{Name: "enabled", Kind: schema.KindSingleChoice},
			{Name: "port", Kind: schema.KindText},
			{Name: "features", Kind: schema.KindMultiChoice},
			{Name: "empty", Kind: schema.KindText},
			{Name: "kept", Kind: schema.KindText, Default: "prior", HasDefault: true},
			{Name: "unset", Kind: schema.KindText},
		},
	}
}

func TestCollect_ByName(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := f.Collect(context.Background(), descriptor())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := map[string]string{
		"apiKey":   "abc'123",
		"enabled":  "yes",
		"port":     "8080",
		"features": "a,c",
		"empty":    "",
		"kept":     "prior",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"api", "fileForm_other"}, f.Forms()); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_ByIDAndMissing(t *testing.T) {
	f, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got, err := f.Collect(context.Background(), form.Descriptor{ID: "fileForm_other", Name: "other", Fields: []form.Widget{{Name: "x"}}})
	if err != nil || got["x"] != "1" {
		t.Fatalf("unexpected result %v, %v", got, err)
	}

	_, err = f.Collect(context.Background(), form.Descriptor{ID: "fileForm_none", Name: "none"})
	if !errors.Is(err, ErrMissingForm) {
		t.Fatalf("expected ErrMissingForm, got %v", err)
	}
}

func TestCollect_Strict(t *testing.T) {
	f, err := Parse([]byte("api:\n  apiKey: k\n  typo: v\n"), WithStrict(true))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := f.Collect(context.Background(), descriptor()); err == nil {
		t.Fatalf("expected strict mode to reject unknown field")
	}
}

func TestParse_Errors(t *testing.T) {
	for _, doc := range []string{
		"api: [1, 2]\n",
		"api:\n  nested:\n    a: b\n",
		"api:\n  list: [[a]]\n",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("expected error for %q", doc)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
