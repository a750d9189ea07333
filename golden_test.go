package fileform

import (
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-fileform/pkg/i18n"
	"github.com/goliatone/go-fileform/pkg/renderers/html"
	"github.com/goliatone/go-fileform/pkg/testsupport"
)

func TestPreviewArtifact_Golden(t *testing.T) {
	ctx := testsupport.Context()
	src, err := OpenSource(filepath.Join("testdata", "api"))
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	catalog, err := i18n.NewStaticCatalog("en", "en", "de")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	s, desc, err := LoadForm(ctx, src, "", catalog, "de")
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	if want := testsupport.LoadSchema(t, filepath.Join("testdata", "api", "fileForm.xml")); want.FileName != s.FileName {
		t.Fatalf("filename mismatch: %q vs %q", want.FileName, s.FileName)
	}
	if got := desc.Fields[0].Label; got != "API-Schlüssel" {
		t.Fatalf("expected german label, got %q", got)
	}

	posted := url.Values{
		"apiKey":   {`k-\1'2`},
		"secret":   {"s3cr3t"},
		"enabled":  {"yes"},
		"features": {"audit", "search"},
		"note":     {"line one\r\nline two"},
	}
	values, err := html.ParseSubmission(desc, posted)
	if err != nil {
		t.Fatalf("parse submission: %v", err)
	}

	out, err := PreviewArtifact(s, values, time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "api.golden.php"), out)
}
