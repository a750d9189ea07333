package fileform

import (
	"archive/tar"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-fileform/pkg/i18n"
)

const varsSchema = `<form name="site">
	<filename>site.php</filename>
	<filetype>variables</filetype>
	<fields>
		<field name="Title"><label>Title</label></field>
		<field name="owner">nobody</field>
	</fields>
</form>`

func TestOpenSourceAndPreview(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fileForm.xml"), []byte(varsSchema), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, err := OpenSource(dir)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	catalog, err := i18n.NewStaticCatalog("en", "en")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	s, desc, err := LoadForm(ctx, src, "", catalog, "")
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	if desc.ID != "fileForm_site" || len(desc.Fields) != 2 || desc.Fields[1].Default != "nobody" {
		t.Fatalf("unexpected descriptor %+v", desc)
	}

	out, err := PreviewArtifact(s, map[string]string{"Title": "It's"}, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.HasSuffix(string(out), "$title = 'It\\'s';\n$owner = '';\n\n") {
		t.Fatalf("unexpected preview:\n%s", out)
	}
}

func TestOpenSource_Archive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg.tar")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	tw := tar.NewWriter(f)
	if err := tw.WriteHeader(&tar.Header{Name: "fileForm.xml", Mode: 0o644, Size: int64(len(varsSchema))}); err != nil {
		t.Fatalf("header: %v", err)
	}
	if _, err := tw.Write([]byte(varsSchema)); err != nil {
		t.Fatalf("write: %v", err)
	}
	tw.Close()
	f.Close()

	src, err := OpenSource(path)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	if _, _, err := LoadForm(context.Background(), src, "fileForm.xml", nil, ""); err != nil {
		t.Fatalf("load form: %v", err)
	}
}

func TestOpenSource_Rejects(t *testing.T) {
	if _, err := OpenSource(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	plain := filepath.Join(t.TempDir(), "pkg.zip")
	if err := os.WriteFile(plain, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := OpenSource(plain); err == nil {
		t.Fatalf("expected error for unsupported file")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "form.tpl"); err != nil {
		t.Fatalf("expected form.tpl: %v", err)
	}
}
