package config

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fileform.yaml")
	doc := `
root: /srv/app
languages: [en, de_DE]
defaultLanguage: de-DE
logLevel: debug
metricsTextfile: /var/lib/node_exporter/fileform.prom
fileMode: "0640"
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Root:            "/srv/app",
		Database:        filepath.Join("data", "fileform.db"),
		Languages:       []string{"en", "de_DE"},
		DefaultLanguage: "de-DE",
		LogLevel:        "debug",
		MetricsTextfile: "/var/lib/node_exporter/fileform.prom",
		FileMode:        "0640",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	level, _ := cfg.Level()
	mode, _ := cfg.Mode()
	if level != slog.LevelDebug || mode != fs.FileMode(0o640) {
		t.Fatalf("unexpected level %v or mode %v", level, mode)
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if catalog.DefaultLanguageCode() != "de-DE" || !catalog.IsInstalled("en") {
		t.Fatalf("unexpected catalog %v", catalog.Codes())
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg := Defaults()
	if err := Parse(nil, &cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
}

func TestParse_LanguagesWithoutDefault(t *testing.T) {
	cfg := Defaults()
	if err := Parse([]byte("languages: [de, fr]\n"), &cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if catalog.DefaultLanguageCode() != "de" || catalog.IsInstalled("en") {
		t.Fatalf("unexpected catalog default %q codes %v", catalog.DefaultLanguageCode(), catalog.Codes())
	}
}

func TestDefaults_CatalogUsesEnglish(t *testing.T) {
	catalog, err := Defaults().Catalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if catalog.DefaultLanguageCode() != "en" {
		t.Fatalf("expected en default, got %q", catalog.DefaultLanguageCode())
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":        "rooot: x\n",
		"bad level":          "logLevel: loud\n",
		"bad mode":           "fileMode: rw\n",
		"mode out of range":  "fileMode: \"1777\"\n",
		"default not listed": "languages: [en]\ndefaultLanguage: fr\n",
		"bad language":       "languages: [\"not a language!\"]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Defaults()
			err := Parse([]byte(doc), &cfg)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), "config") && name != "unknown key" {
				t.Fatalf("expected config-prefixed error, got %v", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}
