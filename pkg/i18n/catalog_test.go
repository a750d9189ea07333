package i18n

import "testing"

func TestStaticCatalog(t *testing.T) {
	catalog, err := NewStaticCatalog("", "de_DE", "EN")
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	if got := catalog.DefaultLanguageCode(); got != "de-DE" {
		t.Fatalf("expected first code as default, got %q", got)
	}
	if !catalog.IsInstalled("en") {
		t.Fatalf("expected en to be installed")
	}
	if catalog.IsInstalled("fr") || catalog.IsInstalled("") {
		t.Fatalf("unexpected installed language")
	}
}

func TestStaticCatalog_Errors(t *testing.T) {
	if _, err := NewStaticCatalog("en"); err == nil {
		t.Fatalf("expected error for empty catalog")
	}
	if _, err := NewStaticCatalog("fr", "en", "de"); err == nil {
		t.Fatalf("expected error for default outside installed set")
	}
	if _, err := NewStaticCatalog("", "not a code!"); err == nil {
		t.Fatalf("expected error for invalid code")
	}
}
