package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// LanguageCatalog reports which languages are installed in the target
// application.
type LanguageCatalog interface {
	IsInstalled(code string) bool
	DefaultLanguageCode() string
}

// StaticCatalog is a LanguageCatalog over a fixed set of language codes.
type StaticCatalog struct {
	installed   map[string]struct{}
	defaultCode string
}

var _ LanguageCatalog = (*StaticCatalog)(nil)

// NewStaticCatalog validates and normalises codes. The default language must
// be one of them; when empty, the first code is the default.
func NewStaticCatalog(defaultCode string, codes ...string) (*StaticCatalog, error) {
	c := &StaticCatalog{installed: make(map[string]struct{}, len(codes))}
	var first string
	for _, raw := range codes {
		code, err := NormalizeCode(raw)
		if err != nil {
			return nil, err
		}
		if first == "" {
			first = code
		}
		c.installed[code] = struct{}{}
	}
	if len(c.installed) == 0 {
		return nil, fmt.Errorf("i18n: at least one installed language is required")
	}

	if strings.TrimSpace(defaultCode) == "" {
		c.defaultCode = first
		return c, nil
	}
	code, err := NormalizeCode(defaultCode)
	if err != nil {
		return nil, err
	}
	if _, ok := c.installed[code]; !ok {
		return nil, fmt.Errorf("i18n: default language %q is not installed", code)
	}
	c.defaultCode = code
	return c, nil
}

// IsInstalled reports whether code is one of the catalog languages. Codes
// are compared after normalisation, so "DE" matches "de".
func (c *StaticCatalog) IsInstalled(code string) bool {
	if c == nil || strings.TrimSpace(code) == "" {
		return false
	}
	normalized, err := NormalizeCode(code)
	if err != nil {
		return false
	}
	_, ok := c.installed[normalized]
	return ok
}

// DefaultLanguageCode returns the catalog default.
func (c *StaticCatalog) DefaultLanguageCode() string {
	if c == nil {
		return ""
	}
	return c.defaultCode
}

// Codes returns the installed codes in no particular order.
func (c *StaticCatalog) Codes() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.installed))
	for code := range c.installed {
		out = append(out, code)
	}
	return out
}

// NormalizeCode canonicalises a BCP 47 language code ("de_DE" -> "de-DE").
func NormalizeCode(code string) (string, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if trimmed == "" {
		return "", fmt.Errorf("i18n: empty language code")
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("i18n: invalid language code %q: %w", code, err)
	}
	return tag.String(), nil
}
