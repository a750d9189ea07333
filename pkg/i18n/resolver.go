package i18n

// English is the language picked when no installed language matches.
const English = "en"

// Resolver picks the text to show for a label or description based on the
// languages available in Catalog.
type Resolver struct {
	Catalog LanguageCatalog
}

// NewResolver returns a Resolver backed by catalog.
func NewResolver(catalog LanguageCatalog) *Resolver {
	return &Resolver{Catalog: catalog}
}

// Resolve returns every entry whose language is installed, or a single
// failsafe entry when none is.
func (r *Resolver) Resolve(values Text) Text {
	return resolveMatching(values, r.Catalog)
}

// ResolveSingle returns the best single text for defaultLanguage. When
// defaultLanguage is empty the catalog default is used.
func (r *Resolver) ResolveSingle(values Text, defaultLanguage string) string {
	if defaultLanguage == "" && r.Catalog != nil {
		defaultLanguage = r.Catalog.DefaultLanguageCode()
	}
	return pickSingle(resolveMatching(values, r.Catalog), defaultLanguage)
}

// Resolve applies the fallback rules to values. With singleOnly the returned
// string holds the chosen text and the Text result is the matching set it
// was picked from; otherwise only the Text result is meaningful.
func Resolve(values Text, defaultLanguage string, singleOnly bool, catalog LanguageCatalog) (Text, string) {
	matching := resolveMatching(values, catalog)
	if !singleOnly {
		return matching, ""
	}
	return matching, pickSingle(matching, defaultLanguage)
}

func resolveMatching(values Text, catalog LanguageCatalog) Text {
	if values.Empty() {
		return Text{}
	}
	values = canonicalize(values)

	// The neutral entry stands in for English unless English is declared.
	if neutral, ok := values.Get(Neutral); ok {
		if !values.Has(English) {
			values.Set(English, neutral)
		}
		values.Delete(Neutral)
	}

	var matching Text
	for _, e := range values.entries {
		if catalog != nil && catalog.IsInstalled(e.Language) {
			matching.Set(e.Language, e.Text)
		}
	}
	if !matching.Empty() {
		return matching
	}

	// After promotion the neutral key is gone, so English covers both the
	// "en" and the neutral fallback.
	if text, ok := values.Get(English); ok {
		return NewText(Entry{Language: English, Text: text})
	}
	first, _ := values.First()
	return NewText(first)
}

// canonicalize rewrites language keys into their normalised form so they
// compare equal to catalog codes ("DE" and "de_DE" become "de" and "de-DE").
// Keys that do not parse are kept as declared.
func canonicalize(values Text) Text {
	var out Text
	for _, e := range values.entries {
		out.Set(canonicalCode(e.Language), e.Text)
	}
	return out
}

func canonicalCode(code string) string {
	if code == Neutral {
		return code
	}
	if normalized, err := NormalizeCode(code); err == nil {
		return normalized
	}
	return code
}

func pickSingle(matching Text, defaultLanguage string) string {
	defaultLanguage = canonicalCode(defaultLanguage)
	if text, ok := matching.Get(defaultLanguage); ok {
		return text
	}
	first, _ := matching.First()
	return first.Text
}
