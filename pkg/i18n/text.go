package i18n

// Neutral is the language key used by entries declared without a language
// attribute.
const Neutral = ""

// Entry is one language code / text pair.
type Entry struct {
	Language string
	Text     string
}

// Text is an insertion-ordered mapping of language code to text. Setting an
// existing language replaces its text in place.
type Text struct {
	entries []Entry
}

// NewText builds a Text from the supplied entries, later duplicates replacing
// earlier ones.
func NewText(entries ...Entry) Text {
	var t Text
	for _, e := range entries {
		t.Set(e.Language, e.Text)
	}
	return t
}

// Set stores text under language.
func (t *Text) Set(language, text string) {
	for i := range t.entries {
		if t.entries[i].Language == language {
			t.entries[i].Text = text
			return
		}
	}
	t.entries = append(t.entries, Entry{Language: language, Text: text})
}

// Get returns the text stored for language.
func (t Text) Get(language string) (string, bool) {
	for _, e := range t.entries {
		if e.Language == language {
			return e.Text, true
		}
	}
	return "", false
}

// Has reports whether language has an entry.
func (t Text) Has(language string) bool {
	_, ok := t.Get(language)
	return ok
}

// Delete removes language, preserving the order of the remaining entries.
func (t *Text) Delete(language string) {
	for i := range t.entries {
		if t.entries[i].Language == language {
			t.entries = append(t.entries[:i:i], t.entries[i+1:]...)
			return
		}
	}
}

// Len reports the number of entries.
func (t Text) Len() int {
	return len(t.entries)
}

// Empty reports whether the mapping has no entries.
func (t Text) Empty() bool {
	return len(t.entries) == 0
}

// First returns the first entry in insertion order.
func (t Text) First() (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return t.entries[0], true
}

// Entries returns a copy of the entries in order.
func (t Text) Entries() []Entry {
	if len(t.entries) == 0 {
		return nil
	}
	return append([]Entry(nil), t.entries...)
}

// Languages returns the language codes in order.
func (t Text) Languages() []string {
	if len(t.entries) == 0 {
		return nil
	}
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Language
	}
	return out
}

// Map flattens the entries into a plain map, losing order.
func (t Text) Map() map[string]string {
	if len(t.entries) == 0 {
		return nil
	}
	out := make(map[string]string, len(t.entries))
	for _, e := range t.entries {
		out[e.Language] = e.Text
	}
	return out
}

// Clone returns an independent copy.
func (t Text) Clone() Text {
	return Text{entries: t.Entries()}
}
