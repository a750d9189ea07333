// Package i18n resolves per-language label and description text declared in
// file form schemas. Values are kept in an ordered Text mapping because the
// fallback rules pick "the first remaining entry" when no installed language
// matches, and that choice must be stable across runs.
package i18n
