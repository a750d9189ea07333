package artifact

import (
	"strings"

	"github.com/goliatone/go-fileform/pkg/schema"
)

var escaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Escape prefixes backslashes and single quotes with a backslash. No other
// character is altered.
func Escape(value string) string {
	return escaper.Replace(value)
}

// Unescape reverses Escape following single-quoted literal rules: `\\` and
// `\'` collapse, any other backslash is kept as is.
func Unescape(literal string) string {
	if !strings.Contains(literal, `\`) {
		return literal
	}
	var b strings.Builder
	b.Grow(len(literal))
	for i := 0; i < len(literal); i++ {
		c := literal[i]
		if c == '\\' && i+1 < len(literal) && (literal[i+1] == '\\' || literal[i+1] == '\'') {
			b.WriteByte(literal[i+1])
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ConstantName is the constant used for a field in constants artifacts.
func ConstantName(field string) string {
	return schema.SyntaxConstants.Key(field)
}

// VariableName is the variable used for a field in variables artifacts.
func VariableName(field string) string {
	return schema.SyntaxVariables.Key(field)
}

// KeyFor returns the identifier a field is stored under for syntax.
func KeyFor(syntax schema.Syntax, field string) string {
	return syntax.Key(field)
}
