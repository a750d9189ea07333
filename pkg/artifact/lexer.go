package artifact

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokOpenTag
	tokCloseTag
	tokIdent
	tokVariable
	tokString
	tokArrow
	tokPunct
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of file"
	case tokOpenTag:
		return "open tag"
	case tokCloseTag:
		return "close tag"
	case tokIdent:
		return "identifier"
	case tokVariable:
		return "variable"
	case tokString:
		return "string"
	case tokArrow:
		return "'=>'"
	default:
		return "punctuation"
	}
}

type token struct {
	typ  tokenType
	lit  string // decoded string value, identifier, or punctuation
	line int
	col  int
}

func (t token) is(typ tokenType, lit string) bool {
	return t.typ == typ && t.lit == lit
}

// lexer tokenizes the subset of PHP used by generated artifacts: open/close
// tags, identifiers, $variables, single-quoted strings, '=>' and single
// character punctuation. Comments and whitespace are skipped.
type lexer struct {
	input string
	pos   int
	line  int
	col   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1, col: 1}
}

func (l *lexer) tokenize() ([]token, error) {
	var out []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.typ == tokEOF {
			return out, nil
		}
	}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *lexer) peekAt(offset int) rune {
	p := l.pos + offset
	if p >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[p:])
	return r
}

func (l *lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) errorf(line, col int, msg string) *syntaxError {
	return &syntaxError{Line: line, Col: col, Msg: msg}
}

// skip advances past whitespace and comments.
func (l *lexer) skip() error {
	for l.pos < len(l.input) {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.advance()
		case r == '#' || (r == '/' && l.peekAt(1) == '/'):
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		case r == '/' && l.peekAt(1) == '*':
			line, col := l.line, l.col
			end := strings.Index(l.input[l.pos+2:], "*/")
			if end < 0 {
				return l.errorf(line, col, "unterminated comment")
			}
			for stop := l.pos + 2 + end + 2; l.pos < stop; {
				l.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) next() (token, error) {
	if err := l.skip(); err != nil {
		return token{}, err
	}
	if l.pos >= len(l.input) {
		return token{typ: tokEOF, line: l.line, col: l.col}, nil
	}

	line, col := l.line, l.col
	r := l.peek()

	switch {
	case strings.HasPrefix(l.input[l.pos:], "<?php"):
		for i := 0; i < len("<?php"); i++ {
			l.advance()
		}
		return token{typ: tokOpenTag, lit: "<?php", line: line, col: col}, nil
	case strings.HasPrefix(l.input[l.pos:], "?>"):
		l.advance()
		l.advance()
		return token{typ: tokCloseTag, lit: "?>", line: line, col: col}, nil
	case r == '\'':
		return l.scanString(line, col)
	case r == '$':
		l.advance()
		if !isIdentStart(l.peek()) {
			return token{}, l.errorf(line, col, "expected variable name after '$'")
		}
		name := l.scanIdent()
		return token{typ: tokVariable, lit: name, line: line, col: col}, nil
	case isIdentStart(r):
		return token{typ: tokIdent, lit: l.scanIdent(), line: line, col: col}, nil
	case r == '=' && l.peekAt(1) == '>':
		l.advance()
		l.advance()
		return token{typ: tokArrow, lit: "=>", line: line, col: col}, nil
	}

	switch r {
	case '(', ')', '[', ']', '!', ',', ';', '=':
		l.advance()
		return token{typ: tokPunct, lit: string(r), line: line, col: col}, nil
	}
	return token{}, l.errorf(line, col, "unexpected character "+quoteRune(r))
}

// scanString reads a single-quoted literal and returns its decoded value.
func (l *lexer) scanString(line, col int) (token, error) {
	l.advance() // opening quote
	start := l.pos
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch c {
		case '\\':
			l.advance()
			if l.pos < len(l.input) {
				l.advance()
			}
		case '\'':
			raw := l.input[start:l.pos]
			l.advance()
			return token{typ: tokString, lit: Unescape(raw), line: line, col: col}, nil
		default:
			l.advance()
		}
	}
	return token{}, l.errorf(line, col, "unterminated string")
}

func (l *lexer) scanIdent() string {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.peek()) {
		l.advance()
	}
	return l.input[start:l.pos]
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}
