package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-fileform/pkg/schema"
)

// ReadPrior reconstructs the previous value of every field in fieldNames
// from the artifact at path. A missing artifact yields an empty map and no
// error. A present but unreadable artifact yields an empty map and a
// *ReadError; callers treat that as "no defaults". Fields the artifact does
// not define are omitted.
func ReadPrior(path string, syntax schema.Syntax, fieldNames []string) (map[string]string, error) {
	out := make(map[string]string)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return out, &ReadError{Path: path, Syntax: syntax, Err: err}
	}

	decoded, err := Decode(data, syntax)
	if err != nil {
		readErr := &ReadError{Path: path, Syntax: syntax, Err: err}
		var synErr *syntaxError
		if errors.As(err, &synErr) {
			readErr.Line, readErr.Col = synErr.Line, synErr.Col
		}
		return out, readErr
	}

	for _, name := range fieldNames {
		if value, ok := decoded[KeyFor(syntax, name)]; ok {
			out[name] = value
		}
	}
	return out, nil
}

// Decode parses artifact content in the given syntax and returns every
// defined key (constant name, variable name, or array key) with its value.
func Decode(data []byte, syntax schema.Syntax) (map[string]string, error) {
	tokens, err := newLexer(string(data)).tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, values: make(map[string]string)}

	switch syntax {
	case schema.SyntaxConstants:
		err = p.parseConstants()
	case schema.SyntaxVariables:
		err = p.parseVariables()
	case schema.SyntaxAssocArray:
		err = p.parseAssocArray()
	default:
		err = fmt.Errorf("unsupported syntax %s", syntax)
	}
	if err != nil {
		return nil, err
	}
	return p.values, nil
}

type parser struct {
	tokens []token
	pos    int
	values map[string]string
}

func (p *parser) peek() token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ tokenType, lit string) (token, error) {
	tok := p.advance()
	if tok.typ != typ || (lit != "" && tok.lit != lit) {
		want := typ.String()
		if lit != "" {
			want = "'" + lit + "'"
		}
		return tok, errorAt(tok, "expected %s, found %s %q", want, tok.typ, tok.lit)
	}
	return tok, nil
}

func (p *parser) expectPunct(chars ...string) error {
	for _, c := range chars {
		if _, err := p.expect(tokPunct, c); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) expectString() (string, error) {
	tok, err := p.expect(tokString, "")
	return tok.lit, err
}

// skipTags consumes open and close tags between statements.
func (p *parser) skipTags() {
	for {
		tok := p.peek()
		if tok.typ != tokOpenTag && tok.typ != tokCloseTag {
			return
		}
		p.advance()
	}
}

// parseConstants accepts a sequence of
//
//	if (!defined('NAME')) define('NAME', 'value');
//	define('NAME', 'value');
func (p *parser) parseConstants() error {
	for {
		p.skipTags()
		tok := p.peek()
		switch {
		case tok.typ == tokEOF:
			return nil
		case tok.is(tokIdent, "if"):
			p.advance()
			if err := p.expectPunct("(", "!"); err != nil {
				return err
			}
			if _, err := p.expect(tokIdent, "defined"); err != nil {
				return err
			}
			if err := p.expectPunct("("); err != nil {
				return err
			}
			if _, err := p.expectString(); err != nil {
				return err
			}
			if err := p.expectPunct(")", ")"); err != nil {
				return err
			}
			if err := p.parseDefine(); err != nil {
				return err
			}
		case tok.is(tokIdent, "define"):
			if err := p.parseDefine(); err != nil {
				return err
			}
		default:
			return errorAt(tok, "expected constant definition, found %s %q", tok.typ, tok.lit)
		}
	}
}

func (p *parser) parseDefine() error {
	if _, err := p.expect(tokIdent, "define"); err != nil {
		return err
	}
	if err := p.expectPunct("("); err != nil {
		return err
	}
	name, err := p.expectString()
	if err != nil {
		return err
	}
	if err := p.expectPunct(","); err != nil {
		return err
	}
	value, err := p.expectString()
	if err != nil {
		return err
	}
	if err := p.expectPunct(")", ";"); err != nil {
		return err
	}
	// A constant keeps its first definition.
	if _, exists := p.values[name]; !exists {
		p.values[name] = value
	}
	return nil
}

// parseVariables accepts a sequence of
//
//	$name = 'value';
func (p *parser) parseVariables() error {
	for {
		p.skipTags()
		tok := p.peek()
		if tok.typ == tokEOF {
			return nil
		}
		variable, err := p.expect(tokVariable, "")
		if err != nil {
			return err
		}
		if err := p.expectPunct("="); err != nil {
			return err
		}
		value, err := p.expectString()
		if err != nil {
			return err
		}
		if err := p.expectPunct(";"); err != nil {
			return err
		}
		p.values[variable.lit] = value
	}
}

// parseAssocArray accepts
//
//	return ['key' => 'value', ...];
//	return array('key' => 'value', ...);
//
// with an optional trailing comma and semicolon.
func (p *parser) parseAssocArray() error {
	p.skipTags()
	if _, err := p.expect(tokIdent, "return"); err != nil {
		return err
	}

	closing := "]"
	if p.peek().is(tokIdent, "array") {
		p.advance()
		if err := p.expectPunct("("); err != nil {
			return err
		}
		closing = ")"
	} else if err := p.expectPunct("["); err != nil {
		return err
	}

	for {
		if p.peek().is(tokPunct, closing) {
			p.advance()
			break
		}
		key, err := p.expectString()
		if err != nil {
			return err
		}
		if _, err := p.expect(tokArrow, ""); err != nil {
			return err
		}
		value, err := p.expectString()
		if err != nil {
			return err
		}
		p.values[key] = value

		if p.peek().is(tokPunct, ",") {
			p.advance()
			continue
		}
		if err := p.expectPunct(closing); err != nil {
			return err
		}
		break
	}

	if p.peek().is(tokPunct, ";") {
		p.advance()
	}
	p.skipTags()
	if tok := p.peek(); tok.typ != tokEOF {
		return errorAt(tok, "unexpected %s %q after returned array", tok.typ, tok.lit)
	}
	return nil
}
