package schema

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/goliatone/go-fileform/pkg/i18n"
)

// RootElement is the local name of the document root.
const RootElement = "form"

// Parse decodes a schema document. Parsing fails closed: any structural
// problem returns a *ParseError and no partial schema.
func Parse(data []byte) (FormSchema, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader decodes a schema document from r.
func ParseReader(r io.Reader) (FormSchema, error) {
	var root node
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	if err := dec.Decode(&root); err != nil {
		return FormSchema{}, &ParseError{Kind: Malformed, Err: err}
	}
	if err := checkTrailing(dec); err != nil {
		return FormSchema{}, err
	}
	if root.XMLName.Local != RootElement {
		return FormSchema{}, &ParseError{
			Kind: Malformed,
			Err:  fmt.Errorf("root element is <%s>, expected <%s>", root.XMLName.Local, RootElement),
		}
	}

	out := FormSchema{
		Name: strings.TrimSpace(root.attr("name")),
	}

	filename, ok := root.child("filename")
	if !ok || strings.TrimSpace(filename.textContent()) == "" {
		return FormSchema{}, &ParseError{Kind: MissingFilename, Element: "filename"}
	}
	out.FileName = strings.TrimSpace(filename.textContent())
	if out.Name == "" {
		out.Name = out.FileName
	}

	filetype, ok := root.child("filetype")
	if !ok || strings.TrimSpace(filetype.textContent()) == "" {
		return FormSchema{}, &ParseError{Kind: MissingSyntax, Element: "filetype"}
	}
	syntax, err := ParseSyntax(filetype.textContent())
	if err != nil {
		return FormSchema{}, &ParseError{Kind: MissingSyntax, Element: "filetype", Err: err}
	}
	out.Syntax = syntax

	// Distinct names may still share an artifact key ("apiKey" and "APIKEY"
	// as constants), which would make one value shadow the other.
	keys := make(map[string]string)
	if fields, ok := root.child("fields"); ok {
		for _, el := range fields.children("field") {
			position := len(out.Fields) + 1
			field, err := parseField(el, position)
			if err != nil {
				return FormSchema{}, err
			}
			key := out.Syntax.Key(field.Name)
			if other, dup := keys[key]; dup {
				cause := errors.New("duplicate field name")
				if other != field.Name {
					cause = fmt.Errorf("shares the %s key %q with field %q", out.Syntax, key, other)
				}
				return FormSchema{}, &ParseError{Kind: InvalidFieldName, Field: position, Name: field.Name, Err: cause}
			}
			keys[key] = field.Name
			out.Fields = append(out.Fields, field)
		}
	}

	return out, nil
}

// checkTrailing rejects anything but whitespace, comments, and processing
// instructions after the root element.
func checkTrailing(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &ParseError{Kind: Malformed, Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return &ParseError{Kind: Malformed, Err: fmt.Errorf("unexpected element <%s> after </%s>", t.Name.Local, RootElement)}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return &ParseError{Kind: Malformed, Err: fmt.Errorf("unexpected text after </%s>", RootElement)}
			}
		}
	}
}

func parseField(el node, position int) (FieldDef, error) {
	field := FieldDef{
		Attributes: make(map[string]string, len(el.Attrs)),
		Elements:   make(map[string]string),
	}
	for _, attr := range el.Attrs {
		field.Attributes[attr.Name.Local] = attr.Value
	}

	field.Name = strings.TrimSpace(field.Attributes["name"])
	if field.Name == "" {
		return FieldDef{}, &ParseError{Kind: MissingFieldName, Field: position}
	}
	if !ValidFieldName(field.Name) {
		return FieldDef{}, &ParseError{
			Kind:  InvalidFieldName,
			Field: position,
			Name:  field.Name,
			Err:   errors.New("only letters, digits and underscores are allowed"),
		}
	}

	for _, child := range el.Nodes {
		tag := child.XMLName.Local
		value := strings.TrimSpace(child.textContent())
		switch tag {
		case ElementLabel:
			field.Label.Set(child.attr("language"), value)
		case ElementDescription:
			field.Description.Set(child.attr("language"), value)
		default:
			field.Elements[tag] = value
		}
	}

	// Legacy shorthand: <field name="x">value</field>. The field name doubles
	// as its label so the field can still be shown.
	if len(el.Nodes) == 0 {
		field.Value = strings.TrimSpace(el.textContent())
		field.Label.Set(i18n.Neutral, field.Name)
	}

	if !hasText(field.Label) {
		return FieldDef{}, &ParseError{Kind: MissingLabel, Element: ElementLabel, Field: position, Name: field.Name}
	}

	field.Kind = ParseKind(field.Elements[ElementFieldType])
	field.Options = splitOptions(field.Elements[ElementOptions])
	return field, nil
}

func hasText(t i18n.Text) bool {
	for _, e := range t.Entries() {
		if e.Text != "" {
			return true
		}
	}
	return false
}

func splitOptions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if option := strings.TrimSpace(line); option != "" {
			out = append(out, option)
		}
	}
	return out
}

// node is a generic element tree; encoding/xml keeps child order.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []node     `xml:",any"`
	Text    string     `xml:",chardata"`
}

func (n node) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (n node) child(local string) (node, bool) {
	for _, c := range n.Nodes {
		if c.XMLName.Local == local {
			return c, true
		}
	}
	return node{}, false
}

func (n node) children(local string) []node {
	var out []node
	for _, c := range n.Nodes {
		if c.XMLName.Local == local {
			out = append(out, c)
		}
	}
	return out
}

func (n node) textContent() string {
	if len(n.Nodes) == 0 {
		return n.Text
	}
	var b strings.Builder
	b.WriteString(n.Text)
	for _, c := range n.Nodes {
		b.WriteString(c.textContent())
	}
	return b.String()
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, _ := ianaindex.MIME.Encoding(charset)
	if enc == nil {
		enc, _ = ianaindex.IANA.Encoding(charset)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}
