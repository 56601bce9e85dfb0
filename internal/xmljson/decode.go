package xmljson

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gorewood/doxy2json/internal/xsd"
)

// xmlNamespace is the namespace bound to the reserved xml: prefix.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// DecodeError reports invalid content at a position in the document.
type DecodeError struct {
	Path string
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoder decodes XML documents declared by a schema.
type Decoder struct {
	schema *xsd.Schema
}

// NewDecoder returns a Decoder for documents of the given schema.
func NewDecoder(schema *xsd.Schema) *Decoder {
	return &Decoder{schema: schema}
}

// DecodeFile decodes the XML document at path.
func (d *Decoder) DecodeFile(path string) (any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	tree, err := d.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return tree, nil
}

// Decode reads one XML document from r and returns the content of its root
// element: an *Object, a scalar, or nil for an empty root.
func (d *Decoder) Decode(r io.Reader) (any, error) {
	s := &state{
		dec:      xml.NewDecoder(r),
		schema:   d.schema,
		prefixes: map[string]string{xmlNamespace: "xml"},
	}

	for {
		tok, err := s.token()
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		decl, ok := d.schema.Element(start.Name.Local)
		if !ok {
			return nil, s.errorf("root element <%s> is not declared by the schema", start.Name.Local)
		}
		return s.element(start, decl)
	}
}

// state carries the token stream through one Decode call.
type state struct {
	dec      *xml.Decoder
	schema   *xsd.Schema
	prefixes map[string]string
	path     []string
}

func (s *state) token() (xml.Token, error) {
	tok, err := s.dec.Token()
	if errors.Is(err, io.EOF) {
		if len(s.path) == 0 {
			return nil, errors.New("document has no root element")
		}
		return nil, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, fmt.Errorf("reading XML: %w", err)
	}
	return tok, nil
}

func (s *state) errorf(format string, args ...any) error {
	line, _ := s.dec.InputPos()
	return &DecodeError{
		Path: "/" + strings.Join(s.path, "/"),
		Line: line,
		Err:  fmt.Errorf(format, args...),
	}
}

func (s *state) element(start xml.StartElement, decl *xsd.Element) (any, error) {
	s.path = append(s.path, start.Name.Local)
	defer func() { s.path = s.path[:len(s.path)-1] }()

	if decl.Complex == nil {
		return s.simple(start, decl.Kind)
	}
	return s.complex(start, decl.Complex)
}

// simple decodes an element of a simple type.
func (s *state) simple(start xml.StartElement, kind xsd.Kind) (any, error) {
	for _, attr := range start.Attr {
		if s.isForeign(attr) {
			continue
		}
		return nil, s.errorf("unexpected attribute %q", attr.Name.Local)
	}

	var text strings.Builder
	for {
		tok, err := s.token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			return nil, s.errorf("unexpected element <%s> in simple content", t.Name.Local)
		case xml.EndElement:
			return s.convert(text.String(), kind)
		}
	}
}

// complex decodes an element of a complex type.
func (s *state) complex(start xml.StartElement, ct *xsd.ComplexType) (any, error) {
	attrs, err := s.attributes(start, ct)
	if err != nil {
		return nil, err
	}

	children := NewObject()
	var text strings.Builder
	for {
		tok, err := s.token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			if err := s.child(t, ct, children); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return s.assemble(ct, attrs, text.String(), children)
		}
	}
}

// attributes decodes the attributes of start, typed by ct.
func (s *state) attributes(start xml.StartElement, ct *xsd.ComplexType) (*Object, error) {
	for _, attr := range start.Attr {
		if attr.Name.Space == "xmlns" {
			s.prefixes[attr.Value] = attr.Name.Local
		}
	}

	attrs := NewObject()
	for _, attr := range start.Attr {
		if isNamespaceDecl(attr.Name) {
			continue
		}
		if attr.Name.Space != "" {
			attrs.Set(AttrPrefix+s.qualify(attr.Name), attr.Value)
			continue
		}
		decl, ok := ct.Attribute(attr.Name.Local)
		if !ok {
			if !ct.AnyAttribute {
				return nil, s.errorf("unexpected attribute %q", attr.Name.Local)
			}
			attrs.Set(AttrPrefix+attr.Name.Local, attr.Value)
			continue
		}
		value, err := s.convert(attr.Value, decl.Kind)
		if err != nil {
			return nil, err
		}
		attrs.Set(AttrPrefix+attr.Name.Local, value)
	}

	for _, decl := range ct.Attributes {
		if !decl.Required {
			continue
		}
		if _, ok := attrs.Get(AttrPrefix + decl.Name); !ok {
			return nil, s.errorf("missing required attribute %q", decl.Name)
		}
	}
	return attrs, nil
}

// child decodes one child element into children.
func (s *state) child(start xml.StartElement, ct *xsd.ComplexType, children *Object) error {
	name := start.Name.Local
	if decl, ok := ct.Child(name); ok {
		value, err := s.element(start, decl)
		if err != nil {
			return err
		}
		if decl.Repeated {
			appendItem(children, name, value)
			return nil
		}
		if _, exists := children.Get(name); exists {
			return s.errorf("element <%s> may occur only once", name)
		}
		children.Set(name, value)
		return nil
	}

	if !ct.Wildcard {
		return s.errorf("unexpected element <%s>", name)
	}

	// Wildcard content uses a global declaration when there is one.
	decl, ok := s.schema.Element(name)
	if !ok {
		decl = &xsd.Element{Name: name, Complex: xsd.AnyType()}
	}
	value, err := s.element(start, decl)
	if err != nil {
		return err
	}
	if existing, exists := children.Get(name); exists {
		if list, isList := existing.([]any); isList {
			children.Set(name, append(list, value))
		} else {
			children.Set(name, []any{existing, value})
		}
		return nil
	}
	children.Set(name, value)
	return nil
}

// assemble builds the value of a complex element once its end tag is read.
func (s *state) assemble(ct *xsd.ComplexType, attrs *Object, raw string, children *Object) (any, error) {
	var text any
	switch {
	case ct.HasText:
		if raw != "" {
			value, err := s.convert(raw, ct.TextKind)
			if err != nil {
				return nil, err
			}
			text = value
		}
	case ct.Mixed:
		if collapsed := strings.Join(strings.Fields(raw), " "); collapsed != "" {
			text = collapsed
		}
	default:
		if strings.TrimSpace(raw) != "" {
			return nil, s.errorf("unexpected character data %q", strings.TrimSpace(raw))
		}
	}

	if attrs.Len() == 0 && children.Len() == 0 {
		if text == nil && ct.HasText && ct.TextKind == xsd.KindString {
			return "", nil
		}
		return text, nil
	}

	result := attrs
	if text != nil {
		result.Set(TextKey, text)
	}
	for pair := children.pairs.Oldest(); pair != nil; pair = pair.Next() {
		result.Set(pair.Key, pair.Value)
	}
	return result, nil
}

// convert types a lexical value.
func (s *state) convert(raw string, kind xsd.Kind) (any, error) {
	switch kind {
	case xsd.KindInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, s.errorf("invalid integer %q", raw)
		}
		return n, nil
	case xsd.KindDecimal:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, s.errorf("invalid decimal %q", raw)
		}
		return f, nil
	case xsd.KindBoolean:
		switch strings.TrimSpace(raw) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, s.errorf("invalid boolean %q", raw)
	default:
		return raw, nil
	}
}

// isForeign reports whether attr is a namespace declaration or belongs to
// another namespace, such as xml:lang or xsi:noNamespaceSchemaLocation.
func (s *state) isForeign(attr xml.Attr) bool {
	return isNamespaceDecl(attr.Name) || attr.Name.Space != ""
}

// qualify renders a namespaced name with the prefix used in the document.
func (s *state) qualify(name xml.Name) string {
	prefix, ok := s.prefixes[name.Space]
	if !ok {
		prefix = name.Space
	}
	return prefix + ":" + name.Local
}

func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}

// appendItem appends value to the array stored under key.
func appendItem(o *Object, key string, value any) {
	if existing, ok := o.Get(key); ok {
		if list, isList := existing.([]any); isList {
			o.Set(key, append(list, value))
			return
		}
	}
	o.Set(key, []any{value})
}
