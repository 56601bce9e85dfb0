// Package xsd reads the subset of XML Schema used by Doxygen's compound.xsd.
//
// The resulting Schema tells a decoder, for every element, which attributes
// and children it may carry, which children repeat, and how simple values are
// typed. It is not a validating XML Schema processor.
package xsd

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

//go:embed compound.xsd
var compoundXSD []byte

// Kind is the primitive type of a simple value.
type Kind int

// Simple value kinds.
const (
	KindString Kind = iota
	KindInteger
	KindBoolean
	KindDecimal
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindDecimal:
		return "decimal"
	default:
		return "string"
	}
}

// Element declares an element and its content model.
// Complex is nil for elements of a simple type.
type Element struct {
	Name     string
	Repeated bool
	Complex  *ComplexType
	Kind     Kind
}

// Attribute declares an attribute of a complex type.
type Attribute struct {
	Name     string
	Kind     Kind
	Required bool
}

// ComplexType describes attributes and child elements of an element.
type ComplexType struct {
	Name string
	// Mixed is set when character data may appear between children.
	Mixed bool
	// HasText is set for simple content: text of kind TextKind plus attributes.
	HasText  bool
	TextKind Kind
	// Wildcard is set when undeclared children are accepted.
	Wildcard bool
	// AnyAttribute is set when undeclared attributes are accepted.
	AnyAttribute bool
	Attributes   []*Attribute
	Children     []*Element

	attrIndex  map[string]*Attribute
	childIndex map[string]*Element
}

// Attribute returns the declared attribute with the given name.
func (t *ComplexType) Attribute(name string) (*Attribute, bool) {
	a, ok := t.attrIndex[name]
	return a, ok
}

// Child returns the declared child element with the given name.
func (t *ComplexType) Child(name string) (*Element, bool) {
	e, ok := t.childIndex[name]
	return e, ok
}

func newComplexType(name string) *ComplexType {
	return &ComplexType{
		Name:       name,
		attrIndex:  make(map[string]*Attribute),
		childIndex: make(map[string]*Element),
	}
}

func (t *ComplexType) addAttribute(a *Attribute) {
	if _, exists := t.attrIndex[a.Name]; exists {
		return
	}
	t.attrIndex[a.Name] = a
	t.Attributes = append(t.Attributes, a)
}

// addChild registers a child. A name declared twice within one content model
// may occur more than once, so it is marked repeated.
func (t *ComplexType) addChild(e *Element) {
	if prev, exists := t.childIndex[e.Name]; exists {
		prev.Repeated = true
		return
	}
	t.childIndex[e.Name] = e
	t.Children = append(t.Children, e)
}

// AnyType returns a lax type accepting any attributes, children and text.
// It stands in for elements declared without a type and for undeclared
// elements matched by a wildcard.
func AnyType() *ComplexType {
	t := newComplexType("anyType")
	t.Mixed = true
	t.Wildcard = true
	t.AnyAttribute = true
	return t
}

// Schema holds the global element and type declarations of a schema document.
type Schema struct {
	elements map[string]*Element
	types    map[string]*ComplexType
}

// Element returns the global element declaration with the given name.
func (s *Schema) Element(name string) (*Element, bool) {
	e, ok := s.elements[name]
	return e, ok
}

// Type returns the named complex type.
func (s *Schema) Type(name string) (*ComplexType, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Default returns the schema for Doxygen's compound XML files bundled with
// this package.
func Default() (*Schema, error) {
	return Parse(bytes.NewReader(compoundXSD))
}

// Load reads the schema document at path.
func Load(path string) (*Schema, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schema %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	schema, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	return schema, nil
}

// Parse reads a schema document from r.
func Parse(r io.Reader) (*Schema, error) {
	var raw rawSchema
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}
	if len(raw.Elements) == 0 {
		return nil, errors.New("schema declares no global elements")
	}
	return newBuilder(&raw).build()
}

// isRepeated reports whether a maxOccurs value allows more than one occurrence.
func isRepeated(maxOccurs string) bool {
	switch maxOccurs {
	case "", "0", "1":
		return false
	case "unbounded":
		return true
	}
	n, err := strconv.Atoi(maxOccurs)
	return err == nil && n > 1
}

// localName strips a namespace prefix from a QName.
func localName(qname string) string {
	if _, local, ok := strings.Cut(qname, ":"); ok {
		return local
	}
	return qname
}

// builtinKind maps XML Schema builtin type names to a Kind.
func builtinKind(name string) (Kind, bool) {
	switch name {
	case "integer", "int", "long", "short", "byte",
		"nonNegativeInteger", "positiveInteger", "nonPositiveInteger", "negativeInteger",
		"unsignedLong", "unsignedInt", "unsignedShort", "unsignedByte":
		return KindInteger, true
	case "boolean":
		return KindBoolean, true
	case "decimal", "float", "double":
		return KindDecimal, true
	case "string", "normalizedString", "token", "anyURI", "NMTOKEN", "NMTOKENS",
		"Name", "NCName", "ID", "IDREF", "IDREFS", "language", "QName", "anySimpleType",
		"date", "dateTime", "time", "duration":
		return KindString, true
	}
	return KindString, false
}
