package xsd

import (
	"errors"
	"fmt"
)

// maxTypeDepth bounds chains of simple type restrictions.
const maxTypeDepth = 32

type fillState int

const (
	stateNew fillState = iota
	stateFilling
	stateDone
)

// builder resolves raw declarations into a Schema. Named complex types are
// created up front so that recursive content models share pointers.
type builder struct {
	raw         *rawSchema
	complex     map[string]*rawComplexType
	simple      map[string]*rawSimpleType
	groups      map[string]*rawGroup
	globals     map[string]*rawElement
	types       map[string]*ComplexType
	state       map[string]fillState
	elements    map[string]*Element
	activeGroup map[string]bool
	anyType     *ComplexType
}

func newBuilder(raw *rawSchema) *builder {
	b := &builder{
		raw:         raw,
		complex:     make(map[string]*rawComplexType),
		simple:      make(map[string]*rawSimpleType),
		groups:      make(map[string]*rawGroup),
		globals:     make(map[string]*rawElement),
		types:       make(map[string]*ComplexType),
		state:       make(map[string]fillState),
		elements:    make(map[string]*Element),
		activeGroup: make(map[string]bool),
		anyType:     AnyType(),
	}
	for i := range raw.ComplexTypes {
		ct := &raw.ComplexTypes[i]
		b.complex[ct.Name] = ct
		b.types[ct.Name] = newComplexType(ct.Name)
	}
	for i := range raw.SimpleTypes {
		b.simple[raw.SimpleTypes[i].Name] = &raw.SimpleTypes[i]
	}
	for i := range raw.Groups {
		b.groups[raw.Groups[i].Name] = &raw.Groups[i]
	}
	for i := range raw.Elements {
		b.globals[raw.Elements[i].Name] = &raw.Elements[i]
	}
	return b
}

func (b *builder) build() (*Schema, error) {
	for i := range b.raw.Elements {
		if _, err := b.global(b.raw.Elements[i].Name); err != nil {
			return nil, err
		}
	}
	for name := range b.complex {
		if err := b.fill(name); err != nil {
			return nil, err
		}
	}
	return &Schema{elements: b.elements, types: b.types}, nil
}

// global returns the global element with the given name, building it on first use.
func (b *builder) global(name string) (*Element, error) {
	if e, ok := b.elements[name]; ok {
		return e, nil
	}
	raw, ok := b.globals[name]
	if !ok {
		return nil, fmt.Errorf("reference to undeclared element %q", name)
	}
	e := &Element{Name: name}
	b.elements[name] = e
	if err := b.resolveElementType(e, raw); err != nil {
		return nil, err
	}
	return e, nil
}

// element builds a local element declaration.
func (b *builder) element(raw *rawElement, repeated bool) (*Element, error) {
	repeated = repeated || isRepeated(raw.MaxOccurs)
	if raw.Ref != "" {
		g, err := b.global(localName(raw.Ref))
		if err != nil {
			return nil, err
		}
		return &Element{Name: g.Name, Repeated: repeated, Complex: g.Complex, Kind: g.Kind}, nil
	}
	if raw.Name == "" {
		return nil, errors.New("element without name or ref")
	}
	e := &Element{Name: raw.Name, Repeated: repeated}
	if err := b.resolveElementType(e, raw); err != nil {
		return nil, err
	}
	return e, nil
}

func (b *builder) resolveElementType(e *Element, raw *rawElement) error {
	switch {
	case raw.ComplexType != nil:
		ct := newComplexType("")
		if err := b.fillRaw(ct, raw.ComplexType); err != nil {
			return fmt.Errorf("element %q: %w", e.Name, err)
		}
		e.Complex = ct
	case raw.SimpleType != nil:
		kind, err := b.simpleKind(raw.SimpleType, 0)
		if err != nil {
			return fmt.Errorf("element %q: %w", e.Name, err)
		}
		e.Kind = kind
	case raw.Type != "":
		name := localName(raw.Type)
		if name == "anyType" {
			e.Complex = b.anyType
			return nil
		}
		if ct, ok := b.types[name]; ok {
			e.Complex = ct
			return nil
		}
		kind, err := b.kindOf(name, 0)
		if err != nil {
			return fmt.Errorf("element %q: %w", e.Name, err)
		}
		e.Kind = kind
	default:
		e.Complex = b.anyType
	}
	return nil
}

// fill populates the named complex type once.
func (b *builder) fill(name string) error {
	switch b.state[name] {
	case stateDone:
		return nil
	case stateFilling:
		return fmt.Errorf("complex type %q derives from itself", name)
	}
	b.state[name] = stateFilling
	if err := b.fillRaw(b.types[name], b.complex[name]); err != nil {
		return fmt.Errorf("complex type %q: %w", name, err)
	}
	b.state[name] = stateDone
	return nil
}

func (b *builder) fillRaw(ct *ComplexType, raw *rawComplexType) error {
	ct.Mixed = raw.Mixed == "true"
	ct.AnyAttribute = raw.AnyAttribute != nil

	if err := b.models(ct, raw.Sequence, raw.Choice, raw.All, raw.Group, false); err != nil {
		return err
	}
	if err := b.attributes(ct, raw.Attributes); err != nil {
		return err
	}
	if raw.SimpleContent != nil {
		if err := b.simpleContent(ct, raw.SimpleContent); err != nil {
			return err
		}
	}
	if raw.ComplexContent != nil {
		if err := b.complexContent(ct, raw.ComplexContent); err != nil {
			return err
		}
	}
	return nil
}

func derivation(content *rawContent) (*rawDerivation, error) {
	switch {
	case content.Extension != nil:
		return content.Extension, nil
	case content.Restriction != nil:
		return content.Restriction, nil
	}
	return nil, errors.New("content without extension or restriction")
}

func (b *builder) simpleContent(ct *ComplexType, content *rawContent) error {
	deriv, err := derivation(content)
	if err != nil {
		return err
	}
	base := localName(deriv.Base)
	ct.HasText = true
	if _, ok := b.types[base]; ok {
		if err := b.fill(base); err != nil {
			return err
		}
		parent := b.types[base]
		ct.TextKind = parent.TextKind
		for _, a := range parent.Attributes {
			ct.addAttribute(a)
		}
	} else {
		kind, err := b.kindOf(base, 0)
		if err != nil {
			return err
		}
		ct.TextKind = kind
	}
	return b.attributes(ct, deriv.Attributes)
}

func (b *builder) complexContent(ct *ComplexType, content *rawContent) error {
	deriv, err := derivation(content)
	if err != nil {
		return err
	}
	base := localName(deriv.Base)
	if parent, ok := b.types[base]; ok && content.Extension != nil {
		if err := b.fill(base); err != nil {
			return err
		}
		ct.Mixed = ct.Mixed || parent.Mixed
		ct.Wildcard = ct.Wildcard || parent.Wildcard
		ct.AnyAttribute = ct.AnyAttribute || parent.AnyAttribute
		for _, a := range parent.Attributes {
			ct.addAttribute(a)
		}
		for _, child := range parent.Children {
			copied := *child
			ct.addChild(&copied)
		}
	}
	if err := b.models(ct, deriv.Sequence, deriv.Choice, deriv.All, deriv.Group, false); err != nil {
		return err
	}
	return b.attributes(ct, deriv.Attributes)
}

func (b *builder) models(ct *ComplexType, seq, choice, all *rawModel, group *rawGroupRef, repeated bool) error {
	for _, m := range []*rawModel{seq, choice, all} {
		if m == nil {
			continue
		}
		if err := b.model(ct, m, repeated); err != nil {
			return err
		}
	}
	if group != nil {
		return b.groupRef(ct, group, repeated)
	}
	return nil
}

func (b *builder) model(ct *ComplexType, m *rawModel, repeated bool) error {
	repeated = repeated || isRepeated(m.MaxOccurs)
	for i := range m.Elements {
		e, err := b.element(&m.Elements[i], repeated)
		if err != nil {
			return err
		}
		ct.addChild(e)
	}
	for i := range m.Sequences {
		if err := b.model(ct, &m.Sequences[i], repeated); err != nil {
			return err
		}
	}
	for i := range m.Choices {
		if err := b.model(ct, &m.Choices[i], repeated); err != nil {
			return err
		}
	}
	for i := range m.Groups {
		if err := b.groupRef(ct, &m.Groups[i], repeated); err != nil {
			return err
		}
	}
	if len(m.Any) > 0 {
		ct.Wildcard = true
	}
	return nil
}

func (b *builder) groupRef(ct *ComplexType, ref *rawGroupRef, repeated bool) error {
	name := localName(ref.Ref)
	group, ok := b.groups[name]
	if !ok {
		return fmt.Errorf("reference to undeclared group %q", name)
	}
	if b.activeGroup[name] {
		return fmt.Errorf("group %q references itself", name)
	}
	b.activeGroup[name] = true
	defer delete(b.activeGroup, name)

	return b.models(ct, group.Sequence, group.Choice, group.All, nil, repeated || isRepeated(ref.MaxOccurs))
}

func (b *builder) attributes(ct *ComplexType, raws []rawAttribute) error {
	for _, raw := range raws {
		if raw.Name == "" {
			continue
		}
		attr := &Attribute{Name: raw.Name, Required: raw.Use == "required"}
		switch {
		case raw.SimpleType != nil:
			kind, err := b.simpleKind(raw.SimpleType, 0)
			if err != nil {
				return fmt.Errorf("attribute %q: %w", raw.Name, err)
			}
			attr.Kind = kind
		case raw.Type != "":
			kind, err := b.kindOf(localName(raw.Type), 0)
			if err != nil {
				return fmt.Errorf("attribute %q: %w", raw.Name, err)
			}
			attr.Kind = kind
		}
		ct.addAttribute(attr)
	}
	return nil
}

// kindOf resolves a simple type name to its primitive kind.
func (b *builder) kindOf(name string, depth int) (Kind, error) {
	if kind, ok := builtinKind(name); ok {
		return kind, nil
	}
	st, ok := b.simple[name]
	if !ok {
		return KindString, fmt.Errorf("unknown type %q", name)
	}
	return b.simpleKind(st, depth)
}

func (b *builder) simpleKind(st *rawSimpleType, depth int) (Kind, error) {
	if depth > maxTypeDepth {
		return KindString, fmt.Errorf("simple type %q: restriction chain too deep", st.Name)
	}
	if st.Restriction == nil || st.Restriction.Base == "" {
		// Lists and unions decode as plain strings.
		return KindString, nil
	}
	return b.kindOf(localName(st.Restriction.Base), depth+1)
}
