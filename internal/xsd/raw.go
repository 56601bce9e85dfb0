package xsd

// The raw* types mirror the subset of XML Schema that Doxygen's compound.xsd
// uses. Tags match on local names only, so any prefix bound to the XML Schema
// namespace (xsd:, xs:) is accepted.

type rawSchema struct {
	Elements     []rawElement     `xml:"element"`
	ComplexTypes []rawComplexType `xml:"complexType"`
	SimpleTypes  []rawSimpleType  `xml:"simpleType"`
	Groups       []rawGroup       `xml:"group"`
}

type rawElement struct {
	Name        string          `xml:"name,attr"`
	Ref         string          `xml:"ref,attr"`
	Type        string          `xml:"type,attr"`
	MaxOccurs   string          `xml:"maxOccurs,attr"`
	ComplexType *rawComplexType `xml:"complexType"`
	SimpleType  *rawSimpleType  `xml:"simpleType"`
}

type rawComplexType struct {
	Name           string         `xml:"name,attr"`
	Mixed          string         `xml:"mixed,attr"`
	Sequence       *rawModel      `xml:"sequence"`
	Choice         *rawModel      `xml:"choice"`
	All            *rawModel      `xml:"all"`
	Group          *rawGroupRef   `xml:"group"`
	Attributes     []rawAttribute `xml:"attribute"`
	SimpleContent  *rawContent    `xml:"simpleContent"`
	AnyAttribute   *struct{}      `xml:"anyAttribute"`
	ComplexContent *rawContent    `xml:"complexContent"`
}

type rawModel struct {
	MaxOccurs string        `xml:"maxOccurs,attr"`
	Elements  []rawElement  `xml:"element"`
	Sequences []rawModel    `xml:"sequence"`
	Choices   []rawModel    `xml:"choice"`
	Groups    []rawGroupRef `xml:"group"`
	Any       []rawAny      `xml:"any"`
}

type rawGroup struct {
	Name     string    `xml:"name,attr"`
	Sequence *rawModel `xml:"sequence"`
	Choice   *rawModel `xml:"choice"`
	All      *rawModel `xml:"all"`
}

type rawGroupRef struct {
	Ref       string `xml:"ref,attr"`
	MaxOccurs string `xml:"maxOccurs,attr"`
}

type rawAny struct {
	MaxOccurs       string `xml:"maxOccurs,attr"`
	ProcessContents string `xml:"processContents,attr"`
}

type rawAttribute struct {
	Name       string         `xml:"name,attr"`
	Type       string         `xml:"type,attr"`
	Use        string         `xml:"use,attr"`
	SimpleType *rawSimpleType `xml:"simpleType"`
}

type rawContent struct {
	Extension   *rawDerivation `xml:"extension"`
	Restriction *rawDerivation `xml:"restriction"`
}

type rawDerivation struct {
	Base       string         `xml:"base,attr"`
	Sequence   *rawModel      `xml:"sequence"`
	Choice     *rawModel      `xml:"choice"`
	All        *rawModel      `xml:"all"`
	Group      *rawGroupRef   `xml:"group"`
	Attributes []rawAttribute `xml:"attribute"`
}

type rawSimpleType struct {
	Name        string          `xml:"name,attr"`
	Restriction *rawRestriction `xml:"restriction"`
	List        *struct{}       `xml:"list"`
	Union       *struct{}       `xml:"union"`
}

type rawRestriction struct {
	Base string `xml:"base,attr"`
}
