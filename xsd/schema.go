// Package xsd parses W3C XML Schema documents into a read-only tree view
// for the transformation pipeline: typed structs for the schema model, a
// uniform node tree for traversal, and name/ref/type lookup indexes.
package xsd

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/c360studio/semstreams/pkg/errs"
)

// Schema is the root of a parsed XSD document.
type Schema struct {
	XMLName            xml.Name       `xml:"schema"`
	TargetNamespace    string         `xml:"targetNamespace,attr"`
	ElementFormDefault string         `xml:"elementFormDefault,attr"`
	Version            string         `xml:"version,attr"`
	Elements           []*Element     `xml:"element"`
	ComplexTypes       []*ComplexType `xml:"complexType"`
	SimpleTypes        []*SimpleType  `xml:"simpleType"`
	Annotation         *Annotation    `xml:"annotation"`

	// Source is the file path the schema was parsed from, when known.
	Source string `xml:"-"`
}

// Element is an xs:element declaration, top-level or nested.
type Element struct {
	Name        string       `xml:"name,attr"`
	Type        string       `xml:"type,attr"`
	Ref         string       `xml:"ref,attr"`
	MinOccurs   string       `xml:"minOccurs,attr"`
	MaxOccurs   string       `xml:"maxOccurs,attr"`
	Annotation  *Annotation  `xml:"annotation"`
	ComplexType *ComplexType `xml:"complexType"`
	SimpleType  *SimpleType  `xml:"simpleType"`
}

// ComplexType is an xs:complexType definition, named or anonymous.
type ComplexType struct {
	Name           string      `xml:"name,attr"`
	Annotation     *Annotation `xml:"annotation"`
	Sequence       *Particle   `xml:"sequence"`
	Choice         *Particle   `xml:"choice"`
	All            *Particle   `xml:"all"`
	Attributes     []*Attribute `xml:"attribute"`
	SimpleContent  *Content    `xml:"simpleContent"`
	ComplexContent *Content    `xml:"complexContent"`
}

// Particle is an xs:sequence, xs:choice, or xs:all model group.
type Particle struct {
	MinOccurs string      `xml:"minOccurs,attr"`
	MaxOccurs string      `xml:"maxOccurs,attr"`
	Elements  []*Element  `xml:"element"`
	Choices   []*Particle `xml:"choice"`
	Sequences []*Particle `xml:"sequence"`
}

// Content is an xs:simpleContent or xs:complexContent wrapper.
type Content struct {
	Extension   *Extension   `xml:"extension"`
	Restriction *Restriction `xml:"restriction"`
}

// Extension is an xs:extension of a base type.
type Extension struct {
	Base       string       `xml:"base,attr"`
	Sequence   *Particle    `xml:"sequence"`
	Attributes []*Attribute `xml:"attribute"`
}

// SimpleType is an xs:simpleType definition, named or anonymous.
type SimpleType struct {
	Name        string       `xml:"name,attr"`
	Annotation  *Annotation  `xml:"annotation"`
	Restriction *Restriction `xml:"restriction"`
}

// Restriction is an xs:restriction with the facets classification needs.
type Restriction struct {
	Base         string         `xml:"base,attr"`
	Enumerations []*Enumeration `xml:"enumeration"`
	Patterns     []*Facet       `xml:"pattern"`
	MinLength    *Facet         `xml:"minLength"`
	MaxLength    *Facet         `xml:"maxLength"`
	TotalDigits  *Facet         `xml:"totalDigits"`
}

// Enumeration is one xs:enumeration facet value.
type Enumeration struct {
	Value      string      `xml:"value,attr"`
	Annotation *Annotation `xml:"annotation"`
}

// Facet is a value-carrying restriction facet.
type Facet struct {
	Value string `xml:"value,attr"`
}

// Attribute is an xs:attribute declaration.
type Attribute struct {
	Name       string      `xml:"name,attr"`
	Type       string      `xml:"type,attr"`
	Use        string      `xml:"use,attr"`
	Annotation *Annotation `xml:"annotation"`
}

// Annotation is an xs:annotation block.
type Annotation struct {
	Documentation []string `xml:"documentation"`
}

// Text joins all documentation strings of the annotation, trimmed.
func (a *Annotation) Text() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, len(a.Documentation))
	for _, d := range a.Documentation {
		if s := strings.TrimSpace(d); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// Parse unmarshals an XSD document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := xml.Unmarshal(data, &s); err != nil {
		return nil, errs.WrapInvalid(err, "xsd", "Parse", "unmarshal schema")
	}
	return &s, nil
}

// ParseFile reads and parses an XSD document from disk.
func ParseFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.WrapFatal(err, "xsd", "ParseFile", "read schema file")
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.Source = path
	return s, nil
}

// LocalPart strips a namespace prefix from a qualified name, so both
// "xs:string" and "string" yield "string".
func LocalPart(name string) string {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// IsXSDBuiltin reports whether a declared type name refers to a schema
// built-in type such as xs:string or xsd:decimal.
func IsXSDBuiltin(name string) bool {
	return strings.HasPrefix(name, "xs:") || strings.HasPrefix(name, "xsd:")
}
