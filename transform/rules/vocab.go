package rules

import (
	"regexp"
	"strings"

	"github.com/c360studio/semschema/transform"
	"github.com/c360studio/semschema/xsd"
)

// NamedEnumType turns named simple types with enumeration facets into
// SKOS concept schemes, one concept per value.
type NamedEnumType struct{ base }

// NewNamedEnumType creates the rule.
func NewNamedEnumType() *NamedEnumType {
	return &NamedEnumType{base{
		id:       "named-enum-type",
		priority: 100,
		desc:     "create SKOS concept schemes from named enumerations",
	}}
}

// Matches named simple types carrying enumeration facets.
func (r *NamedEnumType) Matches(n *xsd.Node, ctx *transform.Context) bool {
	return n.Kind == xsd.NodeSimpleType && n.Name != "" && n.HasEnumeration() &&
		!ctx.Config.ShouldSkip(n.Name)
}

// Apply builds the scheme and its concepts, pulling per-value
// definitions out of the documentation text when the facet itself has
// none.
func (r *NamedEnumType) Apply(n *xsd.Node, ctx *transform.Context) error {
	buildScheme(n, n.Name, ctx)
	return nil
}

// AnonymousEnumType handles inline enumerations inside an element: the
// scheme is named after the element with an _enum suffix.
type AnonymousEnumType struct{ base }

// NewAnonymousEnumType creates the rule.
func NewAnonymousEnumType() *AnonymousEnumType {
	return &AnonymousEnumType{base{
		id:       "anonymous-enum-type",
		priority: 90,
		desc:     "create SKOS concept schemes from inline enumerations",
	}}
}

// Matches anonymous simple types with enumeration facets owned by a
// named element.
func (r *AnonymousEnumType) Matches(n *xsd.Node, ctx *transform.Context) bool {
	if n.Kind != xsd.NodeSimpleType || n.Name != "" || !n.HasEnumeration() {
		return false
	}
	owner := n.OwningElement()
	return owner != nil && owner.EffectiveName() != "" &&
		!ctx.Config.ShouldSkip(owner.EffectiveName())
}

// Apply builds the suffixed scheme.
func (r *AnonymousEnumType) Apply(n *xsd.Node, ctx *transform.Context) error {
	owner := n.OwningElement()
	buildScheme(n, owner.EffectiveName()+"_enum", ctx)
	return nil
}

// buildScheme creates the concept scheme and one concept per value. The
// documentation of the enclosing definition often lists the meaning of
// each code, so values without their own annotation fall back to
// extraction from that text.
func buildScheme(n *xsd.Node, schemeName string, ctx *transform.Context) {
	doc := n.Doc
	if doc == "" {
		if owner := n.OwningElement(); owner != nil {
			doc = owner.Doc
		}
	}

	schemeURI, _ := ctx.EnsureConceptScheme(schemeName, doc)
	for _, v := range n.Values {
		def := v.Doc
		if def == "" {
			def = extractDefinition(doc, v.Value)
		}
		ctx.EnsureConcept(schemeName, schemeURI, v.Value, def)
	}
}

// definitionPatterns build the "value = text", "value: text", and
// "value - text" extractors for one enumeration value.
func definitionPatterns(value string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(value)
	return []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*` + quoted + `\s*=\s*(.+)$`),
		regexp.MustCompile(`(?m)^\s*` + quoted + `\s*:\s*(.+)$`),
		regexp.MustCompile(`(?m)^\s*` + quoted + `\s*-\s*(.+)$`),
	}
}

// extractDefinition pulls the definition of one enumeration value out of
// free documentation text, or returns empty.
func extractDefinition(doc, value string) string {
	if doc == "" || value == "" {
		return ""
	}
	for _, re := range definitionPatterns(value) {
		if m := re.FindStringSubmatch(doc); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
