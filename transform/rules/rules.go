// Package rules ships the standard rule set for converting XSD schemas
// into an OWL/SKOS graph: class creation, property creation with
// literal/reference classification, SKOS vocabularies from enumerations,
// cross-class domain consolidation, and cleanup.
package rules

import (
	"fmt"

	"github.com/c360studio/semschema/naming"
	"github.com/c360studio/semschema/transform"
	"github.com/c360studio/semschema/vocabulary"
	"github.com/c360studio/semschema/xsd"
)

// Metadata keys shared between phases.
const (
	// metaParentClass carries the class URI an element's property must
	// be domained on, set by the anonymous complex type rule.
	metaParentClass = "parent_class"

	// metaSandwich marks an element whose anonymous complex type wraps
	// exactly one simple element.
	metaSandwich = "sandwich"
)

// base carries the identity shared by every rule.
type base struct {
	id       string
	priority int
	desc     string
}

func (b base) ID() string          { return b.id }
func (b base) Priority() int       { return b.priority }
func (b base) Description() string { return b.desc }

// containingClass resolves the class URI an element's property belongs
// to: parent metadata first, then the nearest named complex type, then
// the element owning the nearest anonymous complex type.
func containingClass(n *xsd.Node, ctx *transform.Context) string {
	if uri := ctx.MetaString(n, metaParentClass); uri != "" {
		return uri
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind != xsd.NodeComplexType {
			continue
		}
		if p.Name != "" {
			return ctx.Naming.ClassURI(p.Name)
		}
		if owner := p.OwningElement(); owner != nil && owner.Name != "" {
			return ctx.Naming.ClassURI(naming.UpperInitial(owner.Name))
		}
	}
	return ""
}

// createProperty classifies the node and creates or enhances the
// matching property kind. It attaches forced-override comments and, for
// numeric-family types, a note recording the original XSD type.
func createProperty(n *xsd.Node, name, domain string, ctx *transform.Context) {
	cls := transform.Classify(n, ctx)

	var uri string
	if cls.Kind == transform.LiteralProperty {
		uri, _ = ctx.EnsureDatatypeProperty(name, domain, cls.Range, n.Doc, n.IsFunctional())
	} else {
		uri, _ = ctx.EnsureObjectProperty(name, domain, cls.Range, n.Doc, n.IsFunctional())
	}

	if cls.Comment != "" {
		ctx.Annotate(uri, vocabulary.RDFSComment, cls.Comment)
	}
	if typeName := xsd.LocalPart(n.TypeName); typeName != "" && ctx.Config.LiteralTypeRE().MatchString(typeName) {
		ctx.Annotate(uri, vocabulary.RDFSComment, fmt.Sprintf("Original XSD type was %s.", typeName))
	}
}

// ontologyIRI derives the ontology node: the schema's target namespace
// when present, otherwise the base URI without its trailing separator.
func ontologyIRI(ctx *transform.Context) string {
	if ns := ctx.Tree.Schema.TargetNamespace; ns != "" {
		return ns
	}
	base := ctx.Naming.BaseURI()
	return base[:len(base)-1]
}
