package rules

import (
	"github.com/c360studio/semschema/graph"
	"github.com/c360studio/semschema/naming"
	"github.com/c360studio/semschema/transform"
	"github.com/c360studio/semschema/vocabulary"
	"github.com/c360studio/semschema/xsd"
)

// OntologyHeader declares the owl:Ontology node from the schema's target
// namespace before any entity is created.
type OntologyHeader struct{ base }

// NewOntologyHeader creates the rule.
func NewOntologyHeader() *OntologyHeader {
	return &OntologyHeader{base{
		id:       "ontology-header",
		priority: 1000,
		desc:     "declare the ontology node from the target namespace",
	}}
}

// Matches only the document root.
func (r *OntologyHeader) Matches(n *xsd.Node, _ *transform.Context) bool {
	return n.Kind == xsd.NodeSchema
}

// Apply declares the ontology with its version info. The schema version
// attribute is used so repeated runs produce identical graphs.
func (r *OntologyHeader) Apply(n *xsd.Node, ctx *transform.Context) error {
	iri := graph.IRI(ontologyIRI(ctx))
	ctx.Graph.Add(iri, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLOntology))

	version := ctx.Tree.Schema.Version
	if version == "" {
		version = "1.0"
	}
	ctx.Graph.Add(iri, graph.IRI(vocabulary.OWLVersionInfo), graph.Literal(version))
	return nil
}

// DetectSimpleType claims named simple type definitions in the class
// phase so no class-creating rule ever touches them.
type DetectSimpleType struct{ base }

// NewDetectSimpleType creates the rule.
func NewDetectSimpleType() *DetectSimpleType {
	return &DetectSimpleType{base{
		id:       "detect-simple-type",
		priority: 300,
		desc:     "prevent class creation for simple type definitions",
	}}
}

// Matches named top-level simple types.
func (r *DetectSimpleType) Matches(n *xsd.Node, _ *transform.Context) bool {
	return n.Kind == xsd.NodeSimpleType && n.Name != "" && n.IsTopLevel()
}

// Apply records the detection. Claiming the node is the whole effect.
func (r *DetectSimpleType) Apply(n *xsd.Node, ctx *transform.Context) error {
	ctx.Log.Debug("simple type detected, no class will be created", "name", n.Name)
	return nil
}

// NamedComplexType turns every named complex type definition into an
// owl:Class with label and definition.
type NamedComplexType struct{ base }

// NewNamedComplexType creates the rule.
func NewNamedComplexType() *NamedComplexType {
	return &NamedComplexType{base{
		id:       "named-complex-type",
		priority: 200,
		desc:     "create an owl:Class for each named complex type",
	}}
}

// Matches named complex types not excluded by configuration.
func (r *NamedComplexType) Matches(n *xsd.Node, ctx *transform.Context) bool {
	return n.Kind == xsd.NodeComplexType && n.Name != "" && !ctx.Config.ShouldSkip(n.Name)
}

// Apply creates or enhances the class.
func (r *NamedComplexType) Apply(n *xsd.Node, ctx *transform.Context) error {
	ctx.EnsureClass(n.Name, n.Doc)
	return nil
}

// ForcedClass creates classes for type and element names the
// configuration insists on, regardless of structure.
type ForcedClass struct{ base }

// NewForcedClass creates the rule.
func NewForcedClass() *ForcedClass {
	return &ForcedClass{base{
		id:       "forced-class",
		priority: 200,
		desc:     "create classes for configured type and element names",
	}}
}

// Matches configured names on elements and complex types.
func (r *ForcedClass) Matches(n *xsd.Node, ctx *transform.Context) bool {
	if n.Kind != xsd.NodeElement && n.Kind != xsd.NodeComplexType {
		return false
	}
	return n.Name != "" && ctx.Config.IsForcedClass(n.Name)
}

// Apply creates the class under the capitalized name.
func (r *ForcedClass) Apply(n *xsd.Node, ctx *transform.Context) error {
	ctx.EnsureClass(naming.UpperInitial(n.Name), n.Doc)
	return nil
}

// AnonymousComplexType handles elements with inline complex content: it
// synthesizes a class named after the element, marks the nested elements
// with that class for the property phase, and flags the sandwich pattern
// (one anonymous complex type wrapping exactly one simple element)
// instead of creating a class for it.
type AnonymousComplexType struct{ base }

// NewAnonymousComplexType creates the rule.
func NewAnonymousComplexType() *AnonymousComplexType {
	return &AnonymousComplexType{base{
		id:       "anonymous-complex-type",
		priority: 90,
		desc:     "synthesize classes for anonymous complex types",
	}}
}

// Matches anonymous complex types owned by a named element, unless the
// element is forced literal.
func (r *AnonymousComplexType) Matches(n *xsd.Node, ctx *transform.Context) bool {
	if n.Kind != xsd.NodeComplexType || n.Name != "" {
		return false
	}
	owner := n.Parent
	if owner == nil || owner.Kind != xsd.NodeElement || owner.Name == "" {
		return false
	}
	if _, forced := ctx.Config.ForcedLiteralFor(owner.Name); forced {
		return false
	}
	return !ctx.Config.ShouldSkip(owner.Name)
}

// Apply flags sandwiches, otherwise creates the class and marks the
// content elements with it.
func (r *AnonymousComplexType) Apply(n *xsd.Node, ctx *transform.Context) error {
	owner := n.Parent

	if inner := sandwichElement(n); inner != nil {
		ctx.SetMeta(owner, metaSandwich, true)
		return nil
	}

	uri, _ := ctx.EnsureClass(naming.UpperInitial(owner.Name), owner.Doc)
	markContentElements(n, uri, ctx)
	return nil
}

// sandwichElement returns the single simple-content element wrapped by
// the anonymous complex type, or nil when the pattern does not hold.
func sandwichElement(ct *xsd.Node) *xsd.Node {
	if len(ct.Children) != 1 {
		return nil
	}
	seq := ct.Children[0]
	if seq.Kind != xsd.NodeSequence || len(seq.Children) != 1 {
		return nil
	}
	inner := seq.Children[0]
	if inner.Kind != xsd.NodeElement {
		return nil
	}
	if xsd.IsXSDBuiltin(inner.TypeName) || inner.FirstChild(xsd.NodeSimpleType) != nil {
		return inner
	}
	return nil
}

// markContentElements attaches the class URI to every element directly
// inside the complex type's model groups, without descending into nested
// element declarations.
func markContentElements(n *xsd.Node, classURI string, ctx *transform.Context) {
	for _, child := range n.Children {
		switch child.Kind {
		case xsd.NodeElement, xsd.NodeAttribute:
			ctx.SetMeta(child, metaParentClass, classURI)
		case xsd.NodeSequence, xsd.NodeChoice, xsd.NodeAll:
			markContentElements(child, classURI, ctx)
		}
	}
}
