package rules

import (
	"github.com/c360studio/semschema/graph"
	"github.com/c360studio/semschema/transform"
	"github.com/c360studio/semschema/vocabulary"
	"github.com/c360studio/semschema/xsd"
)

// OntologyAnnotation finalizes the graph once every entity exists: it
// merges accumulated property domains into owl:unionOf classes, then
// attaches the run statistics and schema metadata to the ontology node.
// Domain merging has to wait for this phase so that every reference
// context has been tracked first.
type OntologyAnnotation struct{ base }

// NewOntologyAnnotation creates the rule.
func NewOntologyAnnotation() *OntologyAnnotation {
	return &OntologyAnnotation{base{
		id:       "ontology-annotation",
		priority: 10,
		desc:     "consolidate domains and annotate the ontology node",
	}}
}

// Matches only the document root.
func (r *OntologyAnnotation) Matches(n *xsd.Node, _ *transform.Context) bool {
	return n.Kind == xsd.NodeSchema
}

// Apply consolidates domains, then adds the label, description, and
// statistics comment.
func (r *OntologyAnnotation) Apply(n *xsd.Node, ctx *transform.Context) error {
	names := append(ctx.DatatypePropertyNames(), ctx.ObjectPropertyNames()...)
	for _, name := range names {
		if uri, ok := ctx.PropertyURI(name); ok {
			consolidateDomains(uri, ctx)
		}
	}

	iri := graph.IRI(ontologyIRI(ctx))
	if !ctx.Graph.Contains(iri, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLOntology)) {
		ctx.Graph.Add(iri, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLOntology))
	}

	label := "Ontology generated from XML Schema"
	if ns := ctx.Tree.Schema.TargetNamespace; ns != "" {
		label = "Ontology generated from " + ns
	}
	ctx.Graph.Add(iri, graph.IRI(vocabulary.RDFSLabel), graph.Literal(label))
	if doc := ctx.Tree.Schema.Annotation.Text(); doc != "" {
		ctx.Annotate(iri.Value, vocabulary.DCDescription, doc)
	}

	stats := ctx.Report.Statistics(ctx.Graph)
	ctx.Graph.Add(iri, graph.IRI(vocabulary.RDFSComment), graph.Literal(stats.Summary()))
	return nil
}

// consolidateDomains replaces multiple named-class domains of a property
// with one union class.
func consolidateDomains(propertyURI string, ctx *transform.Context) {
	subject := graph.IRI(propertyURI)
	domainPred := graph.IRI(vocabulary.RDFSDomain)

	var domains []graph.Term
	for _, o := range ctx.Graph.Objects(subject, domainPred) {
		if o.IsIRI() {
			domains = append(domains, o)
		}
	}
	if len(domains) < 2 {
		return
	}

	for _, d := range domains {
		ctx.Graph.Remove(subject, domainPred, d)
	}
	union := ctx.Graph.NewBlank()
	ctx.Graph.Add(union, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLClass))
	ctx.Graph.Add(union, graph.IRI(vocabulary.OWLUnionOf), ctx.Graph.NewList(domains))
	ctx.Graph.Add(subject, domainPred, union)

	ctx.Log.Debug("consolidated property domains",
		"property", propertyURI,
		"domains", len(domains))
}

// PropertyTypeFixer resolves properties that ended up declared as both
// datatype and object property. Numeric-family and never-reference names
// lose the object typing; everything else keeps both declarations and is
// reported as an anomaly, since the source data itself is ambiguous.
type PropertyTypeFixer struct{ base }

// NewPropertyTypeFixer creates the rule.
func NewPropertyTypeFixer() *PropertyTypeFixer {
	return &PropertyTypeFixer{base{
		id:       "property-type-fixer",
		priority: 5,
		desc:     "resolve or report dual-typed properties",
	}}
}

// Matches elements whose property name is registered with both kinds.
func (r *PropertyTypeFixer) Matches(n *xsd.Node, ctx *transform.Context) bool {
	if n.Kind != xsd.NodeElement {
		return false
	}
	name := n.EffectiveName()
	if name == "" {
		return false
	}
	return ctx.IsDatatypeProperty(name) && ctx.IsObjectProperty(name)
}

// Apply strips the object typing when configuration marks the name as
// literal-only, otherwise records the inconsistency once.
func (r *PropertyTypeFixer) Apply(n *xsd.Node, ctx *transform.Context) error {
	name := n.EffectiveName()
	flag := "dual-typed:" + name
	if ctx.Flag(flag) {
		return nil
	}
	ctx.SetFlag(flag)

	if r.literalOnly(n, name, ctx) {
		ctx.DropObjectTyping(name)
		ctx.Log.Debug("removed object typing from literal-only property", "name", name)
		return nil
	}

	uri, _ := ctx.PropertyURI(name)
	ctx.Anomaly("dual-typed-property", uri,
		"property is declared as both datatype and object property, both kept")
	ctx.Annotate(uri, vocabulary.RDFSComment,
		"Declared as both a datatype and an object property in the source schema.")
	return nil
}

// literalOnly reports whether configuration proves the property can only
// be literal-valued.
func (r *PropertyTypeFixer) literalOnly(n *xsd.Node, name string, ctx *transform.Context) bool {
	for _, never := range ctx.Config.NeverReference {
		if never == name {
			return true
		}
	}
	if _, forced := ctx.Config.ForcedLiteralFor(name); forced {
		return true
	}
	return n.TypeName != "" && ctx.Config.LiteralTypeRE().MatchString(xsd.LocalPart(n.TypeName))
}
