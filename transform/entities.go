package transform

import (
	"sort"

	"github.com/c360studio/semschema/graph"
	"github.com/c360studio/semschema/vocabulary"
)

// text wraps a string as a label literal, language-tagged when the
// configuration sets a language.
func (c *Context) text(s string) graph.Term {
	if c.Config.Language != "" {
		return graph.LangLiteral(s, c.Config.Language)
	}
	return graph.Literal(s)
}

// hasTriple reports whether the subject already carries the predicate.
func (c *Context) hasTriple(subject, predicate string) bool {
	s := graph.IRI(subject)
	p := graph.IRI(predicate)
	return len(c.Graph.Matching(&s, &p, nil)) > 0
}

// EnsureClass creates an owl:Class for the logical name or enhances the
// existing one with documentation it lacks. It returns the class URI and
// whether the declaration was newly created.
func (c *Context) EnsureClass(name, doc string) (string, bool) {
	if uri, ok := c.classes[name]; ok {
		c.enhanceDoc(uri, vocabulary.SKOSDefinition, doc)
		return uri, false
	}

	uri := c.Naming.ClassURI(name)
	subject := graph.IRI(uri)
	if c.Graph.Contains(subject, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLClass)) {
		c.classes[name] = uri
		c.enhanceDoc(uri, vocabulary.SKOSDefinition, doc)
		return uri, false
	}

	c.Graph.Add(subject, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLClass))
	c.Graph.Add(subject, graph.IRI(vocabulary.RDFSLabel), c.text(name))
	if doc != "" {
		c.Graph.Add(subject, graph.IRI(vocabulary.SKOSDefinition), c.text(doc))
	}
	c.classes[name] = uri
	return uri, true
}

// ClassURI returns the registered URI for a class name, if one exists.
func (c *Context) ClassURI(name string) (string, bool) {
	uri, ok := c.classes[name]
	return uri, ok
}

// EnsureDatatypeProperty creates a literal-valued property or enhances
// the existing one: a further domain is added as an additional domain
// triple (consolidated into a union later), documentation fills in when
// missing.
func (c *Context) EnsureDatatypeProperty(name, domain, rng, doc string, functional bool) (string, bool) {
	uri := c.Naming.PropertyURI(name)
	subject := graph.IRI(uri)

	if _, ok := c.datatypes[name]; ok || c.Graph.Contains(subject, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLDatatypeProperty)) {
		c.datatypes[name] = uri
		c.enhanceProperty(uri, domain, doc)
		return uri, false
	}

	c.Graph.Add(subject, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLDatatypeProperty))
	c.Graph.Add(subject, graph.IRI(vocabulary.RDFSLabel), c.text(name))
	if domain != "" {
		c.Graph.Add(subject, graph.IRI(vocabulary.RDFSDomain), graph.IRI(domain))
	}
	if rng != "" {
		c.Graph.Add(subject, graph.IRI(vocabulary.RDFSRange), graph.IRI(rng))
	}
	if functional {
		c.Graph.Add(subject, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLFunctionalProperty))
	}
	if doc != "" {
		c.Graph.Add(subject, graph.IRI(vocabulary.RDFSComment), c.text(doc))
	}
	c.datatypes[name] = uri
	return uri, true
}

// EnsureObjectProperty creates a reference-valued property or enhances
// the existing one. An empty target leaves the property without a range.
func (c *Context) EnsureObjectProperty(name, domain, target, doc string, functional bool) (string, bool) {
	uri := c.Naming.PropertyURI(name)
	subject := graph.IRI(uri)

	if _, ok := c.objects[name]; ok || c.Graph.Contains(subject, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLObjectProperty)) {
		c.objects[name] = uri
		c.enhanceProperty(uri, domain, doc)
		return uri, false
	}

	c.Graph.Add(subject, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLObjectProperty))
	c.Graph.Add(subject, graph.IRI(vocabulary.RDFSLabel), c.text(name))
	if domain != "" {
		c.Graph.Add(subject, graph.IRI(vocabulary.RDFSDomain), graph.IRI(domain))
	}
	if target != "" {
		c.Graph.Add(subject, graph.IRI(vocabulary.RDFSRange), graph.IRI(target))
	}
	if functional {
		c.Graph.Add(subject, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLFunctionalProperty))
	}
	if doc != "" {
		c.Graph.Add(subject, graph.IRI(vocabulary.RDFSComment), c.text(doc))
	}
	c.objects[name] = uri
	return uri, true
}

// IsDatatypeProperty reports whether the name is registered as a
// literal-valued property in this run.
func (c *Context) IsDatatypeProperty(name string) bool {
	_, ok := c.datatypes[name]
	return ok
}

// IsObjectProperty reports whether the name is registered as a
// reference-valued property in this run.
func (c *Context) IsObjectProperty(name string) bool {
	_, ok := c.objects[name]
	return ok
}

// PropertyURI returns the registered URI for a property name regardless
// of kind.
func (c *Context) PropertyURI(name string) (string, bool) {
	if uri, ok := c.datatypes[name]; ok {
		return uri, true
	}
	uri, ok := c.objects[name]
	return uri, ok
}

// EnsureConceptScheme creates a skos:ConceptScheme or returns the
// existing one.
func (c *Context) EnsureConceptScheme(name, doc string) (string, bool) {
	if uri, ok := c.schemes[name]; ok {
		c.enhanceDoc(uri, vocabulary.SKOSDefinition, doc)
		return uri, false
	}

	uri := c.Naming.SchemeURI(name)
	subject := graph.IRI(uri)
	c.Graph.Add(subject, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.SKOSConceptScheme))
	c.Graph.Add(subject, graph.IRI(vocabulary.SKOSPrefLabel), c.text(name))
	if doc != "" {
		c.Graph.Add(subject, graph.IRI(vocabulary.SKOSDefinition), c.text(doc))
	}
	c.schemes[name] = uri
	return uri, true
}

// EnsureConcept creates one skos:Concept inside a scheme. Adding the
// same value twice is a no-op thanks to graph idempotence.
func (c *Context) EnsureConcept(schemeName, schemeURI, value, doc string) string {
	uri := c.Naming.ConceptURI(schemeName, value)
	subject := graph.IRI(uri)
	scheme := graph.IRI(schemeURI)

	c.Graph.Add(subject, graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.SKOSConcept))
	c.Graph.Add(subject, graph.IRI(vocabulary.SKOSInScheme), scheme)
	c.Graph.Add(subject, graph.IRI(vocabulary.SKOSTopConceptOf), scheme)
	c.Graph.Add(scheme, graph.IRI(vocabulary.SKOSHasTopConcept), subject)
	c.Graph.Add(subject, graph.IRI(vocabulary.SKOSPrefLabel), c.text(value))
	c.Graph.Add(subject, graph.IRI(vocabulary.SKOSNotation), graph.Literal(value))
	if doc != "" {
		c.Graph.Add(subject, graph.IRI(vocabulary.SKOSDefinition), c.text(doc))
	}
	return uri
}

// Annotate attaches a textual annotation to an entity, language-tagged
// when the configuration sets a language. Empty text is a no-op.
func (c *Context) Annotate(uri, predicate, text string) {
	if text == "" {
		return
	}
	c.Graph.Add(graph.IRI(uri), graph.IRI(predicate), c.text(text))
}

// AddPropertyDomain adds a further domain to an already-registered
// property. It reports whether a triple was added.
func (c *Context) AddPropertyDomain(name, domainURI string) bool {
	if domainURI == "" {
		return false
	}
	uri, ok := c.PropertyURI(name)
	if !ok {
		return false
	}
	return c.Graph.Add(graph.IRI(uri), graph.IRI(vocabulary.RDFSDomain), graph.IRI(domainURI))
}

// DropObjectTyping removes a property's object-property declaration and
// registry entry, used when cleanup resolves a dual typing.
func (c *Context) DropObjectTyping(name string) {
	uri, ok := c.objects[name]
	if !ok {
		return
	}
	delete(c.objects, name)
	c.Graph.Remove(graph.IRI(uri), graph.IRI(vocabulary.RDFType), graph.IRI(vocabulary.OWLObjectProperty))
}

// DatatypePropertyNames returns the registered literal-valued property
// names in sorted order.
func (c *Context) DatatypePropertyNames() []string {
	return sortedKeys(c.datatypes)
}

// ObjectPropertyNames returns the registered reference-valued property
// names in sorted order.
func (c *Context) ObjectPropertyNames() []string {
	return sortedKeys(c.objects)
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// enhanceProperty merges a further domain and missing documentation into
// an existing property declaration.
func (c *Context) enhanceProperty(uri, domain, doc string) {
	subject := graph.IRI(uri)
	if domain != "" {
		c.Graph.Add(subject, graph.IRI(vocabulary.RDFSDomain), graph.IRI(domain))
	}
	if doc != "" && !c.hasTriple(uri, vocabulary.RDFSComment) {
		c.Graph.Add(subject, graph.IRI(vocabulary.RDFSComment), c.text(doc))
	}
}

// enhanceDoc fills in documentation an entity lacks.
func (c *Context) enhanceDoc(uri, predicate, doc string) {
	if doc == "" || c.hasTriple(uri, predicate) {
		return
	}
	c.Graph.Add(graph.IRI(uri), graph.IRI(predicate), c.text(doc))
}
