// Package vocabulary defines the W3C namespace and term IRIs used when
// building OWL/SKOS graphs from XML Schema documents, plus the dotted
// report predicates registered with the semstreams vocabulary registry.
package vocabulary

// Core W3C namespaces.
const (
	// RDF is the RDF syntax namespace.
	RDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// RDFS is the RDF Schema namespace.
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// OWL is the Web Ontology Language namespace.
	OWL = "http://www.w3.org/2002/07/owl#"

	// SKOS is the Simple Knowledge Organization System namespace.
	SKOS = "http://www.w3.org/2004/02/skos/core#"

	// XSD is the XML Schema datatypes namespace.
	XSD = "http://www.w3.org/2001/XMLSchema#"

	// DC is the Dublin Core terms namespace.
	DC = "http://purl.org/dc/terms/"
)

// RDF terms.
const (
	RDFType  = RDF + "type"
	RDFFirst = RDF + "first"
	RDFRest  = RDF + "rest"
	RDFNil   = RDF + "nil"
)

// RDFS terms.
const (
	RDFSLabel      = RDFS + "label"
	RDFSComment    = RDFS + "comment"
	RDFSDomain     = RDFS + "domain"
	RDFSRange      = RDFS + "range"
	RDFSSubClassOf = RDFS + "subClassOf"
	RDFSSeeAlso    = RDFS + "seeAlso"
)

// OWL classes and properties.
const (
	// OWLClass declares a class entity.
	OWLClass = OWL + "Class"

	// OWLDatatypeProperty declares a literal-valued property.
	OWLDatatypeProperty = OWL + "DatatypeProperty"

	// OWLObjectProperty declares a reference-valued property.
	OWLObjectProperty = OWL + "ObjectProperty"

	// OWLFunctionalProperty marks a property as at-most-one valued.
	OWLFunctionalProperty = OWL + "FunctionalProperty"

	// OWLOntology declares the ontology header node.
	OWLOntology = OWL + "Ontology"

	OWLUnionOf     = OWL + "unionOf"
	OWLVersionInfo = OWL + "versionInfo"
)

// SKOS classes and properties.
const (
	// SKOSConceptScheme declares a controlled vocabulary.
	SKOSConceptScheme = SKOS + "ConceptScheme"

	// SKOSConcept declares a vocabulary term.
	SKOSConcept = SKOS + "Concept"

	SKOSInScheme      = SKOS + "inScheme"
	SKOSTopConceptOf  = SKOS + "topConceptOf"
	SKOSHasTopConcept = SKOS + "hasTopConcept"
	SKOSPrefLabel     = SKOS + "prefLabel"
	SKOSNotation      = SKOS + "notation"
	SKOSDefinition    = SKOS + "definition"
)

// Dublin Core terms.
const (
	DCTitle       = DC + "title"
	DCDescription = DC + "description"
	DCCreated     = DC + "created"
)

// XSD datatypes used as literal ranges.
const (
	XSDString   = XSD + "string"
	XSDDecimal  = XSD + "decimal"
	XSDInteger  = XSD + "integer"
	XSDBoolean  = XSD + "boolean"
	XSDDate     = XSD + "date"
	XSDDateTime = XSD + "dateTime"
	XSDDuration = XSD + "duration"
	XSDAnyURI   = XSD + "anyURI"
)

// XSDType returns the XSD namespace IRI for a schema built-in local name,
// such as "string" or "decimal".
func XSDType(local string) string {
	return XSD + local
}

// Prefixes returns the standard prefix bindings for serialization.
func Prefixes() map[string]string {
	return map[string]string{
		"rdf":  RDF,
		"rdfs": RDFS,
		"owl":  OWL,
		"skos": SKOS,
		"xsd":  XSD,
		"dc":   DC,
	}
}
