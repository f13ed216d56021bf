package transform

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/c360studio/semschema/graph"
	"github.com/c360studio/semschema/vocabulary"
)

// Application is one rule firing on one node.
type Application struct {
	Phase   string
	RuleID  string
	NodeKey string
}

// Anomaly is a non-fatal problem observed during a run.
type Anomaly struct {
	Kind    string
	Subject string
	Detail  string
}

// Report accumulates what happened during one pipeline run: every rule
// application and every anomaly, under a unique run identifier.
type Report struct {
	RunID        string
	Schema       string
	Applications []Application
	Anomalies    []Anomaly
}

// NewReport starts a report for one conversion run.
func NewReport(schema string) *Report {
	return &Report{
		RunID:  uuid.NewString(),
		Schema: schema,
	}
}

// Statistics summarizes the entities present in a finished graph.
type Statistics struct {
	Classes            int
	DatatypeProperties int
	ObjectProperties   int
	ConceptSchemes     int
	Concepts           int
	Triples            int
	Anomalies          int
}

// Statistics counts entity declarations in the graph.
func (r *Report) Statistics(g *graph.Graph) Statistics {
	count := func(typeIRI string) int {
		return len(g.Subjects(graph.IRI(vocabulary.RDFType), graph.IRI(typeIRI)))
	}
	return Statistics{
		Classes:            count(vocabulary.OWLClass),
		DatatypeProperties: count(vocabulary.OWLDatatypeProperty),
		ObjectProperties:   count(vocabulary.OWLObjectProperty),
		ConceptSchemes:     count(vocabulary.SKOSConceptScheme),
		Concepts:           count(vocabulary.SKOSConcept),
		Triples:            g.Len(),
		Anomalies:          len(r.Anomalies),
	}
}

// Summary renders the statistics as a single annotation line.
func (s Statistics) Summary() string {
	return fmt.Sprintf(
		"Generated ontology: %d classes, %d datatype properties, %d object properties, %d concept schemes, %d concepts, %d triples",
		s.Classes, s.DatatypeProperties, s.ObjectProperties,
		s.ConceptSchemes, s.Concepts, s.Triples)
}

// Fields returns the report as dotted predicate key/value pairs, using
// the predicate names registered with the semstreams vocabulary.
func (r *Report) Fields(g *graph.Graph) map[string]any {
	s := r.Statistics(g)
	return map[string]any{
		vocabulary.ReportRunID:              r.RunID,
		vocabulary.ReportSchema:             r.Schema,
		vocabulary.ReportClasses:            s.Classes,
		vocabulary.ReportDatatypeProperties: s.DatatypeProperties,
		vocabulary.ReportObjectProperties:   s.ObjectProperties,
		vocabulary.ReportConceptSchemes:     s.ConceptSchemes,
		vocabulary.ReportConcepts:           s.Concepts,
		vocabulary.ReportTriples:            s.Triples,
		vocabulary.ReportAnomalies:          s.Anomalies,
	}
}
