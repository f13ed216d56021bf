package vocabulary

import (
	streamvocab "github.com/c360studio/semstreams/vocabulary"
)

// Report predicates describe the outcome of a conversion run. They use
// dotted names so downstream semstreams consumers can discover them.
const (
	// ReportRunID identifies a single conversion run.
	ReportRunID = "semschema.report.run_id"

	// ReportSchema names the source schema file.
	ReportSchema = "semschema.report.schema"

	// ReportClasses counts minted owl:Class entities.
	ReportClasses = "semschema.report.classes"

	// ReportDatatypeProperties counts minted datatype properties.
	ReportDatatypeProperties = "semschema.report.datatype_properties"

	// ReportObjectProperties counts minted object properties.
	ReportObjectProperties = "semschema.report.object_properties"

	// ReportConceptSchemes counts minted SKOS concept schemes.
	ReportConceptSchemes = "semschema.report.concept_schemes"

	// ReportConcepts counts minted SKOS concepts.
	ReportConcepts = "semschema.report.concepts"

	// ReportTriples counts triples in the output graph.
	ReportTriples = "semschema.report.triples"

	// ReportAnomalies counts non-fatal anomalies observed during the run.
	ReportAnomalies = "semschema.report.anomalies"

	// AnomalyKind names the category of a reported anomaly.
	AnomalyKind = "semschema.anomaly.kind"

	// AnomalySubject is the IRI or node path the anomaly concerns.
	AnomalySubject = "semschema.anomaly.subject"

	// AnomalyDetail is the human-readable anomaly description.
	AnomalyDetail = "semschema.anomaly.detail"
)

// ReportNamespace anchors report and anomaly IRIs.
const ReportNamespace = "https://semschema.dev/report/"

func registerReportPredicates() {
	streamvocab.Register(ReportRunID,
		streamvocab.WithDescription("Unique identifier of a conversion run"),
		streamvocab.WithDataType("string"),
		streamvocab.WithIRI(ReportNamespace+"runId"))
	streamvocab.Register(ReportSchema,
		streamvocab.WithDescription("Source schema file of a conversion run"),
		streamvocab.WithDataType("string"),
		streamvocab.WithIRI(ReportNamespace+"schema"))
	streamvocab.Register(ReportClasses,
		streamvocab.WithDescription("Number of OWL classes in the output graph"),
		streamvocab.WithDataType("int"),
		streamvocab.WithIRI(ReportNamespace+"classes"))
	streamvocab.Register(ReportDatatypeProperties,
		streamvocab.WithDescription("Number of OWL datatype properties in the output graph"),
		streamvocab.WithDataType("int"),
		streamvocab.WithIRI(ReportNamespace+"datatypeProperties"))
	streamvocab.Register(ReportObjectProperties,
		streamvocab.WithDescription("Number of OWL object properties in the output graph"),
		streamvocab.WithDataType("int"),
		streamvocab.WithIRI(ReportNamespace+"objectProperties"))
	streamvocab.Register(ReportConceptSchemes,
		streamvocab.WithDescription("Number of SKOS concept schemes in the output graph"),
		streamvocab.WithDataType("int"),
		streamvocab.WithIRI(ReportNamespace+"conceptSchemes"))
	streamvocab.Register(ReportConcepts,
		streamvocab.WithDescription("Number of SKOS concepts in the output graph"),
		streamvocab.WithDataType("int"),
		streamvocab.WithIRI(ReportNamespace+"concepts"))
	streamvocab.Register(ReportTriples,
		streamvocab.WithDescription("Number of triples in the output graph"),
		streamvocab.WithDataType("int"),
		streamvocab.WithIRI(ReportNamespace+"triples"))
	streamvocab.Register(ReportAnomalies,
		streamvocab.WithDescription("Number of non-fatal anomalies observed during the run"),
		streamvocab.WithDataType("int"),
		streamvocab.WithIRI(ReportNamespace+"anomalies"))
	streamvocab.Register(AnomalyKind,
		streamvocab.WithDescription("Category of a reported anomaly"),
		streamvocab.WithDataType("string"),
		streamvocab.WithIRI(ReportNamespace+"anomalyKind"))
	streamvocab.Register(AnomalySubject,
		streamvocab.WithDescription("IRI or node path an anomaly concerns"),
		streamvocab.WithDataType("string"),
		streamvocab.WithIRI(ReportNamespace+"anomalySubject"))
	streamvocab.Register(AnomalyDetail,
		streamvocab.WithDescription("Human-readable anomaly description"),
		streamvocab.WithDataType("string"),
		streamvocab.WithIRI(ReportNamespace+"anomalyDetail"))
}

func init() {
	registerReportPredicates()
}
