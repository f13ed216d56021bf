package converter_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semschema/config"
	"github.com/c360studio/semschema/converter"
	"github.com/c360studio/semschema/graph"
	"github.com/c360studio/semschema/transform"
	"github.com/c360studio/semschema/vocabulary"
	"github.com/c360studio/semschema/xsd"
)

const testSchema = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://example.org/taf" version="2.1">
  <xs:annotation>
    <xs:documentation>Rolling stock reference schema.</xs:documentation>
  </xs:annotation>
  <xs:element name="PaymentOption" type="xs:string">
    <xs:annotation>
      <xs:documentation>Agreed payment option code.</xs:documentation>
    </xs:annotation>
  </xs:element>
  <xs:complexType name="ContractData">
    <xs:sequence>
      <xs:element ref="PaymentOption"/>
      <xs:element name="ValidUntil"/>
    </xs:sequence>
  </xs:complexType>
  <xs:complexType name="InvoiceData">
    <xs:sequence>
      <xs:element ref="PaymentOption"/>
      <xs:element name="Mystery" type="UndefinedType"/>
    </xs:sequence>
  </xs:complexType>
  <xs:complexType name="WagonTechnicalData">
    <xs:annotation>
      <xs:documentation>Technical characteristics of a wagon.</xs:documentation>
    </xs:annotation>
    <xs:sequence>
      <xs:element name="AirBrakeType" type="Numeric2-2"/>
      <xs:element name="airBrakedMassLoaded">
        <xs:complexType>
          <xs:sequence>
            <xs:element name="Value" type="xs:string"/>
            <xs:element name="Unit" type="xs:string"/>
          </xs:sequence>
        </xs:complexType>
      </xs:element>
      <xs:element name="NumberOfAxles">
        <xs:complexType>
          <xs:sequence>
            <xs:element name="Value" type="xs:integer"/>
          </xs:sequence>
        </xs:complexType>
      </xs:element>
      <xs:element name="BrakeType" type="BrakeTypeCode"/>
      <xs:element name="CountryCode">
        <xs:simpleType>
          <xs:restriction base="xs:string">
            <xs:enumeration value="DE"/>
            <xs:enumeration value="FR"/>
          </xs:restriction>
        </xs:simpleType>
      </xs:element>
    </xs:sequence>
  </xs:complexType>
  <xs:simpleType name="Numeric2-2">
    <xs:restriction base="xs:decimal">
      <xs:totalDigits value="4"/>
    </xs:restriction>
  </xs:simpleType>
  <xs:simpleType name="BrakeTypeCode">
    <xs:annotation>
      <xs:documentation>G = Goods train braked
P = Passenger train braked</xs:documentation>
    </xs:annotation>
    <xs:restriction base="xs:string">
      <xs:enumeration value="G"/>
      <xs:enumeration value="P"/>
    </xs:restriction>
  </xs:simpleType>
</xs:schema>`

const base = "http://example.org/ontology#"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func convertTestSchema(t *testing.T, cfg *config.Config) *converter.Result {
	t.Helper()
	schema, err := xsd.Parse([]byte(testSchema))
	require.NoError(t, err)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	result, err := converter.Convert(schema, cfg, discardLogger())
	require.NoError(t, err)
	return result
}

func hasTriple(g *graph.Graph, s, p, o string) bool {
	return g.Contains(graph.IRI(s), graph.IRI(p), graph.IRI(o))
}

func objectValues(g *graph.Graph, s, p string) []graph.Term {
	return g.Objects(graph.IRI(s), graph.IRI(p))
}

func anomaliesOfKind(r *transform.Report, kind string) []transform.Anomaly {
	var out []transform.Anomaly
	for _, a := range r.Anomalies {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

func TestConvertCreatesClasses(t *testing.T) {
	result := convertTestSchema(t, nil)
	g := result.Graph

	for _, name := range []string{"ContractData", "InvoiceData", "WagonTechnicalData"} {
		assert.True(t, hasTriple(g, base+name, vocabulary.RDFType, vocabulary.OWLClass), name)
	}
	assert.False(t, hasTriple(g, base+"AirBrakedMassLoaded", vocabulary.RDFType, vocabulary.OWLClass),
		"forced-literal element must not become a class")
	assert.False(t, hasTriple(g, base+"NumberOfAxles", vocabulary.RDFType, vocabulary.OWLClass),
		"sandwich element must not become a class")
	assert.False(t, hasTriple(g, base+"Numeric2-2", vocabulary.RDFType, vocabulary.OWLClass),
		"simple type must not become a class")
}

func TestConvertOntologyHeader(t *testing.T) {
	result := convertTestSchema(t, nil)
	g := result.Graph
	ontology := "http://example.org/taf"

	assert.True(t, hasTriple(g, ontology, vocabulary.RDFType, vocabulary.OWLOntology))

	versions := objectValues(g, ontology, vocabulary.OWLVersionInfo)
	require.Len(t, versions, 1)
	assert.Equal(t, "2.1", versions[0].Value)

	comments := objectValues(g, ontology, vocabulary.RDFSComment)
	require.Len(t, comments, 1)
	assert.Contains(t, comments[0].Value, "classes")
}

func TestConvertNumericTypeElement(t *testing.T) {
	result := convertTestSchema(t, nil)
	g := result.Graph
	prop := base + "airBrakeType"

	assert.True(t, hasTriple(g, prop, vocabulary.RDFType, vocabulary.OWLDatatypeProperty))
	assert.True(t, hasTriple(g, prop, vocabulary.RDFSRange, vocabulary.XSDDecimal))
	assert.True(t, hasTriple(g, prop, vocabulary.RDFSDomain, base+"WagonTechnicalData"))

	var found bool
	for _, c := range objectValues(g, prop, vocabulary.RDFSComment) {
		if c.Value == "Original XSD type was Numeric2-2." {
			found = true
		}
	}
	assert.True(t, found, "numeric family properties record the original type")
}

func TestConvertForcedLiteralBeatsComplexStructure(t *testing.T) {
	result := convertTestSchema(t, nil)
	g := result.Graph
	prop := base + "airBrakedMassLoaded"

	assert.True(t, hasTriple(g, prop, vocabulary.RDFType, vocabulary.OWLDatatypeProperty))
	assert.False(t, hasTriple(g, prop, vocabulary.RDFType, vocabulary.OWLObjectProperty))
	assert.True(t, hasTriple(g, prop, vocabulary.RDFSRange, vocabulary.XSDDecimal))

	var found bool
	for _, c := range objectValues(g, prop, vocabulary.RDFSComment) {
		if c.Value == "Air braked mass in loaded condition, expressed in tonnes." {
			found = true
		}
	}
	assert.True(t, found, "forced-literal comment carried onto the property")

	// The wrapped content elements are absorbed, not promoted.
	assert.False(t, hasTriple(g, base+"value", vocabulary.RDFType, vocabulary.OWLDatatypeProperty))
	assert.False(t, hasTriple(g, base+"unit", vocabulary.RDFType, vocabulary.OWLDatatypeProperty))
}

func TestConvertSandwichCollapse(t *testing.T) {
	result := convertTestSchema(t, nil)
	g := result.Graph
	prop := base + "numberOfAxles"

	assert.True(t, hasTriple(g, prop, vocabulary.RDFType, vocabulary.OWLDatatypeProperty))
	assert.True(t, hasTriple(g, prop, vocabulary.RDFSRange, vocabulary.XSDInteger))
	assert.True(t, hasTriple(g, prop, vocabulary.RDFSDomain, base+"WagonTechnicalData"))
}

func TestConvertSharedPropertyGetsUnionDomain(t *testing.T) {
	result := convertTestSchema(t, nil)
	g := result.Graph
	prop := base + "paymentOption"

	s := graph.IRI(prop)
	typ := graph.IRI(vocabulary.RDFType)
	dtp := graph.IRI(vocabulary.OWLDatatypeProperty)
	assert.Len(t, g.Matching(&s, &typ, &dtp), 1, "property declared exactly once")

	domains := objectValues(g, prop, vocabulary.RDFSDomain)
	require.Len(t, domains, 1, "multiple domains consolidate into one")
	union := domains[0]
	require.True(t, union.IsBlank())

	assert.True(t, g.Contains(union, typ, graph.IRI(vocabulary.OWLClass)))

	lists := g.Objects(union, graph.IRI(vocabulary.OWLUnionOf))
	require.Len(t, lists, 1)
	members := g.ListMembers(lists[0])
	require.Len(t, members, 2)
	assert.Equal(t, graph.IRI(base+"ContractData"), members[0])
	assert.Equal(t, graph.IRI(base+"InvoiceData"), members[1])
}

func TestConvertUnresolvedTypeStillYieldsProperty(t *testing.T) {
	result := convertTestSchema(t, nil)
	g := result.Graph
	prop := base + "mystery"

	assert.True(t, hasTriple(g, prop, vocabulary.RDFType, vocabulary.OWLObjectProperty))
	assert.Empty(t, objectValues(g, prop, vocabulary.RDFSRange),
		"unresolved target leaves the property without a range")
	assert.True(t, hasTriple(g, prop, vocabulary.RDFSDomain, base+"InvoiceData"))

	require.NotEmpty(t, anomaliesOfKind(result.Report, "unresolved-type"))
}

func TestConvertTemporalCue(t *testing.T) {
	result := convertTestSchema(t, nil)
	g := result.Graph
	prop := base + "validUntil"

	assert.True(t, hasTriple(g, prop, vocabulary.RDFType, vocabulary.OWLDatatypeProperty))
	assert.True(t, hasTriple(g, prop, vocabulary.RDFSRange, vocabulary.XSDDateTime))
}

func TestConvertEnumerations(t *testing.T) {
	result := convertTestSchema(t, nil)
	g := result.Graph

	scheme := base + "BrakeTypeCode"
	assert.True(t, hasTriple(g, scheme, vocabulary.RDFType, vocabulary.SKOSConceptScheme))

	conceptG := base + "BrakeTypeCode_G"
	assert.True(t, hasTriple(g, conceptG, vocabulary.RDFType, vocabulary.SKOSConcept))
	assert.True(t, hasTriple(g, conceptG, vocabulary.SKOSInScheme, scheme))

	defs := objectValues(g, conceptG, vocabulary.SKOSDefinition)
	require.Len(t, defs, 1)
	assert.Equal(t, "Goods train braked", defs[0].Value,
		"per-value definitions extracted from the type documentation")

	anon := base + "CountryCode_enum"
	assert.True(t, hasTriple(g, anon, vocabulary.RDFType, vocabulary.SKOSConceptScheme))
	assert.True(t, hasTriple(g, anon+"_DE", vocabulary.RDFType, vocabulary.SKOSConcept))
	assert.True(t, hasTriple(g, anon+"_FR", vocabulary.RDFType, vocabulary.SKOSConcept))
}

func TestConvertStatistics(t *testing.T) {
	result := convertTestSchema(t, nil)

	assert.Equal(t, 7, result.Stats.DatatypeProperties)
	assert.Equal(t, 1, result.Stats.ObjectProperties)
	assert.Equal(t, 2, result.Stats.ConceptSchemes)
	assert.Equal(t, 4, result.Stats.Concepts)
	assert.Equal(t, result.Graph.Len(), result.Stats.Triples)
	assert.NotEmpty(t, result.Report.RunID)
}

func TestConvertIsIdempotent(t *testing.T) {
	first, err := convertTestSchema(t, nil).Serialize(graph.FormatTurtle)
	require.NoError(t, err)
	second, err := convertTestSchema(t, nil).Serialize(graph.FormatTurtle)
	require.NoError(t, err)

	assert.Equal(t, first, second, "repeated runs over the same input produce identical output")
}

func TestConvertDualTypedProperty(t *testing.T) {
	const dualSchema = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://example.org/dual">
  <xs:element name="Code" type="xs:string"/>
  <xs:complexType name="CodeType">
    <xs:sequence>
      <xs:element name="Detail" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
  <xs:complexType name="RecordData">
    <xs:sequence>
      <xs:element name="Code" type="CodeType"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

	schema, err := xsd.Parse([]byte(dualSchema))
	require.NoError(t, err)

	result, err := converter.Convert(schema, config.DefaultConfig(), discardLogger())
	require.NoError(t, err)

	prop := base + "code"
	assert.True(t, hasTriple(result.Graph, prop, vocabulary.RDFType, vocabulary.OWLDatatypeProperty))
	assert.True(t, hasTriple(result.Graph, prop, vocabulary.RDFType, vocabulary.OWLObjectProperty))
	assert.Len(t, anomaliesOfKind(result.Report, "dual-typed-property"), 1)

	// The same conflict resolves silently when configuration proves the
	// name literal-only.
	cfg := config.DefaultConfig()
	cfg.NeverReference = []string{"Code"}
	schema, err = xsd.Parse([]byte(dualSchema))
	require.NoError(t, err)

	resolved, err := converter.Convert(schema, cfg, discardLogger())
	require.NoError(t, err)

	assert.True(t, hasTriple(resolved.Graph, prop, vocabulary.RDFType, vocabulary.OWLDatatypeProperty))
	assert.False(t, hasTriple(resolved.Graph, prop, vocabulary.RDFType, vocabulary.OWLObjectProperty))
	assert.Empty(t, anomaliesOfKind(resolved.Report, "dual-typed-property"))
}

func TestConvertFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.xsd")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0o644))

	result, err := converter.ConvertFile(path, config.DefaultConfig(), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, path, result.Report.Schema)

	_, err = converter.ConvertFile(filepath.Join(t.TempDir(), "missing.xsd"), config.DefaultConfig(), discardLogger())
	assert.Error(t, err)
}
