package transform_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semschema/config"
	"github.com/c360studio/semschema/transform"
	"github.com/c360studio/semschema/vocabulary"
	"github.com/c360studio/semschema/xsd"
)

const classifySchema = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://example.org/taf">
  <xs:element name="WagonData" type="WagonDataType"/>
  <xs:complexType name="WagonDataType">
    <xs:sequence>
      <xs:element name="AirBrakeType" type="Numeric2-2"/>
      <xs:element name="WagonNumber" type="xs:string"/>
      <xs:element name="Owner" type="OwnerType"/>
      <xs:element name="Mystery" type="UnknownType"/>
      <xs:element name="Note"/>
      <xs:element name="ValidUntil"/>
      <xs:element name="ExternalCode" type="ext:CodeList"/>
      <xs:element name="administrativeDataSet" type="xs:string"/>
      <xs:element name="airBrakedMassLoaded">
        <xs:complexType>
          <xs:sequence>
            <xs:element name="Value" type="xs:string"/>
            <xs:element name="Unit" type="xs:string"/>
          </xs:sequence>
        </xs:complexType>
      </xs:element>
    </xs:sequence>
  </xs:complexType>
  <xs:complexType name="OwnerType">
    <xs:sequence>
      <xs:element name="Name" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
  <xs:simpleType name="Numeric2-2">
    <xs:restriction base="xs:decimal"/>
  </xs:simpleType>
  <xs:simpleType name="CountryCode">
    <xs:restriction base="xs:string"/>
  </xs:simpleType>
</xs:schema>`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestContext(t *testing.T, schemaXML string, cfg *config.Config) *transform.Context {
	t.Helper()
	schema, err := xsd.Parse([]byte(schemaXML))
	require.NoError(t, err)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx, err := transform.NewContext(xsd.BuildTree(schema), cfg, discardLogger())
	require.NoError(t, err)
	return ctx
}

func findElement(t *testing.T, ctx *transform.Context, name string) *xsd.Node {
	t.Helper()
	var found *xsd.Node
	ctx.Tree.Root.Walk(func(n *xsd.Node) {
		if found == nil && n.Kind == xsd.NodeElement && n.Name == name {
			found = n
		}
	})
	require.NotNil(t, found, "element %s not in tree", name)
	return found
}

func TestClassifyNumericTypePattern(t *testing.T) {
	ctx := newTestContext(t, classifySchema, nil)

	cls := transform.Classify(findElement(t, ctx, "AirBrakeType"), ctx)
	assert.Equal(t, transform.LiteralProperty, cls.Kind)
	assert.Equal(t, vocabulary.XSDDecimal, cls.Range)
}

func TestClassifyBuiltinType(t *testing.T) {
	ctx := newTestContext(t, classifySchema, nil)

	cls := transform.Classify(findElement(t, ctx, "WagonNumber"), ctx)
	assert.Equal(t, transform.LiteralProperty, cls.Kind)
	assert.Equal(t, vocabulary.XSDString, cls.Range)
}

func TestClassifyComplexTypeReference(t *testing.T) {
	ctx := newTestContext(t, classifySchema, nil)

	cls := transform.Classify(findElement(t, ctx, "Owner"), ctx)
	assert.Equal(t, transform.ReferenceProperty, cls.Kind)
	assert.Equal(t, ctx.Naming.ClassURI("OwnerType"), cls.Range)
}

func TestClassifyForcedLiteralBeatsComplexStructure(t *testing.T) {
	ctx := newTestContext(t, classifySchema, nil)

	cls := transform.Classify(findElement(t, ctx, "airBrakedMassLoaded"), ctx)
	assert.Equal(t, transform.LiteralProperty, cls.Kind)
	assert.Equal(t, vocabulary.XSDDecimal, cls.Range)
	assert.NotEmpty(t, cls.Comment)
	assert.Empty(t, ctx.Report.Anomalies)
}

func TestClassifyForcedReference(t *testing.T) {
	ctx := newTestContext(t, classifySchema, nil)

	cls := transform.Classify(findElement(t, ctx, "administrativeDataSet"), ctx)
	assert.Equal(t, transform.ReferenceProperty, cls.Kind)
}

func TestClassifyNeverReferenceVetoesForcedReference(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.NeverReference = []string{"administrativeDataSet"}
	cfg.ForceReference = nil
	cfg.ForceReference = append(cfg.ForceReference, "administrativeDataSet")

	// The overlap fails validation up front.
	assert.Error(t, cfg.Validate())
}

func TestClassifyAmbiguousOverridesPreferLiteral(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ForceReference = append(cfg.ForceReference, "airBrakedMassLoaded")
	ctx := newTestContext(t, classifySchema, cfg)

	cls := transform.Classify(findElement(t, ctx, "airBrakedMassLoaded"), ctx)
	assert.Equal(t, transform.LiteralProperty, cls.Kind)

	require.Len(t, ctx.Report.Anomalies, 1)
	assert.Equal(t, "classification-ambiguity", ctx.Report.Anomalies[0].Kind)
}

func TestClassifyUnresolvedType(t *testing.T) {
	ctx := newTestContext(t, classifySchema, nil)

	cls := transform.Classify(findElement(t, ctx, "Mystery"), ctx)
	assert.Equal(t, transform.ReferenceProperty, cls.Kind)
	assert.Empty(t, cls.Range)

	require.Len(t, ctx.Report.Anomalies, 1)
	assert.Equal(t, "unresolved-type", ctx.Report.Anomalies[0].Kind)
}

func TestClassifyQualifiedExternalType(t *testing.T) {
	ctx := newTestContext(t, classifySchema, nil)

	cls := transform.Classify(findElement(t, ctx, "ExternalCode"), ctx)
	assert.Equal(t, transform.LiteralProperty, cls.Kind)
	assert.Equal(t, ctx.Naming.BaseURI()+"CodeList", cls.Range)
}

func TestClassifyTemporalCue(t *testing.T) {
	ctx := newTestContext(t, classifySchema, nil)

	cls := transform.Classify(findElement(t, ctx, "ValidUntil"), ctx)
	assert.Equal(t, transform.LiteralProperty, cls.Kind)
	assert.Equal(t, vocabulary.XSDDateTime, cls.Range)
}

func TestClassifyDefaultLiteral(t *testing.T) {
	ctx := newTestContext(t, classifySchema, nil)

	cls := transform.Classify(findElement(t, ctx, "Note"), ctx)
	assert.Equal(t, transform.LiteralProperty, cls.Kind)
	assert.Equal(t, vocabulary.XSDString, cls.Range)
}

func TestClassifyIsTotal(t *testing.T) {
	ctx := newTestContext(t, classifySchema, nil)

	ctx.Tree.Root.Walk(func(n *xsd.Node) {
		if n.Kind != xsd.NodeElement {
			return
		}
		cls := transform.Classify(n, ctx)
		assert.Contains(t,
			[]transform.PropertyKind{transform.LiteralProperty, transform.ReferenceProperty},
			cls.Kind, "node %s", n.Key())
	})
}
