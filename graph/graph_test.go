package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semschema/graph"
	"github.com/c360studio/semschema/vocabulary"
)

func TestAddIsIdempotent(t *testing.T) {
	g := graph.New()
	s := graph.IRI("http://example.org/A")
	p := graph.IRI(vocabulary.RDFType)
	o := graph.IRI(vocabulary.OWLClass)

	assert.True(t, g.Add(s, p, o))
	assert.False(t, g.Add(s, p, o))
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Contains(s, p, o))
}

func TestRemove(t *testing.T) {
	g := graph.New()
	s := graph.IRI("http://example.org/A")
	p := graph.IRI(vocabulary.RDFSLabel)
	o := graph.Literal("A")

	g.Add(s, p, o)
	require.True(t, g.Remove(s, p, o))
	assert.False(t, g.Contains(s, p, o))
	assert.False(t, g.Remove(s, p, o))
	assert.Equal(t, 0, g.Len())
}

func TestMatchingWildcards(t *testing.T) {
	g := graph.New()
	a := graph.IRI("http://example.org/A")
	b := graph.IRI("http://example.org/B")
	typ := graph.IRI(vocabulary.RDFType)
	cls := graph.IRI(vocabulary.OWLClass)
	label := graph.IRI(vocabulary.RDFSLabel)

	g.Add(a, typ, cls)
	g.Add(b, typ, cls)
	g.Add(a, label, graph.Literal("A"))

	assert.Len(t, g.Matching(nil, nil, nil), 3)
	assert.Len(t, g.Matching(&a, nil, nil), 2)
	assert.Len(t, g.Matching(nil, &typ, &cls), 2)
	assert.Empty(t, g.Matching(&b, &label, nil))
}

func TestSubjectsAndObjects(t *testing.T) {
	g := graph.New()
	a := graph.IRI("http://example.org/A")
	b := graph.IRI("http://example.org/B")
	typ := graph.IRI(vocabulary.RDFType)
	cls := graph.IRI(vocabulary.OWLClass)

	g.Add(a, typ, cls)
	g.Add(b, typ, cls)
	g.Add(a, typ, cls)

	subjects := g.Subjects(typ, cls)
	require.Len(t, subjects, 2)
	assert.Equal(t, a, subjects[0])
	assert.Equal(t, b, subjects[1])

	objects := g.Objects(a, typ)
	require.Len(t, objects, 1)
	assert.Equal(t, cls, objects[0])
}

func TestTriplesPreserveInsertionOrder(t *testing.T) {
	g := graph.New()
	p := graph.IRI(vocabulary.RDFSLabel)
	for _, name := range []string{"c", "a", "b"} {
		g.Add(graph.IRI("http://example.org/"+name), p, graph.Literal(name))
	}

	triples := g.Triples()
	require.Len(t, triples, 3)
	assert.Equal(t, "c", triples[0].Object.Value)
	assert.Equal(t, "a", triples[1].Object.Value)
	assert.Equal(t, "b", triples[2].Object.Value)
}

func TestNewBlankIsSequential(t *testing.T) {
	g := graph.New()
	assert.Equal(t, "b1", g.NewBlank().Value)
	assert.Equal(t, "b2", g.NewBlank().Value)

	g2 := graph.New()
	assert.Equal(t, "b1", g2.NewBlank().Value)
}

func TestListRoundTrip(t *testing.T) {
	g := graph.New()
	members := []graph.Term{
		graph.IRI("http://example.org/A"),
		graph.IRI("http://example.org/B"),
		graph.IRI("http://example.org/C"),
	}

	head := g.NewList(members)
	require.True(t, head.IsBlank())
	assert.Equal(t, members, g.ListMembers(head))
}

func TestEmptyListIsNil(t *testing.T) {
	g := graph.New()
	head := g.NewList(nil)
	assert.Equal(t, graph.IRI(vocabulary.RDFNil), head)
	assert.Empty(t, g.ListMembers(head))
}
