package graph

import "github.com/c360studio/semschema/vocabulary"

// NewList builds an RDF collection from the members and returns its head
// node. An empty member list returns rdf:nil.
func (g *Graph) NewList(members []Term) Term {
	if len(members) == 0 {
		return IRI(vocabulary.RDFNil)
	}
	head := g.NewBlank()
	node := head
	for i, m := range members {
		g.Add(node, IRI(vocabulary.RDFFirst), m)
		if i == len(members)-1 {
			g.Add(node, IRI(vocabulary.RDFRest), IRI(vocabulary.RDFNil))
			break
		}
		next := g.NewBlank()
		g.Add(node, IRI(vocabulary.RDFRest), next)
		node = next
	}
	return head
}

// ListMembers walks an RDF collection from its head node and returns the
// members in order. Malformed lists are truncated at the first node
// missing rdf:first or rdf:rest.
func (g *Graph) ListMembers(head Term) []Term {
	var out []Term
	node := head
	for node != IRI(vocabulary.RDFNil) {
		firsts := g.Objects(node, IRI(vocabulary.RDFFirst))
		if len(firsts) == 0 {
			break
		}
		out = append(out, firsts[0])
		rests := g.Objects(node, IRI(vocabulary.RDFRest))
		if len(rests) == 0 {
			break
		}
		node = rests[0]
	}
	return out
}
