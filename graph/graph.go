package graph

import (
	"fmt"
	"sync"
)

// Graph is an append-mostly set of triples. Adding a triple that is
// already present is a no-op, iteration follows insertion order, and all
// operations are safe for concurrent readers.
type Graph struct {
	mu       sync.RWMutex
	triples  []Triple
	index    map[Triple]struct{}
	prefixes map[string]string
	blankSeq int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index:    make(map[Triple]struct{}),
		prefixes: make(map[string]string),
	}
}

// Bind associates a prefix with a namespace for serialization.
func (g *Graph) Bind(prefix, namespace string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prefixes[prefix] = namespace
}

// Prefixes returns a copy of the bound prefix map.
func (g *Graph) Prefixes() map[string]string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]string, len(g.prefixes))
	for k, v := range g.prefixes {
		out[k] = v
	}
	return out
}

// Add inserts a triple. It returns true if the triple was new.
func (g *Graph) Add(s, p, o Term) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := Triple{Subject: s, Predicate: p, Object: o}
	if _, ok := g.index[t]; ok {
		return false
	}
	g.index[t] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// Contains reports whether the exact triple is present.
func (g *Graph) Contains(s, p, o Term) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.index[Triple{Subject: s, Predicate: p, Object: o}]
	return ok
}

// Remove deletes a triple if present. It returns true if removed.
func (g *Graph) Remove(s, p, o Term) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := Triple{Subject: s, Predicate: p, Object: o}
	if _, ok := g.index[t]; !ok {
		return false
	}
	delete(g.index, t)
	for i, existing := range g.triples {
		if existing == t {
			g.triples = append(g.triples[:i], g.triples[i+1:]...)
			break
		}
	}
	return true
}

// Matching returns all triples matching the pattern. A nil position is a
// wildcard.
func (g *Graph) Matching(s, p, o *Term) []Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Triple
	for _, t := range g.triples {
		if s != nil && t.Subject != *s {
			continue
		}
		if p != nil && t.Predicate != *p {
			continue
		}
		if o != nil && t.Object != *o {
			continue
		}
		out = append(out, t)
	}
	return out
}

// RemoveMatching deletes every triple matching the pattern and returns
// the number removed. A nil position is a wildcard.
func (g *Graph) RemoveMatching(s, p, o *Term) int {
	matched := g.Matching(s, p, o)
	for _, t := range matched {
		g.Remove(t.Subject, t.Predicate, t.Object)
	}
	return len(matched)
}

// Triples returns a copy of all triples in insertion order.
func (g *Graph) Triples() []Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.triples)
}

// Subjects returns the distinct subjects of triples with the given
// predicate and object, in insertion order.
func (g *Graph) Subjects(p, o Term) []Term {
	seen := make(map[Term]struct{})
	var out []Term
	for _, t := range g.Matching(nil, &p, &o) {
		if _, ok := seen[t.Subject]; ok {
			continue
		}
		seen[t.Subject] = struct{}{}
		out = append(out, t.Subject)
	}
	return out
}

// Objects returns the distinct objects of triples with the given subject
// and predicate, in insertion order.
func (g *Graph) Objects(s, p Term) []Term {
	seen := make(map[Term]struct{})
	var out []Term
	for _, t := range g.Matching(&s, &p, nil) {
		if _, ok := seen[t.Object]; ok {
			continue
		}
		seen[t.Object] = struct{}{}
		out = append(out, t.Object)
	}
	return out
}

// NewBlank mints a fresh blank node. Labels are sequential so repeated
// runs over the same input produce the same graph.
func (g *Graph) NewBlank() Term {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.blankSeq++
	return Blank(fmt.Sprintf("b%d", g.blankSeq))
}
