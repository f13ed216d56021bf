// Package transform implements the rule-driven tree-to-graph engine: a
// pipeline of fixed phases traverses the schema tree and lets prioritized
// rules emit OWL classes, properties, and SKOS vocabularies into the
// target graph.
package transform

import "github.com/c360studio/semschema/xsd"

// Rule is one unit of transformation behavior. Rules are matched against
// every tree node during their phase; within a phase the highest-priority
// matching active rule fires, and exactly one rule fires per node.
type Rule interface {
	// ID is the stable identifier, unique within a registry.
	ID() string

	// Priority orders rules within a phase, higher first. Ties keep
	// registration order. Conventional bands: 150-200 overrides,
	// 100-149 literal-valued defaults, 50-99 reference-valued
	// defaults, 1-49 fallbacks.
	Priority() int

	// Description says what the rule emits.
	Description() string

	// Matches reports whether the rule applies to the node. Matching
	// must not mutate the context.
	Matches(n *xsd.Node, ctx *Context) bool

	// Apply mutates the context's graph and registries for the node.
	Apply(n *xsd.Node, ctx *Context) error
}
