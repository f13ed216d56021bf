package transform

import (
	"fmt"
	"sort"

	"github.com/c360studio/semschema/xsd"
)

// PhaseKind identifies one of the five fixed pipeline stages.
type PhaseKind int

const (
	// PhaseClasses creates class entities.
	PhaseClasses PhaseKind = iota

	// PhaseProperties creates property entities.
	PhaseProperties

	// PhaseVocabularies creates SKOS concept schemes and concepts.
	PhaseVocabularies

	// PhaseRelationships links entities created by earlier phases.
	PhaseRelationships

	// PhaseCleanup repairs inconsistencies and annotates the result.
	PhaseCleanup
)

// String returns the phase's short name.
func (k PhaseKind) String() string {
	switch k {
	case PhaseClasses:
		return "classes"
	case PhaseProperties:
		return "properties"
	case PhaseVocabularies:
		return "vocabularies"
	case PhaseRelationships:
		return "relationships"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// phaseDescriptions give each stage its log-facing description.
var phaseDescriptions = map[PhaseKind]string{
	PhaseClasses:       "create OWL classes from type definitions",
	PhaseProperties:    "create datatype and object properties",
	PhaseVocabularies:  "create SKOS vocabularies from enumerations",
	PhaseRelationships: "link properties to their referencing classes",
	PhaseCleanup:       "repair dual typings and annotate the ontology",
}

// Phase executes one full depth-first traversal with its rule subset.
// It owns the set of nodes already handled in this phase: at most one
// rule outcome per node per phase.
type Phase struct {
	Kind        PhaseKind
	Description string

	processed map[string]struct{}
}

// NewPhase creates a phase of the given kind.
func NewPhase(kind PhaseKind) *Phase {
	return &Phase{
		Kind:        kind,
		Description: phaseDescriptions[kind],
	}
}

// Execute traverses the tree once. Rules are sorted by priority
// descending, stable for ties, so registration order breaks ties.
// Recursion into children is unconditional.
func (p *Phase) Execute(root *xsd.Node, rules []Rule, ctx *Context) error {
	p.processed = make(map[string]struct{})

	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})

	return p.process(root, sorted, ctx)
}

func (p *Phase) process(n *xsd.Node, rules []Rule, ctx *Context) error {
	if _, done := p.processed[n.Key()]; !done {
		for _, rule := range rules {
			if ctx.IsProcessed(rule.ID(), n) {
				continue
			}
			if !rule.Matches(n, ctx) {
				continue
			}
			ctx.Log.Debug("applying rule",
				"phase", p.Kind.String(),
				"rule", rule.ID(),
				"node", n.Key())
			if err := rule.Apply(n, ctx); err != nil {
				return fmt.Errorf("phase %s: rule %s on %s: %w", p.Kind, rule.ID(), n.Key(), err)
			}
			p.processed[n.Key()] = struct{}{}
			ctx.recordApplication(p.Kind, rule, n)
			break
		}
	}

	for _, child := range n.Children {
		if err := p.process(child, rules, ctx); err != nil {
			return err
		}
	}
	return nil
}
