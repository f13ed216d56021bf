package transform

import (
	"time"

	"github.com/c360studio/semschema/graph"
)

// Pipeline runs the five fixed phases in order, once each, over the
// whole tree. Rules are assigned to exactly one phase at registration.
type Pipeline struct {
	registry   *Registry
	assignment map[string]PhaseKind
	order      []PhaseKind
}

// NewPipeline creates an empty pipeline with the fixed phase order.
func NewPipeline() *Pipeline {
	return &Pipeline{
		registry:   NewRegistry(),
		assignment: make(map[string]PhaseKind),
		order: []PhaseKind{
			PhaseClasses,
			PhaseProperties,
			PhaseVocabularies,
			PhaseRelationships,
			PhaseCleanup,
		},
	}
}

// Register adds a rule to the given phase and marks it active.
func (p *Pipeline) Register(rule Rule, phase PhaseKind) error {
	if err := p.registry.Register(rule); err != nil {
		return err
	}
	p.assignment[rule.ID()] = phase
	return nil
}

// Registry exposes the rule registry for activation toggling and
// introspection.
func (p *Pipeline) Registry() *Registry { return p.registry }

// PhaseOf returns the phase a rule is assigned to.
func (p *Pipeline) PhaseOf(id string) (PhaseKind, bool) {
	k, ok := p.assignment[id]
	return k, ok
}

// Run executes every phase over the context's tree and returns the
// populated graph. The context must be freshly constructed per run.
func (p *Pipeline) Run(ctx *Context) (*graph.Graph, error) {
	start := time.Now()
	root := ctx.Tree.Root

	for _, kind := range p.order {
		var rules []Rule
		for _, rule := range p.registry.ActiveRules() {
			if p.assignment[rule.ID()] == kind {
				rules = append(rules, rule)
			}
		}
		phase := NewPhase(kind)
		ctx.Log.Debug("executing phase",
			"phase", kind.String(),
			"rules", len(rules))
		if err := phase.Execute(root, rules, ctx); err != nil {
			return nil, err
		}
	}

	transformDuration.Observe(time.Since(start).Seconds())
	ctx.Log.Info("transformation complete",
		"run_id", ctx.Report.RunID,
		"triples", ctx.Graph.Len(),
		"anomalies", len(ctx.Report.Anomalies))
	return ctx.Graph, nil
}
