package transform

import (
	"log/slog"

	"github.com/c360studio/semstreams/pkg/errs"

	"github.com/c360studio/semschema/config"
	"github.com/c360studio/semschema/graph"
	"github.com/c360studio/semschema/naming"
	"github.com/c360studio/semschema/vocabulary"
	"github.com/c360studio/semschema/xsd"
)

// Context is the shared transformation state threaded through a single
// pipeline run: the target graph, the entity registries, the
// configuration tables, and the naming service. It is constructed once
// per conversion and never reused, so no registry state leaks between
// runs.
type Context struct {
	Graph  *graph.Graph
	Tree   *xsd.Tree
	Naming *naming.Service
	Config *config.Config
	Log    *slog.Logger
	Report *Report

	classes   map[string]string
	datatypes map[string]string
	objects   map[string]string
	schemes   map[string]string

	processed   map[string]map[string]struct{}
	metadata    map[string]map[string]any
	refContexts map[string][]string
	flags       map[string]bool
}

// NewContext builds a fresh context for one pipeline run. The
// configuration is validated here and malformed configuration fails
// fast, before any node is visited.
func NewContext(tree *xsd.Tree, cfg *config.Config, log *slog.Logger) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errs.WrapInvalid(err, "transform", "NewContext", "validate configuration")
	}
	if log == nil {
		log = slog.Default()
	}

	method, err := naming.ParseEncodeMethod(cfg.EncodeMethod)
	if err != nil {
		return nil, errs.WrapInvalid(err, "transform", "NewContext", "parse encode method")
	}

	g := graph.New()
	for prefix, ns := range vocabulary.Prefixes() {
		g.Bind(prefix, ns)
	}
	svc := naming.NewService(cfg.BaseURI, method)
	g.Bind("", svc.BaseURI())

	return &Context{
		Graph:       g,
		Tree:        tree,
		Naming:      svc,
		Config:      cfg,
		Log:         log,
		Report:      NewReport(tree.Schema.Source),
		classes:     make(map[string]string),
		datatypes:   make(map[string]string),
		objects:     make(map[string]string),
		schemes:     make(map[string]string),
		processed:   make(map[string]map[string]struct{}),
		metadata:    make(map[string]map[string]any),
		refContexts: make(map[string][]string),
		flags:       make(map[string]bool),
	}, nil
}

// SetFlag records a run-scoped boolean marker.
func (c *Context) SetFlag(key string) { c.flags[key] = true }

// Flag reads a run-scoped boolean marker.
func (c *Context) Flag(key string) bool { return c.flags[key] }

// MarkProcessed records that a rule has handled a node, across phases.
// Rules use this to suppress lower-priority competitors in later phases.
func (c *Context) MarkProcessed(ruleID string, n *xsd.Node) {
	set, ok := c.processed[ruleID]
	if !ok {
		set = make(map[string]struct{})
		c.processed[ruleID] = set
	}
	set[n.Key()] = struct{}{}
}

// IsProcessed reports whether a rule has already handled a node.
func (c *Context) IsProcessed(ruleID string, n *xsd.Node) bool {
	set, ok := c.processed[ruleID]
	if !ok {
		return false
	}
	_, done := set[n.Key()]
	return done
}

// SetMeta attaches a keyed value to a node for later rules.
func (c *Context) SetMeta(n *xsd.Node, key string, value any) {
	m, ok := c.metadata[n.Key()]
	if !ok {
		m = make(map[string]any)
		c.metadata[n.Key()] = m
	}
	m[key] = value
}

// Meta reads a keyed value attached to a node.
func (c *Context) Meta(n *xsd.Node, key string) (any, bool) {
	m, ok := c.metadata[n.Key()]
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// MetaString reads a string metadata value, empty when absent.
func (c *Context) MetaString(n *xsd.Node, key string) string {
	if v, ok := c.Meta(n, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// TrackReference records that a class references a schema-level element,
// feeding multi-domain consolidation.
func (c *Context) TrackReference(elementName, classURI string) {
	for _, existing := range c.refContexts[elementName] {
		if existing == classURI {
			return
		}
	}
	c.refContexts[elementName] = append(c.refContexts[elementName], classURI)
}

// References returns the class URIs known to reference an element, in
// first-seen order.
func (c *Context) References(elementName string) []string {
	return c.refContexts[elementName]
}

// ReferencedElements returns the element names with at least one tracked
// reference, in no particular order.
func (c *Context) ReferencedElements() []string {
	out := make([]string, 0, len(c.refContexts))
	for name := range c.refContexts {
		out = append(out, name)
	}
	return out
}

// Anomaly records a non-fatal problem, logs it at warning level, and
// counts it. Anomalies never abort the run.
func (c *Context) Anomaly(kind, subject, detail string) {
	c.Report.Anomalies = append(c.Report.Anomalies, Anomaly{
		Kind:    kind,
		Subject: subject,
		Detail:  detail,
	})
	anomalyCount.WithLabelValues(kind).Inc()
	c.Log.Warn("anomaly", "kind", kind, "subject", subject, "detail", detail)
}

func (c *Context) recordApplication(phase PhaseKind, rule Rule, n *xsd.Node) {
	c.Report.Applications = append(c.Report.Applications, Application{
		Phase:   phase.String(),
		RuleID:  rule.ID(),
		NodeKey: n.Key(),
	})
	ruleApplications.WithLabelValues(rule.ID()).Inc()
}
