package rules

import (
	"github.com/c360studio/semschema/transform"
	"github.com/c360studio/semschema/xsd"
)

// ReferenceTracking records every class context that references a
// schema-level element and asserts the domain the property phase could
// not know about yet.
type ReferenceTracking struct{ base }

// NewReferenceTracking creates the rule.
func NewReferenceTracking() *ReferenceTracking {
	return &ReferenceTracking{base{
		id:       "reference-tracking",
		priority: 500,
		desc:     "track and assert property domains across reference contexts",
	}}
}

// Matches elements carrying a ref attribute.
func (r *ReferenceTracking) Matches(n *xsd.Node, _ *transform.Context) bool {
	return n.Kind == xsd.NodeElement && n.Ref != ""
}

// Apply tracks the referencing class and adds it as a domain of the
// referenced property.
func (r *ReferenceTracking) Apply(n *xsd.Node, ctx *transform.Context) error {
	refName := xsd.LocalPart(n.Ref)
	domain := containingClass(n, ctx)
	if domain == "" {
		return nil
	}
	ctx.TrackReference(refName, domain)
	ctx.AddPropertyDomain(refName, domain)
	return nil
}
