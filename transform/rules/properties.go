package rules

import (
	"github.com/c360studio/semschema/transform"
	"github.com/c360studio/semschema/xsd"
)

// TopLevelSimpleElement turns schema-level elements with simple content
// into datatype properties.
type TopLevelSimpleElement struct{ base }

// NewTopLevelSimpleElement creates the rule.
func NewTopLevelSimpleElement() *TopLevelSimpleElement {
	return &TopLevelSimpleElement{base{
		id:       "top-level-simple-element",
		priority: 200,
		desc:     "create datatype properties for top-level simple elements",
	}}
}

// Matches top-level named elements with simple content.
func (r *TopLevelSimpleElement) Matches(n *xsd.Node, ctx *transform.Context) bool {
	if n.Kind != xsd.NodeElement || !n.IsTopLevel() || n.Name == "" {
		return false
	}
	if ctx.Config.ShouldSkip(n.Name) {
		return false
	}
	if n.TypeName != "" {
		return xsd.IsXSDBuiltin(n.TypeName) || ctx.Tree.IsSimpleTypeName(n.TypeName) ||
			ctx.Config.LiteralTypeRE().MatchString(xsd.LocalPart(n.TypeName))
	}
	return n.FirstChild(xsd.NodeSimpleType) != nil
}

// Apply creates the property with no domain: top-level elements get
// their domains from the contexts that reference them.
func (r *TopLevelSimpleElement) Apply(n *xsd.Node, ctx *transform.Context) error {
	createProperty(n, n.Name, "", ctx)
	return nil
}

// SandwichElement collapses the sandwich pattern flagged by the class
// phase into a single property, suppressing property creation for the
// wrapped inner element.
type SandwichElement struct{ base }

// NewSandwichElement creates the rule.
func NewSandwichElement() *SandwichElement {
	return &SandwichElement{base{
		id:       "sandwich-element",
		priority: 200,
		desc:     "collapse element/complexType/sequence/element sandwiches into one property",
	}}
}

// Matches elements flagged as sandwiches.
func (r *SandwichElement) Matches(n *xsd.Node, ctx *transform.Context) bool {
	if n.Kind != xsd.NodeElement {
		return false
	}
	v, ok := ctx.Meta(n, metaSandwich)
	if !ok {
		return false
	}
	flag, _ := v.(bool)
	return flag
}

// Apply creates one property named after the outer element, typed by the
// inner element's content.
func (r *SandwichElement) Apply(n *xsd.Node, ctx *transform.Context) error {
	ct := n.FirstChild(xsd.NodeComplexType)
	if ct == nil {
		return nil
	}
	inner := sandwichElement(ct)
	if inner == nil {
		return nil
	}

	domain := containingClass(n, ctx)
	createProperty(inner, n.Name, domain, ctx)

	// The inner element is fully represented by this property.
	ctx.MarkProcessed("child-element", inner)
	ctx.MarkProcessed("element-reference", inner)
	return nil
}

// NumericTypeElement claims elements whose declared type belongs to the
// bounded numeric literal family before reference-leaning rules see
// them.
type NumericTypeElement struct{ base }

// NewNumericTypeElement creates the rule.
func NewNumericTypeElement() *NumericTypeElement {
	return &NumericTypeElement{base{
		id:       "numeric-type-element",
		priority: 150,
		desc:     "create decimal datatype properties for numeric-family types",
	}}
}

// Matches named elements with a numeric-family declared type or a
// forced-literal override.
func (r *NumericTypeElement) Matches(n *xsd.Node, ctx *transform.Context) bool {
	if n.Kind != xsd.NodeElement || n.Name == "" {
		return false
	}
	if _, forced := ctx.Config.ForcedLiteralFor(n.Name); forced {
		return true
	}
	return n.TypeName != "" && ctx.Config.LiteralTypeRE().MatchString(xsd.LocalPart(n.TypeName))
}

// Apply creates the datatype property and suppresses the competing
// per-element rules in later phases.
func (r *NumericTypeElement) Apply(n *xsd.Node, ctx *transform.Context) error {
	createProperty(n, n.Name, containingClass(n, ctx), ctx)

	ctx.MarkProcessed("child-element", n)
	ctx.MarkProcessed("element-reference", n)
	ctx.MarkProcessed("complex-type-reference", n)

	// Content below a forced-literal element is absorbed by the
	// property itself.
	for _, child := range n.Children {
		child.Walk(func(d *xsd.Node) {
			if d.Kind != xsd.NodeElement {
				return
			}
			for _, id := range []string{
				"child-element", "element-reference",
				"complex-type-reference", "choice-element", "complex-element",
			} {
				ctx.MarkProcessed(id, d)
			}
		})
	}
	return nil
}

// ChoiceElement handles elements that are alternatives inside an
// xs:choice: each alternative becomes a property domained on the class
// owning the choice.
type ChoiceElement struct{ base }

// NewChoiceElement creates the rule.
func NewChoiceElement() *ChoiceElement {
	return &ChoiceElement{base{
		id:       "choice-element",
		priority: 120,
		desc:     "create properties for choice alternatives",
	}}
}

// Matches elements sitting directly inside a choice group.
func (r *ChoiceElement) Matches(n *xsd.Node, ctx *transform.Context) bool {
	if n.Kind != xsd.NodeElement || !n.InChoice() {
		return false
	}
	return n.EffectiveName() != "" && !ctx.Config.ShouldSkip(n.EffectiveName())
}

// Apply resolves refs through the element index, then classifies.
func (r *ChoiceElement) Apply(n *xsd.Node, ctx *transform.Context) error {
	domain := containingClass(n, ctx)
	if n.Ref != "" {
		applyReference(n, domain, ctx)
		return nil
	}
	createProperty(n, n.Name, domain, ctx)
	return nil
}

// ElementReference resolves ref="..." indirection: the property takes
// the referenced element's name and content, domained on the referencing
// class.
type ElementReference struct{ base }

// NewElementReference creates the rule.
func NewElementReference() *ElementReference {
	return &ElementReference{base{
		id:       "element-reference",
		priority: 110,
		desc:     "create properties for element references",
	}}
}

// Matches elements carrying a ref attribute.
func (r *ElementReference) Matches(n *xsd.Node, ctx *transform.Context) bool {
	return n.Kind == xsd.NodeElement && n.Ref != "" &&
		!ctx.Config.ShouldSkip(xsd.LocalPart(n.Ref))
}

// Apply creates the property from the referenced declaration.
func (r *ElementReference) Apply(n *xsd.Node, ctx *transform.Context) error {
	applyReference(n, containingClass(n, ctx), ctx)
	return nil
}

// applyReference creates a property for a ref element. An unresolvable
// reference still yields a property, without a range, and reports an
// anomaly.
func applyReference(n *xsd.Node, domain string, ctx *transform.Context) {
	refName := xsd.LocalPart(n.Ref)
	target, ok := ctx.Tree.ElementByName(refName)
	if !ok {
		ctx.Anomaly("unresolved-reference", n.Key(),
			"referenced element "+refName+" is not declared in the document")
		ctx.EnsureObjectProperty(refName, domain, "", "", n.IsFunctional())
		return
	}

	cls := transform.Classify(target, ctx)
	if cls.Kind == transform.LiteralProperty {
		ctx.EnsureDatatypeProperty(refName, domain, cls.Range, target.Doc, n.IsFunctional())
		return
	}
	ctx.EnsureObjectProperty(refName, domain, cls.Range, target.Doc, n.IsFunctional())
}

// ComplexElement links elements with inline complex content to the class
// the class phase synthesized for them.
type ComplexElement struct{ base }

// NewComplexElement creates the rule.
func NewComplexElement() *ComplexElement {
	return &ComplexElement{base{
		id:       "complex-element",
		priority: 90,
		desc:     "create object properties toward synthesized classes",
	}}
}

// Matches nested named elements with an inline complex type.
func (r *ComplexElement) Matches(n *xsd.Node, ctx *transform.Context) bool {
	if n.Kind != xsd.NodeElement || n.Name == "" || n.IsTopLevel() {
		return false
	}
	if ctx.Config.ShouldSkip(n.Name) {
		return false
	}
	return n.FirstChild(xsd.NodeComplexType) != nil
}

// Apply classifies first so forced-literal overrides win over the
// complex structure.
func (r *ComplexElement) Apply(n *xsd.Node, ctx *transform.Context) error {
	createProperty(n, n.Name, containingClass(n, ctx), ctx)
	return nil
}

// ChildElement is the default property rule for plain child elements,
// deciding literal against reference through the classification
// heuristic.
type ChildElement struct{ base }

// NewChildElement creates the rule.
func NewChildElement() *ChildElement {
	return &ChildElement{base{
		id:       "child-element",
		priority: 75,
		desc:     "create properties for plain child elements",
	}}
}

// Matches nested named elements without complex-typed declarations,
// which belong to the complex type reference rule.
func (r *ChildElement) Matches(n *xsd.Node, ctx *transform.Context) bool {
	if n.Kind != xsd.NodeElement || n.Name == "" || n.IsTopLevel() || n.Ref != "" {
		return false
	}
	if ctx.Config.ShouldSkip(n.Name) {
		return false
	}
	if n.FirstChild(xsd.NodeComplexType) != nil {
		return false
	}
	if n.TypeName != "" && ctx.Tree.IsComplexTypeName(n.TypeName) {
		return false
	}
	return true
}

// Apply classifies and creates the property.
func (r *ChildElement) Apply(n *xsd.Node, ctx *transform.Context) error {
	createProperty(n, n.Name, containingClass(n, ctx), ctx)
	return nil
}

// ComplexTypeReference turns elements declared with a named complex type
// into object properties ranged on that type's class.
type ComplexTypeReference struct{ base }

// NewComplexTypeReference creates the rule.
func NewComplexTypeReference() *ComplexTypeReference {
	return &ComplexTypeReference{base{
		id:       "complex-type-reference",
		priority: 50,
		desc:     "create object properties for named complex type references",
	}}
}

// Matches nested named elements whose declared type is a named complex
// type.
func (r *ComplexTypeReference) Matches(n *xsd.Node, ctx *transform.Context) bool {
	if n.Kind != xsd.NodeElement || n.Name == "" || n.TypeName == "" {
		return false
	}
	if ctx.Config.ShouldSkip(n.Name) {
		return false
	}
	return ctx.Tree.IsComplexTypeName(n.TypeName)
}

// Apply classifies first so overrides still win.
func (r *ComplexTypeReference) Apply(n *xsd.Node, ctx *transform.Context) error {
	createProperty(n, n.Name, containingClass(n, ctx), ctx)
	return nil
}
