package transform

import (
	"strings"

	"github.com/c360studio/semschema/config"
	"github.com/c360studio/semschema/naming"
	"github.com/c360studio/semschema/vocabulary"
	"github.com/c360studio/semschema/xsd"
)

// PropertyKind is the outcome of classifying a candidate property node.
type PropertyKind int

const (
	// LiteralProperty relates an entity to a primitive value.
	LiteralProperty PropertyKind = iota

	// ReferenceProperty relates an entity to another entity.
	ReferenceProperty
)

// String names the kind.
func (k PropertyKind) String() string {
	if k == ReferenceProperty {
		return "reference"
	}
	return "literal"
}

// Classification is the decision for one node: the property kind, the
// range URI (literal datatype or target class, possibly empty for an
// unresolved reference), and an explanatory comment carried by forced
// overrides.
type Classification struct {
	Kind    PropertyKind
	Range   string
	Comment string
}

// temporal name cues indicating a dateTime range.
var temporalCues = []string{"date", "time", "expiry", "until", "since"}

// Classify decides whether a node becomes a literal-valued or
// reference-valued property. The decision order is fixed: forced-literal
// override, forced-reference override, numeric type name pattern,
// structural inspection of the declared type, then the literal default.
// The function is total: every node gets exactly one kind.
func Classify(n *xsd.Node, ctx *Context) Classification {
	name := n.EffectiveName()

	// 1. Forced-literal override, by name or owning element name.
	if fl, ok := forcedLiteral(n, ctx); ok {
		if ctx.Config.IsForcedReference(name) {
			ctx.Anomaly("classification-ambiguity", name,
				"name appears in both forced-literal and forced-reference tables, literal wins")
		}
		rng := vocabulary.XSDDecimal
		if fl.Range != "" {
			rng = ctx.Naming.TypeReference(fl.Range)
		}
		return Classification{Kind: LiteralProperty, Range: rng, Comment: fl.Comment}
	}

	// 2. Forced-reference override, unless vetoed by the safety list.
	if ctx.Config.IsForcedReference(name) {
		return Classification{Kind: ReferenceProperty, Range: referenceTarget(n, ctx)}
	}

	// 3. Numeric literal type family by name pattern.
	if typeName := xsd.LocalPart(n.TypeName); typeName != "" && ctx.Config.LiteralTypeRE().MatchString(typeName) {
		return Classification{Kind: LiteralProperty, Range: vocabulary.XSDDecimal}
	}

	// 4. Structural inspection of the declared or inline type.
	if n.TypeName != "" {
		if xsd.IsXSDBuiltin(n.TypeName) {
			return Classification{Kind: LiteralProperty, Range: literalRange(n, ctx)}
		}
		if ctx.Tree.IsComplexTypeName(n.TypeName) {
			return Classification{Kind: ReferenceProperty, Range: referenceTarget(n, ctx)}
		}
		if ctx.Tree.IsSimpleTypeName(n.TypeName) {
			return Classification{Kind: LiteralProperty, Range: literalRange(n, ctx)}
		}
		if strings.Contains(n.TypeName, ":") {
			// Qualified external scalar reference.
			return Classification{Kind: LiteralProperty, Range: ctx.Naming.TypeReference(n.TypeName)}
		}
		// Declared type not found anywhere in the document: create the
		// reference without a target rather than failing.
		ctx.Anomaly("unresolved-type", n.Key(),
			"declared type "+n.TypeName+" is not defined in the document")
		return Classification{Kind: ReferenceProperty}
	}
	if n.FirstChild(xsd.NodeComplexType) != nil {
		return Classification{Kind: ReferenceProperty, Range: referenceTarget(n, ctx)}
	}
	if n.FirstChild(xsd.NodeSimpleType) != nil {
		return Classification{Kind: LiteralProperty, Range: literalRange(n, ctx)}
	}

	// 5. Default fallback.
	return Classification{Kind: LiteralProperty, Range: literalRange(n, ctx)}
}

// forcedLiteral looks up the forced-literal table by the node's own name
// and by its owning element's name.
func forcedLiteral(n *xsd.Node, ctx *Context) (config.ForcedLiteral, bool) {
	if fl, ok := ctx.Config.ForcedLiteralFor(n.EffectiveName()); ok {
		return fl, true
	}
	if owner := n.OwningElement(); owner != nil {
		if fl, ok := ctx.Config.ForcedLiteralFor(owner.EffectiveName()); ok {
			return fl, true
		}
	}
	return config.ForcedLiteral{}, false
}

// referenceTarget resolves the class URI a reference property points at,
// or empty when the target type cannot be named.
func referenceTarget(n *xsd.Node, ctx *Context) string {
	if n.TypeName != "" && ctx.Tree.IsComplexTypeName(n.TypeName) {
		return ctx.Naming.ClassURI(xsd.LocalPart(n.TypeName))
	}
	if n.FirstChild(xsd.NodeComplexType) != nil && n.Name != "" {
		return ctx.Naming.ClassURI(naming.UpperInitial(n.Name))
	}
	return ""
}

// literalRange infers the datatype for a literal property: numeric
// family first, then temporal name cues, then the declared builtin or
// resolvable scalar type, defaulting to string.
func literalRange(n *xsd.Node, ctx *Context) string {
	typeName := xsd.LocalPart(n.TypeName)
	if typeName != "" && ctx.Config.LiteralTypeRE().MatchString(typeName) {
		return vocabulary.XSDDecimal
	}

	lower := strings.ToLower(n.EffectiveName())
	for _, cue := range temporalCues {
		if strings.Contains(lower, cue) {
			return vocabulary.XSDDateTime
		}
	}

	if xsd.IsXSDBuiltin(n.TypeName) {
		return vocabulary.XSDType(typeName)
	}
	if st, ok := ctx.Tree.SimpleTypeByName(n.TypeName); ok {
		if base := scalarBase(st, ctx.Tree); base != "" {
			return base
		}
		return vocabulary.XSDString
	}
	if strings.Contains(n.TypeName, ":") {
		return ctx.Naming.TypeReference(n.TypeName)
	}
	if st := n.FirstChild(xsd.NodeSimpleType); st != nil {
		if base := scalarBase(st, ctx.Tree); base != "" {
			return base
		}
	}
	return vocabulary.XSDString
}

// scalarBase follows a simple type's restriction bases to a builtin.
func scalarBase(st *xsd.Node, tree *xsd.Tree) string {
	seen := make(map[string]bool)
	for st != nil {
		if xsd.IsXSDBuiltin(st.Base) {
			return vocabulary.XSDType(xsd.LocalPart(st.Base))
		}
		if st.Base == "" || seen[st.Base] {
			return ""
		}
		seen[st.Base] = true
		next, ok := tree.SimpleTypeByName(st.Base)
		if !ok {
			return ""
		}
		st = next
	}
	return ""
}
