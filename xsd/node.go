package xsd

import "fmt"

// NodeKind discriminates the uniform tree node kinds.
type NodeKind int

const (
	// NodeSchema is the document root.
	NodeSchema NodeKind = iota

	// NodeElement is an element declaration.
	NodeElement

	// NodeAttribute is an attribute declaration.
	NodeAttribute

	// NodeComplexType is a complex type definition.
	NodeComplexType

	// NodeSimpleType is a simple type definition.
	NodeSimpleType

	// NodeSequence is a sequence model group.
	NodeSequence

	// NodeChoice is a choice model group.
	NodeChoice

	// NodeAll is an all model group.
	NodeAll
)

// String returns the kind's schema tag name.
func (k NodeKind) String() string {
	switch k {
	case NodeSchema:
		return "schema"
	case NodeElement:
		return "element"
	case NodeAttribute:
		return "attribute"
	case NodeComplexType:
		return "complexType"
	case NodeSimpleType:
		return "simpleType"
	case NodeSequence:
		return "sequence"
	case NodeChoice:
		return "choice"
	case NodeAll:
		return "all"
	default:
		return "unknown"
	}
}

// EnumValue is one enumeration facet with its extracted documentation.
type EnumValue struct {
	Value string
	Doc   string
}

// Node is the uniform, read-only tree view the pipeline traverses. It
// flattens elements, type definitions, and model groups into one node
// type with a stable path key for processed-marking.
type Node struct {
	Kind      NodeKind
	Name      string
	TypeName  string
	Ref       string
	MinOccurs string
	MaxOccurs string
	Base      string
	Doc       string
	Values    []EnumValue
	Parent    *Node
	Children  []*Node

	key string
}

// Key returns a stable identity path for the node, unique within the
// tree and identical across parses of the same document.
func (n *Node) Key() string { return n.key }

// IsAnonymous reports whether the node has no name attribute.
func (n *Node) IsAnonymous() bool { return n.Name == "" }

// HasEnumeration reports whether the node carries enumeration facets.
func (n *Node) HasEnumeration() bool { return len(n.Values) > 0 }

// IsFunctional reports whether the declaration allows at most one value.
// Absent occurrence attributes default to one in XSD.
func (n *Node) IsFunctional() bool {
	if n.MaxOccurs == "1" {
		return true
	}
	return n.MaxOccurs == "" && n.MinOccurs == ""
}

// EffectiveName returns the name attribute, falling back to the ref.
func (n *Node) EffectiveName() string {
	if n.Name != "" {
		return n.Name
	}
	return LocalPart(n.Ref)
}

// FirstChild returns the first direct child of the given kind, or nil.
func (n *Node) FirstChild(kind NodeKind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// ChildrenOfKind returns all direct children of the given kind.
func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Ancestor returns the nearest ancestor of the given kind, or nil.
func (n *Node) Ancestor(kind NodeKind) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

// OwningElement returns the nearest enclosing element declaration, or
// nil for top-level definitions.
func (n *Node) OwningElement() *Node {
	return n.Ancestor(NodeElement)
}

// InChoice reports whether the node sits directly inside a choice group.
func (n *Node) InChoice() bool {
	return n.Parent != nil && n.Parent.Kind == NodeChoice
}

// IsTopLevel reports whether the node is a direct child of the schema.
func (n *Node) IsTopLevel() bool {
	return n.Parent != nil && n.Parent.Kind == NodeSchema
}

// Walk calls fn for the node and every descendant, depth first, in
// document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Tree is the built node tree with its lookup indexes.
type Tree struct {
	Root   *Node
	Schema *Schema

	elements     map[string]*Node
	complexTypes map[string]*Node
	simpleTypes  map[string]*Node
}

// ElementByName resolves a top-level element declaration, as used for
// ref="..." indirection.
func (t *Tree) ElementByName(name string) (*Node, bool) {
	n, ok := t.elements[LocalPart(name)]
	return n, ok
}

// ComplexTypeByName resolves a named complex type definition.
func (t *Tree) ComplexTypeByName(name string) (*Node, bool) {
	n, ok := t.complexTypes[LocalPart(name)]
	return n, ok
}

// SimpleTypeByName resolves a named simple type definition.
func (t *Tree) SimpleTypeByName(name string) (*Node, bool) {
	n, ok := t.simpleTypes[LocalPart(name)]
	return n, ok
}

// ResolveType resolves a declared type name to its definition node,
// complex types first. Builtin xs:/xsd: names resolve to nothing.
func (t *Tree) ResolveType(name string) (*Node, bool) {
	if name == "" || IsXSDBuiltin(name) {
		return nil, false
	}
	if n, ok := t.ComplexTypeByName(name); ok {
		return n, true
	}
	return t.SimpleTypeByName(name)
}

// IsComplexTypeName reports whether a declared type name resolves,
// directly or through restriction bases, to a complex type definition.
func (t *Tree) IsComplexTypeName(name string) bool {
	seen := make(map[string]bool)
	for name != "" && !IsXSDBuiltin(name) && !seen[LocalPart(name)] {
		seen[LocalPart(name)] = true
		if _, ok := t.ComplexTypeByName(name); ok {
			return true
		}
		st, ok := t.SimpleTypeByName(name)
		if !ok {
			return false
		}
		name = st.Base
	}
	return false
}

// IsSimpleTypeName reports whether a declared type name resolves to a
// simple (scalar) type, either a builtin or a named simple type.
func (t *Tree) IsSimpleTypeName(name string) bool {
	if name == "" {
		return false
	}
	if IsXSDBuiltin(name) {
		return true
	}
	_, ok := t.SimpleTypeByName(name)
	return ok
}

// BuildTree converts a parsed schema into the uniform node tree and
// builds the lookup indexes.
func BuildTree(s *Schema) *Tree {
	root := &Node{Kind: NodeSchema, Name: LocalPart(s.TargetNamespace), key: "/schema"}
	root.Doc = s.Annotation.Text()

	t := &Tree{
		Root:         root,
		Schema:       s,
		elements:     make(map[string]*Node),
		complexTypes: make(map[string]*Node),
		simpleTypes:  make(map[string]*Node),
	}

	for i, e := range s.Elements {
		root.Children = append(root.Children, t.elementNode(e, root, i))
	}
	for i, ct := range s.ComplexTypes {
		root.Children = append(root.Children, t.complexTypeNode(ct, root, i))
	}
	for i, st := range s.SimpleTypes {
		root.Children = append(root.Children, t.simpleTypeNode(st, root, i))
	}

	return t
}

// childKey builds a key unique among siblings. The index stays in even
// for named nodes because a particle may repeat the same ref twice.
func childKey(parent *Node, kind NodeKind, name string, idx int) string {
	if name != "" {
		return fmt.Sprintf("%s/%s[%s#%d]", parent.key, kind, name, idx)
	}
	return fmt.Sprintf("%s/%s[%d]", parent.key, kind, idx)
}

func (t *Tree) elementNode(e *Element, parent *Node, idx int) *Node {
	n := &Node{
		Kind:      NodeElement,
		Name:      e.Name,
		TypeName:  e.Type,
		Ref:       e.Ref,
		MinOccurs: e.MinOccurs,
		MaxOccurs: e.MaxOccurs,
		Doc:       e.Annotation.Text(),
		Parent:    parent,
	}
	name := e.Name
	if name == "" {
		name = LocalPart(e.Ref)
	}
	n.key = childKey(parent, NodeElement, name, idx)

	if e.ComplexType != nil {
		n.Children = append(n.Children, t.complexTypeNode(e.ComplexType, n, 0))
	}
	if e.SimpleType != nil {
		n.Children = append(n.Children, t.simpleTypeNode(e.SimpleType, n, 0))
	}

	if parent.Kind == NodeSchema && e.Name != "" {
		t.elements[e.Name] = n
	}
	return n
}

func (t *Tree) complexTypeNode(ct *ComplexType, parent *Node, idx int) *Node {
	n := &Node{
		Kind:   NodeComplexType,
		Name:   ct.Name,
		Doc:    ct.Annotation.Text(),
		Parent: parent,
	}
	n.key = childKey(parent, NodeComplexType, ct.Name, idx)

	if ct.Sequence != nil {
		n.Children = append(n.Children, t.particleNode(ct.Sequence, NodeSequence, n, 0))
	}
	if ct.Choice != nil {
		n.Children = append(n.Children, t.particleNode(ct.Choice, NodeChoice, n, 0))
	}
	if ct.All != nil {
		n.Children = append(n.Children, t.particleNode(ct.All, NodeAll, n, 0))
	}
	if ct.SimpleContent != nil {
		if ext := ct.SimpleContent.Extension; ext != nil {
			n.Base = ext.Base
			for i, a := range ext.Attributes {
				n.Children = append(n.Children, t.attributeNode(a, n, i))
			}
		}
		if r := ct.SimpleContent.Restriction; r != nil {
			n.Base = r.Base
		}
	}
	if ct.ComplexContent != nil {
		if ext := ct.ComplexContent.Extension; ext != nil {
			n.Base = ext.Base
			if ext.Sequence != nil {
				n.Children = append(n.Children, t.particleNode(ext.Sequence, NodeSequence, n, 1))
			}
			for i, a := range ext.Attributes {
				n.Children = append(n.Children, t.attributeNode(a, n, i))
			}
		}
	}
	for i, a := range ct.Attributes {
		n.Children = append(n.Children, t.attributeNode(a, n, i))
	}

	if parent.Kind == NodeSchema && ct.Name != "" {
		t.complexTypes[ct.Name] = n
	}
	return n
}

func (t *Tree) particleNode(p *Particle, kind NodeKind, parent *Node, idx int) *Node {
	n := &Node{
		Kind:      kind,
		MinOccurs: p.MinOccurs,
		MaxOccurs: p.MaxOccurs,
		Parent:    parent,
	}
	n.key = childKey(parent, kind, "", idx)

	child := 0
	for _, e := range p.Elements {
		n.Children = append(n.Children, t.elementNode(e, n, child))
		child++
	}
	for _, c := range p.Choices {
		n.Children = append(n.Children, t.particleNode(c, NodeChoice, n, child))
		child++
	}
	for _, s := range p.Sequences {
		n.Children = append(n.Children, t.particleNode(s, NodeSequence, n, child))
		child++
	}
	return n
}

func (t *Tree) simpleTypeNode(st *SimpleType, parent *Node, idx int) *Node {
	n := &Node{
		Kind:   NodeSimpleType,
		Name:   st.Name,
		Doc:    st.Annotation.Text(),
		Parent: parent,
	}
	n.key = childKey(parent, NodeSimpleType, st.Name, idx)

	if st.Restriction != nil {
		n.Base = st.Restriction.Base
		for _, e := range st.Restriction.Enumerations {
			n.Values = append(n.Values, EnumValue{Value: e.Value, Doc: e.Annotation.Text()})
		}
	}

	if parent.Kind == NodeSchema && st.Name != "" {
		t.simpleTypes[st.Name] = n
	}
	return n
}

func (t *Tree) attributeNode(a *Attribute, parent *Node, idx int) *Node {
	n := &Node{
		Kind:     NodeAttribute,
		Name:     a.Name,
		TypeName: a.Type,
		Doc:      a.Annotation.Text(),
		Parent:   parent,
	}
	n.key = childKey(parent, NodeAttribute, a.Name, idx)
	return n
}
