// Package graph provides an in-memory RDF triple graph with idempotent
// insertion, pattern matching, and Turtle/N-Triples/JSON-LD export.
package graph

import (
	"fmt"
	"strings"
)

// TermKind discriminates the node kinds a triple position can hold.
type TermKind int

const (
	// KindIRI is a named node.
	KindIRI TermKind = iota

	// KindLiteral is a plain or typed literal value.
	KindLiteral

	// KindBlank is a blank node.
	KindBlank
)

// Term is one position of a triple. Terms are comparable values so
// triples can be used as map keys.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	Lang     string
}

// IRI returns a named-node term.
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// Literal returns a plain string literal term.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// TypedLiteral returns a literal term with a datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// LangLiteral returns a language-tagged literal term.
func LangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Lang: lang}
}

// Blank returns a blank-node term with the given label.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: label}
}

// IsIRI reports whether the term is a named node.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsBlank reports whether the term is a blank node.
func (t Term) IsBlank() bool { return t.Kind == KindBlank }

// String renders the term in N-Triples syntax.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	default:
		s := fmt.Sprintf("%q", t.Value)
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	}
}

// escapeLiteral escapes special characters for Turtle serialization.
func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

// Triple is a single (subject, predicate, object) statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// String renders the triple in N-Triples syntax without the trailing dot.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String()
}
