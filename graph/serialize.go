package graph

import (
	"fmt"
	"sort"
	"strings"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTurtle, FormatNTriples, FormatJSONLD:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatTurtle:
		return ".ttl"
	case FormatNTriples:
		return ".nt"
	case FormatJSONLD:
		return ".jsonld"
	default:
		return ""
	}
}

// Serialize writes the whole graph in the requested format.
func (g *Graph) Serialize(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return g.toTurtle(), nil
	case FormatNTriples:
		return g.toNTriples(), nil
	case FormatJSONLD:
		return g.toJSONLD(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// toTurtle serializes to Turtle format, grouping triples by subject in
// first-seen order so repeated runs emit identical output.
func (g *Graph) toTurtle() string {
	var sb strings.Builder

	prefixes := g.Prefixes()
	names := make([]string, 0, len(prefixes))
	for name := range prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", name, prefixes[name]))
	}
	if len(names) > 0 {
		sb.WriteString("\n")
	}

	triples := g.Triples()
	bySubject := make(map[Term][]Triple)
	var order []Term
	for _, t := range triples {
		if _, ok := bySubject[t.Subject]; !ok {
			order = append(order, t.Subject)
		}
		bySubject[t.Subject] = append(bySubject[t.Subject], t)
	}

	for _, subj := range order {
		group := bySubject[subj]
		sb.WriteString(g.turtleTerm(subj))
		sb.WriteString("\n")
		for i, t := range group {
			sb.WriteString("    ")
			sb.WriteString(g.turtleTerm(t.Predicate))
			sb.WriteString(" ")
			sb.WriteString(g.turtleTerm(t.Object))
			if i < len(group)-1 {
				sb.WriteString(" ;\n")
			} else {
				sb.WriteString(" .\n")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// turtleTerm renders a term, compacting IRIs against bound prefixes.
func (g *Graph) turtleTerm(t Term) string {
	switch t.Kind {
	case KindIRI:
		for name, ns := range g.Prefixes() {
			if local, ok := strings.CutPrefix(t.Value, ns); ok && isLocalName(local) {
				return name + ":" + local
			}
		}
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	default:
		s := "\"" + escapeLiteral(t.Value) + "\""
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^" + g.turtleTerm(IRI(t.Datatype))
		}
		return s
	}
}

// isLocalName reports whether the string is usable as a prefixed local
// part without escaping.
func isLocalName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return true
}

// toNTriples serializes one triple per line.
func (g *Graph) toNTriples() string {
	var sb strings.Builder
	for _, t := range g.Triples() {
		sb.WriteString(t.String())
		sb.WriteString(" .\n")
	}
	return sb.String()
}

// toJSONLD serializes a flat @graph with a @context built from the bound
// prefixes.
func (g *Graph) toJSONLD() string {
	var sb strings.Builder

	sb.WriteString("{\n")
	sb.WriteString("  \"@context\": {\n")
	prefixes := g.Prefixes()
	names := make([]string, 0, len(prefixes))
	for name := range prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		sb.WriteString(fmt.Sprintf("    %q: %q", name, prefixes[name]))
		if i < len(names)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  },\n")
	sb.WriteString("  \"@graph\": [\n")

	triples := g.Triples()
	bySubject := make(map[Term][]Triple)
	var order []Term
	for _, t := range triples {
		if _, ok := bySubject[t.Subject]; !ok {
			order = append(order, t.Subject)
		}
		bySubject[t.Subject] = append(bySubject[t.Subject], t)
	}

	for i, subj := range order {
		// Objects collect per predicate so a repeated predicate becomes
		// a JSON array instead of a duplicate key.
		byPredicate := make(map[string][]string)
		var predicates []string
		for _, t := range bySubject[subj] {
			p := t.Predicate.Value
			if _, ok := byPredicate[p]; !ok {
				predicates = append(predicates, p)
			}
			byPredicate[p] = append(byPredicate[p], jsonldObject(t.Object))
		}

		sb.WriteString("    {\n")
		sb.WriteString(fmt.Sprintf("      \"@id\": %q", jsonldID(subj)))
		for _, p := range predicates {
			sb.WriteString(",\n")
			values := byPredicate[p]
			if len(values) == 1 {
				sb.WriteString(fmt.Sprintf("      %q: %s", p, values[0]))
			} else {
				sb.WriteString(fmt.Sprintf("      %q: [%s]", p, strings.Join(values, ", ")))
			}
		}
		sb.WriteString("\n    }")
		if i < len(order)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("  ]\n")
	sb.WriteString("}\n")
	return sb.String()
}

func jsonldID(t Term) string {
	if t.IsBlank() {
		return "_:" + t.Value
	}
	return t.Value
}

func jsonldObject(t Term) string {
	switch t.Kind {
	case KindIRI, KindBlank:
		return fmt.Sprintf("{\"@id\": %q}", jsonldID(t))
	default:
		if t.Datatype != "" {
			return fmt.Sprintf("{\"@value\": %q, \"@type\": %q}", t.Value, t.Datatype)
		}
		if t.Lang != "" {
			return fmt.Sprintf("{\"@value\": %q, \"@language\": %q}", t.Value, t.Lang)
		}
		return fmt.Sprintf("%q", t.Value)
	}
}
