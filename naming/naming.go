// Package naming mints deterministic, collision-safe URIs for classes,
// properties, and vocabulary terms under a configurable base URI and
// fragment encoding policy.
package naming

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"unicode"

	"github.com/c360studio/semschema/vocabulary"
)

// EncodeMethod selects how non-identifier characters in a logical name
// are encoded into a URI fragment.
type EncodeMethod string

const (
	// EncodeUnderscore replaces separators with underscores.
	EncodeUnderscore EncodeMethod = "underscore"

	// EncodeCamelCase joins words with capitalized initials.
	EncodeCamelCase EncodeMethod = "camelcase"

	// EncodePercent applies standard percent-encoding.
	EncodePercent EncodeMethod = "percent"

	// EncodeDash replaces separators with dashes.
	EncodeDash EncodeMethod = "dash"

	// EncodePlus replaces separators with plus signs.
	EncodePlus EncodeMethod = "plus"
)

// ParseEncodeMethod validates an encoding policy name.
func ParseEncodeMethod(s string) (EncodeMethod, error) {
	switch EncodeMethod(s) {
	case EncodeUnderscore, EncodeCamelCase, EncodePercent, EncodeDash, EncodePlus:
		return EncodeMethod(s), nil
	default:
		return "", fmt.Errorf("unknown encode method: %s", s)
	}
}

// Service mints URIs and remembers them per kind so every caller gets
// the same URI for the same logical name.
type Service struct {
	baseURI string
	method  EncodeMethod

	mu         sync.RWMutex
	classes    map[string]string
	properties map[string]string
	schemes    map[string]string
	concepts   map[string]string
}

// NewService creates a naming service. The base URI gets a trailing "#"
// unless it already ends in a separator.
func NewService(baseURI string, method EncodeMethod) *Service {
	if !strings.HasSuffix(baseURI, "#") && !strings.HasSuffix(baseURI, "/") {
		baseURI += "#"
	}
	return &Service{
		baseURI:    baseURI,
		method:     method,
		classes:    make(map[string]string),
		properties: make(map[string]string),
		schemes:    make(map[string]string),
		concepts:   make(map[string]string),
	}
}

// BaseURI returns the normalized base URI.
func (s *Service) BaseURI() string { return s.baseURI }

// ClassURI returns the URI for a class name.
func (s *Service) ClassURI(name string) string {
	return s.remember(s.classes, name, s.baseURI+s.EncodeFragment(Sanitize(name)))
}

// PropertyURI returns the URI for a property name. Property local names
// start with a lower-case initial.
func (s *Service) PropertyURI(name string) string {
	local := s.EncodeFragment(Sanitize(LowerInitial(name)))
	return s.remember(s.properties, name, s.baseURI+local)
}

// SchemeURI returns the URI for a concept scheme name.
func (s *Service) SchemeURI(name string) string {
	return s.remember(s.schemes, name, s.baseURI+s.EncodeFragment(Sanitize(name)))
}

// ConceptURI returns the URI for a concept value within a scheme.
func (s *Service) ConceptURI(scheme, value string) string {
	key := scheme + "\x00" + value
	local := s.EncodeFragment(Sanitize(scheme)) + "_" + s.EncodeFragment(NormalizeEnumValue(value))
	return s.remember(s.concepts, key, s.baseURI+local)
}

// TypeReference resolves a declared type name to a URI: xs:/xsd:
// prefixed names map into the XSD namespace, other qualified names and
// plain names map into the base namespace.
func (s *Service) TypeReference(name string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "xs:") || strings.HasPrefix(name, "xsd:") {
		return vocabulary.XSDType(name[strings.Index(name, ":")+1:])
	}
	local := name
	if i := strings.LastIndex(name, ":"); i >= 0 {
		local = name[i+1:]
	}
	return s.baseURI + s.EncodeFragment(Sanitize(local))
}

func (s *Service) remember(m map[string]string, key, uri string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := m[key]; ok {
		return existing
	}
	m[key] = uri
	return uri
}

// EncodeFragment applies the configured encoding policy to a name.
func (s *Service) EncodeFragment(name string) string {
	return EncodeFragment(name, s.method)
}

// EncodeFragment encodes a name with the given policy. Separators are
// spaces, slashes, and dots.
func EncodeFragment(name string, method EncodeMethod) string {
	switch method {
	case EncodeCamelCase:
		words := strings.FieldsFunc(name, isSeparator)
		for i, w := range words {
			words[i] = UpperInitial(w)
		}
		return strings.Join(words, "")
	case EncodePercent:
		return url.PathEscape(name)
	case EncodeDash:
		return joinSeparated(name, "-")
	case EncodePlus:
		return joinSeparated(name, "+")
	default:
		return joinSeparated(name, "_")
	}
}

func joinSeparated(name, sep string) string {
	return strings.Join(strings.FieldsFunc(name, isSeparator), sep)
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '/' || r == '.' || r == ','
}

// Sanitize strips characters that are illegal in an IRI fragment,
// keeping letters, digits, and common identifier punctuation.
func Sanitize(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case r == '_' || r == '-' || r == '.' || r == ' ':
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

// LowerInitial lowers the first rune of a name.
func LowerInitial(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// UpperInitial raises the first rune of a name.
func UpperInitial(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// NormalizeEnumValue makes an enumeration value usable as a URI local
// part: spaces become underscores, other illegal characters are dropped.
func NormalizeEnumValue(value string) string {
	value = Sanitize(value)
	return strings.ReplaceAll(value, " ", "_")
}

// LocalName returns the fragment or final path segment of a URI.
func LocalName(uri string) string {
	if i := strings.LastIndexAny(uri, "#/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
