// Package config defines the conversion configuration surface: base URI,
// naming policy, output format, and the override tables that steer
// property classification.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semschema/graph"
	"github.com/c360studio/semschema/naming"
)

// ForcedLiteral is one forced-literal override: the property is always
// literal-valued, with an optional forced range and explanatory comment.
type ForcedLiteral struct {
	Range   string `yaml:"range,omitempty"`
	Comment string `yaml:"comment,omitempty"`
}

// Config holds all conversion settings.
type Config struct {
	// BaseURI anchors every minted class, property, and concept URI.
	BaseURI string `yaml:"base_uri"`

	// EncodeMethod selects the URI fragment encoding policy.
	EncodeMethod string `yaml:"encode_method"`

	// Format selects the output serialization.
	Format string `yaml:"format"`

	// Language tags attached to labels and definitions. Empty disables
	// language tagging.
	Language string `yaml:"language,omitempty"`

	// ForceLiteral maps property names that must become literal-valued
	// regardless of structure.
	ForceLiteral map[string]ForcedLiteral `yaml:"force_literal,omitempty"`

	// ForceReference lists property names that must become
	// reference-valued, unless also listed in NeverReference.
	ForceReference []string `yaml:"force_reference,omitempty"`

	// NeverReference is the safety list that wins over ForceReference.
	NeverReference []string `yaml:"never_reference,omitempty"`

	// LiteralTypePattern matches declared type names that always denote
	// bounded numeric literals.
	LiteralTypePattern string `yaml:"literal_type_pattern"`

	// ForceClassTypes lists type names that must become classes.
	ForceClassTypes []string `yaml:"force_class_types,omitempty"`

	// ForceClassElements lists element names that must become classes.
	ForceClassElements []string `yaml:"force_class_elements,omitempty"`

	// SkipElements lists element names excluded from transformation.
	SkipElements []string `yaml:"skip_elements,omitempty"`

	// SkipTypes lists type names excluded from transformation.
	SkipTypes []string `yaml:"skip_types,omitempty"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`

	literalTypeRE *regexp.Regexp
}

// DefaultConfig returns the settings used for TAF CAT rolling stock
// schemas, the reference input for this converter.
func DefaultConfig() *Config {
	return &Config{
		BaseURI:      "http://example.org/ontology",
		EncodeMethod: string(naming.EncodeUnderscore),
		Format:       string(graph.FormatTurtle),
		Language:     "en",
		ForceLiteral: map[string]ForcedLiteral{
			"airBrakedMassLoaded": {
				Range:   "xsd:decimal",
				Comment: "Air braked mass in loaded condition, expressed in tonnes.",
			},
			"airBrakedMass": {
				Range:   "xsd:decimal",
				Comment: "Air braked mass, expressed in tonnes.",
			},
		},
		ForceReference:     []string{"administrativeDataSet"},
		NeverReference:     []string{},
		LiteralTypePattern: `^Numeric\d+(-\d+)?$`,
		ForceClassTypes:    []string{"RollingStockDataSet", "WagonDataSet"},
		ForceClassElements: []string{"AdministrativeDataSet"},
		LogLevel:           "info",
	}
}

// Validate checks the configuration and returns the first problem found.
// Configuration errors are programmer errors and fail the run before any
// input is touched.
func (c *Config) Validate() error {
	if c.BaseURI == "" {
		return fmt.Errorf("base_uri is required")
	}
	if _, err := naming.ParseEncodeMethod(c.EncodeMethod); err != nil {
		return fmt.Errorf("encode_method: %w", err)
	}
	if _, err := graph.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	re, err := regexp.Compile(c.LiteralTypePattern)
	if err != nil {
		return fmt.Errorf("literal_type_pattern: %w", err)
	}
	c.literalTypeRE = re

	never := make(map[string]bool, len(c.NeverReference))
	for _, name := range c.NeverReference {
		never[name] = true
	}
	for _, name := range c.ForceReference {
		if never[name] {
			return fmt.Errorf("%s is listed in both force_reference and never_reference", name)
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	return nil
}

// LiteralTypeRE returns the compiled literal type pattern. Validate must
// have been called first.
func (c *Config) LiteralTypeRE() *regexp.Regexp {
	if c.literalTypeRE == nil {
		c.literalTypeRE = regexp.MustCompile(c.LiteralTypePattern)
	}
	return c.literalTypeRE
}

// IsForcedReference reports whether a name is force-referenced and not
// vetoed by the never-reference list.
func (c *Config) IsForcedReference(name string) bool {
	for _, never := range c.NeverReference {
		if never == name {
			return false
		}
	}
	for _, forced := range c.ForceReference {
		if forced == name {
			return true
		}
	}
	return false
}

// ForcedLiteralFor looks up a forced-literal override by property name.
func (c *Config) ForcedLiteralFor(name string) (ForcedLiteral, bool) {
	fl, ok := c.ForceLiteral[name]
	return fl, ok
}

// ShouldSkip reports whether an element or type name is excluded.
func (c *Config) ShouldSkip(name string) bool {
	for _, s := range c.SkipElements {
		if s == name {
			return true
		}
	}
	for _, s := range c.SkipTypes {
		if s == name {
			return true
		}
	}
	return false
}

// IsForcedClass reports whether a type or element name must be a class.
func (c *Config) IsForcedClass(name string) bool {
	for _, t := range c.ForceClassTypes {
		if t == name {
			return true
		}
	}
	for _, e := range c.ForceClassElements {
		if e == name {
			return true
		}
	}
	return false
}

// LoadFromFile reads configuration from a YAML file, applied on top of
// defaults, and validates the result.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge overlays non-zero fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.BaseURI != "" {
		c.BaseURI = other.BaseURI
	}
	if other.EncodeMethod != "" {
		c.EncodeMethod = other.EncodeMethod
	}
	if other.Format != "" {
		c.Format = other.Format
	}
	if other.Language != "" {
		c.Language = other.Language
	}
	if len(other.ForceLiteral) > 0 {
		if c.ForceLiteral == nil {
			c.ForceLiteral = make(map[string]ForcedLiteral)
		}
		for k, v := range other.ForceLiteral {
			c.ForceLiteral[k] = v
		}
	}
	if len(other.ForceReference) > 0 {
		c.ForceReference = append(c.ForceReference, other.ForceReference...)
	}
	if len(other.NeverReference) > 0 {
		c.NeverReference = append(c.NeverReference, other.NeverReference...)
	}
	if other.LiteralTypePattern != "" {
		c.LiteralTypePattern = other.LiteralTypePattern
		c.literalTypeRE = nil
	}
	if len(other.ForceClassTypes) > 0 {
		c.ForceClassTypes = append(c.ForceClassTypes, other.ForceClassTypes...)
	}
	if len(other.ForceClassElements) > 0 {
		c.ForceClassElements = append(c.ForceClassElements, other.ForceClassElements...)
	}
	if len(other.SkipElements) > 0 {
		c.SkipElements = append(c.SkipElements, other.SkipElements...)
	}
	if len(other.SkipTypes) > 0 {
		c.SkipTypes = append(c.SkipTypes, other.SkipTypes...)
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}
