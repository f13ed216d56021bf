package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semschema/config"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.LiteralTypeRE().MatchString("Numeric2-2"))
	assert.True(t, cfg.LiteralTypeRE().MatchString("Numeric4"))
	assert.False(t, cfg.LiteralTypeRE().MatchString("AlphaNumeric2"))
	assert.False(t, cfg.LiteralTypeRE().MatchString("Numeric2-2Extended"))
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty base URI", func(c *config.Config) { c.BaseURI = "" }},
		{"bad encode method", func(c *config.Config) { c.EncodeMethod = "rot13" }},
		{"bad format", func(c *config.Config) { c.Format = "rdfxml" }},
		{"bad pattern", func(c *config.Config) { c.LiteralTypePattern = "[unclosed" }},
		{"bad log level", func(c *config.Config) { c.LogLevel = "trace" }},
		{"force and never overlap", func(c *config.Config) {
			c.ForceReference = []string{"paymentOption"}
			c.NeverReference = []string{"paymentOption"}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestForcedReference(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ForceReference = []string{"owner", "keeper"}
	cfg.NeverReference = []string{"keeper"}

	assert.True(t, cfg.IsForcedReference("owner"))
	assert.False(t, cfg.IsForcedReference("keeper"))
	assert.False(t, cfg.IsForcedReference("other"))
}

func TestForcedLiteralFor(t *testing.T) {
	cfg := config.DefaultConfig()

	fl, ok := cfg.ForcedLiteralFor("airBrakedMassLoaded")
	require.True(t, ok)
	assert.Equal(t, "xsd:decimal", fl.Range)
	assert.NotEmpty(t, fl.Comment)

	_, ok = cfg.ForcedLiteralFor("wagonNumber")
	assert.False(t, ok)
}

func TestSkipAndForcedClass(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SkipElements = []string{"Internal"}
	cfg.SkipTypes = []string{"LegacyType"}

	assert.True(t, cfg.ShouldSkip("Internal"))
	assert.True(t, cfg.ShouldSkip("LegacyType"))
	assert.False(t, cfg.ShouldSkip("WagonData"))

	assert.True(t, cfg.IsForcedClass("RollingStockDataSet"))
	assert.True(t, cfg.IsForcedClass("AdministrativeDataSet"))
	assert.False(t, cfg.IsForcedClass("WagonData"))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `base_uri: http://example.org/custom
encode_method: camelcase
format: ntriples
force_literal:
  speedLimit:
    range: xsd:decimal
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://example.org/custom", cfg.BaseURI)
	assert.Equal(t, "camelcase", cfg.EncodeMethod)
	assert.Equal(t, "ntriples", cfg.Format)

	_, ok := cfg.ForcedLiteralFor("speedLimit")
	assert.True(t, ok)
	_, ok = cfg.ForcedLiteralFor("airBrakedMass")
	assert.True(t, ok, "defaults survive overlay")
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: trace\n"), 0o644))
	_, err = config.LoadFromFile(path)
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.DefaultConfig()
	cfg.BaseURI = "http://example.org/saved"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/saved", loaded.BaseURI)
}

func TestMerge(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Merge(&config.Config{
		BaseURI:        "http://example.org/merged",
		ForceReference: []string{"owner"},
		SkipElements:   []string{"Internal"},
	})

	assert.Equal(t, "http://example.org/merged", cfg.BaseURI)
	assert.True(t, cfg.IsForcedReference("administrativeDataSet"))
	assert.True(t, cfg.IsForcedReference("owner"))
	assert.True(t, cfg.ShouldSkip("Internal"))
	assert.Equal(t, "info", cfg.LogLevel)

	cfg.Merge(nil)
	assert.Equal(t, "http://example.org/merged", cfg.BaseURI)
}
