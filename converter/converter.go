// Package converter wires parsing, the default rule pipeline, and
// serialization into the single entry point the CLI uses.
package converter

import (
	"log/slog"

	"github.com/c360studio/semschema/config"
	"github.com/c360studio/semschema/graph"
	"github.com/c360studio/semschema/transform"
	"github.com/c360studio/semschema/transform/rules"
	"github.com/c360studio/semschema/xsd"
)

// Result bundles the outcome of one conversion run.
type Result struct {
	Graph  *graph.Graph
	Report *transform.Report
	Stats  transform.Statistics
}

// Serialize renders the result graph.
func (r *Result) Serialize(format graph.Format) (string, error) {
	return r.Graph.Serialize(format)
}

// Convert runs the default pipeline over a parsed schema with a fresh
// context.
func Convert(schema *xsd.Schema, cfg *config.Config, log *slog.Logger) (*Result, error) {
	tree := xsd.BuildTree(schema)

	ctx, err := transform.NewContext(tree, cfg, log)
	if err != nil {
		return nil, err
	}
	pipeline, err := rules.NewDefaultPipeline()
	if err != nil {
		return nil, err
	}
	g, err := pipeline.Run(ctx)
	if err != nil {
		return nil, err
	}

	return &Result{
		Graph:  g,
		Report: ctx.Report,
		Stats:  ctx.Report.Statistics(g),
	}, nil
}

// ConvertFile parses a schema file and converts it.
func ConvertFile(path string, cfg *config.Config, log *slog.Logger) (*Result, error) {
	schema, err := xsd.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Convert(schema, cfg, log)
}
