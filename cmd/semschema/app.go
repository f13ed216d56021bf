package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/c360studio/semschema/config"
	"github.com/c360studio/semschema/converter"
	"github.com/c360studio/semschema/graph"
	"github.com/c360studio/semschema/transform"
	"github.com/c360studio/semschema/transform/rules"
)

const (
	// Version is the binary version, overridden at build time.
	Version = "0.1.0"

	appName = "semschema"
)

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     appName,
		Short:   "Convert XML Schema documents into OWL/SKOS ontologies",
		Version: Version,
		Long: `semschema walks an XML Schema document with a pipeline of
prioritized rules and emits an OWL/SKOS ontology: classes from complex
types, datatype and object properties from elements, and SKOS concept
schemes from enumerations.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	cmd.AddCommand(convertCmd(&configPath))
	cmd.AddCommand(rulesCmd())
	cmd.AddCommand(configCmd())
	return cmd
}

// loadConfig merges a config file over defaults, when one is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.DefaultConfig()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.LoadFromFile(path)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func convertCmd(configPath *string) *cobra.Command {
	var (
		baseURI      string
		format       string
		encodeMethod string
		outputDir    string
		watch        bool
	)

	cmd := &cobra.Command{
		Use:   "convert <schema.xsd|glob>...",
		Short: "Convert schema files to an ontology",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			cfg.Merge(&config.Config{
				BaseURI:      baseURI,
				Format:       format,
				EncodeMethod: encodeMethod,
			})
			if err := cfg.Validate(); err != nil {
				return err
			}
			log := newLogger(cfg.LogLevel)

			files, err := expandInputs(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no schema files match %v", args)
			}

			if err := convertAll(files, cfg, outputDir, log); err != nil {
				return err
			}
			if watch {
				return watchAndConvert(files, cfg, outputDir, log)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURI, "base-uri", "", "base URI for minted entities")
	cmd.Flags().StringVar(&format, "format", "", "output format: turtle, ntriples, or jsonld")
	cmd.Flags().StringVar(&encodeMethod, "encode-method", "", "URI fragment encoding: underscore, camelcase, percent, dash, or plus")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory, or - for stdout")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-convert when schema files change")
	return cmd
}

// expandInputs resolves plain paths and doublestar globs to a sorted,
// deduplicated file list.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if matches == nil && !strings.ContainsAny(arg, "*?[{") {
			matches = []string{arg}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func convertAll(files []string, cfg *config.Config, outputDir string, log *slog.Logger) error {
	format := graph.Format(cfg.Format)
	for _, file := range files {
		result, err := converter.ConvertFile(file, cfg, log)
		if err != nil {
			return err
		}
		output, err := result.Serialize(format)
		if err != nil {
			return err
		}

		if outputDir == "-" {
			fmt.Println(output)
		} else {
			name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + format.Extension()
			target := filepath.Join(outputDir, name)
			if err := os.WriteFile(target, []byte(output), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
			log.Info("wrote ontology", "schema", file, "output", target)
		}

		log.Info("conversion summary",
			"schema", file,
			"classes", result.Stats.Classes,
			"datatype_properties", result.Stats.DatatypeProperties,
			"object_properties", result.Stats.ObjectProperties,
			"concept_schemes", result.Stats.ConceptSchemes,
			"concepts", result.Stats.Concepts,
			"triples", result.Stats.Triples,
			"anomalies", result.Stats.Anomalies)
		for _, a := range result.Report.Anomalies {
			log.Warn("anomaly", "kind", a.Kind, "subject", a.Subject, "detail", a.Detail)
		}
	}
	return nil
}

// watchAndConvert blocks, re-running the conversion whenever one of the
// schema files is written.
func watchAndConvert(files []string, cfg *config.Config, outputDir string, log *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, file := range files {
		if err := watcher.Add(file); err != nil {
			return fmt.Errorf("failed to watch %s: %w", file, err)
		}
	}
	log.Info("watching for changes", "files", len(files))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Info("schema changed, reconverting", "file", event.Name)
			if err := convertAll([]string{event.Name}, cfg, outputDir, log); err != nil {
				log.Error("reconversion failed", "file", event.Name, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch error", "error", err)
		}
	}
}

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the standard transformation rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := rules.NewDefaultPipeline()
			if err != nil {
				return err
			}
			byPhase := make(map[transform.PhaseKind][]transform.Rule)
			for _, rule := range pipeline.Registry().AllRules() {
				phase, _ := pipeline.PhaseOf(rule.ID())
				byPhase[phase] = append(byPhase[phase], rule)
			}
			order := []transform.PhaseKind{
				transform.PhaseClasses,
				transform.PhaseProperties,
				transform.PhaseVocabularies,
				transform.PhaseRelationships,
				transform.PhaseCleanup,
			}
			for _, phase := range order {
				fmt.Printf("%s:\n", phase)
				phaseRules := byPhase[phase]
				sort.SliceStable(phaseRules, func(i, j int) bool {
					return phaseRules[i].Priority() > phaseRules[j].Priority()
				})
				for _, rule := range phaseRules {
					fmt.Printf("  %-28s %4d  %s\n", rule.ID(), rule.Priority(), rule.Description())
				}
			}
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "semschema.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			cfg := config.DefaultConfig()
			if err := cfg.SaveToFile(path); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	})
	return cmd
}
