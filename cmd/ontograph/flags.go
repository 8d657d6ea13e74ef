package main

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	Input       string
	Restore     string
	List        string
	Kind        string
	AxiomKind   string
	Datatype    string
	Persist     string
	MetricsPort int
	LogLevel    string
	LogFormat   string
	ShowVersion bool
}

// List modes
const (
	listNone        = ""
	listImplicit    = "implicit"
	listAxioms      = "axioms"
	listCardinality = "cardinality"
	listStats       = "stats"
)

func parseFlags(args []string, getenv func(string) string, stderr io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	env := func(key, defaultValue string) string {
		if value := getenv(key); value != "" {
			return value
		}
		return defaultValue
	}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Define flags with environment variable fallback
	fs.StringVar(&cfg.ConfigPath, "config", env("ONTOGRAPH_CONFIG", ""),
		"Path to a JSON or YAML configuration file (env: ONTOGRAPH_CONFIG)")
	fs.StringVar(&cfg.ConfigPath, "c", env("ONTOGRAPH_CONFIG", ""),
		"Path to a JSON or YAML configuration file (env: ONTOGRAPH_CONFIG)")
	fs.StringVar(&cfg.Input, "input", env("ONTOGRAPH_INPUT", ""),
		"N-Quads document to load, - for stdin (env: ONTOGRAPH_INPUT)")
	fs.StringVar(&cfg.Restore, "restore", "",
		"Name of a persisted graph to load from the configured store")
	fs.StringVar(&cfg.List, "list", listNone,
		"What to print: implicit, axioms, cardinality, stats")
	fs.StringVar(&cfg.Kind, "kind", "datatype",
		"Searcher for --list=implicit: class, datatype, object-property, data-property")
	fs.StringVar(&cfg.AxiomKind, "axiom", "",
		"Axiom kind for --list=axioms, all kinds when empty")
	fs.StringVar(&cfg.Datatype, "datatype", "http://www.w3.org/2000/01/rdf-schema#Literal",
		"Datatype IRI for --list=cardinality")
	fs.StringVar(&cfg.Persist, "persist", "",
		"Persist the graph under this name in the configured store")
	fs.IntVar(&cfg.MetricsPort, "metrics-port", envInt(getenv, "ONTOGRAPH_METRICS_PORT", 0),
		"Serve Prometheus metrics on this port until interrupted, 0 to disable (env: ONTOGRAPH_METRICS_PORT)")
	fs.StringVar(&cfg.LogLevel, "log-level", env("ONTOGRAPH_LOG_LEVEL", ""),
		"Log level: debug, info, warn, error (env: ONTOGRAPH_LOG_LEVEL)")
	fs.StringVar(&cfg.LogFormat, "log-format", env("ONTOGRAPH_LOG_FORMAT", ""),
		"Log format: json, text (env: ONTOGRAPH_LOG_FORMAT)")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")

	fs.Usage = func() { printDetailedHelp(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion {
		return nil
	}

	if cfg.Input == "" && cfg.Restore == "" {
		return fmt.Errorf("one of --input or --restore is required")
	}

	validLists := []string{listNone, listImplicit, listAxioms, listCardinality, listStats}
	if !slices.Contains(validLists, cfg.List) {
		return fmt.Errorf("invalid list mode: %s", cfg.List)
	}

	if cfg.LogLevel != "" && !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	if cfg.LogFormat != "" && !slices.Contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}
	return nil
}

func printDetailedHelp(fs *flag.FlagSet, w io.Writer) {
	_, _ = fmt.Fprintf(w, `%s - graph to axiom translation

Usage: %s [options]

Options:
`, appName, appName)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # Print the implicit data cardinality statements of a document
  %s --input=ontology.nq --list=implicit --kind=datatype

  # Print every SubClassOf axiom, implicit ones included
  %s --input=ontology.nq --list=axioms --axiom=SubClassOf

  # Load from stdin and persist to the configured store
  cat ontology.nq | %s --config=ontograph.yaml --input=- --persist=team/core

Version: %s
Build: %s
`, appName, appName, appName, Version, BuildTime)
}

func envInt(getenv func(string) string, key string, defaultValue int) int {
	if value := getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
