// Package main implements the ontograph command. It loads a graph from an N-Quads
// document or a configured store, prints its implicit statements, axioms or statistics,
// and optionally persists it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/c360/ontograph/axiom"
	"github.com/c360/ontograph/codec"
	"github.com/c360/ontograph/config"
	"github.com/c360/ontograph/graph"
	"github.com/c360/ontograph/manager"
	"github.com/c360/ontograph/metric"
	"github.com/c360/ontograph/search"
	"github.com/c360/ontograph/storage"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "ontograph"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) error {
	cli, err := parseFlags(args, getenv, stderr)
	if err != nil {
		return err
	}
	if cli.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s %s (%s)\n", appName, Version, BuildTime)
		return nil
	}
	if err := validateFlags(cli); err != nil {
		return err
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	logger := setupLogger(stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	registry := metric.NewMetricsRegistry()

	store, err := cfg.Storage.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	opts := []manager.Option{manager.WithLogger(logger), manager.WithMetrics(registry)}
	if store != nil {
		opts = append(opts, manager.WithStore(store))
	}
	mgr, err := manager.New(cfg.ManagerConfig(), opts...)
	if err != nil {
		return fmt.Errorf("create manager: %w", err)
	}
	defer func() { _ = mgr.Close() }()

	var server *metric.Server
	if cfg.Metrics.Port > 0 {
		server = metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)
		server.SetHealthCheck(mgr.Health)
		go func() {
			if err := server.Start(); err != nil {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() { _ = server.Stop() }()
	}

	if err := loadGraph(ctx, mgr, cli, stdin, store); err != nil {
		return err
	}

	if err := list(ctx, mgr, cli, stdout); err != nil {
		return err
	}

	if cli.Persist != "" {
		if err := mgr.Persist(ctx, cli.Persist); err != nil {
			return fmt.Errorf("persist %s: %w", cli.Persist, err)
		}
	}

	if server != nil {
		logger.Info("Serving metrics until interrupted", "address", server.Address())
		<-ctx.Done()
	}
	return nil
}

// loadConfig loads the configuration file, if any, and applies flag overrides
func loadConfig(cli *CLIConfig) (*config.Config, error) {
	loader := config.NewLoader()
	if cli.ConfigPath != "" {
		loader.AddLayer(cli.ConfigPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Log.Format = cli.LogFormat
	}
	if cli.MetricsPort != 0 {
		cfg.Metrics.Port = cli.MetricsPort
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadGraph(ctx context.Context, mgr *manager.Manager, cli *CLIConfig, stdin io.Reader, store storage.Store) error {
	if cli.Restore != "" {
		if store == nil {
			return fmt.Errorf("--restore needs a storage backend in the configuration")
		}
		if _, err := mgr.Restore(ctx, cli.Restore); err != nil {
			return fmt.Errorf("restore %s: %w", cli.Restore, err)
		}
	}

	if cli.Input == "" {
		return nil
	}
	r := stdin
	if cli.Input != "-" {
		f, err := os.Open(cli.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if _, err := mgr.Load(ctx, r); err != nil {
		return fmt.Errorf("load %s: %w", cli.Input, err)
	}
	return nil
}

func list(ctx context.Context, mgr *manager.Manager, cli *CLIConfig, w io.Writer) error {
	switch cli.List {
	case listImplicit:
		kind, err := search.ParseKind(cli.Kind)
		if err != nil {
			return err
		}
		statements, err := mgr.ImplicitStatements(ctx, kind)
		if err != nil {
			return err
		}
		return printStatements(w, statements)

	case listAxioms:
		kinds := axiom.Kinds()
		if cli.AxiomKind != "" {
			kind, err := axiom.ParseKind(cli.AxiomKind)
			if err != nil {
				return err
			}
			kinds = []axiom.Kind{kind}
		}
		for _, kind := range kinds {
			axioms, err := mgr.Axioms(ctx, kind)
			if err != nil {
				return err
			}
			if err := printAxioms(w, axioms); err != nil {
				return err
			}
		}
		return nil

	case listCardinality:
		axioms, err := mgr.CardinalityAxioms(ctx, cli.Datatype)
		if err != nil {
			return err
		}
		return printAxioms(w, axioms)

	case listStats:
		stats, err := mgr.Stats(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	return nil
}

func printStatements(w io.Writer, statements []graph.Statement) error {
	return codec.Encode(w, statements)
}

func printAxioms(w io.Writer, axioms []axiom.Axiom) error {
	for _, a := range axioms {
		if _, err := fmt.Fprintln(w, a); err != nil {
			return err
		}
	}
	return nil
}
