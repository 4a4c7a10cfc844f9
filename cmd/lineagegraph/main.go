// Command lineagegraph is a trivial demo driver: it is not the subject of
// this repo (spec.md §1 explicitly excludes the demo driver from the core
// engine's scope) and exists only so the module builds into something
// runnable, the way the teacher's main.go wires its dependencies together
// before starting a server. There is no CLI, no wire protocol, and nothing
// persisted (spec.md §6); this binary just constructs a Graph, runs a few
// operations, and logs the results.
package main

import (
	"flag"
	"log/slog"
	"os"

	"lineagegraph/internal/config"
	"lineagegraph/internal/lineage"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	logger.Info("starting lineagegraph", "queue_size", cfg.QueueSize, "log_level", cfg.LogLevel)

	g := lineage.NewWithOptions(logger, cfg.QueueSize)
	defer g.Close()

	g.Upsert(1, []lineage.Name{2, 3})
	g.Upsert(2, []lineage.Name{4, 5})

	logger.Info("dependencies", "name", 1, "result", g.Dependencies(1))
	logger.Info("dependencies", "name", 2, "result", g.Dependencies(2))
	logger.Info("dependents", "name", 5, "result", g.Dependents(5))
	logger.Info("dependents", "name", 2, "result", g.Dependents(2))
	logger.Info("dependencies_cascade", "name", 1, "result", g.DependenciesCascade(1))
}
