package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mchmarny/markingmenu/pkg/config"
	"github.com/mchmarny/markingmenu/pkg/demo"
	"github.com/mchmarny/markingmenu/pkg/logger"
	"github.com/mchmarny/markingmenu/pkg/replay"
	"github.com/mchmarny/markingmenu/pkg/server"
)

const module = "markingmenu"

var (
	version = "v0.0.0" // Set at build time via -ldflags "-X main.version=version"

	configPath = flag.String("config", "", "Path to the YAML configuration file")
	replayPath = flag.String("replay", "", "Replay a recorded gesture file, print the result and exit")
)

// Headless marking menu: serves the demo menu tree and replays recorded
// gestures against it.
func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			os.Exit(1)
		}
	}

	logger.SetDefaultLoggerWithLevel(module, version, cfg.Log.Level)

	tree := demo.NewTree(version, nil)
	opts := replay.Options{Gesture: cfg.GestureOptions()}

	if *replayPath != "" {
		rec, err := replay.Load(*replayPath)
		if err != nil {
			slog.Error("failed to load recording", "error", err)
			os.Exit(1)
		}

		res, err := replay.Run(tree.Root, rec, opts)
		if err != nil {
			slog.Error("replay failed", "error", err)
			os.Exit(1)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			slog.Error("failed to write result", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(append(cfg.ServerOptions(),
		server.WithMenu(tree),
		server.WithReplay(tree.Root, opts),
		server.WithMetrics(),
		server.WithSimpleHealth(),
	)...)

	if err := srv.Serve(ctx); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
