package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/hevystats/internal/config"
	"github.com/meltforce/hevystats/internal/dataset"
	"github.com/meltforce/hevystats/internal/importer"
	"github.com/meltforce/hevystats/internal/mcp"
	"github.com/meltforce/hevystats/internal/pipeline"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (defaults only when empty)")
	remote := flag.String("remote", "", "hevystats server URL to query instead of loading data locally (e.g. https://hevystats.tail1234.ts.net)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("hevystats-mcp", Version)
		return
	}

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var src mcp.DataSource
	if *remote != "" {
		src = mcp.NewHTTPClient(*remote)
		log.Info("using remote dataset", "server", *remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		ctx := context.Background()
		imp, closeSource, err := importer.FromConfig(ctx, cfg, log)
		if err != nil {
			log.Error("failed to open set source", "error", err)
			os.Exit(1)
		}
		defer closeSource()

		store := dataset.New(imp, pipeline.Options{DefaultBodyweightKg: cfg.Pipeline.DefaultBodyweightKg}, nil, log)
		if _, err := store.Reload(ctx); err != nil {
			log.Error("load failed", "error", err)
			os.Exit(1)
		}
		src = mcp.NewLocalSource(store, nil)
	}

	if err := mcpserver.ServeStdio(mcp.New(src, Version, log)); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
