package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/hevystats/internal/config"
	"github.com/meltforce/hevystats/internal/dataset"
	"github.com/meltforce/hevystats/internal/importer"
	"github.com/meltforce/hevystats/internal/mcp"
	"github.com/meltforce/hevystats/internal/metrics"
	"github.com/meltforce/hevystats/internal/pipeline"
	"github.com/meltforce/hevystats/internal/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (defaults only when empty)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("hevystats starting", "version", Version)

	// Load config
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

	// Metrics
	reg := metrics.NewRegistry()
	m := metrics.NewManager("hevystats", "main", reg)

	// Initial pipeline run; the server never starts without a dataset
	store := dataset.New(imp, pipeline.Options{DefaultBodyweightKg: cfg.Pipeline.DefaultBodyweightKg}, m, log)
	if _, err := store.Reload(ctx); err != nil {
		log.Error("initial load failed", "error", err)
		os.Exit(1)
	}

	if cfg.Reload.Schedule != "" {
		if err := store.Schedule(cfg.Reload.Schedule); err != nil {
			log.Error("failed to schedule reloads", "error", err)
			os.Exit(1)
		}
		defer store.Stop()
	}

	// Create server
	srv := server.New(store, m, server.Options{
		APIKey:      cfg.Auth.APIKey,
		MinSessions: cfg.Pipeline.MinProgressionSessions,
		Gatherer:    reg,
	}, log)
	if cfg.Auth.APIKey == "" {
		log.Warn("auth.api_key not set, POST /api/v1/reload is disabled")
	}

	mcpSrv := mcp.New(mcp.NewLocalSource(store, nil), Version, log)
	srv.SetMCP(mcpserver.NewStreamableHTTPServer(mcpSrv))

	// Start server: tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
