package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/intervalsmcp/internal/config"
	"github.com/claude/intervalsmcp/internal/icu"
	intervalsmcp "github.com/claude/intervalsmcp/internal/mcp"
	"github.com/claude/intervalsmcp/internal/server"
	"github.com/claude/intervalsmcp/internal/workouts"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	httpAddr := flag.String("http", "", "serve MCP over HTTP on this address instead of stdio")
	flag.Parse()

	// Stdio transport owns stdout, so all logging goes to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Optional .env for local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	client := icu.NewClient(cfg.BaseURL, cfg.APIKey, log)
	library := workouts.NewLibrary(cfg.WorkoutDir)
	mcpSrv := intervalsmcp.New(client, library, cfg, Version, log)

	if cfg.HTTPAddr == "" {
		log.Info("intervalsmcp starting", "version", Version, "transport", "stdio")
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	srv := server.New(mcpSrv, Version, log)

	listener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		log.Error("listen failed", "addr", cfg.HTTPAddr, "error", err)
		os.Exit(1)
	}
	log.Info("intervalsmcp starting", "version", Version, "transport", "http", "addr", cfg.HTTPAddr)

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
