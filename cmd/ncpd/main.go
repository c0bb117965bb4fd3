// Package main is the entry point for the NCP engine daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kosha-health/ncp-engine/internal/api"
	"github.com/kosha-health/ncp-engine/internal/config"
	"github.com/kosha-health/ncp-engine/internal/kb"
	"github.com/kosha-health/ncp-engine/internal/store"
	"github.com/kosha-health/ncp-engine/internal/workflow"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to configuration JSON file")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ncpd %s (commit=%s, built=%s)\n", version, commit, date)
		os.Exit(0)
	}

	// A local .env can carry NCP_CONFIG for development setups.
	_ = godotenv.Load()

	// Resolve config path: --config flag > NCP_CONFIG env > auto-discover.
	path := *configPath
	if path == "" {
		path = os.Getenv("NCP_CONFIG")
	}
	if path == "" {
		path = discoverConfig()
	}
	if path == "" {
		fatal("no config found. Place config.json next to the exe, use --config <path>, or set NCP_CONFIG.")
	}

	cfg, err := config.Load(path)
	if err != nil {
		fatal(fmt.Sprintf("load config: %v", err))
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fatal(fmt.Sprintf("build logger: %v", err))
	}
	defer log.Sync()

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	orchestrator := workflow.NewOrchestrator(db, kb.Builtin(), log, workflow.Options{
		PlanDays:      cfg.PlanDays,
		DisabledTiers: cfg.DisabledTiers(),
	})

	handler := &api.Handler{Orchestrator: orchestrator}
	srv := api.NewServer(handler, cfg.ListenAddr)

	// Graceful shutdown on interrupt.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("server shutdown", zap.Error(err))
		}
	}()

	log.Info("ncp engine listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("db", cfg.DBPath),
		zap.Int("plan_days", cfg.PlanDays))

	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server error", zap.Error(err))
	}
}

// newLogger builds a production zap logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

// discoverConfig looks for config.json next to the executable, then in the cwd.
func discoverConfig() string {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "config.json")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if _, err := os.Stat("config.json"); err == nil {
		return "config.json"
	}
	return ""
}

func fatal(msg string) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", msg)
	os.Exit(1)
}
