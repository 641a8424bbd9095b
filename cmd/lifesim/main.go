// Command lifesim runs the agent cognition engine: persistence, the decay
// scheduler and the HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/talgya/lifesim/internal/api"
	"github.com/talgya/lifesim/internal/config"
	"github.com/talgya/lifesim/internal/engine"
	"github.com/talgya/lifesim/internal/entropy"
	"github.com/talgya/lifesim/internal/persistence"
	"github.com/talgya/lifesim/internal/telemetry"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	telemetry.ConfigureSlog(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}

	// ── Database ──────────────────────────────────────────────────────
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Engine ────────────────────────────────────────────────────────
	rng := entropy.Default(cfg.RandomOrgAPIKey, cfg.Seed)
	if cfg.RandomOrgAPIKey == "" {
		slog.Warn("RANDOM_ORG_API_KEY not set, using local randomness", "seed", cfg.Seed)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	eng := engine.New(db, rng, engine.Options{
		Metrics:         telemetry.NewMetrics(reg),
		ProfileCacheTTL: cfg.ProfileCacheTTL,
	})

	ctx := context.Background()
	ids, err := eng.AgentIDs(ctx)
	if err != nil {
		slog.Error("failed to list agents", "error", err)
		os.Exit(1)
	}
	if len(ids) == 0 && cfg.SpawnCount > 0 {
		spawned, err := eng.Populate(ctx, cfg.SpawnCount)
		if err != nil {
			slog.Error("failed to spawn agents", "error", err)
			os.Exit(1)
		}
		slog.Info("population spawned", "agents", len(spawned))
	} else {
		slog.Info("population restored", "agents", len(ids))
	}

	// ── Scheduler ─────────────────────────────────────────────────────
	locks := &engine.AgentLocks{}
	ticker := &engine.Ticker{
		Engine:   eng,
		Locks:    locks,
		Minutes:  cfg.DecayMinutes,
		Autonomy: cfg.Autonomy,
	}
	if err := ticker.Start(cfg.DecaySchedule); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.AdminKey == "" {
		slog.Warn("LIFESIM_ADMIN_KEY not set, admin POST endpoints will be disabled")
	}
	apiServer := &api.Server{
		Engine:      eng,
		Locks:       locks,
		Ticker:      ticker,
		Gatherer:    reg,
		Port:        cfg.Port,
		AdminKey:    cfg.AdminKey,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   cfg.RateLimitPerMinute,
		TrustProxy:  cfg.TrustProxy,
	}
	apiServer.Start()

	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.Port)

	// ── Shutdown ──────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	ticker.Stop()
	if err := apiServer.Shutdown(10 * time.Second); err != nil {
		slog.Error("HTTP shutdown failed", "error", err)
	}
	slog.Info("stopped", "ticks", ticker.Ticks())
}
