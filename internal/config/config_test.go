package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "data/lifesim.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DecayMinutes != 60 || !cfg.Autonomy || cfg.TrustProxy {
		t.Fatalf("unexpected scheduler defaults %+v", cfg)
	}
	if cfg.ProfileCacheTTL != 10*time.Minute {
		t.Fatalf("expected 10m cache ttl, got %v", cfg.ProfileCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LIFESIM_PORT", "9090")
	t.Setenv("LIFESIM_SEED", "42")
	t.Setenv("LIFESIM_AUTONOMY", "false")
	t.Setenv("LIFESIM_PROFILE_CACHE_TTL", "30s")
	t.Setenv("LIFESIM_DECAY_SCHEDULE", "*/5 * * * *")
	t.Setenv("LIFESIM_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LIFESIM_TRUST_PROXY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 || cfg.Seed != 42 || cfg.Autonomy || !cfg.TrustProxy {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if cfg.ProfileCacheTTL != 30*time.Second {
		t.Fatalf("expected 30s, got %v", cfg.ProfileCacheTTL)
	}
	if cfg.DecaySchedule != "*/5 * * * *" {
		t.Fatalf("unexpected schedule %q", cfg.DecaySchedule)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("LIFESIM_PORT", "not-an-int")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		field string
	}{
		{name: "decay too long", env: map[string]string{"LIFESIM_DECAY_MINUTES": "1441"}, field: "LIFESIM_DECAY_MINUTES"},
		{name: "decay zero", env: map[string]string{"LIFESIM_DECAY_MINUTES": "0"}, field: "LIFESIM_DECAY_MINUTES"},
		{name: "port", env: map[string]string{"LIFESIM_PORT": "70000"}, field: "LIFESIM_PORT"},
		{name: "spawn", env: map[string]string{"LIFESIM_SPAWN_COUNT": "-1"}, field: "LIFESIM_SPAWN_COUNT"},
		{name: "rate", env: map[string]string{"LIFESIM_RATE_LIMIT_PER_MINUTE": "0"}, field: "LIFESIM_RATE_LIMIT_PER_MINUTE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.field) {
				t.Fatalf("expected %s error, got %v", tt.field, err)
			}
		})
	}
}
