package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Snapshot.LookbackDays != 14 || cfg.Snapshot.Fidelity != 1 {
		t.Fatalf("unexpected snapshot defaults: %+v", cfg.Snapshot)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeConfigFile(t, `
log_level = "debug"

[snapshot]
slug = "french-open-winner"
lookback_days = 7
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Snapshot.Slug != "french-open-winner" {
		t.Fatalf("slug: %q", cfg.Snapshot.Slug)
	}
	if cfg.Snapshot.LookbackDays != 7 {
		t.Fatalf("lookback_days: %d", cfg.Snapshot.LookbackDays)
	}
	// Untouched fields keep their defaults.
	if cfg.Snapshot.OutputDir != "public/data" {
		t.Fatalf("output_dir: %q", cfg.Snapshot.OutputDir)
	}
	if cfg.Polymarket.GammaHost != "https://gamma-api.polymarket.com" {
		t.Fatalf("gamma_host: %q", cfg.Polymarket.GammaHost)
	}
}

func TestLoadEnvOverridesWin(t *testing.T) {
	path := writeConfigFile(t, `
[snapshot]
slug = "from-file"
`)

	t.Setenv("POLYSNAP_SNAPSHOT_SLUG", "from-env")
	t.Setenv("POLYSNAP_SNAPSHOT_LOOKBACK_DAYS", "3")
	t.Setenv("POLYSNAP_REDIS_ENABLED", "true")
	t.Setenv("POLYSNAP_REDIS_TTL", "1m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Snapshot.Slug != "from-env" {
		t.Fatalf("slug: %q", cfg.Snapshot.Slug)
	}
	if cfg.Snapshot.LookbackDays != 3 {
		t.Fatalf("lookback_days: %d", cfg.Snapshot.LookbackDays)
	}
	if !cfg.Redis.Enabled || cfg.Redis.TTL.Duration != time.Minute {
		t.Fatalf("redis: %+v", cfg.Redis)
	}
}

func TestLoadParsesDurationString(t *testing.T) {
	path := writeConfigFile(t, `
[redis]
ttl = "30s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis.TTL.Duration != 30*time.Second {
		t.Fatalf("ttl: %v", cfg.Redis.TTL.Duration)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Defaults()
	cfg.Snapshot.Slug = " "
	cfg.Snapshot.LookbackDays = 0
	cfg.Snapshot.Fidelity = 0
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"slug", "lookback_days", "fidelity", "log_level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestValidateSkipsDisabledSinks(t *testing.T) {
	cfg := Defaults()
	// Broken sink configs are fine while the sinks are disabled.
	cfg.Postgres.Host = ""
	cfg.Redis.Addr = ""
	cfg.S3.Bucket = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled sinks must not be validated: %v", err)
	}

	cfg.Redis.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("enabled redis with empty addr must fail validation")
	}
}

func TestValidateEnabledPostgres(t *testing.T) {
	cfg := Defaults()
	cfg.Postgres.Enabled = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default postgres config should validate when enabled: %v", err)
	}

	cfg.Postgres.PoolMinConns = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("pool_min_conns > pool_max_conns must fail")
	}

	// An explicit DSN makes the discrete fields optional.
	cfg = Defaults()
	cfg.Postgres.Enabled = true
	cfg.Postgres.DSN = "postgres://u:p@db:5432/polysnap"
	cfg.Postgres.Host = ""
	cfg.Postgres.Database = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("dsn-only postgres config: %v", err)
	}
}
