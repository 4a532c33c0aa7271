package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies POLYSNAP_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known POLYSNAP_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Polymarket ──
	setStr(&cfg.Polymarket.GammaHost, "POLYSNAP_POLYMARKET_GAMMA_HOST")
	setStr(&cfg.Polymarket.ClobHost, "POLYSNAP_POLYMARKET_CLOB_HOST")

	// ── Snapshot ──
	setStr(&cfg.Snapshot.Slug, "POLYSNAP_SNAPSHOT_SLUG")
	setStr(&cfg.Snapshot.OutputDir, "POLYSNAP_SNAPSHOT_OUTPUT_DIR")
	setInt(&cfg.Snapshot.LookbackDays, "POLYSNAP_SNAPSHOT_LOOKBACK_DAYS")
	setInt(&cfg.Snapshot.Fidelity, "POLYSNAP_SNAPSHOT_FIDELITY")

	// ── Postgres ──
	setBool(&cfg.Postgres.Enabled, "POLYSNAP_POSTGRES_ENABLED")
	setStr(&cfg.Postgres.DSN, "POLYSNAP_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "POLYSNAP_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "POLYSNAP_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "POLYSNAP_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "POLYSNAP_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "POLYSNAP_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "POLYSNAP_POSTGRES_SSLMODE")
	setInt(&cfg.Postgres.PoolMaxConns, "POLYSNAP_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "POLYSNAP_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "POLYSNAP_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "POLYSNAP_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "POLYSNAP_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "POLYSNAP_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "POLYSNAP_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "POLYSNAP_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "POLYSNAP_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "POLYSNAP_REDIS_TLS_ENABLED")
	setDuration(&cfg.Redis.TTL, "POLYSNAP_REDIS_TTL")

	// ── S3 ──
	setBool(&cfg.S3.Enabled, "POLYSNAP_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "POLYSNAP_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "POLYSNAP_S3_REGION")
	setStr(&cfg.S3.Bucket, "POLYSNAP_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "POLYSNAP_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "POLYSNAP_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "POLYSNAP_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "POLYSNAP_S3_FORCE_PATH_STYLE")
	setStr(&cfg.S3.Prefix, "POLYSNAP_S3_PREFIX")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "POLYSNAP_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
