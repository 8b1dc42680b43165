// Package config resolves genforge's solver defaults from environment
// variables (optionally loaded from a .env file) with CLI flags layered
// on top: an explicit env var always wins over a built-in default, and
// CLI flags, layered on afterward by the caller, win over both.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every solver-facing default the CLI can override, plus
// the ambient HTTP/scheduler/artifact knobs.
type Config struct {
	FitnessMode string // "basic" | "enhanced" | "ultra"
	Target      float64
	TimeSeconds int  // 0 = no limit
	Threads     int  // 0 = auto
	NoCLI       bool // batch mode, REPL disabled

	HTTPAddr       string // "" disables the optional control plane
	CronSchedule   string // "" disables scheduled re-discovery
	ExportS3Bucket string // "" disables artifact export
}

// defaults mirrors solver.DefaultConfig's literal values so the two
// packages can't silently drift; solver stays free of an import on
// config so it remains usable as a library on its own.
func defaults() Config {
	return Config{
		FitnessMode: "enhanced",
		Target:      0.9999999999,
		TimeSeconds: 0,
		Threads:     0,
		NoCLI:       false,
	}
}

// Load reads a `.env` file if present (missing is not an error, matching
// godotenv's own idiom) then resolves every field from its GENFORGE_*
// environment variable, falling back to defaults() when unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	cfg := defaults()

	if v := os.Getenv("GENFORGE_FITNESS"); v != "" {
		cfg.FitnessMode = v
	}
	if v := os.Getenv("GENFORGE_TARGET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Target = f
		}
	}
	if v := os.Getenv("GENFORGE_TIME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeSeconds = n
		}
	}
	if v := os.Getenv("GENFORGE_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Threads = n
		}
	}
	if v := os.Getenv("GENFORGE_NO_CLI"); v != "" {
		cfg.NoCLI = v == "1" || v == "true"
	}
	cfg.HTTPAddr = os.Getenv("GENFORGE_HTTP_ADDR")
	cfg.CronSchedule = os.Getenv("GENFORGE_CRON")
	cfg.ExportS3Bucket = os.Getenv("GENFORGE_EXPORT_S3_BUCKET")

	return &cfg, nil
}
