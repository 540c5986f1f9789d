package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-imgresolve/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // IMGRESOLVE_CONFIG: config file name or path
	AssetPath  string        // IMGRESOLVE_ASSET_PATH: custom image directory
	Mode       string        // IMGRESOLVE_MODE: development, production
	Timeout    time.Duration // IMGRESOLVE_TIMEOUT: lazy load timeout

	// Tier 2 - URLs
	Dir         string // IMGRESOLVE_DIR: directory under the asset path
	BaseURL     string // IMGRESOLVE_BASE_URL: URL prefix
	Fingerprint string // IMGRESOLVE_FINGERPRINT: true/false

	// Tier 3 - Extended
	Extensions []string // IMGRESOLVE_EXTENSIONS: comma-separated allow-list
	Format     string   // IMGRESOLVE_FORMAT: list output format
	Workers    int      // IMGRESOLVE_WORKERS: concurrent loaders
}

// knownEnvVars lists valid IMGRESOLVE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"IMGRESOLVE_CONFIG":     true,
	"IMGRESOLVE_ASSET_PATH": true,
	"IMGRESOLVE_MODE":       true,
	"IMGRESOLVE_TIMEOUT":    true,
	// Tier 2 - URLs
	"IMGRESOLVE_DIR":         true,
	"IMGRESOLVE_BASE_URL":    true,
	"IMGRESOLVE_FINGERPRINT": true,
	// Tier 3 - Extended
	"IMGRESOLVE_EXTENSIONS": true,
	"IMGRESOLVE_FORMAT":     true,
	"IMGRESOLVE_WORKERS":    true,
	// Read by doctor only
	"IMGRESOLVE_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized IMGRESOLVE_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("IMGRESOLVE_CONFIG"),
		AssetPath:  os.Getenv("IMGRESOLVE_ASSET_PATH"),
		Mode:       os.Getenv("IMGRESOLVE_MODE"),
		// Tier 2
		Dir:         os.Getenv("IMGRESOLVE_DIR"),
		BaseURL:     os.Getenv("IMGRESOLVE_BASE_URL"),
		Fingerprint: os.Getenv("IMGRESOLVE_FINGERPRINT"),
		// Tier 3
		Format: os.Getenv("IMGRESOLVE_FORMAT"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("IMGRESOLVE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Parse int for workers
	if workers := os.Getenv("IMGRESOLVE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	// Parse comma-separated extensions, skipping blanks
	if exts := os.Getenv("IMGRESOLVE_EXTENSIONS"); exts != "" {
		for _, ext := range strings.Split(exts, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				cfg.Extensions = append(cfg.Extensions, ext)
			}
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized IMGRESOLVE_* variables.
// Helps catch typos like IMGRESOLVE_BASEURL instead of IMGRESOLVE_BASE_URL.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "IMGRESOLVE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the loaded config.
// Set variables replace file values, giving:
// CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
// An unparsable IMGRESOLVE_FINGERPRINT is reported on w and ignored.
func applyEnvConfig(env *envConfig, cfg *config.Config, w io.Writer) {
	// Tier 1
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Mode != "" {
		cfg.Mode = env.Mode
	}

	// Tier 2
	if env.Dir != "" {
		cfg.Assets.Dir = env.Dir
	}
	if env.BaseURL != "" {
		cfg.Assets.BaseURL = env.BaseURL
	}
	if env.Fingerprint != "" {
		if b, err := strconv.ParseBool(env.Fingerprint); err == nil {
			cfg.Assets.Fingerprint = b
		} else {
			fmt.Fprintf(w, "warning: IMGRESOLVE_FINGERPRINT=%q is not a boolean, ignored\n", env.Fingerprint)
		}
	}

	// Tier 3
	if len(env.Extensions) > 0 {
		cfg.Assets.Extensions = env.Extensions
	}
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.Workers > 0 {
		cfg.Assets.Workers = env.Workers
	}
}
