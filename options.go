package imgresolve

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/alnah/go-imgresolve/internal/assets"
)

// DefaultExtensions returns the built-in extension allow-list in
// inference priority order.
func DefaultExtensions() []string {
	return append([]string(nil), assets.DefaultExtensions...)
}

// Mode selects how missed lookups are reported.
type Mode int

const (
	// Development writes one warning per missed lookup.
	Development Mode = iota
	// Production stays silent on misses.
	Production
)

// String returns the mode name used in config files.
func (m Mode) String() string {
	if m == Production {
		return "production"
	}
	return "development"
}

// ParseMode converts a config mode name; empty means Development.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "development", "dev":
		return Development, nil
	case "production", "prod":
		return Production, nil
	default:
		return Development, fmt.Errorf("unknown mode %q (want development or production)", s)
	}
}

// Option configures a Resolver.
type Option func(*resolverConfig)

// resolverConfig holds the settings New builds from.
type resolverConfig struct {
	assetPath   string
	dir         string
	fsys        fs.FS
	baseURL     string
	fingerprint bool
	extensions  []string
	warnf       func(format string, args ...any)
	concurrency int
	mode        Mode
	noFallback  bool
}

// WithAssetPath reads images from a directory on disk instead of the
// built-in set. Files are listed from {path}/{dir} (see WithDir).
func WithAssetPath(path string) Option {
	return func(c *resolverConfig) {
		c.assetPath = path
	}
}

// WithDir selects the directory holding images inside the asset path or
// filesystem. Empty means the root.
func WithDir(dir string) Option {
	return func(c *resolverConfig) {
		c.dir = dir
	}
}

// WithFS reads images from fsys, for callers embedding their own set.
// Takes precedence over WithAssetPath.
func WithFS(fsys fs.FS) Option {
	return func(c *resolverConfig) {
		c.fsys = fsys
	}
}

// WithBaseURL sets the prefix of every URL (default "./").
func WithBaseURL(base string) Option {
	return func(c *resolverConfig) {
		c.baseURL = base
	}
}

// WithFingerprint appends ?v=<content hash> to every URL.
func WithFingerprint() Option {
	return func(c *resolverConfig) {
		c.fingerprint = true
	}
}

// WithExtensions replaces the extension allow-list. Order sets the
// inference priority for names given without an extension.
func WithExtensions(exts ...string) Option {
	return func(c *resolverConfig) {
		c.extensions = append([]string(nil), exts...)
	}
}

// WithWarnings sends development-mode warnings to w, one line each.
func WithWarnings(w io.Writer) Option {
	return WithWarnf(func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	})
}

// WithWarnf sends development-mode warnings to a printf-style function.
func WithWarnf(f func(format string, args ...any)) Option {
	return func(c *resolverConfig) {
		c.warnf = f
	}
}

// WithConcurrency bounds how many loaders AllAsync and Probe run at once.
// Zero runs all of them at once.
// Panics if n < 0 (programmer error, similar to time.NewTicker).
func WithConcurrency(n int) Option {
	if n < 0 {
		panic("imgresolve: WithConcurrency must not be negative")
	}
	return func(c *resolverConfig) {
		c.concurrency = n
	}
}

// WithMode selects Development (default) or Production.
func WithMode(m Mode) Option {
	return func(c *resolverConfig) {
		c.mode = m
	}
}

// WithoutFallback stops a custom source from falling back to the
// built-in image set.
func WithoutFallback() Option {
	return func(c *resolverConfig) {
		c.noFallback = true
	}
}

// diagnostics returns the warning function for the configured mode.
func (c *resolverConfig) diagnostics() func(format string, args ...any) {
	if c.mode == Production {
		return nil
	}
	if c.warnf != nil {
		return c.warnf
	}
	return func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
