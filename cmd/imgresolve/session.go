package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-imgresolve"
	"github.com/alnah/go-imgresolve/internal/config"
	"github.com/alnah/go-imgresolve/internal/fileutil"
	"github.com/alnah/go-imgresolve/internal/hints"
)

// session holds what every command needs once flags are parsed.
type session struct {
	cfg      *config.Config
	resolver *imgresolve.Resolver
	timeout  time.Duration
}

// openSession loads configuration (defaults < file < env < flags) and
// builds the resolver.
func openSession(fs *flag.FlagSet, common commonFlags, af assetFlags, env *Environment) (*session, error) {
	envCfg := loadEnvConfig()
	if !common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	configName := common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg, err := loadConfig(configName)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg, env.Stderr)
	mergeFlags(fs, &af, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout, err := resolveTimeoutWithEnv(af.timeout, envCfg.Timeout)
	if err != nil {
		return nil, err
	}

	start := env.Now()
	r, err := newResolver(cfg, af.noFallback, common.quiet, env.Stderr)
	if err != nil {
		return nil, err
	}
	if common.verbose {
		printSessionSummary(env.Stderr, r, env.Now().Sub(start))
	}

	return &session{cfg: cfg, resolver: r, timeout: timeout}, nil
}

// context derives the command context, bounded by the timeout if set.
func (s *session) context(parent context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(parent, s.timeout)
	}
	return context.WithCancel(parent)
}

// loadConfig returns defaults when no config is named.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// newResolver translates a validated config into resolver options.
func newResolver(cfg *config.Config, noFallback, quiet bool, stderr io.Writer) (*imgresolve.Resolver, error) {
	mode, err := imgresolve.ParseMode(strings.ToLower(cfg.Mode))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidValue, err)
	}

	opts := []imgresolve.Option{
		imgresolve.WithMode(mode),
		imgresolve.WithBaseURL(cfg.Assets.BaseURL),
		imgresolve.WithConcurrency(imgresolve.ResolveWorkers(cfg.Assets.Workers, cfg.Assets.Fingerprint)),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, imgresolve.WithAssetPath(cfg.Assets.BasePath), imgresolve.WithDir(cfg.Assets.Dir))
	}
	if cfg.Assets.Fingerprint {
		opts = append(opts, imgresolve.WithFingerprint())
	}
	if len(cfg.Assets.Extensions) > 0 {
		opts = append(opts, imgresolve.WithExtensions(cfg.Assets.Extensions...))
	}
	if noFallback {
		opts = append(opts, imgresolve.WithoutFallback())
	}
	if quiet {
		opts = append(opts, imgresolve.WithWarnf(func(string, ...any) {}))
	} else {
		opts = append(opts, imgresolve.WithWarnings(stderr))
	}

	r, err := imgresolve.New(opts...)
	if err != nil {
		return nil, withSourceHint(err)
	}
	return r, nil
}

// withSourceHint appends a hint for resolver construction errors.
func withSourceHint(err error) error {
	var hint string
	switch {
	case errors.Is(err, imgresolve.ErrPathTraversal):
		hint = hints.ForPathTraversal()
	case errors.Is(err, imgresolve.ErrInvalidBasePath):
		hint = hints.ForBasePath()
	case errors.Is(err, imgresolve.ErrUnsupportedExtension):
		hint = hints.ForUnsupportedExtension(imgresolve.DefaultExtensions())
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// printSessionSummary reports the sources behind the resolver.
func printSessionSummary(w io.Writer, r *imgresolve.Resolver, elapsed time.Duration) {
	for i, src := range r.Sources() {
		role := "source"
		if i > 0 {
			role = "fallback"
		}
		fmt.Fprintf(w, "%s: %s (%s): %d assets\n", role, src.Name, src.Dir, len(src.Paths))
	}
	if !r.HasFallback() {
		fmt.Fprintln(w, "fallback: none")
	}
	fmt.Fprintf(w, "mode: %s, %d assets indexed in %s\n", r.Mode(), r.Len(), elapsed.Round(time.Microsecond))
}
