package main

import (
	"context"
	"strings"

	"github.com/alnah/go-imgresolve/internal/config"
)

// runList writes the full name-to-URL mapping in the chosen format.
func runList(ctx context.Context, args []string, env *Environment) error {
	flags, fs, err := parseListFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	s, err := openSession(fs, flags.common, flags.assets, env)
	if err != nil {
		return err
	}
	format := s.cfg.Output.Format
	if fs.Changed("format") {
		format = flags.format
	}
	ctx, cancel := s.context(ctx)
	defer cancel()

	var all map[string]string
	if flags.lazy {
		all, err = s.resolver.AllAsync(ctx)
		if err != nil {
			return withTimeoutHint(err)
		}
	} else {
		all = s.resolver.All()
	}

	opts := manifestOptions{
		format: strings.ToLower(format),
		color:  useColor(flags.color, fs.Changed("color"), s.cfg, env),
		style:  s.cfg.Output.Style,
	}
	if flags.style != "" {
		opts.style = flags.style
	}
	return writeManifest(env.Stdout, newManifest(all), opts)
}

// useColor decides highlighting: an explicit --color wins, then
// output.color from config, then terminal detection.
func useColor(flagValue string, changed bool, cfg *config.Config, env *Environment) bool {
	if !changed && cfg.Output.Color {
		return true
	}
	switch flagValue {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return env.IsTerminal != nil && env.IsTerminal(env.Stdout)
	}
}
