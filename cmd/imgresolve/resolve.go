package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-imgresolve"
	"github.com/alnah/go-imgresolve/internal/hints"
)

// runResolve prints the URL of each name. With one name the URL is
// printed alone; with several, each line is "name<TAB>url".
// Missing names are collected and reported together after the others.
func runResolve(ctx context.Context, args []string, env *Environment) error {
	flags, fs, names, err := parseResolveFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: usage: imgresolve resolve [flags] <name>...", ErrNoNames)
	}

	s, err := openSession(fs, flags.common, flags.assets, env)
	if err != nil {
		return err
	}
	ctx, cancel := s.context(ctx)
	defer cancel()

	var missing []string
	for _, name := range names {
		var url string
		if flags.lazy {
			url, err = s.resolver.ResolveAsync(ctx, name)
		} else {
			url, err = s.resolver.Resolve(name)
		}
		if errors.Is(err, imgresolve.ErrAssetNotFound) {
			missing = append(missing, name)
			continue
		}
		if err != nil {
			return withTimeoutHint(err)
		}
		if len(names) == 1 {
			fmt.Fprintln(env.Stdout, url)
		} else {
			fmt.Fprintf(env.Stdout, "%s\t%s\n", name, url)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s%s", imgresolve.ErrAssetNotFound,
			strings.Join(missing, ", "), hints.ForAssetNotFound(missing[0], s.resolver.Names()))
	}
	return nil
}

// withTimeoutHint appends the --timeout hint to deadline errors.
func withTimeoutHint(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}
