package assets

import (
	"fmt"
	"io/fs"
)

// Source is a filesystem plus the directory holding the images.
type Source struct {
	FS   fs.FS
	Dir  string
	Name string // Label for diagnostics, e.g. "embedded" or a base path
}

// BuildOptions configures Build.
type BuildOptions struct {
	Extensions  []string
	BaseURL     string
	Fingerprint bool
	Concurrency int
	Warnf       func(format string, args ...any)
	Fallback    *Resolver
}

// Build discovers the images in src and returns a Resolver holding both
// an eager and a lazy index over them, plus the discovery report.
func Build(src Source, opts BuildOptions) (*Resolver, *Discovery, error) {
	if src.FS == nil {
		return nil, nil, fmt.Errorf("%w: nil filesystem", ErrInvalidBasePath)
	}
	if err := ValidateExtensions(opts.Extensions); err != nil {
		return nil, nil, err
	}

	found, err := Discover(src.FS, src.Dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}

	builder := URLBuilder{FS: src.FS, Base: opts.BaseURL, Fingerprint: opts.Fingerprint}
	eager, err := builder.BuildIndex(found.Paths)
	if err != nil {
		return nil, nil, err
	}
	lazy, err := builder.BuildLazyIndex(found.Paths)
	if err != nil {
		return nil, nil, err
	}

	r := NewResolver(eager, lazy, ResolverOptions{
		Extensions:  opts.Extensions,
		Warnf:       opts.Warnf,
		Concurrency: opts.Concurrency,
		Fallback:    opts.Fallback,
	})
	return r, found, nil
}
