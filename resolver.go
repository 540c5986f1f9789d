package imgresolve

import (
	"context"
	"fmt"
	"sort"

	"github.com/alnah/go-imgresolve/internal/assets"
)

// AssetResolver is the lookup contract shared by Resolver and test doubles.
type AssetResolver = assets.AssetResolver

// LoadResult is the outcome of one loader run, as reported by Probe.
type LoadResult = assets.LoadResult

// Compile-time interface implementation check.
var _ AssetResolver = (*Resolver)(nil)

// Resolver translates logical image names into URLs.
// Create with New; all methods are safe for concurrent use.
type Resolver struct {
	inner   *assets.Resolver
	sources []SourceReport // primary first, then the fallback if any
	mode    Mode
}

// SourceReport describes what discovery found in one image source.
type SourceReport struct {
	Name       string              // "embedded" or the absolute base path
	Dir        string              // Directory listed inside the source
	Paths      []string            // Indexed asset paths, sorted
	Skipped    []string            // Files ignored for their extension
	Collisions map[string][]string // Logical names shared by several files
}

// New creates a Resolver. Without options it serves the built-in image
// set in Development mode with relative "./" URLs.
// Returns error if the source cannot be listed or an option is invalid.
func New(opts ...Option) (*Resolver, error) {
	cfg := resolverConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	buildOpts := assets.BuildOptions{
		Extensions:  cfg.extensions,
		BaseURL:     cfg.baseURL,
		Fingerprint: cfg.fingerprint,
		Concurrency: cfg.concurrency,
		Warnf:       cfg.diagnostics(),
	}

	src, custom, err := cfg.source()
	if err != nil {
		return nil, err
	}

	var fallbackReport *SourceReport
	if custom && !cfg.noFallback {
		// The fallback stays quiet; the primary reports misses once.
		fbOpts := buildOpts
		fbOpts.Warnf = nil
		fallback, found, err := assets.Build(assets.EmbeddedSource(), fbOpts)
		if err != nil {
			return nil, fmt.Errorf("building embedded fallback: %w", err)
		}
		buildOpts.Fallback = fallback
		report := newSourceReport(assets.EmbeddedSource(), found)
		fallbackReport = &report
	}

	inner, found, err := assets.Build(src, buildOpts)
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		inner:   inner,
		sources: []SourceReport{newSourceReport(src, found)},
		mode:    cfg.mode,
	}
	if fallbackReport != nil {
		r.sources = append(r.sources, *fallbackReport)
	}
	return r, nil
}

// source picks the primary image source. custom is false for the
// built-in set.
func (c *resolverConfig) source() (src assets.Source, custom bool, err error) {
	switch {
	case c.fsys != nil:
		return assets.Source{FS: c.fsys, Dir: c.dir, Name: "fs"}, true, nil
	case c.assetPath != "":
		src, err := assets.NewFilesystemSource(c.assetPath, c.dir)
		if err != nil {
			return assets.Source{}, false, err
		}
		return src, true, nil
	default:
		return assets.EmbeddedSource(), false, nil
	}
}

func newSourceReport(src assets.Source, d *assets.Discovery) SourceReport {
	dir := src.Dir
	if dir == "" {
		dir = "."
	}
	return SourceReport{
		Name:       src.Name,
		Dir:        dir,
		Paths:      d.Paths,
		Skipped:    d.Skipped,
		Collisions: d.Collisions(),
	}
}

// Resolve returns the URL for name from the eager index.
// Returns ErrAssetNotFound if nothing matches, ErrInvalidAssetName if name
// is empty or contains a path separator.
func (r *Resolver) Resolve(name string) (string, error) {
	return r.inner.Resolve(name)
}

// URL is Resolve with an empty string for any failure.
func (r *Resolver) URL(name string) string {
	return r.inner.URL(name)
}

// ResolveAsync finds name in the lazy index and waits for its loader.
func (r *Resolver) ResolveAsync(ctx context.Context, name string) (string, error) {
	return r.inner.ResolveAsync(ctx, name)
}

// All maps every logical name to its URL.
func (r *Resolver) All() map[string]string {
	return r.inner.All()
}

// AllAsync runs every loader and maps every logical name to its URL.
// The first loader failure fails the whole call.
func (r *Resolver) AllAsync(ctx context.Context) (map[string]string, error) {
	return r.inner.AllAsync(ctx)
}

// Probe runs every loader and reports each outcome.
func (r *Resolver) Probe(ctx context.Context) []LoadResult {
	return r.inner.Probe(ctx)
}

// Names returns every resolvable logical name, sorted.
func (r *Resolver) Names() []string {
	all := r.inner.All()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of assets indexed from the primary source.
func (r *Resolver) Len() int {
	return r.inner.Len()
}

// HasFallback returns true if misses are retried in the built-in set.
func (r *Resolver) HasFallback() bool {
	return r.inner.HasFallback()
}

// Sources reports discovery results, primary source first.
func (r *Resolver) Sources() []SourceReport {
	return append([]SourceReport(nil), r.sources...)
}

// Mode returns the diagnostic mode the resolver was built with.
func (r *Resolver) Mode() Mode {
	return r.mode
}
