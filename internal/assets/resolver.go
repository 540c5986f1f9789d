package assets

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Resolver looks up logical names in an eager and a lazy index.
// When a fallback is configured, misses in the primary indexes are retried
// there, so a custom directory can override the embedded image set.
type Resolver struct {
	eager       *Index
	lazy        *LazyIndex
	exts        extensionSet
	warnf       func(format string, args ...any) // nil in production mode
	concurrency int                              // 0 = all loaders at once
	fallback    *Resolver                        // nil if no fallback configured
}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	Extensions  []string                         // Inference priority (default DefaultExtensions)
	Warnf       func(format string, args ...any) // Diagnostic channel for misses
	Concurrency int                              // Max simultaneous loaders in AllAsync (0 = unbounded)
	Fallback    *Resolver                        // Consulted when the primary misses
}

// LoadResult is the outcome of one loader run.
type LoadResult struct {
	Path string
	Name string
	URL  string
	Err  error
}

// NewResolver creates a Resolver over the given indexes. Either index may
// be nil, in which case it behaves as empty.
func NewResolver(eager *Index, lazy *LazyIndex, opts ResolverOptions) *Resolver {
	if eager == nil {
		eager = &Index{urls: map[string]string{}}
	}
	if lazy == nil {
		lazy = &LazyIndex{loaders: map[string]Loader{}}
	}
	concurrency := opts.Concurrency
	if concurrency < 0 {
		concurrency = 0
	}
	return &Resolver{
		eager:       eager,
		lazy:        lazy,
		exts:        newExtensionSet(opts.Extensions),
		warnf:       opts.Warnf,
		concurrency: concurrency,
		fallback:    opts.Fallback,
	}
}

// Resolve returns the URL for name, trying an exact "/"+name suffix match
// first and then each allowed extension in priority order.
func (r *Resolver) Resolve(name string) (string, error) {
	url, err := r.resolve(name)
	if errors.Is(err, ErrAssetNotFound) {
		r.warn("Resolve", name)
	}
	return url, err
}

// URL is Resolve with an empty-string result on any failure.
// Intended for view code that renders a blank image rather than erroring.
func (r *Resolver) URL(name string) string {
	url, err := r.Resolve(name)
	if err != nil {
		return ""
	}
	return url
}

// ResolveAsync finds name in the lazy index and waits for its loader.
// Uses the same matching rules as Resolve, extension inference included.
func (r *Resolver) ResolveAsync(ctx context.Context, name string) (string, error) {
	key, load, err := r.lookupLoader(name)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			r.warn("ResolveAsync", name)
		}
		return "", err
	}
	return invoke(ctx, key, load)
}

// All maps each logical name to its URL. When several files share a
// logical name, the one with the highest-priority extension wins, which
// keeps All()[n] consistent with Resolve(n). Fallback entries are included
// unless the primary has the same logical name.
func (r *Resolver) All() map[string]string {
	out := make(map[string]string)
	if r.fallback != nil {
		for name, url := range r.fallback.All() {
			out[name] = url
		}
	}
	for name, key := range r.eager.keys.winners(r.exts) {
		out[name] = r.eager.urls[key]
	}
	return out
}

// AllAsync runs every loader concurrently and returns the same mapping as
// All. The first loader failure cancels the remaining loaders and fails
// the whole call; no partial result is returned.
func (r *Resolver) AllAsync(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string)
	if r.fallback != nil {
		fb, err := r.fallback.AllAsync(ctx)
		if err != nil {
			return nil, err
		}
		for name, url := range fb {
			out[name] = url
		}
	}

	results, err := r.loadAll(ctx, true)
	if err != nil {
		return nil, err
	}
	byPath := make(map[string]string, len(results))
	for _, res := range results {
		byPath[res.Path] = res.URL
	}
	for name, key := range r.lazy.keys.winners(r.exts) {
		out[name] = byPath[key]
	}
	return out, nil
}

// Probe runs every loader, fallback included, and reports each outcome
// without failing fast.
func (r *Resolver) Probe(ctx context.Context) []LoadResult {
	// Per-entry errors are kept in results; without failFast the
	// aggregate error is always nil.
	results, _ := r.loadAll(ctx, false)
	if r.fallback != nil {
		results = append(results, r.fallback.Probe(ctx)...)
	}
	return results
}

// Len returns the number of eagerly indexed assets, fallback excluded.
func (r *Resolver) Len() int {
	return r.eager.Len()
}

// HasFallback returns true if a fallback resolver is configured.
func (r *Resolver) HasFallback() bool {
	return r.fallback != nil
}

// resolve is Resolve without the diagnostic warning.
func (r *Resolver) resolve(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	if key := r.eager.keys.match(name, r.exts); key != "" {
		return r.eager.urls[key], nil
	}
	if r.fallback != nil {
		return r.fallback.resolve(name)
	}
	return "", fmt.Errorf("%w: %q", ErrAssetNotFound, name)
}

// lookupLoader finds the loader for name, consulting the fallback on a miss.
func (r *Resolver) lookupLoader(name string) (string, Loader, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", nil, err
	}
	if key := r.lazy.keys.match(name, r.exts); key != "" {
		return key, r.lazy.loaders[key], nil
	}
	if r.fallback != nil {
		return r.fallback.lookupLoader(name)
	}
	return "", nil, fmt.Errorf("%w: %q", ErrAssetNotFound, name)
}

// loadAll runs every lazy loader of this resolver (fallback excluded).
// With failFast, the first failure cancels the others and is returned.
// Loaders still queued behind the concurrency limit when the context is
// done fail with the context error, so a failFast call never succeeds
// with missing entries.
func (r *Resolver) loadAll(ctx context.Context, failFast bool) ([]LoadResult, error) {
	keys := r.lazy.keys
	results := make([]LoadResult, len(keys))
	if len(keys) == 0 {
		return results, ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}
	for i, key := range keys {
		g.Go(func() error {
			res := LoadResult{Path: key, Name: LogicalName(key)}
			res.URL, res.Err = invoke(gctx, key, r.lazy.loaders[key])
			results[i] = res
			if failFast {
				return res.Err
			}
			return nil
		})
	}
	return results, g.Wait()
}

// invoke runs a loader, wrapping its failure with the asset path.
// A context that is already done short-circuits the loader.
func invoke(ctx context.Context, key string, load Loader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	url, err := load(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrLoaderFailed, key, err)
	}
	return url, nil
}

// warn emits one diagnostic line for a missed lookup.
func (r *Resolver) warn(op, name string) {
	if r.warnf != nil {
		r.warnf("[%s] asset not found: %s", op, name)
	}
}

// Compile-time interface check.
var _ AssetResolver = (*Resolver)(nil)
