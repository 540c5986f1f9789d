package assets

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Entry pairs a discovered asset path with its resolved URL.
type Entry struct {
	Path string // Rooted asset path, e.g. "/images/logo.svg"
	URL  string // Resolved URL, e.g. "./images/logo.svg"
}

// Loader resolves an asset URL on demand.
type Loader func(ctx context.Context) (string, error)

// keySet is the sorted list of asset paths shared by both index kinds.
// Lookups walk it in order, which makes ambiguous matches deterministic.
type keySet []string

func newKeySet(paths []string) (keySet, error) {
	keys := make(keySet, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if !strings.HasPrefix(p, "/") {
			return nil, fmt.Errorf("%w: asset path %q must start with /", ErrInvalidAssetName, p)
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: duplicate asset path %q", ErrInvalidAssetName, p)
		}
		seen[p] = true
		keys = append(keys, p)
	}
	sort.Strings(keys)
	return keys, nil
}

// match finds the key for name: exact suffix first ("/" + name), then
// extension inference over exts in priority order. Returns "" on miss.
func (k keySet) match(name string, exts extensionSet) string {
	suffix := "/" + name
	for _, key := range k {
		if strings.HasSuffix(key, suffix) {
			return key
		}
	}

	for _, ext := range exts {
		for _, key := range k {
			keyExt := path.Ext(key)
			if !strings.EqualFold(strings.TrimPrefix(keyExt, "."), ext) {
				continue
			}
			if strings.HasSuffix(strings.TrimSuffix(key, keyExt), suffix) {
				return key
			}
		}
	}
	return ""
}

// Index is an immutable eager mapping from asset path to URL.
type Index struct {
	keys keySet
	urls map[string]string
}

// NewIndex builds an Index from entries. Every path must be rooted and unique.
func NewIndex(entries []Entry) (*Index, error) {
	paths := make([]string, len(entries))
	urls := make(map[string]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
		urls[e.Path] = e.URL
	}
	keys, err := newKeySet(paths)
	if err != nil {
		return nil, err
	}
	return &Index{keys: keys, urls: urls}, nil
}

// Len returns the number of indexed assets.
func (ix *Index) Len() int {
	return len(ix.keys)
}

// LazyIndex is an immutable mapping from asset path to a deferred Loader.
type LazyIndex struct {
	keys    keySet
	loaders map[string]Loader
}

// NewLazyIndex builds a LazyIndex. Every path must be rooted and every
// loader non-nil.
func NewLazyIndex(loaders map[string]Loader) (*LazyIndex, error) {
	paths := make([]string, 0, len(loaders))
	copied := make(map[string]Loader, len(loaders))
	for p, load := range loaders {
		if load == nil {
			return nil, fmt.Errorf("%w: nil loader for %q", ErrLoaderFailed, p)
		}
		paths = append(paths, p)
		copied[p] = load
	}
	keys, err := newKeySet(paths)
	if err != nil {
		return nil, err
	}
	return &LazyIndex{keys: keys, loaders: copied}, nil
}

// winners picks one key per logical name: the highest-priority extension,
// then the first key in lookup order.
func (k keySet) winners(exts extensionSet) map[string]string {
	out := make(map[string]string, len(k))
	for _, key := range k {
		name := LogicalName(key)
		current, ok := out[name]
		if !ok || rankOrLast(exts, key) < rankOrLast(exts, current) {
			out[name] = key
		}
	}
	return out
}

// rankOrLast orders keys whose extension is outside the allow-list last.
func rankOrLast(exts extensionSet, key string) int {
	if r := exts.rank(key); r >= 0 {
		return r
	}
	return len(exts)
}
