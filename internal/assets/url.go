package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"strings"
)

// DefaultBaseURL prefixes asset paths to form relative URLs.
const DefaultBaseURL = "./"

// fingerprintLength is the number of hex digits kept from the content hash.
const fingerprintLength = 8

// URLBuilder turns a rooted asset path into a URL.
type URLBuilder struct {
	FS          fs.FS  // Source filesystem, read only when Fingerprint is set
	Base        string // Prefix for every URL (default "./")
	Fingerprint bool   // Append ?v=<content hash> for cache busting
}

// URL builds the URL for assetPath.
func (b URLBuilder) URL(assetPath string) (string, error) {
	base := b.Base
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	rel := strings.TrimPrefix(assetPath, "/")
	url := base + rel

	if !b.Fingerprint {
		return url, nil
	}

	content, err := fs.ReadFile(b.FS, rel)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, assetPath, err)
	}
	sum := sha256.Sum256(content)
	return url + "?v=" + hex.EncodeToString(sum[:])[:fingerprintLength], nil
}

// BuildIndex resolves every path up front.
func (b URLBuilder) BuildIndex(paths []string) (*Index, error) {
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		url, err := b.URL(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Path: p, URL: url})
	}
	return NewIndex(entries)
}

// BuildLazyIndex defers URL resolution to each Loader call.
func (b URLBuilder) BuildLazyIndex(paths []string) (*LazyIndex, error) {
	loaders := make(map[string]Loader, len(paths))
	for _, p := range paths {
		assetPath := p
		loaders[assetPath] = func(ctx context.Context) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			return b.URL(assetPath)
		}
	}
	return NewLazyIndex(loaders)
}
