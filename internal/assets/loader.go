package assets

import "context"

// AssetResolver defines the contract for translating logical names into URLs.
// Implementations may be backed by embedded files, a directory on disk,
// a CDN manifest, etc.
type AssetResolver interface {
	// Resolve returns the URL for name from the eager index.
	// Returns ErrAssetNotFound if no asset matches.
	// Returns ErrInvalidAssetName if the name is empty or contains separators.
	Resolve(name string) (string, error)

	// ResolveAsync finds name in the lazy index and runs its loader.
	// Returns ErrAssetNotFound if no asset matches, ErrLoaderFailed if the
	// loader fails.
	ResolveAsync(ctx context.Context, name string) (string, error)

	// All maps every logical name to its URL.
	All() map[string]string

	// AllAsync runs every loader and maps every logical name to its URL.
	// Fails as a whole if any loader fails.
	AllAsync(ctx context.Context) (map[string]string, error)
}
