package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrAssetNotFound indicates no discovered asset matches the requested name.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidAssetName indicates the asset name is empty or contains
	// path separators or NUL bytes.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrLoaderFailed indicates a deferred loader returned an error.
	ErrLoaderFailed = errors.New("asset loader failed")

	// ErrUnsupportedExtension indicates a path whose extension is not in the allow-list.
	ErrUnsupportedExtension = errors.New("unsupported asset extension")
)
