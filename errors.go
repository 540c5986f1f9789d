package imgresolve

import "github.com/alnah/go-imgresolve/internal/assets"

// Sentinel errors for library operations.
var (
	// Lookup errors.
	ErrAssetNotFound    = assets.ErrAssetNotFound
	ErrInvalidAssetName = assets.ErrInvalidAssetName
	ErrLoaderFailed     = assets.ErrLoaderFailed

	// Source errors.
	ErrInvalidBasePath      = assets.ErrInvalidBasePath
	ErrPathTraversal        = assets.ErrPathTraversal
	ErrAssetRead            = assets.ErrAssetRead
	ErrUnsupportedExtension = assets.ErrUnsupportedExtension
)
