// Package assets resolves logical image names to URLs.
//
// # Resolver Architecture
//
// The package is layered:
//
//	Source (fs.FS + directory)
//	    │
//	    ├── Discover      - lists allowed image files once, sorted
//	    ├── URLBuilder    - turns asset paths into URLs (optional fingerprint)
//	    │     ├── Index       - eager: URL computed at build time
//	    │     └── LazyIndex   - lazy: Loader computes the URL on demand
//	    └── Resolver      - lookups over both indexes, optional fallback
//
// EmbeddedSource provides the built-in image set compiled into the binary.
// NewFilesystemSource reads images from a directory on disk, with symlink
// resolution and containment checks.
//
// A Resolver built over a custom directory can fall back to the embedded
// set: misses in the primary indexes are retried in the fallback, so a
// custom directory overrides individual images while keeping the defaults.
//
// # Lookup Rules
//
// Names are matched against rooted asset paths ("/images/logo.svg"):
//
//  1. exact suffix: the path ends with "/" + name ("logo.svg")
//  2. extension inference: the path ends with "/" + name + "." + ext,
//     trying each allowed extension in priority order ("logo")
//
// Paths are walked in lexical order, so ambiguous lookups always resolve
// the same way.
//
// # Concurrency
//
// Indexes are immutable after construction and safe for concurrent use.
// AllAsync and Probe run loaders in parallel goroutines and honor context
// cancellation.
package assets
