// Package imgresolve resolves logical image names to URLs.
//
// # Quick Start
//
// Create a resolver over the built-in image set and look names up:
//
//	r, err := imgresolve.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	url, err := r.Resolve("logo")       // extension inferred
//	url, err = r.Resolve("logo.svg")    // exact file name
//	src := r.URL("hero")                // "" on a miss, for templates
//
// Names are file names with or without their extension. Without one, the
// extension is inferred in priority order: jpg, jpeg, png, webp, svg.
//
// # Eager and Lazy Lookups
//
// Every resolver holds two indexes over the same files. The eager index
// computes each URL when the resolver is built; the lazy index defers the
// work to a loader that runs on demand:
//
//	url, err := r.ResolveAsync(ctx, "hero")
//	all, err := r.AllAsync(ctx)   // runs every loader concurrently
//
// The difference matters with fingerprinting, which hashes file content.
// AllAsync fails as a whole on the first loader error; Probe reports every
// loader outcome instead.
//
// # Configuration
//
// Use functional options to customize the resolver:
//
//	r, err := imgresolve.New(
//	    imgresolve.WithAssetPath("./public"),
//	    imgresolve.WithDir("images"),
//	    imgresolve.WithBaseURL("https://cdn.example.com/"),
//	    imgresolve.WithFingerprint(),
//	    imgresolve.WithMode(imgresolve.Production),
//	)
//
// A custom directory overrides the built-in images by logical name; names
// it lacks still resolve to the built-in set unless WithoutFallback is set.
//
// # Diagnostics
//
// In Development mode (the default), every missed lookup writes one
// warning line to stderr, or to the writer given to WithWarnings.
// Production mode is silent; misses are reported only through errors.
//
// # Error Handling
//
// Errors are sentinels matched with errors.Is:
//
//	url, err := r.Resolve(name)
//	if errors.Is(err, imgresolve.ErrAssetNotFound) {
//	    // fall back to a placeholder
//	}
//
// # Concurrency
//
// A Resolver is immutable after New returns and safe for concurrent use.
package imgresolve
