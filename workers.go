package imgresolve

import "runtime"

// Worker sizing constants for fingerprinted loads.
const (
	// MinWorkers ensures at least one loader runs.
	MinWorkers = 1

	// MaxWorkers caps concurrent file reads when hashing.
	MaxWorkers = 32

	// ioFactor lets reads overlap with hashing on each CPU.
	ioFactor = 2
)

// ResolveWorkers determines loader concurrency for AllAsync and Probe.
// Priority: explicit workers > automatic sizing.
// Without fingerprinting, loaders only concatenate strings, so the
// automatic value is 0 (all at once). With fingerprinting, each loader
// reads and hashes a file and the value follows GOMAXPROCS (adjusted by
// automaxprocs in containers).
// Exported for use by servers and CLIs.
func ResolveWorkers(workers int, fingerprint bool) int {
	if workers > 0 {
		return workers
	}
	if !fingerprint {
		return 0
	}

	n := runtime.GOMAXPROCS(0) * ioFactor
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
