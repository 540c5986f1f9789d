package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-imgresolve"
	"github.com/alnah/go-imgresolve/internal/config"
)

// Exit codes for imgresolve CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom codes < 126,
// and 128+n for signals.
const (
	ExitSuccess  = 0 // All names resolved, listing written
	ExitGeneral  = 1 // General/unexpected error, loader failure, doctor errors
	ExitUsage    = 2 // Invalid flags, config, or names
	ExitNotFound = 3 // Asset missing, unreadable source, permission denied

	ExitInterrupted = 130 // Canceled by a shutdown signal (128 + SIGINT)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Deadlines are reported as general errors; only cancellation is an interrupt
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	// Not found / I/O errors (exit 3)
	if errors.Is(err, imgresolve.ErrAssetNotFound) ||
		errors.Is(err, imgresolve.ErrInvalidBasePath) ||
		errors.Is(err, imgresolve.ErrAssetRead) ||
		errors.Is(err, imgresolve.ErrPathTraversal) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitNotFound
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoNames) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, imgresolve.ErrInvalidAssetName) ||
		errors.Is(err, imgresolve.ErrUnsupportedExtension) {
		return ExitUsage
	}

	return ExitGeneral
}
