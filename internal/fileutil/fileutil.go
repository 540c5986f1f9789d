// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"os"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty   = errors.New("extension cannot be empty")
	ErrExtensionInvalid = errors.New("extension must be letters and digits only")
)

// maxExtensionLength bounds configured extensions ("jpeg", "webp", "avif").
const maxExtensionLength = 10

// NormalizeExtension lowercases ext and strips one leading dot: ".JPG" -> "jpg".
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ValidateExtension checks that an extension is safe to use in a file
// pattern. The extension is normalized first, so ".PNG" is accepted.
func ValidateExtension(ext string) error {
	ext = NormalizeExtension(ext)
	if ext == "" {
		return ErrExtensionEmpty
	}
	if len(ext) > maxExtensionLength {
		return ErrExtensionInvalid
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ErrExtensionInvalid
		}
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "production" -> false (name)
//   - "./imgresolve.yaml" -> true (relative path)
//   - "/etc/imgresolve.yaml" -> true (absolute)
//   - "C:\config\imgresolve.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an absolute http(s) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
