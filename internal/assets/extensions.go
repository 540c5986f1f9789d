package assets

import (
	"fmt"
	"path"
	"strings"

	"github.com/alnah/go-imgresolve/internal/fileutil"
)

// DefaultExtensions is the image allow-list in lookup priority order.
// When "portrait.jpg" and "portrait.png" both exist, "portrait" resolves
// to the jpg.
var DefaultExtensions = []string{"jpg", "jpeg", "png", "webp", "svg"}

// extensionSet is an ordered, case-insensitive allow-list.
type extensionSet []string

// newExtensionSet lowercases exts, strips leading dots and drops duplicates
// while keeping the first occurrence's position. An empty input selects
// DefaultExtensions.
func newExtensionSet(exts []string) extensionSet {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	seen := make(map[string]bool, len(exts))
	set := make(extensionSet, 0, len(exts))
	for _, ext := range exts {
		ext = fileutil.NormalizeExtension(ext)
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		set = append(set, ext)
	}
	return set
}

// ValidateExtensions checks a configured allow-list. Each entry must be a
// plain extension such as "png" or ".PNG".
func ValidateExtensions(exts []string) error {
	for _, ext := range exts {
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrUnsupportedExtension, ext, err)
		}
	}
	return nil
}

// allows reports whether the file name carries an allowed extension.
func (s extensionSet) allows(name string) bool {
	return s.rank(name) >= 0
}

// rank returns the priority of name's extension, or -1 if not allowed.
func (s extensionSet) rank(name string) int {
	ext := fileutil.NormalizeExtension(path.Ext(name))
	for i, allowed := range s {
		if ext == allowed {
			return i
		}
	}
	return -1
}

// LogicalName returns the basename of an asset path with its extension
// stripped: "/images/portrait.jpg" -> "portrait".
func LogicalName(assetPath string) string {
	base := path.Base(assetPath)
	if base == "/" || base == "." {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
