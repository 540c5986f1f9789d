package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a logical name is usable for lookup.
// Returns ErrInvalidAssetName if the name is empty or contains path
// separators or NUL bytes. Dots are allowed so callers can pass an extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
