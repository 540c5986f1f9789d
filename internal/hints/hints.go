// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/alnah/go-imgresolve/internal/fileutil"
)

// maxSuggestions caps how many close names ForAssetNotFound lists.
const maxSuggestions = 3

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForAssetNotFound suggests the available names closest to name.
// Falls back to a hint about listing assets when nothing is close.
func ForAssetNotFound(name string, available []string) string {
	if len(available) == 0 {
		return format("no assets discovered; check --asset-path and --dir")
	}
	if names := closest(name, available); len(names) > 0 {
		return format("did you mean " + strings.Join(names, ", ") + "?")
	}
	return format("run 'imgresolve list' to see available assets")
}

// ForBasePath returns hints for an unreadable asset directory.
func ForBasePath() string {
	hints := []string{"check the directory exists and is readable"}
	if IsInContainer() {
		hints = append(hints, "mount it into the container")
	}
	return formatHints(hints)
}

// ForPathTraversal returns hints for symlinks escaping the asset directory.
func ForPathTraversal() string {
	return format("replace symlinks pointing outside --asset-path with copies")
}

// ForUnsupportedExtension lists the configured extension allow-list.
func ForUnsupportedExtension(allowed []string) string {
	if len(allowed) == 0 {
		return ""
	}
	return format("allowed extensions: " + strings.Join(allowed, ", "))
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large fingerprinted sets, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-imgresolve/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-imgresolve") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// closest returns up to maxSuggestions names within an edit distance
// proportional to the length of name, nearest first.
func closest(name string, available []string) []string {
	type candidate struct {
		name string
		dist int
	}
	limit := len(name)/3 + 1
	target := strings.ToLower(name)

	var found []candidate
	for _, a := range available {
		d := levenshtein.ComputeDistance(target, strings.ToLower(a))
		if strings.HasPrefix(strings.ToLower(a), target) {
			d = min(d, 1)
		}
		if d <= limit {
			found = append(found, candidate{a, d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].name < found[j].name
	})

	out := make([]string, 0, maxSuggestions)
	for i := 0; i < len(found) && i < maxSuggestions; i++ {
		out = append(out, found[i].name)
	}
	return out
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
