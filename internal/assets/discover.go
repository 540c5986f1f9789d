package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// Discovery is the result of listing an asset directory.
type Discovery struct {
	Paths   []string // Rooted asset paths with an allowed extension, sorted
	Skipped []string // Rooted paths of regular files with other extensions
}

// Discover lists dir (non-recursively) in fsys and returns the rooted
// paths of regular files whose extension is in exts. An empty exts selects
// DefaultExtensions. Returns ErrInvalidBasePath if dir cannot be read.
func Discover(fsys fs.FS, dir string, exts []string) (*Discovery, error) {
	if dir == "" {
		dir = "."
	}
	dir = path.Clean(dir)
	if !fs.ValidPath(dir) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBasePath, dir)
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, dir)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	allowed := newExtensionSet(exts)
	d := &Discovery{}
	for _, entry := range entries {
		rel := path.Join(dir, entry.Name())
		ok, err := isRegularFile(fsys, rel, entry)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		assetPath := "/" + rel
		if allowed.allows(entry.Name()) {
			d.Paths = append(d.Paths, assetPath)
		} else {
			d.Skipped = append(d.Skipped, assetPath)
		}
	}
	sort.Strings(d.Paths)
	sort.Strings(d.Skipped)
	return d, nil
}

// Collisions groups discovered paths that share a logical name.
// Lookups without an extension are ambiguous for these groups.
func (d *Discovery) Collisions() map[string][]string {
	byName := make(map[string][]string)
	for _, p := range d.Paths {
		name := LogicalName(p)
		byName[name] = append(byName[name], p)
	}
	for name, paths := range byName {
		if len(paths) < 2 {
			delete(byName, name)
		}
	}
	return byName
}

// isRegularFile reports whether entry is a regular file, following
// symlinks. Dangling links are skipped; links rejected by the filesystem
// for escaping its base are reported as errors.
func isRegularFile(fsys fs.FS, rel string, entry fs.DirEntry) (bool, error) {
	if entry.Type().IsRegular() {
		return true, nil
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := fs.Stat(fsys, rel)
	if err != nil {
		if errors.Is(err, ErrPathTraversal) {
			return false, err
		}
		return false, nil
	}
	return info.Mode().IsRegular(), nil
}
