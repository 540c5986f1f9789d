package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// containedFS serves files from a directory on disk and refuses any path
// whose real location (after symlink resolution) leaves basePath.
type containedFS struct {
	basePath string
	fsys     fs.FS
}

// NewFilesystemSource creates a Source for images in {basePath}/{dir}.
// Returns ErrInvalidBasePath if basePath is not a valid, readable directory.
func NewFilesystemSource(basePath, dir string) (Source, error) {
	if basePath == "" {
		return Source{}, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path so containment checks compare real paths
	realPath, err := filepath.EvalSymlinks(absPath)
	if err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Source{}, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return Source{}, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return Source{}, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return Source{}, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	fsys := &containedFS{basePath: absPath, fsys: os.DirFS(absPath)}
	return Source{FS: fsys, Dir: dir, Name: absPath}, nil
}

// Open implements fs.FS.
func (c *containedFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if err := c.verifyPathContainment(filepath.Join(c.basePath, filepath.FromSlash(name))); err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return c.fsys.Open(name)
}

// verifyPathContainment ensures the resolved file path is within basePath.
// Symlinks are resolved first so a link pointing outside is rejected.
func (c *containedFS) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file fails later on open; keep the unresolved path for the check
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	if absFilePath == c.basePath {
		return nil
	}
	// Separator suffix prevents /base/path matching /base/pathevil
	if !strings.HasPrefix(absFilePath, c.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}
