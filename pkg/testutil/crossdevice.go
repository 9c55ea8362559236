package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/arthur-debert/fsorg/pkg/types"
)

// CrossDeviceFS wraps a filesystem and rejects renames whose source and
// destination lie on different sides of Boundary, returning the same error
// os.Rename produces between two devices. Everything else is delegated.
type CrossDeviceFS struct {
	types.FS

	// Boundary is the root of the simulated second device.
	Boundary string

	// Renames counts rename attempts, Rejected counts the simulated failures.
	Renames  int
	Rejected int
}

// NewCrossDeviceFS wraps fs with a simulated device boundary at boundary.
func NewCrossDeviceFS(fs types.FS, boundary string) *CrossDeviceFS {
	return &CrossDeviceFS{FS: fs, Boundary: filepath.Clean(boundary)}
}

// Rename implements types.FS
func (c *CrossDeviceFS) Rename(oldpath, newpath string) error {
	c.Renames++
	if c.inside(oldpath) != c.inside(newpath) {
		c.Rejected++
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}
	return c.FS.Rename(oldpath, newpath)
}

// EvalSymlinks forwards to the wrapped filesystem when it supports it.
func (c *CrossDeviceFS) EvalSymlinks(path string) (string, error) {
	if resolver, ok := c.FS.(types.SymlinkResolver); ok {
		return resolver.EvalSymlinks(path)
	}
	return path, nil
}

func (c *CrossDeviceFS) inside(path string) bool {
	clean := filepath.Clean(path)
	return clean == c.Boundary || strings.HasPrefix(clean, c.Boundary+string(filepath.Separator))
}

// FailingRemoveFS wraps a filesystem and fails every Remove call with Err.
type FailingRemoveFS struct {
	types.FS
	Err error
}

// Remove implements types.FS
func (f *FailingRemoveFS) Remove(name string) error {
	return &os.PathError{Op: "remove", Path: name, Err: f.Err}
}
