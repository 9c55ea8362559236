package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for fsorg operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Open(name string) (File, error)
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error
}

// File is the subset of *os.File used when streaming file contents
type File interface {
	io.Reader
	io.Writer
	io.Closer
	Stat() (fs.FileInfo, error)
}

// SymlinkResolver is implemented by filesystems that can resolve symlinks.
// The plan builder uses it to canonicalize the source directory; filesystems
// without symlinks (in-memory test filesystems) simply don't implement it.
type SymlinkResolver interface {
	EvalSymlinks(path string) (string, error)
}
