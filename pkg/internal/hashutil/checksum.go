package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/arthur-debert/fsorg/pkg/types"
)

// FileChecksum returns the SHA256 checksum of the file at path, formatted
// as "sha256:<hex>"
func FileChecksum(fsys types.FS, path string) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	return ReaderChecksum(file)
}

// ReaderChecksum hashes everything read from r
func ReaderChecksum(r io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}

// SameContent reports whether two files hash identically
func SameContent(fsys types.FS, a, b string) (bool, error) {
	sumA, err := FileChecksum(fsys, a)
	if err != nil {
		return false, err
	}
	sumB, err := FileChecksum(fsys, b)
	if err != nil {
		return false, err
	}
	return sumA == sumB, nil
}
