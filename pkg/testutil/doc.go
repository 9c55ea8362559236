// Package testutil provides utilities for testing fsorg components.
//
// Key components:
//   - NewTestFS: in-memory filesystem for serializer and rule store tests
//   - CrossDeviceFS: wraps a filesystem so renames across a boundary fail
//     the way they do between two mounted volumes
//   - WriteFiles / ReadTree: declarative setup and inspection of real
//     temporary directories
//
// Move semantics (rename, directory creation over an existing file) are
// tested against real temp directories; afero's MemMapFs is too permissive
// about parents to exercise those failure paths.
package testutil
