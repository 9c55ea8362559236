// Package filesystem provides filesystem implementations for fsorg.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and an afero-backed filesystem
// used by tests and by callers that want an in-memory tree.
package filesystem
