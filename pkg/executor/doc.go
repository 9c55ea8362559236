// Package executor carries out a plan of file moves.
//
// Each action creates the destination directory and renames the file into
// place. When the rename crosses a filesystem boundary the executor copies
// the file, optionally verifies the copy by checksum, and removes the
// source. Actions run sequentially in plan order and a failure only affects
// the action that caused it.
package executor
