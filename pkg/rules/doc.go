// Package rules holds the ordered rule set that drives fsorg and the matcher
// compiled from it.
//
// # Rules
//
// A rule maps a regular expression over a file name to a destination
// subdirectory:
//
//	[[rules]]
//	pattern = '(?i)\.jpe?g$'
//	destination = "Images"
//
// Patterns are searched, not anchored: `\.jpg$` matches "a.jpg" and
// "photo.jpg" alike. Use `^` and `$` to pin a pattern to the whole name and
// `(?i)` for case-insensitive matching.
//
// # Precedence
//
// Rules are evaluated in file order. The first matching rule wins; later
// rules are never consulted for a name that already matched. Adding a rule
// whose pattern already exists replaces its destination in place, keeping
// its position.
//
// # Rules files
//
// The format is chosen by extension. TOML is the default (`rules.toml`).
// YAML and JSON files are read in either list form or the legacy mapping
// form written by earlier releases:
//
//	{"rules": {"(?i)\\.pdf$": "Documents"}, "version": "0.0.1"}
//
// A missing rules file is seeded with DefaultRules and written back.
package rules
