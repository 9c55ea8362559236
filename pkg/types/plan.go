package types

import "fmt"

// Rule maps a file name pattern to a destination subdirectory
type Rule struct {
	Pattern     string `toml:"pattern" yaml:"pattern" json:"pattern"`
	Destination string `toml:"destination" yaml:"destination" json:"destination"`
}

// Action is a single planned move
type Action struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// String renders the action in plan-file form
func (a Action) String() string {
	return fmt.Sprintf("\"%s\" -> \"%s\"", a.Source, a.Destination)
}

// RunStatistics holds the per-run counters. Counters only ever grow.
type RunStatistics struct {
	Scanned int `json:"scanned"`
	Moved   int `json:"moved"`
	Skipped int `json:"skipped"`
	Errored int `json:"errored"`
}

// Add merges another set of counters into s
func (s *RunStatistics) Add(other RunStatistics) {
	s.Scanned += other.Scanned
	s.Moved += other.Moved
	s.Skipped += other.Skipped
	s.Errored += other.Errored
}

// Plan is an ordered list of actions plus the statistics gathered while
// building it. Plans loaded from a file carry zero statistics.
type Plan struct {
	Actions []Action      `json:"actions"`
	Stats   RunStatistics `json:"stats"`
}

// Len returns the number of planned actions
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Actions)
}
