// Package types defines the core types and interfaces used throughout fsorg.
// This includes the filesystem interface consumed by the planner and executor,
// as well as data structures like Rule, Action, Plan, and RunStatistics.
package types
