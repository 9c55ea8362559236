// Package commands provides high-level command implementations for fsorg.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the rules, plan, executor and journal
// packages.
//
// Each command is implemented in its own subdirectory:
//   - organize/ - build a plan and execute it immediately
//   - dryrun/   - build a plan and export it to a plan file
//   - apply/    - replay a plan file
//   - rulecmd/  - list, add and remove rules
//   - history/  - list journaled runs
//   - watchcmd/ - organize continuously as files arrive
//   - internal/ - shared execution pipeline logic
//
// This file re-exports the command functions so callers need a single import.
package commands

import (
	"context"

	"github.com/arthur-debert/fsorg/pkg/commands/apply"
	"github.com/arthur-debert/fsorg/pkg/commands/dryrun"
	"github.com/arthur-debert/fsorg/pkg/commands/history"
	"github.com/arthur-debert/fsorg/pkg/commands/internal"
	"github.com/arthur-debert/fsorg/pkg/commands/organize"
	"github.com/arthur-debert/fsorg/pkg/commands/rulecmd"
	"github.com/arthur-debert/fsorg/pkg/commands/watchcmd"
	"github.com/arthur-debert/fsorg/pkg/types"
)

// RunResult is returned by every command that executes a plan.
type RunResult = internal.Result

// Organize builds a plan for the source directory and executes it.
type OrganizeOptions = organize.Options

func Organize(ctx context.Context, opts OrganizeOptions) (*RunResult, error) {
	return organize.Run(ctx, opts)
}

// DryRun builds a plan and exports it without moving anything.
type DryRunOptions = dryrun.Options
type DryRunResult = dryrun.Result

func DryRun(opts DryRunOptions) (*DryRunResult, error) {
	return dryrun.Run(opts)
}

// Apply replays a previously exported plan file.
type ApplyOptions = apply.Options

func Apply(ctx context.Context, opts ApplyOptions) (*RunResult, error) {
	return apply.Run(ctx, opts)
}

// ShowPlan loads a plan file without executing it.
func ShowPlan(fsys types.FS, planFile string) (*types.Plan, error) {
	return apply.Preview(fsys, planFile)
}

// Rule maintenance.
type RulesOptions = rulecmd.Options

func ListRules(opts RulesOptions) ([]types.Rule, error) {
	return rulecmd.List(opts)
}

func AddRule(opts RulesOptions, pattern, destination string) ([]types.Rule, error) {
	return rulecmd.Add(opts, pattern, destination)
}

func RemoveRule(opts RulesOptions, pattern string) ([]types.Rule, error) {
	return rulecmd.Remove(opts, pattern)
}

// History lists journaled runs, newest first.
type HistoryOptions = history.Options
type HistoryResult = history.Result

func History(ctx context.Context, opts HistoryOptions) (*HistoryResult, error) {
	return history.Run(ctx, opts)
}

// Watch organizes the source directory every time new files settle in it.
type WatchOptions = watchcmd.Options

func Watch(ctx context.Context, opts WatchOptions, report watchcmd.Reporter) (types.RunStatistics, error) {
	return watchcmd.Run(ctx, opts, report)
}
