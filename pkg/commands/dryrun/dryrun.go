package dryrun

import (
	"github.com/arthur-debert/fsorg/pkg/commands/organize"
	"github.com/arthur-debert/fsorg/pkg/filesystem"
	"github.com/arthur-debert/fsorg/pkg/logging"
	"github.com/arthur-debert/fsorg/pkg/plan"
	"github.com/arthur-debert/fsorg/pkg/types"
)

// Options defines the options for a dry run.
type Options struct {
	SourceDir       string
	DestinationRoot string
	RulesFile       string
	FS              types.FS

	// PlanFile is where the plan is exported. When empty the plan is only
	// returned.
	PlanFile string
}

// Result holds the built plan and where it was written
type Result struct {
	Plan     *types.Plan
	PlanFile string
}

// Run builds a plan without touching any file and exports it to PlanFile.
// An existing plan file is never overwritten.
func Run(opts Options) (*Result, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "DryRun").Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	p, err := organize.BuildPlan(fsys, opts.SourceDir, opts.DestinationRoot, opts.RulesFile)
	if err != nil {
		return nil, err
	}

	result := &Result{Plan: p}
	if opts.PlanFile != "" {
		if err := plan.Export(fsys, p, opts.PlanFile); err != nil {
			return nil, err
		}
		result.PlanFile = opts.PlanFile
	}

	log.Info().
		Str("command", "DryRun").
		Int("actions", p.Len()).
		Str("planFile", result.PlanFile).
		Msg("Command finished")
	return result, nil
}
