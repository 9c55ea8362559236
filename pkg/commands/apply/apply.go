package apply

import (
	"context"
	"os"
	"time"

	"github.com/arthur-debert/fsorg/pkg/commands/internal"
	"github.com/arthur-debert/fsorg/pkg/filesystem"
	"github.com/arthur-debert/fsorg/pkg/journal"
	"github.com/arthur-debert/fsorg/pkg/logging"
	"github.com/arthur-debert/fsorg/pkg/plan"
	"github.com/arthur-debert/fsorg/pkg/types"
)

// Options defines the options for replaying a plan file.
type Options struct {
	PlanFile string
	FS       types.FS

	VerifyCopy  bool
	DirMode     os.FileMode
	JournalPath string
}

// Result is the outcome of an executed run
type Result = internal.Result

// Run imports PlanFile and executes its actions in file order. Rules are
// not consulted.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Apply").Str("planFile", opts.PlanFile).Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	p, err := plan.Import(fsys, opts.PlanFile)
	if err != nil {
		return nil, err
	}

	result := internal.RunExecutionPipeline(ctx, p, internal.ExecutionOptions{
		FS:          fsys,
		VerifyCopy:  opts.VerifyCopy,
		DirMode:     opts.DirMode,
		JournalPath: opts.JournalPath,
		Run: journal.Run{
			Mode:      journal.ModeApply,
			PlanFile:  opts.PlanFile,
			StartedAt: time.Now(),
		},
	})

	log.Info().
		Str("command", "Apply").
		Str("runID", result.RunID).
		Int("moved", result.Stats.Moved).
		Int("errored", result.Stats.Errored).
		Msg("Command finished")
	return result, nil
}

// Preview imports PlanFile without executing it
func Preview(fsys types.FS, planFile string) (*types.Plan, error) {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return plan.Import(fsys, planFile)
}
