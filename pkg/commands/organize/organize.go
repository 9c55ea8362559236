package organize

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

// Options defines the options for the organize command.
type Options struct {
	// SourceDir is the directory whose top-level files are organized.
	SourceDir string
	// DestinationRoot is the directory rule destinations are joined to.
	DestinationRoot string
	// RulesFile is the rules file to load, seeded with defaults if missing.
	RulesFile string
	// FS defaults to the real file system.
	FS types.FS

	VerifyCopy  bool
	DirMode     os.FileMode
	JournalPath string

	// Mode is recorded in the journal, ModeOrganize when empty.
	Mode journal.Mode
}

// Result is the outcome of an executed run
type Result = internal.Result

// Run builds a plan for SourceDir and executes it immediately.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Organize").Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	p, err := BuildPlan(fsys, opts.SourceDir, opts.DestinationRoot, opts.RulesFile)
	if err != nil {
		return nil, err
	}

	mode := opts.Mode
	if mode == "" {
		mode = journal.ModeOrganize
	}

	result := internal.RunExecutionPipeline(ctx, p, internal.ExecutionOptions{
		FS:          fsys,
		VerifyCopy:  opts.VerifyCopy,
		DirMode:     opts.DirMode,
		JournalPath: opts.JournalPath,
		Run: journal.Run{
			Mode:      mode,
			Source:    opts.SourceDir,
			StartedAt: time.Now(),
		},
	})

	log.Info().
		Str("command", "Organize").
		Str("runID", result.RunID).
		Int("moved", result.Stats.Moved).
		Int("errored", result.Stats.Errored).
		Msg("Command finished")
	return result, nil
}

// BuildPlan loads the rules and builds a plan with an absolute destination
// root. It is shared by organize and the dry run.
func BuildPlan(fsys types.FS, sourceDir, destinationRoot, rulesFile string) (*types.Plan, error) {
	matcher, err := internal.LoadMatcher(fsys, rulesFile)
	if err != nil {
		return nil, err
	}

	destRoot, err := internal.AbsPath(destinationRoot)
	if err != nil {
		return nil, err
	}

	return plan.Build(plan.BuildOptions{
		SourceDir:       sourceDir,
		DestinationRoot: destRoot,
		Matcher:         matcher,
		FS:              fsys,
	})
}
