package internal

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/executor"
	"github.com/arthur-debert/fsorg/pkg/journal"
	"github.com/arthur-debert/fsorg/pkg/logging"
	"github.com/arthur-debert/fsorg/pkg/rules"
	"github.com/arthur-debert/fsorg/pkg/types"
)

// Result is what organize, apply and watch passes return
type Result struct {
	RunID    string
	Plan     *types.Plan
	Outcomes []executor.Outcome
	Stats    types.RunStatistics
}

// ExecutionOptions is an internal struct to pass to the execution pipeline.
type ExecutionOptions struct {
	FS          types.FS
	VerifyCopy  bool
	DirMode     os.FileMode
	JournalPath string
	Run         journal.Run
}

// LoadMatcher reads the rules file and compiles it
func LoadMatcher(fsys types.FS, rulesFile string) (*rules.Matcher, error) {
	if rulesFile == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no rules file configured")
	}
	f, err := rules.Load(fsys, rulesFile)
	if err != nil {
		return nil, err
	}
	return rules.Compile(f.Rules), nil
}

// AbsPath makes a user supplied directory absolute so plans stay valid
// when replayed from another working directory
func AbsPath(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %q", dir).
			WithDetail("path", dir)
	}
	return abs, nil
}

// RunExecutionPipeline executes p and records the run in the journal when
// one is configured. Journal failures are logged and never fail the run.
func RunExecutionPipeline(ctx context.Context, p *types.Plan, opts ExecutionOptions) *Result {
	run := opts.Run
	if run.ID == "" {
		run.ID = journal.NewRunID()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	logger := logging.WithRun("commands.execution", run.ID)
	logger.Debug().
		Str("mode", string(run.Mode)).
		Int("actions", p.Len()).
		Bool("verifyCopy", opts.VerifyCopy).
		Msg("Starting execution pipeline")

	exec := executor.New(executor.Options{
		FS:         opts.FS,
		Logger:     &logger,
		VerifyCopy: opts.VerifyCopy,
		DirMode:    opts.DirMode,
	})
	res := exec.Execute(p)

	run.FinishedAt = time.Now()
	run.Stats = res.Stats

	if opts.JournalPath != "" {
		recordRun(ctx, opts.JournalPath, run, res.Outcomes)
	}

	return &Result{
		RunID:    run.ID,
		Plan:     p,
		Outcomes: res.Outcomes,
		Stats:    res.Stats,
	}
}

func recordRun(ctx context.Context, path string, run journal.Run, outcomes []executor.Outcome) {
	logger := logging.WithRun("commands.journal", run.ID)

	j, err := journal.Open(ctx, path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Could not open journal, run not recorded")
		return
	}
	defer func() { _ = j.Close() }()

	if err := j.Record(ctx, run, outcomes); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Could not record run")
		return
	}
	logger.Debug().Str("path", path).Int("moves", len(outcomes)).Msg("Run recorded")
}
