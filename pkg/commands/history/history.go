package history

import (
	"context"
	"os"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/journal"
	"github.com/arthur-debert/fsorg/pkg/logging"
)

// DefaultLimit is the number of runs listed when Options.Limit is zero
const DefaultLimit = 10

// Options defines the options for the history command.
type Options struct {
	JournalPath string
	// Limit caps the number of runs, a negative value lists all runs.
	Limit int
	// RunID, when set, selects a single run and its moves.
	RunID string
}

// Entry is one run, with its moves when a single run was requested
type Entry struct {
	journal.Run
	Moves []journal.Move `json:"moves,omitempty"`
}

// Result lists runs newest first
type Result struct {
	Runs []Entry `json:"runs"`
}

// Run reads the journal. A journal that does not exist yet yields an empty
// listing, and an INVALID_INPUT error when a run ID was asked for.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "History").Str("journal", opts.JournalPath).Msg("Executing command")

	if opts.JournalPath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no journal path configured")
	}
	result := &Result{Runs: []Entry{}}
	if _, err := os.Stat(opts.JournalPath); os.IsNotExist(err) {
		if opts.RunID != "" {
			return nil, unknownRun(opts.RunID)
		}
		return result, nil
	}

	j, err := journal.Open(ctx, opts.JournalPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = j.Close() }()

	if opts.RunID != "" {
		return single(ctx, j, opts.RunID)
	}

	limit := opts.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	runs, err := j.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, r := range runs {
		result.Runs = append(result.Runs, Entry{Run: r})
	}

	log.Info().Str("command", "History").Int("runs", len(result.Runs)).Msg("Command finished")
	return result, nil
}

func single(ctx context.Context, j *journal.Journal, runID string) (*Result, error) {
	r, found, err := j.Get(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, unknownRun(runID)
	}
	moves, err := j.Moves(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &Result{Runs: []Entry{{Run: r, Moves: moves}}}, nil
}

func unknownRun(runID string) error {
	return errors.Newf(errors.ErrInvalidInput, "no run with id %s", runID).WithDetail("run_id", runID)
}
