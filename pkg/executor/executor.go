package executor

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/filesystem"
	"github.com/arthur-debert/fsorg/pkg/internal/hashutil"
	"github.com/arthur-debert/fsorg/pkg/logging"
	"github.com/arthur-debert/fsorg/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultDirMode is used for destination directories when none is configured
const DefaultDirMode os.FileMode = 0755

// Status is the final state of one action
type Status string

const (
	StatusMoved  Status = "moved"
	StatusFailed Status = "failed"
)

// Method is how a move was carried out
type Method string

const (
	MethodRename Method = "rename"
	MethodCopy   Method = "copy"
)

// Options contains configuration for the executor
type Options struct {
	// Filesystem operations interface for testing
	FS     types.FS
	Logger *zerolog.Logger
	// VerifyCopy compares checksums before deleting the source of a
	// cross-device copy
	VerifyCopy bool
	DirMode    os.FileMode
}

// Outcome records what happened to a single action
type Outcome struct {
	Action   types.Action
	Status   Status
	Method   Method
	Err      error
	Duration time.Duration
}

// Result is the outcome of executing a plan
type Result struct {
	Stats    types.RunStatistics
	Outcomes []Outcome
}

// Failed returns the outcomes that did not complete
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Executor carries out planned moves
type Executor struct {
	fs         types.FS
	logger     zerolog.Logger
	verifyCopy bool
	dirMode    os.FileMode
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	dirMode := opts.DirMode
	if dirMode == 0 {
		dirMode = DefaultDirMode
	}

	return &Executor{
		fs:         fs,
		logger:     logger,
		verifyCopy: opts.VerifyCopy,
		dirMode:    dirMode,
	}
}

// Execute runs every action of p in order. A failed action is counted and
// recorded; it never stops the actions after it. Scanned and Skipped are
// carried over from the plan unchanged.
func (e *Executor) Execute(p *types.Plan) *Result {
	result := &Result{}
	if p == nil {
		return result
	}

	result.Stats = p.Stats
	result.Outcomes = make([]Outcome, 0, len(p.Actions))

	for _, action := range p.Actions {
		outcome := e.executeAction(action)
		if outcome.Status == StatusMoved {
			result.Stats.Moved++
		} else {
			result.Stats.Errored++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	e.logger.Info().
		Int("actions", len(p.Actions)).
		Int("moved", result.Stats.Moved).
		Int("errored", result.Stats.Errored).
		Msg("Plan executed")
	return result
}

// executeAction moves a single file and returns its outcome
func (e *Executor) executeAction(action types.Action) Outcome {
	start := time.Now()
	outcome := Outcome{Action: action, Method: MethodRename}

	fail := func(err error) Outcome {
		e.logger.Error().
			Err(err).
			Str("source", action.Source).
			Str("destination", action.Destination).
			Str("method", string(outcome.Method)).
			Msg("Move failed")
		outcome.Status = StatusFailed
		outcome.Err = err
		outcome.Duration = time.Since(start)
		return outcome
	}

	dir := filepath.Dir(action.Destination)
	if err := e.fs.MkdirAll(dir, e.dirMode); err != nil {
		return fail(errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
			WithDetail("path", dir))
	}

	err := e.fs.Rename(action.Source, action.Destination)
	if err != nil {
		if !isCrossDevice(err) {
			return fail(errors.Wrapf(err, errors.ErrMoveFailed, "failed to move %s", action.Source).
				WithDetail("source", action.Source).
				WithDetail("destination", action.Destination))
		}

		e.logger.Debug().
			Str("source", action.Source).
			Str("destination", action.Destination).
			Msg("Rename crosses devices, falling back to copy")
		outcome.Method = MethodCopy
		if err := e.copyThenRemove(action); err != nil {
			return fail(err)
		}
	}

	outcome.Status = StatusMoved
	outcome.Duration = time.Since(start)
	e.logger.Info().
		Str("source", action.Source).
		Str("destination", action.Destination).
		Str("method", string(outcome.Method)).
		Dur("duration", outcome.Duration).
		Msg("File moved")
	return outcome
}

// copyThenRemove copies the source next to the destination, optionally
// verifies the copy, renames it into place and deletes the source. Until the
// final rename a file already at the destination is left untouched. A failed
// delete leaves both files.
func (e *Executor) copyThenRemove(action types.Action) error {
	partial := partialPath(action.Destination)
	if err := e.copyFile(action.Source, partial); err != nil {
		return err
	}

	if e.verifyCopy {
		same, err := hashutil.SameContent(e.fs, action.Source, partial)
		if err != nil {
			e.discard(partial)
			return errors.Wrapf(err, errors.ErrCopyFailed, "failed to verify copy of %s", action.Source).
				WithDetail("source", action.Source)
		}
		if !same {
			e.discard(partial)
			return errors.Newf(errors.ErrCopyMismatch, "copy of %s does not match the original", action.Source).
				WithDetail("source", action.Source).
				WithDetail("destination", action.Destination)
		}
	}

	// same directory, so this rename never crosses a device
	if err := e.fs.Rename(partial, action.Destination); err != nil {
		e.discard(partial)
		return errors.Wrapf(err, errors.ErrCopyFailed, "failed to move copy of %s into place", action.Source).
			WithDetail("source", action.Source).
			WithDetail("destination", action.Destination)
	}

	if err := e.fs.Remove(action.Source); err != nil {
		return errors.Wrapf(err, errors.ErrRemoveFailed, "copied %s but could not remove it", action.Source).
			WithDetail("source", action.Source).
			WithDetail("destination", action.Destination)
	}
	return nil
}

// partialPath names the hidden sibling a cross-device copy is written to
func partialPath(dst string) string {
	return filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+".fsorg-partial")
}

// copyFile copies src to dst keeping the source permission bits. A partial
// dst is removed on failure.
func (e *Executor) copyFile(src, dst string) error {
	wrap := func(err error) error {
		return errors.Wrapf(err, errors.ErrCopyFailed, "failed to copy %s", src).
			WithDetail("source", src).
			WithDetail("destination", dst)
	}

	in, err := e.fs.Open(src)
	if err != nil {
		return wrap(err)
	}
	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return wrap(err)
	}

	out, err := e.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return wrap(err)
	}

	buf := make([]byte, 64*1024)
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		_ = out.Close()
		e.discard(dst)
		return wrap(err)
	}
	if err := out.Close(); err != nil {
		e.discard(dst)
		return wrap(err)
	}
	return nil
}

func (e *Executor) discard(path string) {
	if err := e.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		e.logger.Warn().Err(err).Str("path", path).Msg("Could not remove incomplete copy")
	}
}
