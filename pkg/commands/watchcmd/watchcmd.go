// Package watchcmd keeps a source directory organized by running a pass
// every time new files settle in it.
package watchcmd

import (
	"context"
	"os"
	"time"

	"github.com/arthur-debert/fsorg/pkg/commands/organize"
	"github.com/arthur-debert/fsorg/pkg/journal"
	"github.com/arthur-debert/fsorg/pkg/logging"
	"github.com/arthur-debert/fsorg/pkg/types"
	"github.com/arthur-debert/fsorg/pkg/watch"
)

// Options defines the options for watch mode.
type Options struct {
	SourceDir       string
	DestinationRoot string
	RulesFile       string
	FS              types.FS

	VerifyCopy  bool
	DirMode     os.FileMode
	JournalPath string

	Debounce time.Duration
}

// Reporter receives the result of every pass
type Reporter func(*organize.Result)

// Run organizes SourceDir once, then again after every burst of arriving
// files, until ctx is cancelled. Rules are reloaded for each pass. The
// returned statistics are the sum over all completed passes.
func Run(ctx context.Context, opts Options, report Reporter) (types.RunStatistics, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Watch").Str("source", opts.SourceDir).Msg("Executing command")

	var totals types.RunStatistics
	w, err := watch.New(watch.Options{Dir: opts.SourceDir, Debounce: opts.Debounce})
	if err != nil {
		return totals, err
	}

	pass := func() error {
		result, err := organize.Run(ctx, organize.Options{
			SourceDir:       opts.SourceDir,
			DestinationRoot: opts.DestinationRoot,
			RulesFile:       opts.RulesFile,
			FS:              opts.FS,
			VerifyCopy:      opts.VerifyCopy,
			DirMode:         opts.DirMode,
			JournalPath:     opts.JournalPath,
			Mode:            journal.ModeWatch,
		})
		if err != nil {
			return err
		}
		totals.Add(result.Stats)
		if report != nil {
			report(result)
		}
		return nil
	}

	if err := pass(); err != nil {
		return totals, err
	}
	err = w.Run(ctx, pass)

	log.Info().
		Str("command", "Watch").
		Int("scanned", totals.Scanned).
		Int("moved", totals.Moved).
		Int("skipped", totals.Skipped).
		Int("errored", totals.Errored).
		Msg("Watch stopped")
	return totals, err
}
