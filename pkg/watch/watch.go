// Package watch reruns a callback whenever files arrive in a directory.
package watch

import (
	"context"
	"os"
	"time"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is used when Options.Debounce is zero
const DefaultDebounce = 2 * time.Second

// Options configures a Watcher
type Options struct {
	Dir      string
	Debounce time.Duration
	Logger   *zerolog.Logger
}

// Watcher observes a single directory, non-recursively
type Watcher struct {
	dir      string
	debounce time.Duration
	logger   zerolog.Logger
}

// New validates the options and returns a watcher for opts.Dir
func New(opts Options) (*Watcher, error) {
	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceInvalid, "cannot watch %s", opts.Dir).
			WithDetail("path", opts.Dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrSourceInvalid, "cannot watch %s: not a directory", opts.Dir).
			WithDetail("path", opts.Dir)
	}

	logger := logging.GetLogger("watch")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{dir: opts.Dir, debounce: debounce, logger: logger}, nil
}

// Run calls fn once for every burst of arriving files, after the directory
// has been quiet for the debounce interval. Errors from fn are logged and
// watching continues. Run returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to start file watcher")
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.dir); err != nil {
		return errors.Wrapf(err, errors.ErrSourceRead, "failed to watch %s", w.dir).
			WithDetail("path", w.dir)
	}

	w.logger.Info().
		Str("dir", w.dir).
		Dur("debounce", w.debounce).
		Msg("Watching for new files")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str("dir", w.dir).Msg("Stopped watching")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !Relevant(event) {
				continue
			}
			w.logger.Trace().Str("file", event.Name).Str("op", event.Op.String()).Msg("File event")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger.Debug().Str("dir", w.dir).Msg("Directory settled, running pass")
			if err := fn(); err != nil {
				w.logger.Error().Err(err).Str("dir", w.dir).Msg("Pass failed")
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Str("dir", w.dir).Msg("File watcher error")
		}
	}
}

// Relevant reports whether event signals a file arriving or changing.
// Removals and renames away are what a pass itself produces, and
// directories are never organized.
func Relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
