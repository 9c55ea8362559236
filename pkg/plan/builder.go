package plan

import (
	"io/fs"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/logging"
	"github.com/arthur-debert/fsorg/pkg/types"
)

// Resolver maps a file name to a destination subdirectory
type Resolver interface {
	Resolve(name string) (string, bool)
}

// BuildOptions configures a single plan build
type BuildOptions struct {
	SourceDir       string
	DestinationRoot string
	Matcher         Resolver
	FS              types.FS
}

// Build scans the direct entries of SourceDir and plans a move for every
// regular file the matcher resolves. Unmatched files are counted as skipped.
// On a source error the returned plan is empty with zero statistics.
func Build(opts BuildOptions) (*types.Plan, error) {
	logger := logging.GetLogger("plan.builder")
	defer logging.LogOperationStart(logger, "build")()

	if opts.FS == nil || opts.Matcher == nil {
		return &types.Plan{}, errors.New(errors.ErrInvalidInput, "plan build requires a filesystem and a matcher")
	}

	source, err := canonicalSource(opts.FS, opts.SourceDir)
	if err != nil {
		return &types.Plan{}, err
	}

	entries, err := opts.FS.ReadDir(source)
	if err != nil {
		return &types.Plan{}, errors.Wrapf(err, errors.ErrSourceRead, "failed to list %s", source).
			WithDetail("path", source)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	p := &types.Plan{}
	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(source, name)

		if !isRegularFile(opts.FS, full, entry) {
			continue
		}
		p.Stats.Scanned++

		if !utf8.ValidString(name) {
			p.Stats.Errored++
			logger.Error().
				Str("path", full).
				Msg("File name is not valid UTF-8")
			continue
		}

		dest, ok := opts.Matcher.Resolve(name)
		if !ok {
			p.Stats.Skipped++
			logger.Trace().Str("file", name).Msg("No rule matched")
			continue
		}

		action := types.Action{
			Source:      full,
			Destination: filepath.Join(opts.DestinationRoot, dest, name),
		}
		logger.Debug().
			Str("source", action.Source).
			Str("destination", action.Destination).
			Msg("Planned move")
		p.Actions = append(p.Actions, action)
	}

	logger.Info().
		Str("source", source).
		Int("actions", len(p.Actions)).
		Int("scanned", p.Stats.Scanned).
		Int("skipped", p.Stats.Skipped).
		Int("errored", p.Stats.Errored).
		Msg("Plan built")
	return p, nil
}

// canonicalSource makes dir absolute, resolves symlinks when the filesystem
// supports it and checks that the result is a directory.
func canonicalSource(fsys types.FS, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrSourceInvalid, "cannot resolve source directory %q", dir).
			WithDetail("path", dir)
	}

	if resolver, ok := fsys.(types.SymlinkResolver); ok {
		resolved, err := resolver.EvalSymlinks(abs)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrSourceInvalid, "cannot resolve source directory %q", dir).
				WithDetail("path", abs)
		}
		abs = resolved
	}

	info, err := fsys.Stat(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrSourceInvalid, "cannot access source directory %q", dir).
			WithDetail("path", abs)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrSourceInvalid, "source %q is not a directory", dir).
			WithDetail("path", abs)
	}
	return abs, nil
}

// isRegularFile reports whether entry is a regular file, following symlinks
func isRegularFile(fsys types.FS, path string, entry fs.DirEntry) bool {
	mode := entry.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&fs.ModeSymlink == 0 {
		return false
	}

	info, err := fsys.Stat(path)
	if err != nil {
		logger := logging.GetLogger("plan.builder")
		logger.Debug().
			Err(err).
			Str("path", path).
			Msg("Ignoring dangling symlink")
		return false
	}
	return info.Mode().IsRegular()
}
