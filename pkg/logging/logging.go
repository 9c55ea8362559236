package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls where log output goes
type Options struct {
	// Verbosity is the number of -v flags: 0 warn, 1 info, 2 debug, 3+ trace
	Verbosity int

	// LogFile receives a JSON copy of every entry. Empty means the default
	// location in the fsorg state directory.
	LogFile string

	// Console is the human-readable writer, stderr when nil
	Console io.Writer
}

// SetupLogger configures the global logger based on verbosity level
// It sets up dual output to both console and a log file
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity})
}

// Setup configures the global logger from opts
func Setup(opts Options) {
	zerolog.SetGlobalLevel(levelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	// NO_COLOR also covers the console log lines
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}}

	logFile := opts.LogFile
	if logFile == "" {
		logFile = defaultLogFile()
	}
	file, err := openLogFile(logFile)
	if err == nil {
		writers = append(writers, file)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	// Reported through the new logger so the warning reaches the console
	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	// Caller information from debug up
	if opts.Verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

func levelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// WithRun returns a component logger tagged with a run identifier
func WithRun(name, runID string) zerolog.Logger {
	return log.With().Str("component", name).Str("run_id", runID).Logger()
}

// defaultLogFile resolves fsorg.log in the state directory, falling back to
// the working directory when no state directory can be determined
func defaultLogFile() string {
	p, err := paths.New()
	if err != nil {
		return paths.LogFileName
	}
	return p.LogFilePath()
}

// openLogFile creates the log file and its parent directories
func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to create log directory for %s", logPath)
	}

	// Append so successive runs share one file
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to open log file %s", logPath)
	}
	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
