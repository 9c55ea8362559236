package fsorg

import (
	"os"
	"time"

	"github.com/arthur-debert/fsorg/pkg/config"
	"github.com/arthur-debert/fsorg/pkg/paths"
	"github.com/arthur-debert/fsorg/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags of the root command
type globalFlags struct {
	verbosity   int
	source      string
	destination string
	rulesFile   string
	settings    string
	format      string
}

// settings is the resolved configuration of one invocation, with flags
// applied over config.Load
type settings struct {
	Source      string
	Destination string
	RulesFile   string
	VerifyCopy  bool
	DirMode     os.FileMode
	JournalPath string
	Debounce    time.Duration
	Format      ui.Format
}

func (g *globalFlags) resolve(cmd *cobra.Command) (*settings, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}

	settingsFile := g.settings
	required := settingsFile != ""
	if settingsFile == "" {
		settingsFile = p.SettingsFile()
	}

	cfg, err := config.Load(config.LoadOptions{SettingsFile: settingsFile, Required: required})
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = g.source
	}
	if flags.Changed("destination") {
		cfg.Destination = g.destination
	}
	if flags.Changed("rules") {
		cfg.RulesFile = g.rulesFile
	}
	if flags.Changed("format") {
		cfg.Output.Format = g.format
	}

	s := &settings{
		Source:      paths.ExpandHome(cfg.Source),
		Destination: paths.ExpandHome(cfg.Destination),
		RulesFile:   paths.ExpandHome(cfg.RulesFile),
		VerifyCopy:  cfg.Execution.VerifyCopy,
		Debounce:    cfg.Watch.Debounce,
	}
	if s.RulesFile == "" {
		s.RulesFile = p.RulesFile()
	}
	if cfg.Journal.Enabled {
		s.JournalPath = paths.ExpandHome(cfg.Journal.Path)
		if s.JournalPath == "" {
			s.JournalPath = p.JournalPath()
		}
	}

	if s.DirMode, err = cfg.DirMode(); err != nil {
		return nil, err
	}
	if s.Format, err = ui.ParseFormat(cfg.Output.Format); err != nil {
		return nil, err
	}

	log.Debug().Str("settings", cfg.String()).Str("rulesFile", s.RulesFile).Msg("Settings resolved")
	return s, nil
}

// ErrorFormat returns the format errors of cmd should be printed in. It only
// looks at the --format flag so it works even when settings failed to load.
func ErrorFormat(cmd *cobra.Command) ui.Format {
	value, err := cmd.PersistentFlags().GetString("format")
	if err != nil {
		return ui.FormatAuto
	}
	format, err := ui.ParseFormat(value)
	if err != nil {
		return ui.FormatAuto
	}
	return format
}
