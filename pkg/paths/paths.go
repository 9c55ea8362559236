// Package paths provides centralized path handling for fsorg.
// It implements XDG Base Directory specification compliance and
// resolves the default locations of the rules file, the settings
// file and the run journal.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/fsorg/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for fsorg
	EnvConfigDir = "FSORG_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for fsorg
	EnvDataDir = "FSORG_DATA_DIR"

	// EnvStateDir overrides the XDG state directory for fsorg
	EnvStateDir = "FSORG_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "fsorg"

	// RulesFileName is the default rules file inside the config directory
	RulesFileName = "rules.toml"

	// SettingsFileName is the settings file inside the config directory
	SettingsFileName = "config.toml"

	// LegacyRulesFileName is the dotfile in $HOME used by earlier releases
	LegacyRulesFileName = ".fsorg.json"

	// JournalFileName is the sqlite run journal inside the data directory
	JournalFileName = "journal.db"

	// LogFileName is the name of the log file
	LogFileName = "fsorg.log"
)

// Paths provides centralized path management for fsorg
type Paths interface {
	ConfigDir() string
	DataDir() string
	StateDir() string
	RulesFile() string
	SettingsFile() string
	JournalPath() string
	LogFilePath() string
}

type paths struct {
	xdgConfig string
	xdgData   string
	xdgState  string
	home      string
}

// New creates a new Paths instance, honouring the FSORG_*_DIR overrides
// before falling back to the XDG base directories.
func New() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
	}
	p := &paths{home: home}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.xdgConfig = ExpandHome(dir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		p.xdgData = ExpandHome(dir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	// XDG_STATE_HOME is read directly so tests can redirect it after init
	switch {
	case os.Getenv(EnvStateDir) != "":
		p.xdgState = ExpandHome(os.Getenv(EnvStateDir))
	case os.Getenv("XDG_STATE_HOME") != "":
		p.xdgState = filepath.Join(os.Getenv("XDG_STATE_HOME"), AppDirName)
	case home != "":
		p.xdgState = filepath.Join(home, ".local", "state", AppDirName)
	default:
		return nil, errors.New(errors.ErrConfigLoad, "cannot determine a state directory: no home directory")
	}

	return p, nil
}

// ConfigDir returns the XDG config directory for fsorg
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// DataDir returns the XDG data directory for fsorg
func (p *paths) DataDir() string {
	return p.xdgData
}

// StateDir returns the XDG state directory for fsorg
func (p *paths) StateDir() string {
	return p.xdgState
}

// RulesFile returns the default rules file. A legacy ~/.fsorg.json is used
// when it exists and no rules.toml has been created yet.
func (p *paths) RulesFile() string {
	current := filepath.Join(p.xdgConfig, RulesFileName)
	if _, err := os.Stat(current); err == nil || p.home == "" {
		return current
	}
	legacy := filepath.Join(p.home, LegacyRulesFileName)
	if _, err := os.Stat(legacy); err == nil {
		return legacy
	}
	return current
}

// SettingsFile returns the path of the optional settings file
func (p *paths) SettingsFile() string {
	return filepath.Join(p.xdgConfig, SettingsFileName)
}

// JournalPath returns the path of the run journal database
func (p *paths) JournalPath() string {
	return filepath.Join(p.xdgData, JournalFileName)
}

// LogFilePath returns the path of the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
