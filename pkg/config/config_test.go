package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Source)
	assert.Equal(t, ".", cfg.Destination)
	assert.Empty(t, cfg.RulesFile)
	assert.False(t, cfg.Execution.VerifyCopy)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "auto", cfg.Output.Format)

	mode, err := cfg.DirMode()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), mode)
}

func TestLoad_SettingsFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
destination = "/srv/sorted"

[execution]
verify_copy = true
dir_mode = "0700"

[watch]
debounce = "500ms"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(LoadOptions{SettingsFile: path})
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Source, "unset keys keep their defaults")
	assert.Equal(t, "/srv/sorted", cfg.Destination)
	assert.True(t, cfg.Execution.VerifyCopy)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)

	mode, err := cfg.DirMode()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), mode)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("source = \"/from/file\"\n"), 0644))

	t.Setenv("FSORG_SOURCE", "/from/env")
	t.Setenv("FSORG_JOURNAL__ENABLED", "false")
	t.Setenv("FSORG_EXECUTION__VERIFY_COPY", "true")

	cfg, err := Load(LoadOptions{SettingsFile: path})
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Source)
	assert.False(t, cfg.Journal.Enabled)
	assert.True(t, cfg.Execution.VerifyCopy)
}

func TestLoad_MissingSettingsFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	_, err := Load(LoadOptions{SettingsFile: missing})
	assert.NoError(t, err, "optional settings file may be absent")

	_, err = Load(LoadOptions{SettingsFile: missing, Required: true})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_InvalidSettings(t *testing.T) {
	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("source = [unterminated"), 0644))

		_, err := Load(LoadOptions{SettingsFile: path})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("bad dir mode", func(t *testing.T) {
		t.Setenv("FSORG_EXECUTION__DIR_MODE", "rwx")

		_, err := Load(LoadOptions{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}
