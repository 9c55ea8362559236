package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EnvOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(root, "config"))
	t.Setenv(EnvDataDir, filepath.Join(root, "data"))
	t.Setenv(EnvStateDir, filepath.Join(root, "state"))

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "config"), p.ConfigDir())
	assert.Equal(t, filepath.Join(root, "data"), p.DataDir())
	assert.Equal(t, filepath.Join(root, "state"), p.StateDir())
	assert.Equal(t, filepath.Join(root, "config", "config.toml"), p.SettingsFile())
	assert.Equal(t, filepath.Join(root, "data", "journal.db"), p.JournalPath())
	assert.Equal(t, filepath.Join(root, "state", "fsorg.log"), p.LogFilePath())
}

func TestNew_StateFromXDG(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvStateDir, "")
	t.Setenv("XDG_STATE_HOME", root)

	p, err := New()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "fsorg"), p.StateDir())
}

func TestRulesFile(t *testing.T) {
	t.Run("defaults to rules.toml in the config dir", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv(EnvConfigDir, filepath.Join(root, "config"))
		t.Setenv(EnvHome, filepath.Join(root, "home"))

		p, err := New()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "config", "rules.toml"), p.RulesFile())
	})

	t.Run("prefers the legacy dotfile when no rules.toml exists", func(t *testing.T) {
		root := t.TempDir()
		home := filepath.Join(root, "home")
		require.NoError(t, os.MkdirAll(home, 0755))
		legacy := filepath.Join(home, ".fsorg.json")
		require.NoError(t, os.WriteFile(legacy, []byte(`{"rules":{}}`), 0644))
		t.Setenv(EnvConfigDir, filepath.Join(root, "config"))
		t.Setenv(EnvHome, home)

		p, err := New()
		require.NoError(t, err)
		assert.Equal(t, legacy, p.RulesFile())
	})

	t.Run("rules.toml wins once it exists", func(t *testing.T) {
		root := t.TempDir()
		home := filepath.Join(root, "home")
		config := filepath.Join(root, "config")
		require.NoError(t, os.MkdirAll(home, 0755))
		require.NoError(t, os.MkdirAll(config, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(home, ".fsorg.json"), []byte(`{}`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(config, "rules.toml"), []byte(``), 0644))
		t.Setenv(EnvConfigDir, config)
		t.Setenv(EnvHome, home)

		p, err := New()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(config, "rules.toml"), p.RulesFile())
	})
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"absolute untouched", "/var/tmp", "/var/tmp"},
		{"tilde alone", "~", home},
		{"tilde slash", "~/Downloads", filepath.Join(home, "Downloads")},
		{"other user untouched", "~bob/x", "~bob/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
