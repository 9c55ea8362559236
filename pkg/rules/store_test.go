// pkg/rules/store_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test rules file load, seed and save across formats

package rules_test

import (
	"testing"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/rules"
	"github.com/arthur-debert/fsorg/pkg/testutil"
	"github.com/arthur-debert/fsorg/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SeedsMissingFile(t *testing.T) {
	fs := testutil.NewTestFS()
	path := "/config/fsorg/rules.toml"

	f, err := rules.Load(fs, path)
	require.NoError(t, err)
	assert.Equal(t, rules.CurrentVersion, f.Version)
	assert.Equal(t, rules.DefaultRules(), f.Rules)

	// the seeded file was written and loads back identically
	_, err = fs.Stat(path)
	require.NoError(t, err)
	again, err := rules.Load(fs, path)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	set := rules.RuleSet{
		{Pattern: `(?i)\.jpe?g$`, Destination: "Images"},
		{Pattern: `^invoice-.*\.pdf$`, Destination: "Finance/Invoices"},
		{Pattern: `\.log$`, Destination: "Logs"},
	}

	for _, path := range []string{"/r/rules.toml", "/r/rules.yaml", "/r/rules.yml", "/r/rules.json"} {
		t.Run(path, func(t *testing.T) {
			fs := testutil.NewTestFS()
			require.NoError(t, rules.Save(fs, path, &rules.File{Rules: set}))

			f, err := rules.Load(fs, path)
			require.NoError(t, err)
			assert.Equal(t, rules.CurrentVersion, f.Version)
			assert.Equal(t, set, f.Rules)
		})
	}
}

func TestLoad_LegacyJSONMappingKeepsOrder(t *testing.T) {
	fs := testutil.NewTestFS()
	path := "/home/user/.fsorg.json"
	legacy := `{
  "rules": {
    "(?i)^.*\\.(zip|tar)$": "Archives",
    "(?i)^.*\\.(jpg|png)$": "Images",
    "(?i)^.*\\.pdf$": "Documents"
  },
  "version": "0.0.1"
}`
	require.NoError(t, fs.WriteFile(path, []byte(legacy), 0644))

	f, err := rules.Load(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.1", f.Version)
	assert.Equal(t, rules.RuleSet{
		{Pattern: `(?i)^.*\.(zip|tar)$`, Destination: "Archives"},
		{Pattern: `(?i)^.*\.(jpg|png)$`, Destination: "Images"},
		{Pattern: `(?i)^.*\.pdf$`, Destination: "Documents"},
	}, f.Rules)
}

func TestLoad_YAMLListForm(t *testing.T) {
	fs := testutil.NewTestFS()
	path := "/r/rules.yaml"
	content := `version: "1"
rules:
  - pattern: '\.mp3$'
    destination: Music
  - pattern: '\.mkv$'
    destination: Videos
`
	require.NoError(t, fs.WriteFile(path, []byte(content), 0644))

	f, err := rules.Load(fs, path)
	require.NoError(t, err)
	assert.Equal(t, []types.Rule{
		{Pattern: `\.mp3$`, Destination: "Music"},
		{Pattern: `\.mkv$`, Destination: "Videos"},
	}, f.Rules.List())
}

func TestLoad_TOML(t *testing.T) {
	fs := testutil.NewTestFS()
	path := "/r/rules.toml"
	content := `version = "1"

[[rules]]
pattern = '\.epub$'
destination = "Books"
`
	require.NoError(t, fs.WriteFile(path, []byte(content), 0644))

	f, err := rules.Load(fs, path)
	require.NoError(t, err)
	assert.Equal(t, rules.RuleSet{{Pattern: `\.epub$`, Destination: "Books"}}, f.Rules)
}

func TestLoad_CorruptFileIsAnError(t *testing.T) {
	tests := []struct {
		path    string
		content string
	}{
		{"/r/rules.toml", "[[rules]\npattern = "},
		{"/r/rules.yaml", "rules: [unterminated"},
		{"/r/rules.json", `["not", "a", "mapping"]`},
		{"/r/rules.json", `{"rules": 42}`},
		{"/r/rules.yaml", "rules:\n  x:\n    - nested\n"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			fs := testutil.NewTestFS()
			require.NoError(t, fs.WriteFile(tt.path, []byte(tt.content), 0644))

			_, err := rules.Load(fs, tt.path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

			// the user's file is left alone
			data, err := fs.ReadFile(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	fs := testutil.NewTestFS()
	require.NoError(t, fs.WriteFile("/r/rules.toml", nil, 0644))

	f, err := rules.Load(fs, "/r/rules.toml")
	require.NoError(t, err)
	assert.Empty(t, f.Rules)
	assert.Equal(t, rules.CurrentVersion, f.Version)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, rules.FormatTOML, rules.FormatFor("rules.toml"))
	assert.Equal(t, rules.FormatTOML, rules.FormatFor("rules"))
	assert.Equal(t, rules.FormatYAML, rules.FormatFor("rules.YML"))
	assert.Equal(t, rules.FormatJSON, rules.FormatFor(".fsorg.json"))
}
