// pkg/plan/builder_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Real temp directories, in-memory filesystem
// PURPOSE: Test plan building, counting and first-match precedence

package plan_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/filesystem"
	"github.com/arthur-debert/fsorg/pkg/plan"
	"github.com/arthur-debert/fsorg/pkg/rules"
	"github.com/arthur-debert/fsorg/pkg/testutil"
	"github.com/arthur-debert/fsorg/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioRules() *rules.Matcher {
	return rules.Compile(rules.RuleSet{
		{Pattern: `(?i)\.jpg$`, Destination: "Images"},
		{Pattern: `(?i)\.txt$`, Destination: "Documents"},
	})
}

func TestBuild_Scenario(t *testing.T) {
	src := t.TempDir()
	testutil.WriteFiles(t, src, map[string]string{
		"a.jpg": "jpg",
		"b.txt": "txt",
		"c.xyz": "xyz",
	})
	canonical, err := filepath.EvalSymlinks(src)
	require.NoError(t, err)

	p, err := plan.Build(plan.BuildOptions{
		SourceDir:       src,
		DestinationRoot: "out/",
		Matcher:         scenarioRules(),
		FS:              filesystem.NewOS(),
	})
	require.NoError(t, err)

	assert.Equal(t, []types.Action{
		{Source: filepath.Join(canonical, "a.jpg"), Destination: filepath.Join("out", "Images", "a.jpg")},
		{Source: filepath.Join(canonical, "b.txt"), Destination: filepath.Join("out", "Documents", "b.txt")},
	}, p.Actions)
	assert.Equal(t, types.RunStatistics{Scanned: 3, Skipped: 1}, p.Stats)
}

func TestBuild_CountingInvariant(t *testing.T) {
	src := t.TempDir()
	testutil.WriteFiles(t, src, map[string]string{
		"one.jpg":            "1",
		"two.JPG":            "2",
		"three.txt":          "3",
		"four.bin":           "4",
		"five":               "5",
		"nested/deep.jpg":    "not scanned",
		"another/inner.txt":  "not scanned",
		"Photos.jpg/keep.md": "a directory named like a match",
	})

	p, err := plan.Build(plan.BuildOptions{
		SourceDir:       src,
		DestinationRoot: filepath.Join(src, "sorted"),
		Matcher:         scenarioRules(),
		FS:              filesystem.NewOS(),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, p.Stats.Scanned)
	assert.Equal(t, 2, p.Stats.Skipped)
	assert.Equal(t, 0, p.Stats.Errored)
	assert.Len(t, p.Actions, 3)
	assert.Equal(t, p.Stats.Scanned, p.Len()+p.Stats.Skipped+p.Stats.Errored)
}

func TestBuild_SortedByName(t *testing.T) {
	fs := testutil.NewTestFS()
	for _, name := range []string{"z.txt", "m.txt", "a.txt"} {
		require.NoError(t, fs.WriteFile("/src/"+name, []byte(name), 0644))
	}

	p, err := plan.Build(plan.BuildOptions{
		SourceDir:       "/src",
		DestinationRoot: "/dst",
		Matcher:         scenarioRules(),
		FS:              fs,
	})
	require.NoError(t, err)

	require.Len(t, p.Actions, 3)
	assert.Equal(t, "/src/a.txt", p.Actions[0].Source)
	assert.Equal(t, "/src/m.txt", p.Actions[1].Source)
	assert.Equal(t, "/src/z.txt", p.Actions[2].Source)
	assert.Equal(t, "/dst/Documents/a.txt", p.Actions[0].Destination)
}

func TestBuild_FirstMatchPrecedence(t *testing.T) {
	fs := testutil.NewTestFS()
	require.NoError(t, fs.WriteFile("/src/photo.jpg", []byte("x"), 0644))

	matcher := rules.Compile(rules.RuleSet{
		{Pattern: `photo`, Destination: "Photos"},
		{Pattern: `\.jpg$`, Destination: "Images"},
	})
	p, err := plan.Build(plan.BuildOptions{SourceDir: "/src", DestinationRoot: "/out", Matcher: matcher, FS: fs})
	require.NoError(t, err)
	require.Len(t, p.Actions, 1)
	assert.Equal(t, "/out/Photos/photo.jpg", p.Actions[0].Destination)
}

func TestBuild_InvalidSource(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{"file.txt": "x"})

	tests := []struct {
		name string
		dir  string
	}{
		{"missing", filepath.Join(root, "does-not-exist")},
		{"not_a_directory", filepath.Join(root, "file.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := plan.Build(plan.BuildOptions{
				SourceDir: tt.dir,
				Matcher:   scenarioRules(),
				FS:        filesystem.NewOS(),
			})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrSourceInvalid))
			require.NotNil(t, p)
			assert.Empty(t, p.Actions)
			assert.Equal(t, types.RunStatistics{}, p.Stats)
		})
	}
}

func TestBuild_RequiresFSAndMatcher(t *testing.T) {
	_, err := plan.Build(plan.BuildOptions{SourceDir: "."})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestBuild_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	root := t.TempDir()
	src := filepath.Join(root, "src")
	testutil.WriteFiles(t, root, map[string]string{
		"target/real.txt": "real",
		"src/plain.txt":   "plain",
	})
	require.NoError(t, os.Symlink(filepath.Join(root, "target", "real.txt"), filepath.Join(src, "link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.txt"), filepath.Join(src, "dangling.txt")))
	require.NoError(t, os.Symlink(filepath.Join(root, "target"), filepath.Join(src, "dirlink.txt")))

	// the source itself reached through a symlink is canonicalized
	alias := filepath.Join(root, "alias")
	require.NoError(t, os.Symlink(src, alias))

	p, err := plan.Build(plan.BuildOptions{
		SourceDir:       alias,
		DestinationRoot: filepath.Join(root, "out"),
		Matcher:         scenarioRules(),
		FS:              filesystem.NewOS(),
	})
	require.NoError(t, err)

	canonical, err := filepath.EvalSymlinks(src)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Stats.Scanned)
	require.Len(t, p.Actions, 2)
	assert.Equal(t, filepath.Join(canonical, "link.txt"), p.Actions[0].Source)
	assert.Equal(t, filepath.Join(canonical, "plain.txt"), p.Actions[1].Source)
}

func TestBuild_NonUTF8NameCountsAsError(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs a filesystem that accepts arbitrary byte names")
	}

	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "bad\xff.txt"), []byte("x"), 0644); err != nil {
		t.Skipf("filesystem rejected non UTF-8 name: %v", err)
	}
	testutil.WriteFiles(t, src, map[string]string{"good.txt": "y"})

	p, err := plan.Build(plan.BuildOptions{
		SourceDir:       src,
		DestinationRoot: "out",
		Matcher:         scenarioRules(),
		FS:              filesystem.NewOS(),
	})
	require.NoError(t, err)

	assert.Equal(t, types.RunStatistics{Scanned: 2, Errored: 1}, p.Stats)
	require.Len(t, p.Actions, 1)
	assert.Equal(t, filepath.Join("out", "Documents", "good.txt"), p.Actions[0].Destination)
}
