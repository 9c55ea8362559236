package rulecmd

import (
	"testing"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/rules"
	"github.com/arthur-debert/fsorg/pkg/testutil"
	"github.com/arthur-debert/fsorg/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_SeedsDefaults(t *testing.T) {
	opts := Options{RulesFile: "/cfg/rules.toml", FS: testutil.NewTestFS()}

	got, err := List(opts)
	require.NoError(t, err)
	assert.Equal(t, []types.Rule(rules.DefaultRules()), got)
}

func TestAddAndRemove_Persist(t *testing.T) {
	fsys := testutil.NewTestFS()
	opts := Options{RulesFile: "/cfg/rules.yaml", FS: fsys}

	_, err := Add(opts, `\.mp3$`, "Music")
	require.NoError(t, err)

	// replacing keeps the position
	_, err = Add(opts, `\.mp3$`, "Audio")
	require.NoError(t, err)

	f, err := rules.Load(fsys, opts.RulesFile)
	require.NoError(t, err)
	require.Len(t, f.Rules, 3)
	assert.Equal(t, types.Rule{Pattern: `\.mp3$`, Destination: "Audio"}, f.Rules[2])

	got, err := Remove(opts, `\.mp3$`)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	f, err = rules.Load(fsys, opts.RulesFile)
	require.NoError(t, err)
	assert.NotContains(t, f.Rules.List(), types.Rule{Pattern: `\.mp3$`, Destination: "Audio"})
}

func TestAdd_InvalidPatternNotSaved(t *testing.T) {
	fsys := testutil.NewTestFS()
	opts := Options{RulesFile: "/cfg/rules.toml", FS: fsys}

	_, err := Add(opts, `([`, "Broken")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleInvalid))

	got, err := List(opts)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRemove_Unknown(t *testing.T) {
	opts := Options{RulesFile: "/cfg/rules.toml", FS: testutil.NewTestFS()}

	_, err := Remove(opts, "nope")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleNotFound))
}
