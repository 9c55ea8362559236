package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/executor"
	"github.com/arthur-debert/fsorg/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(context.Background(), filepath.Join(t.TempDir(), "state", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestOpen_CreatesFileAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	j, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer func() { _ = j.Close() }()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file should exist")
	assert.Equal(t, path, j.Path())

	var version int
	require.NoError(t, j.conn.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version))
	assert.Equal(t, SchemaVersion, version)

	for _, table := range []string{"runs", "moves", "schema_version"} {
		var name string
		err := j.conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	j, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, Run{ID: "first", Mode: ModeOrganize, StartedAt: time.Now()}, nil))
	require.NoError(t, j.Close())

	j, err = Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = j.Close() }()

	var count int
	require.NoError(t, j.conn.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count))
	assert.Equal(t, 1, count)

	runs, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "first", runs[0].ID)
}

func TestRecordAndMoves(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	started := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	run := Run{
		ID:         NewRunID(),
		Mode:       ModeApply,
		PlanFile:   "/tmp/today.plan",
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
		Stats:      types.RunStatistics{Moved: 1, Errored: 1},
	}
	outcomes := []executor.Outcome{
		{
			Action: types.Action{Source: "/in/a.jpg", Destination: "/out/Images/a.jpg"},
			Status: executor.StatusMoved,
			Method: executor.MethodCopy,
		},
		{
			Action: types.Action{Source: "/in/b.txt", Destination: "/out/Documents/b.txt"},
			Status: executor.StatusFailed,
			Method: executor.MethodRename,
			Err:    errors.New(errors.ErrMoveFailed, "failed to move /in/b.txt"),
		},
	}
	require.NoError(t, j.Record(ctx, run, outcomes))

	runs, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, ModeApply, got.Mode)
	assert.Equal(t, "/tmp/today.plan", got.PlanFile)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))
	assert.True(t, run.FinishedAt.Equal(got.FinishedAt))
	assert.Equal(t, run.Stats, got.Stats)

	moves, err := j.Moves(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []Move{
		{RunID: run.ID, Seq: 1, Source: "/in/a.jpg", Destination: "/out/Images/a.jpg", Status: "moved", Method: "copy"},
		{RunID: run.ID, Seq: 2, Source: "/in/b.txt", Destination: "/out/Documents/b.txt", Status: "failed", Method: "rename",
			Error: "[MOVE_FAILED] failed to move /in/b.txt"},
	}, moves)

	none, err := j.Moves(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecent_NewestFirstWithLimit(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"oldest", "middle", "newest"} {
		started := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, j.Record(ctx, Run{ID: id, Mode: ModeOrganize, StartedAt: started, FinishedAt: started}, nil))
	}

	runs, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "newest", runs[0].ID)
	assert.Equal(t, "middle", runs[1].ID)

	all, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecord_DuplicateIDFailsAtomically(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	run := Run{ID: "dup", Mode: ModeOrganize, StartedAt: time.Now()}
	require.NoError(t, j.Record(ctx, run, nil))

	err := j.Record(ctx, run, []executor.Outcome{{Status: executor.StatusMoved, Method: executor.MethodRename}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrJournal))

	moves, err := j.Moves(ctx, "dup")
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestRecord_AssignsMissingID(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, Run{Mode: ModeWatch, StartedAt: time.Now()}, nil))

	runs, err := j.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	_, err = uuid.Parse(runs[0].ID)
	assert.NoError(t, err)
}

func TestGet(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, Run{ID: "known", Mode: ModeApply, PlanFile: "x.plan", StartedAt: time.Now()}, nil))

	r, found, err := j.Get(ctx, "known")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "x.plan", r.PlanFile)

	_, found, err = j.Get(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, found)
}
