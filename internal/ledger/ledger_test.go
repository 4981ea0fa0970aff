// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/objwebgl/pkg/types"
)

func testLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".objwebgl")
	l, err := Open(types.LedgerConfig{Dir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l, dir
}

func pass(p types.Pass, output, digest string) types.PassResult {
	return types.PassResult{
		Pass:      p,
		Input:     "vertices.txt",
		Output:    output,
		LinesRead: 10,
		Records:   8,
		Skipped:   2,
		Bytes:     120,
		Digest:    digest,
	}
}

func TestOpen_CreatesDatabase(t *testing.T) {
	_, dir := testLedger(t)
	_, err := os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)
}

func TestOpen_Reopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ledger")
	ctx := context.Background()

	l, err := Open(types.LedgerConfig{Dir: dir})
	require.NoError(t, err)
	_, err = l.Record(ctx, time.Now(), time.Millisecond, []types.PassResult{pass(types.PassVertices, "a.txt", "d1")})
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l, err = Open(types.LedgerConfig{Dir: dir})
	require.NoError(t, err)
	defer l.Close()

	runs, err := l.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRecord_Status(t *testing.T) {
	l, _ := testLedger(t)
	ctx := context.Background()
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	first, err := l.Record(ctx, start, 5*time.Millisecond, []types.PassResult{
		pass(types.PassVertices, "webgl_vertices.txt", "aaa"),
		pass(types.PassLines, "webgl_lines.txt", "bbb"),
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, types.OutputNew, first.Passes[0].Status)
	assert.Equal(t, types.OutputNew, first.Passes[1].Status)

	second, err := l.Record(ctx, start.Add(time.Minute), 5*time.Millisecond, []types.PassResult{
		pass(types.PassVertices, "webgl_vertices.txt", "aaa"),
		pass(types.PassLines, "webgl_lines.txt", "ccc"),
		pass(types.PassIndices, "webgl_indices.txt", "ddd"),
	})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, types.OutputUnchanged, second.Passes[0].Status)
	assert.Equal(t, types.OutputChanged, second.Passes[1].Status)
	assert.Equal(t, types.OutputNew, second.Passes[2].Status)
}

func TestRecord_DoesNotMutateInput(t *testing.T) {
	l, _ := testLedger(t)
	in := []types.PassResult{pass(types.PassIndices, "webgl_indices.txt", "x")}

	_, err := l.Record(context.Background(), time.Now(), 0, in)
	require.NoError(t, err)
	assert.Empty(t, in[0].Status)
}

func TestRuns(t *testing.T) {
	l, _ := testLedger(t)
	ctx := context.Background()
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := l.Record(ctx, start.Add(time.Duration(i)*time.Hour), time.Duration(i+1)*time.Millisecond,
			[]types.PassResult{
				pass(types.PassVertices, "webgl_vertices.txt", "same"),
				pass(types.PassIndices, "webgl_indices.txt", "same"),
			})
		require.NoError(t, err)
	}

	runs, err := l.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	newest := runs[0]
	assert.True(t, newest.StartedAt.Equal(start.Add(2*time.Hour)))
	assert.Equal(t, 3*time.Millisecond, newest.Duration)
	require.Len(t, newest.Passes, 2)
	assert.Equal(t, types.PassVertices, newest.Passes[0].Pass)
	assert.Equal(t, types.PassIndices, newest.Passes[1].Pass)
	assert.Equal(t, types.OutputUnchanged, newest.Passes[0].Status)
	assert.Equal(t, 8, newest.Passes[0].Records)
	assert.Equal(t, int64(120), newest.Passes[0].Bytes)

	assert.Greater(t, runs[0].ID, runs[1].ID)
}

func TestRuns_Empty(t *testing.T) {
	l, _ := testLedger(t)
	runs, err := l.Runs(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
