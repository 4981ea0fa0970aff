// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/objwebgl/pkg/types"
)

func sampleRun() types.RunRecord {
	return types.RunRecord{
		ID:        7,
		StartedAt: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
		Duration:  42 * time.Millisecond,
		Passes: []types.PassResult{
			{Pass: types.PassVertices, Input: "vertices.txt", Output: "webgl_vertices.txt", LinesRead: 12, Records: 8, Skipped: 4, Status: types.OutputUnchanged},
			{Pass: types.PassLines, Input: "vertices.txt", Output: "webgl_lines.txt", LinesRead: 12, Records: 8, Skipped: 4, Status: types.OutputChanged},
			{Pass: types.PassIndices, Input: "indices.txt", Output: "webgl_indices.txt", LinesRead: 6, Records: 6, Status: types.OutputNew},
		},
	}
}

func TestNew_Summary(t *testing.T) {
	r := New(types.DefaultConversionConfig(), sampleRun())

	assert.Equal(t, int64(7), r.Summary.RunID)
	assert.Equal(t, 22, r.Summary.Records)
	assert.Equal(t, 8, r.Summary.Skipped)
	assert.Equal(t, 1, r.Summary.Unchanged)
	assert.Equal(t, 42*time.Millisecond, r.Summary.Duration)
	assert.Len(t, r.Passes, 3)
}

func TestWriteFile_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	want := New(types.DefaultConversionConfig(), sampleRun())

	require.NoError(t, WriteFile(path, want))
	got, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, want.Config, got.Config)
	assert.Equal(t, want.Passes, got.Passes)
	assert.Equal(t, want.Summary.Records, got.Summary.Records)
	assert.True(t, want.Summary.StartedAt.Equal(got.Summary.StartedAt))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEncodeHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeHistory(&buf, []types.RunRecord{sampleRun()}))

	out := buf.String()
	assert.Contains(t, out, "output: webgl_lines.txt")
	assert.Contains(t, out, "status: changed")

	var runs []types.RunRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].ID)
	assert.Len(t, runs[0].Passes, 3)
}
