// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/objwebgl/internal/report"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	in := write("vertices.txt", "# model\nv 10 20 30\nvn 0 0 1\nv 0 0 10\n")
	faces := write("indices.txt", "f 1/1/1 2/2/2 3/3/3 4/4/4\n")
	paths := []string{
		"--input", in,
		"--face-input", faces,
		"--vertices-out", filepath.Join(dir, "webgl_vertices.txt"),
		"--lines-out", filepath.Join(dir, "webgl_lines.txt"),
		"--indices-out", filepath.Join(dir, "webgl_indices.txt"),
		"--ledger-dir", filepath.Join(dir, ".objwebgl"),
	}
	reportPath := filepath.Join(dir, "report.yaml")

	t.Run("convert writes all outputs", func(t *testing.T) {
		out, err := execute(t, append([]string{"convert", "--report", reportPath}, paths...)...)
		require.NoError(t, err)
		assert.Contains(t, out, "Run summary: 3 pass(es), 5 record(s) written")
		assert.Contains(t, out, "new")

		data, err := os.ReadFile(filepath.Join(dir, "webgl_vertices.txt"))
		require.NoError(t, err)
		assert.Equal(t, "1.0, 3.0, -2.0,\n0.0, 1.0, -0.0,\n", string(data))

		data, err = os.ReadFile(filepath.Join(dir, "webgl_lines.txt"))
		require.NoError(t, err)
		assert.Equal(t, "1.0, 3.0, -2.0,\n0.0, 1.0, -0.0,\n\n0.0, 1.0, -0.0,", string(data))

		data, err = os.ReadFile(filepath.Join(dir, "webgl_indices.txt"))
		require.NoError(t, err)
		assert.Equal(t, "0, 1, 2, 0, 2, 3,\n", string(data))

		r, err := report.ReadFile(reportPath)
		require.NoError(t, err)
		assert.Equal(t, 5, r.Summary.Records)
	})

	t.Run("rerun reports unchanged outputs", func(t *testing.T) {
		out, err := execute(t, append([]string{"convert", "--report", ""}, paths...)...)
		require.NoError(t, err)
		assert.Contains(t, out, "unchanged  "+filepath.Join(dir, "webgl_indices.txt"))
	})

	t.Run("history lists runs", func(t *testing.T) {
		out, err := execute(t, append([]string{"history", "--limit", "5"}, paths...)...)
		require.NoError(t, err)
		assert.Contains(t, out, "webgl_lines.txt")
		assert.Contains(t, out, "unchanged")
	})

	t.Run("malformed vertex aborts", func(t *testing.T) {
		write("vertices.txt", "v 10 20 30\nv 1.0 2.0\n")
		_, err := execute(t, append([]string{"vertices"}, paths...)...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed vertex line")

		data, err := os.ReadFile(filepath.Join(dir, "webgl_vertices.txt"))
		require.NoError(t, err)
		assert.Equal(t, "1.0, 3.0, -2.0,\n0.0, 1.0, -0.0,\n", string(data))
	})

	t.Run("version", func(t *testing.T) {
		out, err := execute(t, "version")
		require.NoError(t, err)
		assert.Equal(t, "objwebgl dev\n", out)
	})
}
