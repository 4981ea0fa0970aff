// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/objwebgl/internal/convert"
	"github.com/pdiddy/objwebgl/internal/ledger"
	"github.com/pdiddy/objwebgl/internal/report"
	"github.com/pdiddy/objwebgl/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Run the vertex, line, and index passes in order",
	Long: `Convert runs all three passes. The vertex and line passes both read the
input file; the index pass reads the face input file. The first malformed
vertex or face line aborts the run, and the output of the failing pass is
left as it was before the run.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

var verticesCmd = &cobra.Command{
	Use:   "vertices",
	Short: `Write one "x, y, z," line per vertex`,
	Long: `Vertices swaps the Y and Z axes of every vertex, negates the new Z,
scales by 0.1, rounds to seven decimal places, and writes one line per
vertex.`,
	Args: cobra.NoArgs,
	RunE: passRunner(types.PassVertices),
}

var linesCmd = &cobra.Command{
	Use:   "lines",
	Short: "Write consecutive vertices as blank-line separated edge pairs",
	Long: `Lines pairs every vertex with the one before it, separating pairs with a
blank line. The last vertex is repeated once more at the end without a
trailing newline.`,
	Args: cobra.NoArgs,
	RunE: passRunner(types.PassLines),
}

var indicesCmd = &cobra.Command{
	Use:   "indices",
	Short: `Write one "a, b, c, a, c, d," line per quad face`,
	Long: `Indices rebases the position index of the first four corners of every
face to 0-based and fans the quad into two triangles.`,
	Args: cobra.NoArgs,
	RunE: passRunner(types.PassIndices),
}

func init() {
	rootCmd.AddCommand(convertCmd, verticesCmd, linesCmd, indicesCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	return runPasses(cmd, convert.AllPasses)
}

func passRunner(pass types.Pass) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return runPasses(cmd, []types.Pass{pass})
	}
}

func runPasses(cmd *cobra.Command, selected []types.Pass) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	start := time.Now()

	result, err := convert.Run(ctx, cfg.Conversion, selected, out)
	if err != nil {
		return err
	}

	rec := types.RunRecord{
		StartedAt: start.UTC(),
		Duration:  time.Since(start),
		Passes:    result.Passes,
	}

	if !cfg.Ledger.Disabled {
		l, err := ledger.Open(cfg.Ledger)
		if err != nil {
			return err
		}
		defer l.Close()

		rec, err = l.Record(ctx, rec.StartedAt, rec.Duration, rec.Passes)
		if err != nil {
			return err
		}
		for _, p := range rec.Passes {
			fmt.Fprintf(out, "%-9s  %s\n", p.Status, p.Output)
		}
	}

	if cfg.Report != "" {
		if err := report.WriteFile(cfg.Report, report.New(cfg.Conversion, rec)); err != nil {
			return err
		}
		fmt.Fprintf(out, "report:    %s\n", cfg.Report)
	}
	return nil
}
