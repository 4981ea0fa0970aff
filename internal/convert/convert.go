// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the three conversion passes over OBJ-style geometry
// files: vertices, edge-pair lines, and triangle indices. Each pass reads its
// whole input, converts the lines it recognizes, and replaces its output file
// only when the pass succeeds.
package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/objwebgl/internal/geometry"
	"github.com/pdiddy/objwebgl/pkg/types"
)

// maxLineSize bounds a single input line. OBJ exporters can write very long
// face lines for n-gons.
const maxLineSize = 1 << 20

// Counts tallies the lines seen by a pass.
type Counts struct {
	LinesRead int
	Records   int
	Skipped   int
}

// PassFunc converts geometry read from r and writes the result to w.
type PassFunc func(ctx context.Context, r io.Reader, w io.Writer) (Counts, error)

// passes maps each pass to its converter and to the config fields it uses.
var passes = map[types.Pass]struct {
	fn     PassFunc
	input  func(types.ConversionConfig) string
	output func(types.ConversionConfig) string
}{
	types.PassVertices: {
		fn:     Vertices,
		input:  func(c types.ConversionConfig) string { return c.Input },
		output: func(c types.ConversionConfig) string { return c.VerticesOutput },
	},
	types.PassLines: {
		fn:     Lines,
		input:  func(c types.ConversionConfig) string { return c.Input },
		output: func(c types.ConversionConfig) string { return c.LinesOutput },
	},
	types.PassIndices: {
		fn:     Indices,
		input:  func(c types.ConversionConfig) string { return c.FaceInput },
		output: func(c types.ConversionConfig) string { return c.IndicesOutput },
	},
}

// AllPasses lists the passes in the order a full run executes them.
var AllPasses = []types.Pass{types.PassVertices, types.PassLines, types.PassIndices}

// Vertices writes one "x, y, z," line per vertex line of r.
func Vertices(ctx context.Context, r io.Reader, w io.Writer) (Counts, error) {
	var counts Counts
	err := eachLine(ctx, r, &counts, geometry.KindVertex, func(tokens []string) error {
		line, err := vertexLine(tokens)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, line+"\n")
		return err
	})
	return counts, err
}

// Lines writes consecutive vertices of r as edge pairs. See EdgePairer for
// the exact layout.
func Lines(ctx context.Context, r io.Reader, w io.Writer) (Counts, error) {
	var counts Counts
	pairer := NewEdgePairer(w)
	err := eachLine(ctx, r, &counts, geometry.KindVertex, func(tokens []string) error {
		line, err := vertexLine(tokens)
		if err != nil {
			return err
		}
		return pairer.Add(line)
	})
	if err != nil {
		return counts, err
	}
	return counts, pairer.Flush()
}

// Indices writes one "a, b, c, a, c, d," line per face line of r.
func Indices(ctx context.Context, r io.Reader, w io.Writer) (Counts, error) {
	var counts Counts
	err := eachLine(ctx, r, &counts, geometry.KindFace, func(tokens []string) error {
		face, err := geometry.ParseFace(tokens)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, geometry.FormatTriangles(face.Triangles())+"\n")
		return err
	})
	return counts, err
}

func vertexLine(tokens []string) (string, error) {
	v, err := geometry.ParseVertex(tokens)
	if err != nil {
		return "", err
	}
	return geometry.FormatVertex(v.WebGL()), nil
}

// eachLine calls fn with the trailing tokens of every line of kind want.
// Other lines are counted as skipped. A LineError returned by fn gets the
// 1-based line number.
func eachLine(ctx context.Context, r io.Reader, counts *Counts, want geometry.Kind, fn func(tokens []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		counts.LinesRead++

		kind, tokens := geometry.Classify(scanner.Text())
		if kind != want {
			counts.Skipped++
			continue
		}
		if err := fn(tokens); err != nil {
			var le *geometry.LineError
			if errors.As(err, &le) {
				le.Line = counts.LinesRead
			}
			return err
		}
		counts.Records++
	}
	return scanner.Err()
}

// ConvertFile runs one pass from the file at in to the file at out. The
// output is written to a temporary file next to out and renamed into place
// only on success, so a failed pass leaves any previous output untouched.
func ConvertFile(ctx context.Context, pass types.Pass, in, out string) (types.PassResult, error) {
	p, ok := passes[pass]
	if !ok {
		return types.PassResult{}, fmt.Errorf("unknown pass %q", pass)
	}
	result := types.PassResult{Pass: pass, Input: in, Output: out}

	f, err := os.Open(in)
	if err != nil {
		return result, fmt.Errorf("opening %s: %w", in, err)
	}
	defer f.Close()

	dst, err := createOutput(out)
	if err != nil {
		return result, err
	}
	defer dst.abort()

	counts, err := p.fn(ctx, f, dst)
	result.LinesRead, result.Records, result.Skipped = counts.LinesRead, counts.Records, counts.Skipped
	if err != nil {
		var le *geometry.LineError
		if errors.As(err, &le) {
			le.Path = in
			return result, err
		}
		return result, fmt.Errorf("converting %s: %w", in, err)
	}

	if err := dst.commit(); err != nil {
		return result, err
	}
	result.Bytes = dst.size
	result.Digest = dst.digest()
	return result, nil
}

// RunResult holds the outcome of a conversion run.
type RunResult struct {
	Passes []types.PassResult
}

// Records returns the number of records written across all passes.
func (r RunResult) Records() int {
	n := 0
	for _, p := range r.Passes {
		n += p.Records
	}
	return n
}

// Run executes the given passes in order, printing per-pass status to w.
// The first failure aborts the run; passes already completed keep their
// outputs.
func Run(ctx context.Context, cfg types.ConversionConfig, selected []types.Pass, w io.Writer) (RunResult, error) {
	var result RunResult
	if err := cfg.Validate(); err != nil {
		return result, fmt.Errorf("invalid conversion config: %w", err)
	}

	for _, pass := range selected {
		p, ok := passes[pass]
		if !ok {
			return result, fmt.Errorf("unknown pass %q", pass)
		}
		in, out := p.input(cfg), p.output(cfg)

		pr, err := ConvertFile(ctx, pass, in, out)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s %s (%v)\n", pass, in, err)
			return result, err
		}
		fmt.Fprintf(w, "converted: %s %s -> %s (%d records, %d skipped)\n",
			pass, pr.Input, pr.Output, pr.Records, pr.Skipped)
		result.Passes = append(result.Passes, pr)
	}

	fmt.Fprintf(w, "\nRun summary: %d pass(es), %d record(s) written\n",
		len(result.Passes), result.Records())
	return result, nil
}
