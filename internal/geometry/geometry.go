// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geometry classifies and parses the vertex and face lines of an
// OBJ-style geometry file and remaps them into the WebGL convention used by
// the converter: Y-up axes, one tenth scale, and 0-based indices.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies a source line by its leading token.
type Kind int

const (
	// KindOther covers blank lines, comments, normals, texture coordinates,
	// groups, materials, and anything else the converter does not emit.
	KindOther Kind = iota
	KindVertex
	KindFace
)

func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindFace:
		return "face"
	default:
		return "other"
	}
}

const (
	vertexToken = "v"
	faceToken   = "f"

	vertexArity = 3
	faceArity   = 4

	// scale is applied to every coordinate after the axis swap.
	scale = 10
	// precision is the number of decimal places kept in converted coordinates.
	precision = 7
)

// ErrMalformedLine is wrapped by every LineError.
var ErrMalformedLine = errors.New("malformed line")

// LineError reports a recognized line that cannot be converted. Path and
// Line are filled in by the caller that knows where the text came from.
type LineError struct {
	Path string
	Line int
	Kind Kind
	Err  error
}

func (e *LineError) Error() string {
	msg := fmt.Sprintf("malformed %s line: %v", e.Kind, e.Err)
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	default:
		return msg
	}
}

// Is lets errors.Is match ErrMalformedLine.
func (e *LineError) Is(target error) bool {
	return target == ErrMalformedLine
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Classify returns the kind of line along with its trailing tokens. Tokens
// are separated by any run of whitespace, so trailing '\r' is harmless.
func Classify(line string) (Kind, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return KindOther, nil
	}
	switch fields[0] {
	case vertexToken:
		return KindVertex, fields[1:]
	case faceToken:
		return KindFace, fields[1:]
	default:
		return KindOther, nil
	}
}

// Vertex is a position read from a vertex line.
type Vertex struct {
	X, Y, Z float64
}

// ParseVertex reads the first three tokens of a vertex line as coordinates.
// Extra tokens (such as vertex colors) are ignored.
func ParseVertex(tokens []string) (Vertex, error) {
	if len(tokens) < vertexArity {
		return Vertex{}, &LineError{
			Kind: KindVertex,
			Err:  fmt.Errorf("want %d coordinates, got %d", vertexArity, len(tokens)),
		}
	}

	var c [vertexArity]float64
	for i := range c {
		f, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return Vertex{}, &LineError{Kind: KindVertex, Err: fmt.Errorf("coordinate %q: %w", tokens[i], err)}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Vertex{}, &LineError{Kind: KindVertex, Err: fmt.Errorf("coordinate %q is not finite", tokens[i])}
		}
		c[i] = f
	}
	return Vertex{X: c[0], Y: c[1], Z: c[2]}, nil
}

// WebGL swaps the Y and Z axes, negates the new Z, scales by one tenth, and
// rounds each component to seven decimal places.
func (v Vertex) WebGL() Vertex {
	return Vertex{
		X: round(v.X / scale),
		Y: round(v.Z / scale),
		Z: round(-v.Y / scale),
	}
}

// round rounds the exact binary value of f to precision decimal places,
// half-to-even.
func round(f float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', precision, 64), 64)
	if err != nil {
		return f
	}
	return r
}

// Face holds the 1-based position indices of a quad.
type Face [faceArity]int

// ParseFace reads the position index of the first four tokens of a face
// line. Anything after the first '/' in a token is discarded, as are tokens
// beyond the fourth.
func ParseFace(tokens []string) (Face, error) {
	var f Face
	if len(tokens) < faceArity {
		return f, &LineError{
			Kind: KindFace,
			Err:  fmt.Errorf("want %d indices, got %d", faceArity, len(tokens)),
		}
	}

	for i := range f {
		pos, _, _ := strings.Cut(tokens[i], "/")
		n, err := strconv.Atoi(pos)
		if err != nil {
			return Face{}, &LineError{Kind: KindFace, Err: fmt.Errorf("index %q: %w", tokens[i], err)}
		}
		f[i] = n
	}
	return f, nil
}

// Triangles rebases the quad to 0-based indices and fans it from its first
// corner into (a, b, c) and (a, c, d).
func (f Face) Triangles() [6]int {
	a, b, c, d := f[0]-1, f[1]-1, f[2]-1, f[3]-1
	return [6]int{a, b, c, a, c, d}
}
