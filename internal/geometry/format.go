// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geometry

import (
	"strconv"
	"strings"
)

const (
	// Shortest notation switches to an exponent outside [1e-4, 1e16).
	minFixedExp = -4
	maxFixedExp = 16
)

// FormatFloat renders f the way the WebGL sources expect: shortest
// round-trip digits, a trailing ".0" on integral values, and exponent form
// for very small or very large magnitudes ("1e-05", "1e+16").
func FormatFloat(f float64) string {
	if f != 0 {
		e := strconv.FormatFloat(f, 'e', -1, 64)
		_, expPart, _ := strings.Cut(e, "e")
		if exp, err := strconv.Atoi(expPart); err == nil && (exp < minFixedExp || exp >= maxFixedExp) {
			return e
		}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatVertex renders a converted vertex as "x, y, z,".
func FormatVertex(v Vertex) string {
	var b strings.Builder
	b.WriteString(FormatFloat(v.X))
	b.WriteString(", ")
	b.WriteString(FormatFloat(v.Y))
	b.WriteString(", ")
	b.WriteString(FormatFloat(v.Z))
	b.WriteString(",")
	return b.String()
}

// FormatTriangles renders six indices as "a, b, c, a, c, d,".
func FormatTriangles(idx [6]int) string {
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ") + ","
}
