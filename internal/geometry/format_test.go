// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{-2, "-2.0"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{0.1234568, "0.1234568"},
		{12.3, "12.3"},
		{0.0001, "0.0001"},
		{1e-05, "1e-05"},
		{-4.9e-05, "-4.9e-05"},
		{9999999999999998, "9999999999999998.0"},
		{1e16, "1e+16"},
		{1.5e20, "1.5e+20"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.in))
		})
	}
}

func TestFormatVertex(t *testing.T) {
	tests := []struct {
		name string
		in   Vertex
		want string
	}{
		{name: "example", in: Vertex{10, 20, 30}, want: "1.0, 3.0, -2.0,"},
		{name: "origin", in: Vertex{0, 0, 0}, want: "0.0, 0.0, -0.0,"},
		{name: "fractional", in: Vertex{1.23456789, -0.5, 2}, want: "0.1234568, 0.2, 0.05,"},
		{name: "exponent forms", in: Vertex{0.0001, 0.00049, 123}, want: "1e-05, 12.3, -4.9e-05,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatVertex(tt.in.WebGL()))
		})
	}
}

func TestFormatTriangles(t *testing.T) {
	assert.Equal(t, "0, 1, 2, 0, 2, 3,", FormatTriangles(Face{1, 2, 3, 4}.Triangles()))
	assert.Equal(t, "-1, 0, 1, -1, 1, 2,", FormatTriangles(Face{0, 1, 2, 3}.Triangles()))
}
