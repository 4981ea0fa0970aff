// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration and result records shared by the
// objwebgl packages.
package types

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Default file names, relative to the working directory.
const (
	DefaultInput        = "vertices.txt"
	DefaultVerticesOut  = "webgl_vertices.txt"
	DefaultLinesOut     = "webgl_lines.txt"
	DefaultFaceInput    = "indices.txt"
	DefaultIndicesOut   = "webgl_indices.txt"
	DefaultLedgerDir    = ".objwebgl"
	DefaultHistoryLimit = 20
)

// ConversionConfig names every file the converter reads or writes.
type ConversionConfig struct {
	// Input is the geometry file read by the vertex and line passes.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// VerticesOutput receives one "x, y, z," line per vertex.
	VerticesOutput string `json:"vertices_output" yaml:"vertices_output" mapstructure:"vertices_output"`

	// LinesOutput receives the blank-line separated edge pairs.
	LinesOutput string `json:"lines_output" yaml:"lines_output" mapstructure:"lines_output"`

	// FaceInput is the geometry file read by the index pass.
	FaceInput string `json:"face_input" yaml:"face_input" mapstructure:"face_input"`

	// IndicesOutput receives one "a, b, c, a, c, d," line per face.
	IndicesOutput string `json:"indices_output" yaml:"indices_output" mapstructure:"indices_output"`
}

// DefaultConversionConfig returns the file layout used when nothing is
// configured.
func DefaultConversionConfig() ConversionConfig {
	return ConversionConfig{
		Input:          DefaultInput,
		VerticesOutput: DefaultVerticesOut,
		LinesOutput:    DefaultLinesOut,
		FaceInput:      DefaultFaceInput,
		IndicesOutput:  DefaultIndicesOut,
	}
}

// Validate rejects empty paths, outputs that would overwrite an input, and
// two passes writing the same file.
func (c ConversionConfig) Validate() error {
	type setting struct {
		key, path string
	}
	inputs := []setting{
		{"input", c.Input},
		{"face_input", c.FaceInput},
	}
	outputs := []setting{
		{"vertices_output", c.VerticesOutput},
		{"lines_output", c.LinesOutput},
		{"indices_output", c.IndicesOutput},
	}

	var errs []error
	for _, s := range append(append([]setting{}, inputs...), outputs...) {
		if s.path == "" {
			errs = append(errs, fmt.Errorf("conversion.%s is empty", s.key))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	read := make(map[string]bool, len(inputs))
	for _, s := range inputs {
		read[filepath.Clean(s.path)] = true
	}
	written := make(map[string]string, len(outputs))
	for _, s := range outputs {
		p := filepath.Clean(s.path)
		if read[p] {
			errs = append(errs, fmt.Errorf("conversion.%s %q would overwrite an input file", s.key, s.path))
		}
		if prev, ok := written[p]; ok {
			errs = append(errs, fmt.Errorf("conversion.%s and conversion.%s both write %q", prev, s.key, s.path))
		}
		written[p] = s.key
	}
	return errors.Join(errs...)
}

// LedgerConfig controls the run ledger.
type LedgerConfig struct {
	// Dir holds the ledger database.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Disabled skips recording runs.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// Config is the full objwebgl configuration file.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	Ledger     LedgerConfig     `json:"ledger" yaml:"ledger" mapstructure:"ledger"`

	// Report, when set, is the path of a YAML run report.
	Report string `json:"report,omitempty" yaml:"report,omitempty" mapstructure:"report"`
}

// DefaultConfig returns the configuration used when no file or flag
// overrides anything.
func DefaultConfig() Config {
	return Config{
		Conversion: DefaultConversionConfig(),
		Ledger:     LedgerConfig{Dir: DefaultLedgerDir},
	}
}
