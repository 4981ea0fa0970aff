// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Pass identifies one of the three conversion passes.
type Pass string

const (
	PassVertices Pass = "vertices"
	PassLines    Pass = "lines"
	PassIndices  Pass = "indices"
)

// OutputStatus compares an output file with the one recorded by the
// previous run that wrote the same path.
type OutputStatus string

const (
	OutputNew       OutputStatus = "new"
	OutputChanged   OutputStatus = "changed"
	OutputUnchanged OutputStatus = "unchanged"
)

// PassResult summarizes one completed pass.
type PassResult struct {
	Pass Pass `json:"pass" yaml:"pass"`

	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`

	// LinesRead counts every line of the input, recognized or not.
	LinesRead int `json:"lines_read" yaml:"lines_read"`

	// Records counts the vertices or faces converted.
	Records int `json:"records" yaml:"records"`

	// Skipped counts lines whose leading token the pass does not convert.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Bytes is the size of the written output.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// Digest is the hex SHA-256 of the written output.
	Digest string `json:"digest" yaml:"digest"`

	// Status is filled in by the ledger; empty when no ledger is used.
	Status OutputStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// RunRecord is one invocation of the converter.
type RunRecord struct {
	ID        int64         `json:"id" yaml:"id"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Passes    []PassResult  `json:"passes" yaml:"passes"`
}
