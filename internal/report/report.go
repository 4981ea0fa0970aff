// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes conversion runs to YAML, either as a single run
// report or as an export of the ledger history.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/objwebgl/pkg/types"
)

// Report is the on-disk representation of one conversion run.
type Report struct {
	Config  types.ConversionConfig `yaml:"config"`
	Passes  []types.PassResult     `yaml:"passes"`
	Summary Summary                `yaml:"summary"`
}

// Summary holds run-level totals.
type Summary struct {
	RunID     int64         `yaml:"run_id,omitempty"`
	Records   int           `yaml:"records"`
	Skipped   int           `yaml:"skipped"`
	Unchanged int           `yaml:"unchanged"`
	StartedAt time.Time     `yaml:"started_at"`
	Duration  time.Duration `yaml:"duration"`
}

// New builds a Report for rec produced under cfg.
func New(cfg types.ConversionConfig, rec types.RunRecord) Report {
	r := Report{
		Config: cfg,
		Passes: rec.Passes,
		Summary: Summary{
			RunID:     rec.ID,
			StartedAt: rec.StartedAt,
			Duration:  rec.Duration,
		},
	}
	for _, p := range rec.Passes {
		r.Summary.Records += p.Records
		r.Summary.Skipped += p.Skipped
		if p.Status == types.OutputUnchanged {
			r.Summary.Unchanged++
		}
	}
	return r
}

// WriteFile saves r as YAML at path.
func WriteFile(path string, r Report) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// ReadFile loads a report written by WriteFile.
func ReadFile(path string) (Report, error) {
	var r Report
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("reading report %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return r, nil
}

// EncodeHistory writes runs to w as a YAML sequence.
func EncodeHistory(w io.Writer, runs []types.RunRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(runs); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return enc.Close()
}
