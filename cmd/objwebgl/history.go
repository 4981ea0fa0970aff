// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/objwebgl/internal/ledger"
	"github.com/pdiddy/objwebgl/internal/report"
	"github.com/pdiddy/objwebgl/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversion runs",
	Long: `History lists runs from the ledger, newest first, with the record count
and SHA-256 digest of every output and whether it changed since the
previous run that wrote the same file.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", types.DefaultHistoryLimit, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")
	historyCmd.Flags().Bool("yaml", false, "output runs as YAML")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	if jsonOutput && yamlOutput {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}

	l, err := ledger.Open(cfg.Ledger)
	if err != nil {
		return err
	}
	defer l.Close()

	runs, err := l.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	case yamlOutput:
		return report.EncodeHistory(out, runs)
	default:
		formatHistory(out, runs)
		return nil
	}
}

func formatHistory(w io.Writer, runs []types.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-9s  %-8s  %-9s  %-7s  %-12s  %s\n",
		"Run", "Started", "Duration", "Pass", "Status", "Records", "Digest", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		for i, p := range r.Passes {
			id, started, dur := "", "", ""
			if i == 0 {
				id = fmt.Sprint(r.ID)
				started = r.StartedAt.Local().Format(time.DateTime)
				dur = r.Duration.Round(time.Millisecond).String()
			}
			digest := p.Digest
			if len(digest) > 12 {
				digest = digest[:12]
			}
			fmt.Fprintf(w, "%-5s  %-20s  %-9s  %-8s  %-9s  %-7d  %-12s  %s\n",
				id, started, dur, p.Pass, p.Status, p.Records, digest, p.Output)
		}
	}
}
