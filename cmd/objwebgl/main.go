// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the objwebgl CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/objwebgl/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the objwebgl CLI.
var rootCmd = &cobra.Command{
	Use:   "objwebgl",
	Short: "Convert OBJ geometry into WebGL-ready vertex, line, and index text",
	Long: `objwebgl converts the vertex and face lines of an OBJ-style geometry file
into comma-separated text that can be pasted into a WebGL buffer.

Run without a subcommand (or with "convert") to execute all three passes:
vertices, edge-pair lines, and triangle indices. Each pass can also be run
on its own. Paths come from flags, OBJWEBGL_* environment variables, or
objwebgl.yaml, and default to vertices.txt and indices.txt in the working
directory.`,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./objwebgl.yaml or ~/.config/objwebgl/config.yaml)")
	pf.String("input", types.DefaultInput, "geometry file read by the vertex and line passes")
	pf.String("vertices-out", types.DefaultVerticesOut, "vertex output file")
	pf.String("lines-out", types.DefaultLinesOut, "edge-pair output file")
	pf.String("face-input", types.DefaultFaceInput, "geometry file read by the index pass")
	pf.String("indices-out", types.DefaultIndicesOut, "triangle index output file")
	pf.String("ledger-dir", types.DefaultLedgerDir, "directory holding the run ledger")
	pf.Bool("no-ledger", false, "do not record runs in the ledger")
	pf.String("report", "", "write a YAML run report to this path")

	bindings := map[string]string{
		"conversion.input":           "input",
		"conversion.vertices_output": "vertices-out",
		"conversion.lines_output":    "lines-out",
		"conversion.face_input":      "face-input",
		"conversion.indices_output":  "indices-out",
		"ledger.dir":                 "ledger-dir",
		"ledger.disabled":            "no-ledger",
		"report":                     "report",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("objwebgl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "objwebgl"))
		}
	}

	viper.SetEnvPrefix("OBJWEBGL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, the config file, environment, and flags.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
