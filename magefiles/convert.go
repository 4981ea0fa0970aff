//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and runs all three passes in the working directory.
func Convert() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "convert")
}

// History prints the most recent runs recorded in the ledger.
func History() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "history", "--limit", "10")
}
