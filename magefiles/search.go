//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search builds the CLI and runs a live PubMed search for $QUERY.
// Set $YEARS (comma-separated) to filter by publication year.
func Search() error {
	query := os.Getenv("QUERY")
	if query == "" {
		return fmt.Errorf("set QUERY to a PubMed search term")
	}
	mg.Deps(Build)

	args := []string{"search", query}
	if years := os.Getenv("YEARS"); years != "" {
		args = append(args, "--year", years)
	}
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
