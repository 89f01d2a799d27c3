// Package main is the entry point for the resdb CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/resdb/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
