// Package main provides the entry point for the mandex CLI.
package main

import (
	"os"

	"github.com/mandex/mandex/cmd/mandex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
