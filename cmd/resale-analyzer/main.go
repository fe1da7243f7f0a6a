// Package main is the entry point for the resale-analyzer server.
package main

import (
	"os"

	"github.com/Joshspeakman/ebay-resale-analyzer/cmd/resale-analyzer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
