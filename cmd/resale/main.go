// Package main is the entry point for the resale CLI client.
package main

import (
	"github.com/Joshspeakman/ebay-resale-analyzer/cmd/resale/cmd"
)

func main() {
	cmd.Execute()
}
