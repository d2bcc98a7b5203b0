// Package main is the entry point for the caseline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/caseline/caseline/internal/cli"
)

// Version information (set by goreleaser)
var (
	version = "dev"
)

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
