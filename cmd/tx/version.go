// Package main provides the CLI commands for tx
package main

import (
	"fmt"
	"io"
)

var (
	// Version information (set via ldflags during build)
	version = "1.0.0"
	commit  = "unknown"
	date    = "unknown"
)

// printVersion prints the version information for --version
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "tx - magic-wormhole send wrapper\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Commit: %s\n", commit)
	fmt.Fprintf(w, "Build Date: %s\n", date)
}
