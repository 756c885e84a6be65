// Package main is the entry point for the edakit CLI.
package main

import (
	"os"

	"github.com/edakit/edakit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
