// Package main is the entry point for the QueryGate CLI.
package main

import (
	"os"

	"github.com/querygate/querygate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
