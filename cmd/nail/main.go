// Package main provides the nail command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/nail/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
