// Package main provides the incomectl binary.
package main

import (
	"os"

	"github.com/gork-labs/incomectl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
