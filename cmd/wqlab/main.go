package main

import (
	"os"

	"github.com/runnerr0/wqlab/internal/cli"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// go-flags has already printed the error to stderr.
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
