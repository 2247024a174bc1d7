package main

import (
	"os"

	"github.com/kk-code-lab/rarc/internal/cli"
)

// Version information - injected via LDFLAGS for release builds.
var Version = ""

func main() {
	if Version != "" {
		cli.Version = Version
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
