package main

import (
	"fmt"
	"os"

	"github.com/ParkWardRR/Echelon-Video-Analyzer/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
