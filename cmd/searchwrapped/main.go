// Command searchwrapped prints summary facts and chart data from a personal
// search history export.
package main

import (
	"fmt"
	"os"

	"github.com/runnerr0/searchwrapped/internal/cli"
)

// Version is set at build time via -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	if err := cli.Run(Version); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
