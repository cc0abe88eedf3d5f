package main

import (
	"os"

	"github.com/quynhluu-labs/quynhluu/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(cli.Main(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}))
}
