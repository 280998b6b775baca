package main

import (
	"fmt"
	"os"

	"github.com/spiffcs/widgets/cmd"
)

// Set via ldflags
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
