package main

import (
	"os"

	"github.com/adytools/adyprocessor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
