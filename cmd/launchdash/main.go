package main

import (
	"os"

	"github.com/launchdash/launchdash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
