package main

import (
	"os"

	"github.com/parkd-dev/parkd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
