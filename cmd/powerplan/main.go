package main

import (
	"os"

	"github.com/powerplan/powerplan/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
