package main

import (
	"os"

	"github.com/ukemeuu/mani24-kds/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
