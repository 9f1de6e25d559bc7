package main

import (
	"os"

	"github.com/reactive-kit/gears/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
