package main

import (
	"os"

	"github.com/Zaphoood/histedit/src/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
