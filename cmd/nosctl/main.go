package main

import (
	"os"

	"github.com/damianoneill/nos/cmd/nosctl/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
