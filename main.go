package main

import (
	"os"

	"github.com/dexnexus/streamlab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
