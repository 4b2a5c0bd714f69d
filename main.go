package main

import (
	"os"

	"github.com/commanderxa/alphalabs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
