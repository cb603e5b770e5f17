package main

import (
	"os"

	"github.com/taskdeck/taskdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
