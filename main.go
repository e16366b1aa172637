package main

import (
	"os"

	"github.com/velora-app/matchengine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
