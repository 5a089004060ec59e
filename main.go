package main

import (
	"os"

	"github.com/transitops/fleetassign/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
