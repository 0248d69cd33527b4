// Package main is the entry point for the netcost CLI.
package main

import (
	"os"

	"netcost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
