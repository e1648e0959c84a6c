// Package main is the entry point for the flouze CLI.
package main

import (
	"os"

	"github.com/mmynk/flouze/cmd/flouze/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
