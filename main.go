// Package main provides the entrypoint for emeritus-bridge.
package main

import (
	"os"

	"github.com/emeritus-labs/emeritus-bridge/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
