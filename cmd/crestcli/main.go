package main

import (
	"os"

	"github.com/crestswap/crest/cmd/crestcli/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
