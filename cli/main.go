package main

import (
	"os"

	"github.com/relquery/relquery/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
