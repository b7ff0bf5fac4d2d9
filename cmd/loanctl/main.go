package main

import (
	"os"

	"github.com/harborbank/servicing/cmd/loanctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
