package main

import (
	"os"

	"registrar/cmd/registrar/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
