package main

import (
	"os"

	"housing-workers/internal/cli"
)

func main() {
	command := cli.NewHousePriceCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
